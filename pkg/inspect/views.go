package inspect

import (
	"time"

	"github.com/toyz/ejbmeta/internal/models"
	"github.com/toyz/ejbmeta/internal/registry"
)

// DeploymentView is the JSON form of a deployment
type DeploymentView struct {
	ID         string    `json:"id"`
	App        string    `json:"app"`
	DeployedAt time.Time `json:"deployedAt"`
	Beans      []string  `json:"beans"`
	Resources  []string  `json:"resources"` // creation order

	References map[string][]string `json:"references,omitempty"`
}

// BeanView is the JSON form of one bean's resolved metadata
type BeanView struct {
	EjbName      string          `json:"ejbName"`
	DeploymentID string          `json:"deploymentId,omitempty"`
	ClassName    string          `json:"className"`
	Type         models.BeanType `json:"type"`
	Callbacks    []string        `json:"callbackInterceptors"`
	Methods      []MethodView    `json:"methods"`
}

// MethodView is the resolved metadata of one inventory method
type MethodView struct {
	Key               string             `json:"key"`
	DeclaringClass    string             `json:"declaringClass"`
	Name              string             `json:"name"`
	Params            []string           `json:"params"`
	Views             []string           `json:"views,omitempty"`
	Transaction       string             `json:"transaction"`
	TransactionSource string             `json:"transactionSource,omitempty"`
	Lock              string             `json:"lock,omitempty"`
	AccessTimeout     string             `json:"accessTimeout,omitempty"`
	Permission        *models.Permission `json:"permission,omitempty"`
	Interceptors      []string           `json:"interceptors"`
}

// NewDeploymentView summarizes d
func NewDeploymentView(d *registry.Deployment) DeploymentView {
	resources := make([]string, len(d.Resources))
	for i, r := range d.Resources {
		resources[i] = r.ID
	}
	return DeploymentView{
		ID:         d.ID.String(),
		App:        d.App,
		DeployedAt: d.DeployedAt,
		Beans:      d.BeanNames(),
		Resources:  resources,
		References: d.References,
	}
}

// NewBeanView renders b. A non-empty method keeps only the methods with
// that name.
func NewBeanView(b *registry.BeanAttributes, method string) BeanView {
	view := BeanView{
		EjbName:      b.Bean.EjbName,
		DeploymentID: b.Bean.DeploymentID,
		ClassName:    b.Bean.ClassName,
		Type:         b.Bean.Type,
		Callbacks:    nonNil(b.Interceptors.Callbacks()),
		Methods:      []MethodView{},
	}
	for _, m := range b.Methods {
		if method != "" && m.Name != method {
			continue
		}
		view.Methods = append(view.Methods, NewMethodView(b, m))
	}
	return view
}

// NewMethodView renders the resolved attributes of m
func NewMethodView(b *registry.BeanAttributes, m models.Method) MethodView {
	key := m.Key()
	view := MethodView{
		Key:            key.String(),
		DeclaringClass: m.DeclaringClass,
		Name:           m.Name,
		Params:         nonNil(m.Params),
		Views:          m.Views,
		Permission:     b.Permission(key),
		Interceptors:   nonNil(b.InterceptorChain(key)),
	}
	if ta, ok := b.TransactionAttribute(key); ok {
		view.Transaction = string(ta)
	}
	if rule, ok := b.Transactions.Origin(key); ok {
		view.TransactionSource = rule.Source.String()
	}
	if lock := b.LockType(key); lock != nil {
		view.Lock = string(*lock)
	}
	if timeout := b.AccessTimeout(key); timeout != nil {
		view.AccessTimeout = timeout.String()
	}
	return view
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
