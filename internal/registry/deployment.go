package registry

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/toyz/ejbmeta/internal/interceptors"
	"github.com/toyz/ejbmeta/internal/models"
	"github.com/toyz/ejbmeta/internal/resolver"
)

// Deployment is the resolved metadata of one application. A published
// Deployment is never modified; a redeploy publishes a new one.
type Deployment struct {
	ID         uuid.UUID
	App        string
	DeployedAt time.Time
	Resources  []models.ResourceInfo // creation order
	// References maps each resource id to the ids it must be created after
	References map[string][]string
	Beans      map[string]*BeanAttributes
}

// BeanNames returns the ejb-names in ascending order
func (d *Deployment) BeanNames() []string {
	names := make([]string, 0, len(d.Beans))
	for name := range d.Beans {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bean returns the attributes of one bean
func (d *Deployment) Bean(name string) (*BeanAttributes, bool) {
	b, ok := d.Beans[name]
	return b, ok
}

// BeanAttributes is the resolved per-method metadata of one bean
type BeanAttributes struct {
	Bean           models.BeanInfo
	Methods        []models.Method
	Transactions   *resolver.Attributes[models.TransAttribute]
	Locks          *resolver.Attributes[models.LockType]
	AccessTimeouts *resolver.Attributes[models.Timeout]
	Permissions    *resolver.Attributes[models.Permission]
	Interceptors   *interceptors.Chains

	DefaultTransaction models.TransAttribute
}

// TransactionAttribute returns the method's transaction attribute, falling
// back to the default when no rule covers it. ok is false for methods outside
// the inventory.
func (b *BeanAttributes) TransactionAttribute(key models.MethodKey) (ta models.TransAttribute, ok bool) {
	v, ok := b.Transactions.Get(key)
	if !ok {
		return "", false
	}
	if v == nil {
		return b.DefaultTransaction, true
	}
	return *v, true
}

// LockType returns the method's lock type, nil when none was declared
func (b *BeanAttributes) LockType(key models.MethodKey) *models.LockType {
	v, _ := b.Locks.Get(key)
	return v
}

// AccessTimeout returns the method's access timeout, nil when none was declared
func (b *BeanAttributes) AccessTimeout(key models.MethodKey) *models.Timeout {
	v, _ := b.AccessTimeouts.Get(key)
	return v
}

// Permission returns the method's permission, nil when none was declared
func (b *BeanAttributes) Permission(key models.MethodKey) *models.Permission {
	v, _ := b.Permissions.Get(key)
	return v
}

// InterceptorChain returns the method's interceptors in invocation order
func (b *BeanAttributes) InterceptorChain(key models.MethodKey) []string {
	chain, _ := b.Interceptors.Get(key)
	return chain
}
