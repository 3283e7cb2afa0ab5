// Package descriptor reads YAML deployment descriptors into EjbJarInfo.
//
// A descriptor carries the bean inventory (beans, views, classes with their
// annotations) next to the declarative rules, so one file describes a whole
// application:
//
//	module: shop
//	beans:
//	  - ejb-name: OrderBean
//	    class: org.shop.OrderBean
//	    type: Singleton
//	classes:
//	  - name: org.shop.OrderBean
//	    annotations: ["@Lock(LockType.READ)"]
//	    methods:
//	      - signature: place(java.lang.String)
//	container-transactions:
//	  - trans-attribute: RequiresNew
//	    methods:
//	      - {ejb-name: OrderBean, method: "place(java.lang.String)"}
//
// Method references use the signature syntax of methodinfo.ParseSignature:
// "*", "name" (every overload), "name()" or "name(type, ...)".
package descriptor

// Document is the YAML form of one application
type Document struct {
	Module                string                 `yaml:"module"`
	Beans                 []BeanDoc              `yaml:"beans"`
	Classes               []ClassDoc             `yaml:"classes"`
	Interceptors          []string               `yaml:"interceptors"`
	InterceptorBindings   []InterceptorBinding   `yaml:"interceptor-bindings"`
	ContainerTransactions []ContainerTransaction `yaml:"container-transactions"`
	ContainerConcurrency  []ContainerConcurrency `yaml:"container-concurrency"`
	MethodPermissions     []MethodPermission     `yaml:"method-permissions"`
	Resources             []ResourceDoc          `yaml:"resources"`
}

// BeanDoc declares a bean
type BeanDoc struct {
	EjbName      string    `yaml:"ejb-name"`
	DeploymentID string    `yaml:"deployment-id"`
	Class        string    `yaml:"class"`
	Type         string    `yaml:"type"`
	Views        []ViewDoc `yaml:"views"`
}

// ViewDoc declares a client view and its methods
type ViewDoc struct {
	Intf      string   `yaml:"intf"`
	Interface string   `yaml:"interface"`
	Methods   []string `yaml:"methods"`
}

// ClassDoc declares a class, its superclass and annotations
type ClassDoc struct {
	Name        string      `yaml:"name"`
	Super       string      `yaml:"super"`
	Annotations []string    `yaml:"annotations"`
	Methods     []MethodDoc `yaml:"methods"`
}

// MethodDoc declares a method with its full signature
type MethodDoc struct {
	Signature   string   `yaml:"signature"`
	Annotations []string `yaml:"annotations"`
}

// MethodRef scopes a rule to methods
type MethodRef struct {
	Description  string `yaml:"description"`
	EjbName      string `yaml:"ejb-name"`
	DeploymentID string `yaml:"deployment-id"`
	MethodIntf   string `yaml:"method-intf"`
	Class        string `yaml:"class"`
	Method       string `yaml:"method"`
}

// ContainerTransaction assigns a transaction attribute
type ContainerTransaction struct {
	Description    string      `yaml:"description"`
	TransAttribute string      `yaml:"trans-attribute"`
	Methods        []MethodRef `yaml:"methods"`
}

// TimeoutDoc is an access timeout
type TimeoutDoc struct {
	Timeout int64  `yaml:"timeout"`
	Unit    string `yaml:"unit"`
}

// ContainerConcurrency assigns a lock type, an access timeout or both
type ContainerConcurrency struct {
	Description   string      `yaml:"description"`
	Lock          string      `yaml:"lock"`
	AccessTimeout *TimeoutDoc `yaml:"access-timeout"`
	Methods       []MethodRef `yaml:"methods"`
}

// MethodPermission assigns security roles
type MethodPermission struct {
	Description string      `yaml:"description"`
	Roles       []string    `yaml:"roles"`
	Unchecked   bool        `yaml:"unchecked"`
	Excluded    bool        `yaml:"excluded"`
	Methods     []MethodRef `yaml:"methods"`
}

// InterceptorBinding binds interceptors to all beans ("*"), a bean or a method
type InterceptorBinding struct {
	EjbName                    string   `yaml:"ejb-name"`
	Method                     string   `yaml:"method"`
	Interceptors               []string `yaml:"interceptors"`
	InterceptorOrder           []string `yaml:"interceptor-order"`
	ExcludeClassInterceptors   bool     `yaml:"exclude-class-interceptors"`
	ExcludeDefaultInterceptors bool     `yaml:"exclude-default-interceptors"`
}

// ResourceDoc declares a resource
type ResourceDoc struct {
	ID         string            `yaml:"id"`
	Type       string            `yaml:"type"`
	Class      string            `yaml:"class"`
	Properties map[string]string `yaml:"properties"`
	DependsOn  []string          `yaml:"depends-on"`
}
