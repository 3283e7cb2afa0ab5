package models

// BeanType is the session or message-driven bean kind
type BeanType string

const (
	Stateless     BeanType = "Stateless"
	Stateful      BeanType = "Stateful"
	Singleton     BeanType = "Singleton"
	MessageDriven BeanType = "MessageDriven"
)

// View interface kinds used by MethodInfo.MethodIntf
const (
	IntfHome            = "Home"
	IntfRemote          = "Remote"
	IntfLocalHome       = "LocalHome"
	IntfLocal           = "Local"
	IntfServiceEndpoint = "ServiceEndpoint"
)

// ValidIntf reports whether s is a known view kind (or empty/wildcard)
func ValidIntf(s string) bool {
	switch s {
	case "", Wildcard, IntfHome, IntfRemote, IntfLocalHome, IntfLocal, IntfServiceEndpoint:
		return true
	}
	return false
}

// ClassInfo describes one class of the application: its superclass, class
// annotations and declared methods.
type ClassInfo struct {
	Name        string       `json:"name"`
	Super       string       `json:"super,omitempty"`
	Annotations []string     `json:"annotations,omitempty"`
	Methods     []MethodDecl `json:"methods,omitempty"`
}

// MethodDecl is a method declared directly on a class
type MethodDecl struct {
	Name        string   `json:"name"`
	Params      []string `json:"params"`
	Annotations []string `json:"annotations,omitempty"`
}

// ViewInfo is a client view of a bean: the interface kind, the interface name
// and the methods it declares.
type ViewInfo struct {
	Intf      string      `json:"intf"`
	Interface string      `json:"interface"`
	Methods   []Signature `json:"methods,omitempty"`
}

// BeanInfo describes a deployed enterprise bean
type BeanInfo struct {
	EjbName      string     `json:"ejbName"`
	DeploymentID string     `json:"deploymentId,omitempty"`
	ClassName    string     `json:"className"`
	Type         BeanType   `json:"type"`
	Views        []ViewInfo `json:"views,omitempty"`
}

// SimpleClassName returns the class name without its package
func (b BeanInfo) SimpleClassName() string {
	return SimpleName(b.ClassName)
}

// SimpleName strips the package and any enclosing class from a class name
func SimpleName(className string) string {
	for i := len(className) - 1; i >= 0; i-- {
		if className[i] == '.' || className[i] == '$' {
			return className[i+1:]
		}
	}
	return className
}

// EjbJarInfo is one application module: its beans, classes and the
// declarative rules collected from the deployment descriptor.
type EjbJarInfo struct {
	ModuleID            string
	Beans               []BeanInfo
	Classes             []ClassInfo
	Interceptors        []InterceptorInfo
	MethodTransactions  []MethodTransactionInfo
	MethodConcurrency   []MethodConcurrencyInfo
	MethodPermissions   []MethodPermissionInfo
	InterceptorBindings []InterceptorBindingInfo
	Resources           []ResourceInfo
}

// Class returns the class with the given name
func (j *EjbJarInfo) Class(name string) (ClassInfo, bool) {
	for _, c := range j.Classes {
		if c.Name == name {
			return c, true
		}
	}
	return ClassInfo{}, false
}

// ResourceInfo is a container resource such as a data source or queue
type ResourceInfo struct {
	ID         string            `json:"id"`
	Type       string            `json:"type,omitempty"`
	ClassName  string            `json:"className,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
	DependsOn  []string          `json:"dependsOn,omitempty"`
}
