package models

// MethodTransactionInfo assigns a transaction attribute to a set of methods
type MethodTransactionInfo struct {
	Description    string
	TransAttribute TransAttribute
	Methods        []MethodInfo
}

// MethodConcurrencyInfo assigns a lock type, an access timeout, or both.
// A nil field leaves that category untouched for the listed methods.
type MethodConcurrencyInfo struct {
	Description   string
	Lock          *LockType
	AccessTimeout *Timeout
	Methods       []MethodInfo
}

// MethodPermissionInfo assigns a security policy to a set of methods
type MethodPermissionInfo struct {
	Description string
	RoleNames   []string
	Unchecked   bool
	Excluded    bool
	Methods     []MethodInfo
}

// Permission returns the policy value carried by the record
func (m MethodPermissionInfo) Permission() Permission {
	return Permission{Roles: m.RoleNames, Unchecked: m.Unchecked, Excluded: m.Excluded}
}

// InterceptorBindingInfo binds interceptor classes to beans or methods.
//
// EjbName "*" binds default interceptors. A nil Method binds at class level.
// A non-empty ClassName marks a binding that came from an annotation on that
// class, which ranks below the descriptor binding of the same scope.
type InterceptorBindingInfo struct {
	EjbName                    string           `json:"ejbName"`
	ClassName                  string           `json:"className,omitempty"`
	Method                     *NamedMethodInfo `json:"method,omitempty"`
	Interceptors               []string         `json:"interceptors,omitempty"`
	InterceptorOrder           []string         `json:"interceptorOrder,omitempty"`
	ExcludeClassInterceptors   bool             `json:"excludeClassInterceptors,omitempty"`
	ExcludeDefaultInterceptors bool             `json:"excludeDefaultInterceptors,omitempty"`
}

// InterceptorInfo declares an interceptor class
type InterceptorInfo struct {
	ClassName string `json:"className"`
}
