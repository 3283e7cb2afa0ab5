package descriptor

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/toyz/ejbmeta/internal/errors"
	"github.com/toyz/ejbmeta/internal/methodinfo"
	"github.com/toyz/ejbmeta/internal/models"
	"github.com/toyz/ejbmeta/internal/utils"
)

// Loader reads descriptor files, reusing the result while a file is unchanged
type Loader struct {
	cache *utils.FileCache[*models.EjbJarInfo]
}

// NewLoader creates a loader with an empty cache
func NewLoader() *Loader {
	return &Loader{cache: utils.NewFileCache[*models.EjbJarInfo]()}
}

// Load reads and converts the descriptor at path. The returned value is
// shared with later calls and must not be modified.
func (l *Loader) Load(path string) (*models.EjbJarInfo, error) {
	if jar, ok := l.cache.Get(path); ok {
		return jar, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFileSystemError("read descriptor", path, err)
	}
	jar, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	// a file removed between read and stat is simply not cached
	_ = l.cache.Set(path, jar)
	return jar, nil
}

// Parse decodes descriptor data. name is used in error locations.
func Parse(data []byte, name string) (*models.EjbJarInfo, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		serr := errors.NewSyntaxError(fmt.Sprintf("invalid descriptor %s", name), "", 0)
		serr.WithCause(err)
		serr.WithLocation(errors.SourceLocation{File: name})
		return nil, serr
	}
	return doc.EjbJarInfo(name)
}

// EjbJarInfo converts the document. Unknown enum spellings and malformed
// signatures are configuration errors located in file.
func (d *Document) EjbJarInfo(file string) (*models.EjbJarInfo, error) {
	c := &converter{file: file, errs: errors.NewMultipleErrors()}

	jar := &models.EjbJarInfo{ModuleID: d.Module}
	for _, b := range d.Beans {
		jar.Beans = append(jar.Beans, c.bean(b))
	}
	for _, cl := range d.Classes {
		jar.Classes = append(jar.Classes, c.class(cl))
	}
	for _, ic := range d.Interceptors {
		jar.Interceptors = append(jar.Interceptors, models.InterceptorInfo{ClassName: ic})
	}
	for _, b := range d.InterceptorBindings {
		jar.InterceptorBindings = append(jar.InterceptorBindings, c.binding(b))
	}
	for _, ct := range d.ContainerTransactions {
		jar.MethodTransactions = append(jar.MethodTransactions, models.MethodTransactionInfo{
			Description:    ct.Description,
			TransAttribute: c.transAttribute(ct.TransAttribute),
			Methods:        c.methods(ct.Methods),
		})
	}
	for _, cc := range d.ContainerConcurrency {
		jar.MethodConcurrency = append(jar.MethodConcurrency, c.concurrency(cc))
	}
	for _, mp := range d.MethodPermissions {
		jar.MethodPermissions = append(jar.MethodPermissions, models.MethodPermissionInfo{
			Description: mp.Description,
			RoleNames:   mp.Roles,
			Unchecked:   mp.Unchecked,
			Excluded:    mp.Excluded,
			Methods:     c.methods(mp.Methods),
		})
	}
	for _, r := range d.Resources {
		jar.Resources = append(jar.Resources, models.ResourceInfo{
			ID:         r.ID,
			Type:       r.Type,
			ClassName:  r.Class,
			Properties: r.Properties,
			DependsOn:  r.DependsOn,
		})
	}

	if err := c.errs.ErrOrNil(); err != nil {
		return nil, err
	}
	return jar, nil
}

// converter collects every conversion error of one document
type converter struct {
	file string
	errs *errors.MultipleErrors
}

func (c *converter) fail(bean, msg string) {
	c.errs.Add(errors.NewConfigurationError(bean, msg).WithLocation(errors.SourceLocation{File: c.file}))
}

func (c *converter) signature(bean, text string) models.NamedMethodInfo {
	nm, err := methodinfo.ParseSignature(strings.TrimSpace(text))
	if err != nil {
		c.fail(bean, fmt.Sprintf("invalid method signature %q", text))
	}
	return nm
}

func (c *converter) bean(b BeanDoc) models.BeanInfo {
	bean := models.BeanInfo{
		EjbName:      b.EjbName,
		DeploymentID: b.DeploymentID,
		ClassName:    b.Class,
		Type:         c.beanType(b.EjbName, b.Type),
	}
	for _, v := range b.Views {
		view := models.ViewInfo{Intf: v.Intf, Interface: v.Interface}
		for _, text := range v.Methods {
			nm := c.signature(b.EjbName, text)
			params := nm.MethodParams
			if params == nil {
				params = []string{}
			}
			view.Methods = append(view.Methods, models.Signature{Name: nm.MethodName, Params: params})
		}
		bean.Views = append(bean.Views, view)
	}
	return bean
}

func (c *converter) beanType(bean, s string) models.BeanType {
	if s == "" {
		return models.Stateless
	}
	for _, t := range []models.BeanType{models.Stateless, models.Stateful, models.Singleton, models.MessageDriven} {
		if strings.EqualFold(strings.ReplaceAll(s, "-", ""), string(t)) {
			return t
		}
	}
	c.fail(bean, fmt.Sprintf("unknown bean type %q", s))
	return ""
}

func (c *converter) class(cl ClassDoc) models.ClassInfo {
	class := models.ClassInfo{Name: cl.Name, Super: cl.Super, Annotations: cl.Annotations}
	for _, m := range cl.Methods {
		nm := c.signature("", m.Signature)
		params := nm.MethodParams
		if params == nil {
			params = []string{}
		}
		class.Methods = append(class.Methods, models.MethodDecl{Name: nm.MethodName, Params: params, Annotations: m.Annotations})
	}
	return class
}

func (c *converter) methods(refs []MethodRef) []models.MethodInfo {
	methods := make([]models.MethodInfo, 0, len(refs))
	for _, ref := range refs {
		mi := models.MethodInfo{
			Description:     ref.Description,
			EjbName:         ref.EjbName,
			EjbDeploymentID: ref.DeploymentID,
			MethodIntf:      ref.MethodIntf,
			ClassName:       ref.Class,
			MethodName:      models.Wildcard,
		}
		if ref.Method != "" {
			nm := c.signature(ref.EjbName, ref.Method)
			mi.MethodName, mi.MethodParams = nm.MethodName, nm.MethodParams
		}
		methods = append(methods, mi)
	}
	return methods
}

func (c *converter) transAttribute(s string) models.TransAttribute {
	ta, err := models.ParseTransAttribute(s)
	if err != nil {
		c.fail("", err.Error())
	}
	return ta
}

func (c *converter) concurrency(cc ContainerConcurrency) models.MethodConcurrencyInfo {
	info := models.MethodConcurrencyInfo{Description: cc.Description, Methods: c.methods(cc.Methods)}
	if cc.Lock != "" {
		lock, err := models.ParseLockType(cc.Lock)
		if err != nil {
			c.fail("", err.Error())
		}
		info.Lock = &lock
	}
	if cc.AccessTimeout != nil {
		unit := models.Milliseconds
		if cc.AccessTimeout.Unit != "" {
			var err error
			if unit, err = models.ParseTimeUnit(cc.AccessTimeout.Unit); err != nil {
				c.fail("", err.Error())
			}
		}
		info.AccessTimeout = &models.Timeout{Time: cc.AccessTimeout.Timeout, Unit: unit}
	}
	return info
}

func (c *converter) binding(b InterceptorBinding) models.InterceptorBindingInfo {
	info := models.InterceptorBindingInfo{
		EjbName:                    b.EjbName,
		Interceptors:               b.Interceptors,
		InterceptorOrder:           b.InterceptorOrder,
		ExcludeClassInterceptors:   b.ExcludeClassInterceptors,
		ExcludeDefaultInterceptors: b.ExcludeDefaultInterceptors,
	}
	if b.Method != "" {
		nm := c.signature(b.EjbName, b.Method)
		info.Method = &nm
	}
	return info
}
