package interceptors

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/ejbmeta/internal/errors"
	"github.com/toyz/ejbmeta/internal/models"
)

const beanClass = "org.acme.OrderBean"

var (
	orderBean = models.BeanInfo{EjbName: "OrderBean", ClassName: beanClass, Type: models.Stateless}

	work    = models.Method{DeclaringClass: beanClass, Name: "work", Params: []string{}}
	workStr = models.Method{DeclaringClass: beanClass, Name: "work", Params: []string{"java.lang.String"}}
	idle    = models.Method{DeclaringClass: beanClass, Name: "idle", Params: []string{}}

	declared = map[string]bool{
		"Default": true, "Class": true, "Class2": true, "Method": true,
		"Exact": true, "Annotated": true,
	}
)

func defaults(classes ...string) models.InterceptorBindingInfo {
	return models.InterceptorBindingInfo{EjbName: models.Wildcard, Interceptors: classes}
}

func class(classes ...string) models.InterceptorBindingInfo {
	return models.InterceptorBindingInfo{EjbName: "OrderBean", Interceptors: classes}
}

func method(name string, params []string, classes ...string) models.InterceptorBindingInfo {
	return models.InterceptorBindingInfo{
		EjbName:      "OrderBean",
		Method:       &models.NamedMethodInfo{MethodName: name, MethodParams: params},
		Interceptors: classes,
	}
}

func build(t *testing.T, bindings ...models.InterceptorBindingInfo) *Chains {
	t.Helper()
	log, _ := test.NewNullLogger()
	b, err := NewBuilder(bindings, declared, logrus.NewEntry(log))
	require.NoError(t, err)
	return b.Build(orderBean, []models.Method{work, workStr, idle})
}

func TestLevelAndType(t *testing.T) {
	annotatedClass := class("Annotated")
	annotatedClass.ClassName = beanClass
	annotatedMethod := method("work", []string{}, "Annotated")
	annotatedMethod.ClassName = beanClass

	excludeClass := class()
	excludeClass.ExcludeClassInterceptors = true
	excludeBoth := excludeClass
	excludeBoth.ExcludeDefaultInterceptors = true
	excludeOnMethod := method("work", nil)
	excludeOnMethod.ExcludeClassInterceptors = true
	ordered := class()
	ordered.InterceptorOrder = []string{"Class", "Default"}

	tests := []struct {
		name    string
		binding models.InterceptorBindingInfo
		level   Level
		typ     Type
	}{
		{"default", defaults("Default"), PackageLevel, AdditionOrLowerExclusion},
		{"class", class("Class"), ClassLevel, AdditionOrLowerExclusion},
		{"annotated class", annotatedClass, AnnotationClassLevel, AdditionOrLowerExclusion},
		{"overloaded", method("work", nil, "Method"), OverloadedMethodLevel, AdditionOrLowerExclusion},
		{"exact", method("work", []string{}, "Method"), ExactMethodLevel, AdditionOrLowerExclusion},
		{"annotated method", annotatedMethod, AnnotationMethodLevel, AdditionOrLowerExclusion},
		{"exclude class", excludeClass, ClassLevel, SameLevelExclusion},
		{"exclude class and default", excludeBoth, ClassLevel, SameAndLowerExclusion},
		{"exclude class on method", excludeOnMethod, OverloadedMethodLevel, AdditionOrLowerExclusion},
		{"explicit order", ordered, ClassLevel, ExplicitOrdering},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level := LevelOf(tt.binding)
			assert.Equal(t, tt.level, level)
			assert.Equal(t, tt.typ, TypeOf(level, tt.binding))
		})
	}
}

func TestChainOrder(t *testing.T) {
	annotated := class("Annotated")
	annotated.ClassName = beanClass

	tests := []struct {
		name      string
		bindings  []models.InterceptorBindingInfo
		work      []string
		workStr   []string
		idle      []string
		callbacks []string
	}{
		{
			name:      "default then class then method",
			bindings:  []models.InterceptorBindingInfo{method("work", nil, "Method"), class("Class"), defaults("Default")},
			work:      []string{"Default", "Class", "Method"},
			workStr:   []string{"Default", "Class", "Method"},
			idle:      []string{"Default", "Class"},
			callbacks: []string{"Default", "Class"},
		},
		{
			name:      "overloaded before exact",
			bindings:  []models.InterceptorBindingInfo{method("work", []string{"java.lang.String"}, "Exact"), method("work", nil, "Method")},
			work:      []string{"Method"},
			workStr:   []string{"Method", "Exact"},
			idle:      []string{},
			callbacks: []string{},
		},
		{
			name:      "same level keeps declaration order",
			bindings:  []models.InterceptorBindingInfo{class("Class"), class("Class2")},
			work:      []string{"Class", "Class2"},
			workStr:   []string{"Class", "Class2"},
			idle:      []string{"Class", "Class2"},
			callbacks: []string{"Class", "Class2"},
		},
		{
			name:      "annotation class before descriptor class",
			bindings:  []models.InterceptorBindingInfo{annotated, class("Class"), defaults("Default")},
			work:      []string{"Default", "Annotated", "Class"},
			workStr:   []string{"Default", "Annotated", "Class"},
			idle:      []string{"Default", "Annotated", "Class"},
			callbacks: []string{"Default", "Annotated", "Class"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chains := build(t, tt.bindings...)
			assertChain(t, chains, work, tt.work)
			assertChain(t, chains, workStr, tt.workStr)
			assertChain(t, chains, idle, tt.idle)
			assert.Equal(t, tt.callbacks, chains.Callbacks())
		})
	}
}

func TestExclusions(t *testing.T) {
	t.Run("method excludes default", func(t *testing.T) {
		m := method("work", []string{}, "Method")
		m.ExcludeDefaultInterceptors = true
		chains := build(t, defaults("Default"), class("Class"), m)

		assertChain(t, chains, work, []string{"Class", "Method"})
		assertChain(t, chains, idle, []string{"Default", "Class"})
	})

	t.Run("method excludes class", func(t *testing.T) {
		m := method("work", nil, "Method")
		m.ExcludeClassInterceptors = true
		chains := build(t, defaults("Default"), class("Class"), m)

		assertChain(t, chains, work, []string{"Default", "Method"})
		assertChain(t, chains, workStr, []string{"Default", "Method"})
		assertChain(t, chains, idle, []string{"Default", "Class"})
	})

	t.Run("class excludes its own level", func(t *testing.T) {
		exclude := class()
		exclude.ExcludeClassInterceptors = true
		chains := build(t, defaults("Default"), class("Class"), exclude)

		assertChain(t, chains, idle, []string{"Default"})
		assert.Equal(t, []string{"Default"}, chains.Callbacks())
	})

	t.Run("class excludes default only", func(t *testing.T) {
		exclude := class()
		exclude.ExcludeDefaultInterceptors = true
		chains := build(t, defaults("Default"), class("Class"), exclude)

		assertChain(t, chains, work, []string{"Class"})
		assertChain(t, chains, idle, []string{"Class"})
		assert.Equal(t, []string{"Class"}, chains.Callbacks())
	})

	t.Run("class excludes same and lower", func(t *testing.T) {
		exclude := class()
		exclude.ExcludeClassInterceptors = true
		exclude.ExcludeDefaultInterceptors = true
		chains := build(t, defaults("Default"), class("Class"), exclude, method("work", nil, "Method"))

		assertChain(t, chains, work, []string{"Method"})
		assertChain(t, chains, idle, []string{})
		assert.Empty(t, chains.Callbacks())
	})
}

func TestExplicitOrdering(t *testing.T) {
	t.Run("method order replaces everything", func(t *testing.T) {
		ordered := method("work", []string{}, "")
		ordered.Interceptors = nil
		ordered.InterceptorOrder = []string{"Method", "Class", "Default"}
		chains := build(t, defaults("Default"), class("Class"), method("work", nil, "Exact"), ordered)

		assertChain(t, chains, work, []string{"Method", "Class", "Default"})
		assertChain(t, chains, workStr, []string{"Default", "Class", "Exact"})
	})

	t.Run("class order ends the walk", func(t *testing.T) {
		ordered := class()
		ordered.InterceptorOrder = []string{"Class", "Default"}
		chains := build(t, defaults("Default"), class("Class"), ordered, method("work", nil, "Method"))

		assertChain(t, chains, work, []string{"Class", "Default", "Method"})
		assertChain(t, chains, idle, []string{"Class", "Default"})
		assert.Equal(t, []string{"Class", "Default"}, chains.Callbacks())
	})
}

func TestBeanMatching(t *testing.T) {
	other := class("Class2")
	other.EjbName = "InvoiceBean"

	chains := build(t, other, class("Class"))
	assertChain(t, chains, idle, []string{"Class"})

	log, _ := test.NewNullLogger()
	b, err := NewBuilder([]models.InterceptorBindingInfo{class("Class")}, declared, logrus.NewEntry(log))
	require.NoError(t, err)
	renamed := models.BeanInfo{EjbName: "orders", ClassName: "org.acme.OrderBean"}
	got := b.Build(renamed, []models.Method{idle})
	assertChain(t, got, idle, []string{"Class"})
}

func TestUndeclaredInterceptor(t *testing.T) {
	bindings := []models.InterceptorBindingInfo{class("Class", "Missing")}

	t.Run("strict", func(t *testing.T) {
		log, _ := test.NewNullLogger()
		_, err := NewBuilder(bindings, declared, logrus.NewEntry(log))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Missing")

		var cfg *errors.ConfigurationError
		require.ErrorAs(t, err, &cfg)
		assert.Equal(t, errors.ConfigurationErrorCode, cfg.ErrorCode())
	})

	t.Run("lenient", func(t *testing.T) {
		log, hook := test.NewNullLogger()
		b, err := NewBuilder(bindings, declared, logrus.NewEntry(log), Lenient())
		require.NoError(t, err)

		require.NotNil(t, hook.LastEntry())
		assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
		assert.Equal(t, "Missing", hook.LastEntry().Data["interceptor"])

		chains := b.Build(orderBean, []models.Method{idle})
		assertChain(t, chains, idle, []string{"Class"})
	})
}

func TestChainsKeys(t *testing.T) {
	chains := build(t, class("Class"))
	assert.Equal(t, []models.MethodKey{work.Key(), workStr.Key(), idle.Key()}, chains.Keys())

	_, ok := chains.Get(models.MethodKey{Class: beanClass, Name: "missing"})
	assert.False(t, ok)
}

func assertChain(t *testing.T, chains *Chains, m models.Method, want []string) {
	t.Helper()
	got, ok := chains.Get(m.Key())
	require.True(t, ok, "no chain for %s", m.Key())
	assert.Equal(t, want, got, m.Key().String())
}
