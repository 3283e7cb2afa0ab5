package resolver

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/toyz/ejbmeta/internal/annotations"
	"github.com/toyz/ejbmeta/internal/models"
	"github.com/toyz/ejbmeta/internal/normalizer"
)

const (
	colorClass   = "org.acme.Color"
	redClass     = "org.acme.Red"
	crimsonClass = "org.acme.Crimson"
	scarletClass = "org.acme.Scarlet"
)

var (
	none    = []string{}
	object  = []string{"java.lang.Object"}
	str     = []string{"java.lang.String"}
	boolean = []string{"java.lang.Boolean"}
	integer = []string{"java.lang.Integer"}
)

func decl(name string, params []string, annotations ...string) models.MethodDecl {
	return models.MethodDecl{Name: name, Params: params, Annotations: annotations}
}

func key(class, name string, params []string) models.MethodKey {
	return models.Method{DeclaringClass: class, Name: name, Params: params}.Key()
}

func bean(name, class string) models.BeanInfo {
	return models.BeanInfo{EjbName: name, ClassName: class, Type: models.Stateful}
}

// transactionJar mirrors the classic Color/Red/Crimson/Scarlet hierarchy used
// to pin down annotation and descriptor precedence.
func transactionJar() *models.EjbJarInfo {
	return &models.EjbJarInfo{
		ModuleID: "colors",
		Beans: []models.BeanInfo{
			{
				EjbName: "Color", ClassName: colorClass, Type: models.Stateful,
				Views: []models.ViewInfo{{Intf: models.IntfLocal, Interface: "org.acme.ColorLocal", Methods: []models.Signature{
					{Name: "color", Params: none},
					{Name: "color", Params: object},
				}}},
			},
			bean("Red", redClass),
			bean("Crimson", crimsonClass),
			bean("Scarlet", scarletClass),
		},
		Classes: []models.ClassInfo{
			{
				Name:        colorClass,
				Annotations: []string{"@TransactionAttribute(TransactionAttributeType.SUPPORTS)"},
				Methods: []models.MethodDecl{
					decl("color", none, "@TransactionAttribute(TransactionAttributeType.NEVER)"),
					decl("color", object, "@TransactionAttribute(TransactionAttributeType.REQUIRES_NEW)"),
					decl("color", str),
					decl("color", boolean),
					decl("color", integer),
				},
			},
			{
				Name:  redClass,
				Super: colorClass,
				Methods: []models.MethodDecl{
					decl("color", object),
					decl("red", none, "@TransactionAttribute(TransactionAttributeType.REQUIRES_NEW)"),
					decl("red", object),
					decl("red", str),
				},
			},
			{
				Name:        crimsonClass,
				Super:       redClass,
				Annotations: []string{"@TransactionAttribute(TransactionAttributeType.NOT_SUPPORTED)"},
				Methods: []models.MethodDecl{
					decl("color", none),
					decl("color", str),
					decl("crimson", none, "@TransactionAttribute(TransactionAttributeType.REQUIRES_NEW)"),
					decl("crimson", str),
				},
			},
			{
				Name:        scarletClass,
				Super:       redClass,
				Annotations: []string{"@TransactionAttribute(TransactionAttributeType.NOT_SUPPORTED)"},
				Methods: []models.MethodDecl{
					decl("scarlet", none, "@TransactionAttribute(TransactionAttributeType.REQUIRES_NEW)"),
					decl("scarlet", str),
				},
			},
		},
		MethodTransactions: []models.MethodTransactionInfo{
			{TransAttribute: models.Required, Methods: []models.MethodInfo{{EjbName: "Crimson", ClassName: "*", MethodName: "*"}}},
			{TransAttribute: models.RequiresNew, Methods: []models.MethodInfo{{EjbName: "Crimson", ClassName: "*", MethodName: "create"}}},
			{TransAttribute: models.Supports, Methods: []models.MethodInfo{{EjbName: "Crimson", ClassName: "*", MethodName: "create", MethodIntf: models.IntfHome}}},
			{TransAttribute: models.RequiresNew, Methods: []models.MethodInfo{{EjbName: "Crimson", ClassName: "*", MethodName: "remove"}}},
			{TransAttribute: models.RequiresNew, Methods: []models.MethodInfo{{EjbName: "Scarlet", ClassName: colorClass, MethodName: "*"}}},
			{TransAttribute: models.Never, Methods: []models.MethodInfo{{EjbName: "Scarlet", ClassName: redClass, MethodName: "red"}}},
			{TransAttribute: models.Required, Methods: []models.MethodInfo{{EjbName: "Scarlet", MethodName: "scarlet", MethodParams: none}}},
		},
	}
}

// timeoutJar declares access timeouts on the same shape of hierarchy
func timeoutJar() *models.EjbJarInfo {
	return &models.EjbJarInfo{
		ModuleID: "timeouts",
		Beans:    []models.BeanInfo{bean("Color", colorClass), bean("Red", redClass), bean("Crimson", crimsonClass)},
		Classes: []models.ClassInfo{
			{
				Name:        colorClass,
				Annotations: []string{"@Lock(LockType.READ)", "@AccessTimeout(value = 1, unit = TimeUnit.HOURS)"},
				Methods: []models.MethodDecl{
					decl("color", none),
					decl("color", object),
					decl("color", str),
					decl("color", boolean, "@AccessTimeout(value = 1, unit = TimeUnit.SECONDS)", "@Lock(LockType.WRITE)"),
				},
			},
			{
				Name:  redClass,
				Super: colorClass,
				Methods: []models.MethodDecl{
					decl("color", object),
					decl("red", none, "@AccessTimeout(value = 1, unit = TimeUnit.MINUTES)"),
				},
			},
			{
				Name:        crimsonClass,
				Super:       redClass,
				Annotations: []string{"@AccessTimeout(value = 2, unit = TimeUnit.HOURS)"},
				Methods: []models.MethodDecl{
					decl("crimson", none),
				},
			},
		},
	}
}

// inheritedTimeoutJar overrides annotated methods without re-annotating them,
// so the override falls back to its own class-level timeout.
func inheritedTimeoutJar() *models.EjbJarInfo {
	return &models.EjbJarInfo{
		ModuleID: "inherited",
		Beans:    []models.BeanInfo{bean("Crimson", crimsonClass)},
		Classes: []models.ClassInfo{
			{
				Name:        colorClass,
				Annotations: []string{"@AccessTimeout(value = 1, unit = TimeUnit.SECONDS)"},
				Methods: []models.MethodDecl{
					decl("color", none, "@AccessTimeout(value = 2, unit = TimeUnit.SECONDS)"),
					decl("color", object, "@AccessTimeout(value = 3, unit = TimeUnit.SECONDS)"),
					decl("color", str),
					decl("color", boolean),
				},
			},
			{
				Name:  redClass,
				Super: colorClass,
				Methods: []models.MethodDecl{
					decl("color", object),
					decl("red", none, "@AccessTimeout(value = 1, unit = TimeUnit.MINUTES)"),
				},
			},
			{
				Name:        crimsonClass,
				Super:       redClass,
				Annotations: []string{"@AccessTimeout(value = 1, unit = TimeUnit.HOURS)"},
				Methods: []models.MethodDecl{
					decl("color", none),
					decl("color", str),
					decl("crimson", none, "@AccessTimeout(value = 2, unit = TimeUnit.HOURS)"),
				},
			},
		},
	}
}

func normalize(t *testing.T, jar *models.EjbJarInfo) *normalizer.Rules {
	t.Helper()
	parser, err := annotations.NewParser(annotations.NewBuiltinRegistry(), 0)
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	rules, err := normalizer.New(normalizer.NewScanner(parser), logrus.NewEntry(log)).Normalize(jar)
	require.NoError(t, err)
	return rules
}

func inventory(t *testing.T, jar *models.EjbJarInfo, name string) (models.BeanInfo, []models.Method) {
	t.Helper()
	for _, b := range jar.Beans {
		if b.EjbName == name {
			methods, err := Inventory(jar, b)
			require.NoError(t, err)
			return b, methods
		}
	}
	t.Fatalf("bean %s not found", name)
	return models.BeanInfo{}, nil
}
