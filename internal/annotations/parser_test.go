package annotations

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/ejbmeta/internal/errors"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser(NewBuiltinRegistry(), 16)
	require.NoError(t, err)
	return p
}

func TestParseAnnotations(t *testing.T) {
	onClass := SourceLocation{Class: "org.acme.Color"}
	onMethod := SourceLocation{Class: "org.acme.Color", Method: "color"}

	tests := []struct {
		name     string
		text     string
		loc      SourceLocation
		wantType AnnotationType
		check    func(t *testing.T, a *ParsedAnnotation)
	}{
		{
			name:     "transaction attribute with qualified enum",
			text:     "@TransactionAttribute(TransactionAttributeType.REQUIRES_NEW)",
			loc:      onMethod,
			wantType: TransactionAttributeAnnotation,
			check: func(t *testing.T, a *ParsedAnnotation) {
				assert.Equal(t, "TransactionAttributeType.REQUIRES_NEW", a.GetString("value"))
			},
		},
		{
			name:     "transaction attribute defaults to REQUIRED",
			text:     "@javax.ejb.TransactionAttribute",
			loc:      onClass,
			wantType: TransactionAttributeAnnotation,
			check: func(t *testing.T, a *ParsedAnnotation) {
				assert.Equal(t, "REQUIRED", a.GetString("value"))
				assert.Equal(t, "javax.ejb.TransactionAttribute", a.Name)
			},
		},
		{
			name:     "access timeout with named arguments",
			text:     "@AccessTimeout(value = 1, unit = TimeUnit.HOURS)",
			loc:      onClass,
			wantType: AccessTimeoutAnnotation,
			check: func(t *testing.T, a *ParsedAnnotation) {
				assert.Equal(t, int64(1), a.GetInt("value"))
				assert.Equal(t, "TimeUnit.HOURS", a.GetString("unit"))
			},
		},
		{
			name:     "access timeout defaults to milliseconds",
			text:     "@AccessTimeout(-1)",
			loc:      onMethod,
			wantType: AccessTimeoutAnnotation,
			check: func(t *testing.T, a *ParsedAnnotation) {
				assert.Equal(t, int64(-1), a.GetInt("value"))
				assert.Equal(t, "MILLISECONDS", a.GetString("unit"))
			},
		},
		{
			name:     "interceptor class list",
			text:     "@Interceptors({org.acme.Audit.class, Metrics.class})",
			loc:      onClass,
			wantType: InterceptorsAnnotation,
			check: func(t *testing.T, a *ParsedAnnotation) {
				assert.Equal(t, []string{"org.acme.Audit", "Metrics"}, a.GetStringSlice("value"))
			},
		},
		{
			name:     "single interceptor becomes a list",
			text:     "@Interceptors(Audit.class)",
			loc:      onMethod,
			wantType: InterceptorsAnnotation,
			check: func(t *testing.T, a *ParsedAnnotation) {
				assert.Equal(t, []string{"Audit"}, a.GetStringSlice("value"))
			},
		},
		{
			name:     "roles",
			text:     `@RolesAllowed({"admin", "user"})`,
			loc:      onMethod,
			wantType: RolesAllowedAnnotation,
			check: func(t *testing.T, a *ParsedAnnotation) {
				assert.Equal(t, []string{"admin", "user"}, a.GetStringSlice("value"))
			},
		},
		{
			name:     "marker",
			text:     "@ExcludeClassInterceptors",
			loc:      onMethod,
			wantType: ExcludeClassInterceptorsAnnotation,
		},
		{
			name:     "foreign annotation is ignored",
			text:     `@Path("/colors")`,
			loc:      onClass,
			wantType: UnknownAnnotation,
			check: func(t *testing.T, a *ParsedAnnotation) {
				assert.Empty(t, a.Parameters)
			},
		},
	}

	p := newTestParser(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := p.Parse(tt.text, tt.loc)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, a.Type)
			assert.Equal(t, tt.loc, a.Location)
			if tt.check != nil {
				tt.check(t, a)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	p := newTestParser(t)
	loc := SourceLocation{Class: "org.acme.Red", Method: "red"}

	tests := []struct {
		name   string
		text   string
		loc    SourceLocation
		target error
	}{
		{"unterminated", "@Lock(LockType.READ", loc, errors.ErrSyntax},
		{"missing at sign", "Lock(READ)", loc, errors.ErrSyntax},
		{"bad enum", "@Lock(LockType.SHARED)", loc, errors.ErrConfiguration},
		{"unknown parameter", "@Lock(mode = READ)", loc, errors.ErrConfiguration},
		{"timeout below minus one", "@AccessTimeout(-2)", loc, errors.ErrConfiguration},
		{"timeout requires value", "@AccessTimeout(unit = TimeUnit.SECONDS)", loc, errors.ErrConfiguration},
		{"empty interceptor list", "@Interceptors({})", loc, errors.ErrConfiguration},
		{"method only annotation on class", "@ExcludeClassInterceptors", SourceLocation{Class: "org.acme.Red"}, errors.ErrConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(tt.text, tt.loc)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestParseUsesCache(t *testing.T) {
	p := newTestParser(t)

	first, err := p.Parse("@Lock(LockType.READ)", SourceLocation{Class: "A"})
	require.NoError(t, err)
	second, err := p.Parse("  @Lock(LockType.READ) ", SourceLocation{Class: "B", Method: "m"})
	require.NoError(t, err)

	assert.Equal(t, 1, p.cache.Len())
	assert.Equal(t, "A", first.Location.Class)
	assert.Equal(t, "B", second.Location.Class)
	assert.Equal(t, first.Parameters, second.Parameters)

	// a cached method-only annotation is still rejected on a class
	_, err = p.Parse("@ExcludeClassInterceptors", SourceLocation{Class: "A", Method: "m"})
	require.NoError(t, err)
	_, err = p.Parse("@ExcludeClassInterceptors", SourceLocation{Class: "A"})
	assert.Error(t, err)
}

func TestParseAll(t *testing.T) {
	p := newTestParser(t)
	got, err := p.ParseAll([]string{"@PermitAll", "@Lock(READ)"}, SourceLocation{Class: "A"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, PermitAllAnnotation, got[0].Type)
	assert.Equal(t, "READ", got[1].GetString("value"))

	_, err = p.ParseAll([]string{"@PermitAll", "@Lock("}, SourceLocation{Class: "A"})
	assert.Error(t, err)
}
