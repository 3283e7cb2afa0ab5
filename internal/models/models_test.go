package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransAttribute(t *testing.T) {
	tests := []struct {
		in   string
		want TransAttribute
	}{
		{"Required", Required},
		{"REQUIRES_NEW", RequiresNew},
		{"TransactionAttributeType.NOT_SUPPORTED", NotSupported},
		{"supports", Supports},
		{"Never", Never},
		{"MANDATORY", Mandatory},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTransAttribute(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseTransAttribute("Sometimes")
	assert.Error(t, err)
}

func TestParseLockType(t *testing.T) {
	l, err := ParseLockType("LockType.READ")
	require.NoError(t, err)
	assert.Equal(t, ReadLock, l)

	l, err = ParseLockType("write")
	require.NoError(t, err)
	assert.Equal(t, WriteLock, l)

	_, err = ParseLockType("shared")
	assert.Error(t, err)
}

func TestTimeout(t *testing.T) {
	assert.Equal(t, time.Hour, Timeout{Time: 1, Unit: Hours}.Duration())
	assert.Equal(t, 48*time.Hour, Timeout{Time: 2, Unit: Days}.Duration())
	assert.Equal(t, time.Duration(0), Timeout{Time: 0, Unit: Seconds}.Duration())
	assert.Less(t, Timeout{Time: -1, Unit: Seconds}.Duration(), time.Duration(0))

	assert.NoError(t, Timeout{Time: -1, Unit: Seconds}.Validate())
	assert.Error(t, Timeout{Time: -2, Unit: Seconds}.Validate())
	assert.Error(t, Timeout{Time: 1, Unit: "FORTNIGHTS"}.Validate())
	assert.Error(t, Timeout{Time: 1_000_000, Unit: Days}.Validate())
	assert.NoError(t, Timeout{Time: 106_751, Unit: Days}.Validate())
	assert.NoError(t, Timeout{Time: math.MaxInt64, Unit: Nanoseconds}.Validate())
	assert.Equal(t, "1 HOURS", Timeout{Time: 1, Unit: Hours}.String())
}

func TestMethodInfoString(t *testing.T) {
	mi := MethodInfo{EjbName: "Color", MethodName: "color", MethodParams: []string{"java.lang.String"}}
	assert.Equal(t, "Color : * : * : color(java.lang.String)", mi.String())

	mi = MethodInfo{EjbName: "*", MethodName: "*"}
	assert.Equal(t, "* : * : * : *(*)", mi.String())
	assert.False(t, mi.HasParams())
	assert.True(t, MethodInfo{MethodName: "m", MethodParams: []string{}}.HasParams())
}

func TestMethodKey(t *testing.T) {
	m := Method{DeclaringClass: "org.acme.Red", Name: "red", Params: []string{"java.lang.Object", "int[]"}}
	key := m.Key()
	assert.Equal(t, MethodKey{Class: "org.acme.Red", Name: "red", Params: "java.lang.Object,int[]"}, key)
	assert.Equal(t, "org.acme.Red.red(java.lang.Object,int[])", key.String())

	noArgs := Method{DeclaringClass: "org.acme.Red", Name: "red"}
	assert.NotEqual(t, key, noArgs.Key())
}

func TestSimpleName(t *testing.T) {
	assert.Equal(t, "Crimson", SimpleName("org.acme.Crimson"))
	assert.Equal(t, "Inner", SimpleName("org.acme.Outer$Inner"))
	assert.Equal(t, "Plain", SimpleName("Plain"))
}

func TestPermissionString(t *testing.T) {
	assert.Equal(t, "Unchecked", Permission{Unchecked: true}.String())
	assert.Equal(t, "Excluded", Permission{Excluded: true}.String())
	assert.Equal(t, "admin, user", Permission{Roles: []string{"admin", "user"}}.String())
}

func TestHierarchy(t *testing.T) {
	jar := &EjbJarInfo{Classes: []ClassInfo{
		{Name: "Crimson", Super: "Red"},
		{Name: "Red", Super: "Color"},
		{Name: "Color", Super: ObjectClass},
		{Name: "Loop", Super: "Loop"},
		{Name: "Orphan", Super: "Missing"},
	}}

	chain, err := jar.Hierarchy("Crimson")
	require.NoError(t, err)
	var names []string
	for _, c := range chain {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Crimson", "Red", "Color"}, names)

	_, err = jar.Hierarchy("Loop")
	assert.ErrorContains(t, err, "inherits from itself")

	_, err = jar.Hierarchy("Orphan")
	assert.ErrorContains(t, err, "class Missing is not declared")
}
