package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/ejbmeta/internal/errors"
	"github.com/toyz/ejbmeta/internal/models"
)

func res(id string, props map[string]string, dependsOn ...string) models.ResourceInfo {
	return models.ResourceInfo{ID: id, Properties: props, DependsOn: dependsOn}
}

func ids(resources []models.ResourceInfo) []string {
	out := make([]string, 0, len(resources))
	for _, r := range resources {
		out = append(out, r.ID)
	}
	return out
}

func TestSort(t *testing.T) {
	tests := []struct {
		name      string
		resources []models.ResourceInfo
		want      []string
	}{
		{
			name:      "no references keeps input order",
			resources: []models.ResourceInfo{res("c", nil), res("a", nil), res("b", nil)},
			want:      []string{"c", "a", "b"},
		},
		{
			name: "property reference",
			resources: []models.ResourceInfo{
				res("pool", map[string]string{"DataSource": "db"}),
				res("db", map[string]string{"JdbcUrl": "jdbc:hsqldb:mem:db"}),
			},
			want: []string{"db", "pool"},
		},
		{
			name: "marked reference",
			resources: []models.ResourceInfo{
				res("mdb", map[string]string{"ResourceAdapter": "@ra"}),
				res("queue", map[string]string{"Destination": "$ra"}),
				res("ra", nil),
			},
			want: []string{"ra", "mdb", "queue"},
		},
		{
			name: "comma and whitespace lists",
			resources: []models.ResourceInfo{
				res("router", map[string]string{"Targets": "east, west"}),
				res("east", nil),
				res("balancer", map[string]string{"Members": "west east"}),
				res("west", nil),
			},
			want: []string{"east", "west", "router", "balancer"},
		},
		{
			name: "depends on",
			resources: []models.ResourceInfo{
				res("cache", nil, "db"),
				res("db", nil),
			},
			want: []string{"db", "cache"},
		},
		{
			name: "self reference ignored",
			resources: []models.ResourceInfo{
				res("db", map[string]string{"ServiceId": "db"}),
			},
			want: []string{"db"},
		},
		{
			name: "chain",
			resources: []models.ResourceInfo{
				res("a", map[string]string{"next": "b"}),
				res("b", map[string]string{"next": "c"}),
				res("c", nil),
				res("d", nil),
			},
			want: []string{"c", "b", "a", "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sort(tt.resources)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSortDoesNotModifyInput(t *testing.T) {
	in := []models.ResourceInfo{res("pool", map[string]string{"DataSource": "db"}), res("db", nil)}
	_, err := Sort(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"pool", "db"}, ids(in))
}

func TestSortWithPrefix(t *testing.T) {
	in := []models.ResourceInfo{
		res("app/pool", map[string]string{"DataSource": "jdbc/db"}),
		res("app/jdbc/db", nil),
	}
	got, err := Sort(in, WithPrefix("app/"))
	require.NoError(t, err)
	assert.Equal(t, []string{"app/jdbc/db", "app/pool"}, ids(got))
}

func TestSortCycle(t *testing.T) {
	in := []models.ResourceInfo{
		res("free", nil),
		res("a", map[string]string{"next": "b"}),
		res("b", nil, "c"),
		res("c", map[string]string{"back": "a"}),
	}

	_, err := Sort(in)
	require.Error(t, err)

	var dep *errors.DependencyError
	require.ErrorAs(t, err, &dep)
	assert.Equal(t, []string{"a", "b", "c", "a"}, dep.Cycle)
	assert.Contains(t, err.Error(), "a -> b -> c -> a")
}

func TestSortErrors(t *testing.T) {
	t.Run("unknown depends on", func(t *testing.T) {
		_, err := Sort([]models.ResourceInfo{res("a", nil, "missing")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing")
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := Sort([]models.ResourceInfo{res("a", nil), res("a", nil)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "more than once")
	})

	t.Run("unknown property value is not a reference", func(t *testing.T) {
		got, err := Sort([]models.ResourceInfo{res("a", map[string]string{"url": "http://x"})})
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, ids(got))
	})
}

func TestReferences(t *testing.T) {
	known := []models.ResourceInfo{res("db", nil), res("cache", nil), res("log", nil), res("pool", nil)}
	r := res("pool", map[string]string{"b": "db", "a": "cache, db"}, "log")
	assert.Equal(t, []string{"db", "cache", "log"}, References(r, known))
	assert.Empty(t, References(res("db", nil), known))

	prefixed := []models.ResourceInfo{res("app/jdbc/db", nil), res("app/pool", nil)}
	pool := res("app/pool", map[string]string{"DataSource": "jdbc/db"})
	assert.Equal(t, []string{"app/jdbc/db"}, References(pool, prefixed, WithPrefix("app/")))
	assert.Empty(t, References(pool, prefixed))
}
