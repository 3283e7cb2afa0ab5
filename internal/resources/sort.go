// Package resources orders resource definitions so that every resource is
// created after the resources it references.
package resources

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/toyz/ejbmeta/internal/errors"
	"github.com/toyz/ejbmeta/internal/models"
)

// Option configures Sort
type Option func(*sorter)

// WithPrefix strips prefix from resource ids before they are compared with
// property values, so "app/jdbc/db" is referenced as "jdbc/db".
func WithPrefix(prefix string) Option {
	return func(s *sorter) { s.prefix = prefix }
}

type sorter struct {
	prefix string
	names  []string
	index  map[string]int
}

// Sort returns the resources in creation order. A resource references
// another when one of its property values names the other's id, either alone
// (optionally marked with @ or $) or inside a comma or whitespace separated
// list, or when it lists the id in DependsOn. Resources with no ordering
// constraint keep their input order. The input slice is not modified.
func Sort(resources []models.ResourceInfo, opts ...Option) ([]models.ResourceInfo, error) {
	s := &sorter{index: make(map[string]int, len(resources))}
	for _, opt := range opts {
		opt(s)
	}

	for i, r := range resources {
		name := s.name(r)
		if _, dup := s.index[name]; dup {
			return nil, errors.NewDependencyError(name, "resource id is declared more than once")
		}
		s.names = append(s.names, name)
		s.index[name] = i
	}

	deps := make([][]int, len(resources))
	for i, r := range resources {
		refs, err := s.references(r)
		if err != nil {
			return nil, err
		}
		deps[i] = refs
	}

	placed := make([]bool, len(resources))
	ordered := make([]models.ResourceInfo, 0, len(resources))
	for len(ordered) < len(resources) {
		next := -1
		for i := range resources {
			if !placed[i] && all(deps[i], placed) {
				next = i
				break
			}
		}
		if next < 0 {
			return nil, errors.NewCycleError(s.cycle(deps, placed))
		}
		placed[next] = true
		ordered = append(ordered, resources[next])
	}
	return ordered, nil
}

// References returns the ids of the known resources r depends on, in a
// stable order. Options apply as they do for Sort.
func References(r models.ResourceInfo, known []models.ResourceInfo, opts ...Option) []string {
	s := &sorter{index: make(map[string]int, len(known))}
	for _, opt := range opts {
		opt(s)
	}
	for i, k := range known {
		name := s.name(k)
		s.names = append(s.names, name)
		s.index[name] = i
	}
	refs, _ := s.references(r)
	out := make([]string, 0, len(refs))
	for _, i := range refs {
		out = append(out, known[i].ID)
	}
	return out
}

func (s *sorter) name(r models.ResourceInfo) string {
	if s.prefix != "" && strings.HasPrefix(r.ID, s.prefix) {
		return strings.TrimPrefix(r.ID, s.prefix)
	}
	return r.ID
}

// references resolves property values and DependsOn to resource indexes
func (s *sorter) references(r models.ResourceInfo) ([]int, error) {
	self := s.name(r)
	seen := make(map[int]bool)
	var refs []int

	add := func(id string) bool {
		i, ok := s.index[id]
		if !ok || id == self {
			return ok
		}
		if !seen[i] {
			seen[i] = true
			refs = append(refs, i)
		}
		return true
	}

	keys := make([]string, 0, len(r.Properties))
	for k := range r.Properties {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		fields := strings.FieldsFunc(r.Properties[k], func(c rune) bool {
			return c == ',' || unicode.IsSpace(c)
		})
		if len(fields) == 1 {
			value := fields[0]
			if len(value) > 1 && (value[0] == '@' || value[0] == '$') {
				value = value[1:]
			}
			add(value)
			continue
		}
		for _, field := range fields {
			add(field)
		}
	}

	for _, dep := range r.DependsOn {
		dep = strings.TrimSpace(dep)
		if dep == "" {
			continue
		}
		if !add(dep) {
			return nil, errors.NewDependencyError(self, fmt.Sprintf("depends on unknown resource %s", dep))
		}
	}

	slices.Sort(refs)
	return refs, nil
}

// cycle follows unplaced dependencies until a resource repeats
func (s *sorter) cycle(deps [][]int, placed []bool) []string {
	start := slices.Index(placed, false)
	var path []string
	visited := make(map[int]int)
	for at := start; ; {
		if pos, ok := visited[at]; ok {
			return append(path[pos:], s.names[at])
		}
		visited[at] = len(path)
		path = append(path, s.names[at])
		for _, d := range deps[at] {
			if !placed[d] {
				at = d
				break
			}
		}
	}
}

func all(indexes []int, placed []bool) bool {
	for _, i := range indexes {
		if !placed[i] {
			return false
		}
	}
	return true
}
