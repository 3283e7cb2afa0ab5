package inspect

import "strings"

// PartType is the kind of a path segment
type PartType int

const (
	StaticPart PartType = iota
	ParameterPart
	WildcardPart
)

// PathPart is one parsed segment of a Path
type PathPart struct {
	Type  PartType
	Value string // literal text or parameter name
}

// Path is a route in "/deployments/{app}" form. "{*}" matches the rest of
// the path.
type Path string

// Parts splits the path into static text and parameters. An unterminated
// brace is kept as static text.
func (p Path) Parts() []PathPart {
	s := string(p)
	var parts []PathPart
	for len(s) > 0 {
		open := strings.IndexByte(s, '{')
		if open < 0 {
			parts = append(parts, PathPart{Type: StaticPart, Value: s})
			break
		}
		end := strings.IndexByte(s[open:], '}')
		if end < 0 {
			parts = append(parts, PathPart{Type: StaticPart, Value: s})
			break
		}
		if open > 0 {
			parts = append(parts, PathPart{Type: StaticPart, Value: s[:open]})
		}
		name := s[open+1 : open+end]
		if name == "*" {
			parts = append(parts, PathPart{Type: WildcardPart, Value: name})
		} else {
			parts = append(parts, PathPart{Type: ParameterPart, Value: name})
		}
		s = s[open+end+1:]
	}
	return parts
}

// Params returns the parameter names in order
func (p Path) Params() []string {
	var names []string
	for _, part := range p.Parts() {
		if part.Type == ParameterPart {
			names = append(names, part.Value)
		}
	}
	return names
}

// Format renders the path in the colon syntax shared by gin, echo and fiber,
// writing wildcard for a "{*}" segment.
func (p Path) Format(wildcard string) string {
	var b strings.Builder
	for _, part := range p.Parts() {
		switch part.Type {
		case ParameterPart:
			b.WriteString(":" + part.Value)
		case WildcardPart:
			b.WriteString(wildcard)
		default:
			b.WriteString(part.Value)
		}
	}
	return b.String()
}
