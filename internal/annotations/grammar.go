package annotations

import (
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// annotationAST is the participle grammar of a single annotation:
//
//	@Name
//	@pkg.Name(value)
//	@Name(key = value, key = {v1, v2})
type annotationAST struct {
	Pos  lexer.Position
	Name string   `parser:"'@' @Ident ( @'.' @Ident )*"`
	Args *argsAST `parser:"( '(' @@? ')' )?"`
}

type argsAST struct {
	Named []*namedAST `parser:"  @@ ( ',' @@ )*"`
	Value *valueAST   `parser:"| @@"`
}

type namedAST struct {
	Key   string    `parser:"@Ident '='"`
	Value *valueAST `parser:"@@"`
}

type valueAST struct {
	String *string  `parser:"  @String"`
	Int    *string  `parser:"| @Int"`
	List   *listAST `parser:"| @@"`
	Ref    *string  `parser:"| @Ident ( @'.' @Ident )*"`
}

type listAST struct {
	Open  string      `parser:"@'{'"`
	Items []*valueAST `parser:"( @@ ( ',' @@ )* )? '}'"`
}

var annotationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Int", Pattern: `-?[0-9]+[lL]?`},
	{Name: "Ident", Pattern: `[a-zA-Z_$][a-zA-Z0-9_$]*`},
	{Name: "Punct", Pattern: `[@(){},=.]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

func buildGrammar() *participle.Parser[annotationAST] {
	return participle.MustBuild[annotationAST](
		participle.Lexer(annotationLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
}

// raw converts a value node to a Go value: string, int64, bool or []string.
// Class literals lose their ".class" suffix.
func (v *valueAST) raw() (interface{}, error) {
	switch {
	case v.String != nil:
		s, err := strconv.Unquote(*v.String)
		if err != nil {
			return nil, err
		}
		return s, nil
	case v.Int != nil:
		return strconv.ParseInt(strings.TrimRight(*v.Int, "lL"), 10, 64)
	case v.List != nil:
		items := make([]string, 0, len(v.List.Items))
		for _, item := range v.List.Items {
			r, err := item.raw()
			if err != nil {
				return nil, err
			}
			items = append(items, toString(r))
		}
		return items, nil
	case v.Ref != nil:
		ref := strings.TrimSuffix(*v.Ref, ".class")
		switch ref {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return ref, nil
	}
	return nil, nil
}

func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	case []string:
		return strings.Join(t, ",")
	}
	return ""
}
