package methodinfo

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/ejbmeta/internal/errors"
	"github.com/toyz/ejbmeta/internal/models"
)

// signatureAST is the grammar of a descriptor method reference:
//
//	*
//	name
//	name()
//	name(java.lang.String, int[], Object...)
type signatureAST struct {
	Name   string     `parser:"( @Ident | @'*' )"`
	Params *paramsAST `parser:"@@?"`
}

type paramsAST struct {
	Open  string     `parser:"@'('"`
	Types []*typeAST `parser:"( @@ ( ',' @@ )* )? ')'"`
}

type typeAST struct {
	Name    string   `parser:"@Ident ( @'.' @Ident )*"`
	Dims    []string `parser:"( @'[' @']' )*"`
	Varargs string   `parser:"( @'...' )?"`
}

func (t *typeAST) String() string {
	return t.Name + strings.Join(t.Dims, "") + t.Varargs
}

var signatureParser = participle.MustBuild[signatureAST](
	participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Ident", Pattern: `[a-zA-Z_$][a-zA-Z0-9_$]*`},
		{Name: "Punct", Pattern: `\.\.\.|[*().,\[\]]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})),
	participle.Elide("Whitespace"),
)

// ParseSignature parses a method reference. A bare name leaves the
// parameters nil (every overload); "name()" yields an empty list.
func ParseSignature(text string) (models.NamedMethodInfo, error) {
	ast, err := signatureParser.ParseString("", text)
	if err != nil {
		serr := errors.NewSyntaxError(fmt.Sprintf("invalid method signature %q", text), text, 0)
		serr.WithCause(err)
		return models.NamedMethodInfo{}, serr
	}

	nm := models.NamedMethodInfo{MethodName: ast.Name}
	if ast.Params != nil {
		nm.MethodParams = make([]string, 0, len(ast.Params.Types))
		for _, t := range ast.Params.Types {
			nm.MethodParams = append(nm.MethodParams, t.String())
		}
	}
	return nm, nil
}

// FormatSignature renders a method reference in the form ParseSignature reads
func FormatSignature(name string, params []string) string {
	if params == nil {
		return name
	}
	return name + "(" + strings.Join(params, ", ") + ")"
}
