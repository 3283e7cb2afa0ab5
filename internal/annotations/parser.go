package annotations

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/toyz/ejbmeta/internal/errors"
)

// DefaultCacheSize bounds the number of distinct annotation texts kept parsed
const DefaultCacheSize = 512

// Parser turns annotation text into validated ParsedAnnotations.
// Parsed results are cached by text; a Parser is safe for concurrent use.
type Parser struct {
	parser   *participle.Parser[annotationAST]
	registry AnnotationRegistry
	cache    *lru.Cache[string, *ParsedAnnotation]
}

// NewParser creates a parser validating against registry. A cacheSize of zero
// or less uses DefaultCacheSize.
func NewParser(registry AnnotationRegistry, cacheSize int) (*Parser, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, *ParsedAnnotation](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create annotation cache: %w", err)
	}
	return &Parser{
		parser:   buildGrammar(),
		registry: registry,
		cache:    cache,
	}, nil
}

// Parse parses one annotation. Annotations that are not registered come back
// with Type UnknownAnnotation and no parameters; callers skip them.
func (p *Parser) Parse(text string, loc SourceLocation) (*ParsedAnnotation, error) {
	text = strings.TrimSpace(text)
	if cached, ok := p.cache.Get(text); ok {
		cp := *cached
		cp.Location = loc
		if cp.Type != UnknownAnnotation {
			schema, err := p.registry.GetSchema(cp.Type)
			if err != nil {
				return nil, err
			}
			if err := validateTarget(&cp, schema); err != nil {
				return nil, err
			}
		}
		return &cp, nil
	}

	ast, err := p.parser.ParseString(loc.String(), text)
	if err != nil {
		pos := 0
		if perr, ok := err.(participle.Error); ok {
			pos = perr.Position().Offset
		}
		serr := errors.NewSyntaxError(fmt.Sprintf("invalid annotation %q at %s", text, loc), text, pos)
		serr.WithCause(err)
		return nil, serr
	}

	parsed := &ParsedAnnotation{
		Name:       ast.Name,
		Parameters: make(map[string]interface{}),
		Location:   loc,
		Raw:        text,
	}

	annotationType, err := ParseAnnotationType(ast.Name)
	if err != nil || !p.registry.IsRegistered(annotationType) {
		parsed.Type = UnknownAnnotation
		p.cache.Add(text, parsed)
		return parsed, nil
	}
	parsed.Type = annotationType

	schema, err := p.registry.GetSchema(annotationType)
	if err != nil {
		return nil, err
	}
	if err := p.bindArguments(parsed, ast.Args, schema); err != nil {
		return nil, err
	}
	if err := validateAgainstSchema(parsed, schema); err != nil {
		return nil, err
	}
	if err := validateTarget(parsed, schema); err != nil {
		return nil, err
	}

	p.cache.Add(text, parsed)
	return parsed, nil
}

// ParseAll parses a list of annotations declared on the same element
func (p *Parser) ParseAll(texts []string, loc SourceLocation) ([]*ParsedAnnotation, error) {
	result := make([]*ParsedAnnotation, 0, len(texts))
	for _, text := range texts {
		parsed, err := p.Parse(text, loc)
		if err != nil {
			return nil, err
		}
		result = append(result, parsed)
	}
	return result, nil
}

// bindArguments assigns arguments to schema parameters, converting each to
// the declared parameter type. A single unnamed argument binds to "value".
func (p *Parser) bindArguments(parsed *ParsedAnnotation, args *argsAST, schema AnnotationSchema) error {
	if args != nil {
		named := args.Named
		if args.Value != nil {
			named = []*namedAST{{Key: "value", Value: args.Value}}
		}
		for _, arg := range named {
			spec, exists := schema.Parameters[arg.Key]
			if !exists {
				return invalidParameter(parsed, arg.Key, "unknown parameter")
			}
			raw, err := arg.Value.raw()
			if err != nil {
				return invalidParameter(parsed, arg.Key, err.Error())
			}
			value, err := convertParameterValue(raw, spec.Type)
			if err != nil {
				return invalidParameter(parsed, arg.Key, err.Error())
			}
			parsed.Parameters[arg.Key] = value
		}
	}

	for name, spec := range schema.Parameters {
		if _, ok := parsed.Parameters[name]; !ok && spec.DefaultValue != nil {
			parsed.Parameters[name] = spec.DefaultValue
		}
	}
	return nil
}

// convertParameterValue converts a raw grammar value to the parameter type
func convertParameterValue(raw interface{}, paramType ParameterType) (interface{}, error) {
	switch paramType {
	case IntType:
		if i, ok := raw.(int64); ok {
			return i, nil
		}
		return nil, fmt.Errorf("expected an integer, got %v", raw)
	case StringSliceType:
		switch v := raw.(type) {
		case []string:
			return v, nil
		case string:
			return []string{v}, nil
		}
		return nil, fmt.Errorf("expected a string or list, got %v", raw)
	default:
		if _, ok := raw.([]string); ok {
			return nil, fmt.Errorf("expected a single value, got a list")
		}
		return toString(raw), nil
	}
}

// validateAgainstSchema checks required parameters and runs parameter validators
func validateAgainstSchema(parsed *ParsedAnnotation, schema AnnotationSchema) error {
	for name, spec := range schema.Parameters {
		value, exists := parsed.Parameters[name]
		if !exists {
			if spec.Required {
				return invalidParameter(parsed, name, "missing required parameter")
			}
			continue
		}
		if spec.Validator != nil {
			if err := spec.Validator(value); err != nil {
				return invalidParameter(parsed, name, err.Error())
			}
		}
	}
	return nil
}

// validateTarget checks the annotation is declared on an element its schema allows
func validateTarget(parsed *ParsedAnnotation, schema AnnotationSchema) error {
	if schema.Target == 0 {
		return nil
	}
	onMethod := parsed.Location.Method != ""
	if onMethod && schema.Target&TargetMethod == 0 {
		return invalidParameter(parsed, "", "annotation is not allowed on methods")
	}
	if !onMethod && schema.Target&TargetClass == 0 {
		return invalidParameter(parsed, "", "annotation is not allowed on classes")
	}
	return nil
}

func invalidParameter(parsed *ParsedAnnotation, param, reason string) error {
	msg := fmt.Sprintf("@%s on %s: %s", parsed.Type, parsed.Location, reason)
	if param != "" {
		msg = fmt.Sprintf("@%s on %s: parameter '%s': %s", parsed.Type, parsed.Location, param, reason)
	}
	return errors.NewConfigurationError(parsed.Location.Class, msg).
		WithSuggestion(fmt.Sprintf("check the arguments of %s", parsed.Raw))
}
