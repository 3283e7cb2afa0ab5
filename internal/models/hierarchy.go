package models

import (
	"fmt"

	"github.com/toyz/ejbmeta/internal/errors"
)

// ObjectClass terminates every class chain. It never needs to be declared.
const ObjectClass = "java.lang.Object"

// Hierarchy returns the class chain of leaf, most derived first. The chain
// ends at a class without a superclass or at java.lang.Object.
func (j *EjbJarInfo) Hierarchy(leaf string) ([]ClassInfo, error) {
	var chain []ClassInfo
	seen := make(map[string]bool)

	for name := leaf; name != "" && name != ObjectClass; {
		if seen[name] {
			return nil, errors.NewConfigurationError("", fmt.Sprintf("class %s inherits from itself", name)).
				WithLocation(errors.SourceLocation{File: leaf})
		}
		seen[name] = true

		class, ok := j.Class(name)
		if !ok {
			return nil, errors.NewConfigurationError("", fmt.Sprintf("class %s is not declared", name)).
				WithLocation(errors.SourceLocation{File: leaf}).
				WithSuggestion("add the class to the classes section of the descriptor")
		}
		chain = append(chain, class)
		name = class.Super
	}
	return chain, nil
}
