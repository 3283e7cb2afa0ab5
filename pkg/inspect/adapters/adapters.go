// Package adapters implements inspect.WebServer for Gin, Echo and Fiber.
package adapters

import (
	"strings"

	"github.com/toyz/ejbmeta/internal/errors"
	"github.com/toyz/ejbmeta/pkg/inspect"
)

// New returns the default adapter for a framework name
func New(framework string) (inspect.WebServer, error) {
	switch strings.ToLower(framework) {
	case "gin":
		return NewDefaultGinAdapter(), nil
	case "echo":
		return NewDefaultEchoAdapter(), nil
	case "fiber":
		return NewDefaultFiberAdapter(), nil
	default:
		return nil, errors.NewValidationError("server.framework", "gin, echo or fiber", framework)
	}
}
