// Package inspect serves published deployments as a read-only JSON API over
// any of the supported web frameworks.
package inspect

import (
	"context"
	"net/http"
)

// WebServer is implemented by each framework adapter
type WebServer interface {
	// RegisterRoute adds a handler for method and path
	RegisterRoute(method string, path Path, handler HandlerFunc)
	// Mount serves a plain net/http handler at path
	Mount(path string, h http.Handler)

	Start(addr string) error
	Stop(ctx context.Context) error

	Name() string
}

// RequestContext is the framework-neutral view of one request
type RequestContext interface {
	Method() string
	Path() string
	Param(key string) string
	QueryParam(key string) string

	JSON(code int, v any) error
}

// HandlerFunc handles one request
type HandlerFunc func(RequestContext) error
