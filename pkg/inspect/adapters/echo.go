package adapters

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/toyz/ejbmeta/pkg/inspect"
)

// EchoAdapter implements inspect.WebServer for Echo
type EchoAdapter struct {
	echo *echo.Echo
}

// NewEchoAdapter creates a new Echo adapter
func NewEchoAdapter(e *echo.Echo) *EchoAdapter {
	return &EchoAdapter{echo: e}
}

// NewDefaultEchoAdapter creates an Echo adapter with panic recovery and no
// startup banner
func NewDefaultEchoAdapter() *EchoAdapter {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	return NewEchoAdapter(e)
}

// RegisterRoute registers a route with the Echo server
func (ea *EchoAdapter) RegisterRoute(method string, path inspect.Path, handler inspect.HandlerFunc) {
	ea.echo.Add(method, path.Format("*"), func(c echo.Context) error {
		if err := handler(&EchoRequestContext{ctx: c}); err != nil {
			code, body := inspect.ErrorResponse(err)
			return c.JSON(code, body)
		}
		return nil
	})
}

// Mount serves h for GET requests at path
func (ea *EchoAdapter) Mount(path string, h http.Handler) {
	ea.echo.GET(path, echo.WrapHandler(h))
}

// Start serves until Stop is called
func (ea *EchoAdapter) Start(addr string) error {
	if err := ea.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully
func (ea *EchoAdapter) Stop(ctx context.Context) error {
	return ea.echo.Shutdown(ctx)
}

// Name returns the adapter name
func (ea *EchoAdapter) Name() string {
	return "Echo"
}

// Echo returns the underlying Echo instance
func (ea *EchoAdapter) Echo() *echo.Echo {
	return ea.echo
}

// EchoRequestContext implements inspect.RequestContext for Echo
type EchoRequestContext struct {
	ctx echo.Context
}

func (c *EchoRequestContext) Method() string {
	return c.ctx.Request().Method
}

func (c *EchoRequestContext) Path() string {
	return c.ctx.Request().URL.Path
}

func (c *EchoRequestContext) Param(key string) string {
	return c.ctx.Param(key)
}

func (c *EchoRequestContext) QueryParam(key string) string {
	return c.ctx.QueryParam(key)
}

func (c *EchoRequestContext) JSON(code int, v any) error {
	return c.ctx.JSON(code, v)
}
