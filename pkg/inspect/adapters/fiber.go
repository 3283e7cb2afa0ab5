package adapters

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/toyz/ejbmeta/pkg/inspect"
)

// FiberAdapter implements inspect.WebServer for Fiber
type FiberAdapter struct {
	app *fiber.App
}

// NewFiberAdapter creates a Fiber adapter whose error handler answers in the
// same JSON shape as the other adapters
func NewFiberAdapter() *FiberAdapter {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})
	return &FiberAdapter{app: app}
}

// NewDefaultFiberAdapter creates a Fiber adapter with panic recovery
func NewDefaultFiberAdapter() *FiberAdapter {
	fa := NewFiberAdapter()
	fa.app.Use(recover.New())
	return fa
}

// RegisterRoute registers a route with the Fiber app
func (fa *FiberAdapter) RegisterRoute(method string, path inspect.Path, handler inspect.HandlerFunc) {
	fa.app.Add(method, path.Format("*"), func(c *fiber.Ctx) error {
		if err := handler(&FiberRequestContext{ctx: c}); err != nil {
			code, body := inspect.ErrorResponse(err)
			return c.Status(code).JSON(body)
		}
		return nil
	})
}

// Mount serves h for GET requests at path
func (fa *FiberAdapter) Mount(path string, h http.Handler) {
	fa.app.Get(path, adaptor.HTTPHandler(h))
}

// Start serves until Stop is called
func (fa *FiberAdapter) Start(addr string) error {
	return fa.app.Listen(addr)
}

// Stop shuts the server down gracefully
func (fa *FiberAdapter) Stop(ctx context.Context) error {
	return fa.app.ShutdownWithContext(ctx)
}

// Name returns the adapter name
func (fa *FiberAdapter) Name() string {
	return "Fiber"
}

// App returns the underlying Fiber app
func (fa *FiberAdapter) App() *fiber.App {
	return fa.app
}

// FiberRequestContext implements inspect.RequestContext for Fiber
type FiberRequestContext struct {
	ctx *fiber.Ctx
}

func (c *FiberRequestContext) Method() string {
	return c.ctx.Method()
}

func (c *FiberRequestContext) Path() string {
	return c.ctx.Path()
}

func (c *FiberRequestContext) Param(key string) string {
	return c.ctx.Params(key)
}

func (c *FiberRequestContext) QueryParam(key string) string {
	return c.ctx.Query(key)
}

func (c *FiberRequestContext) JSON(code int, v any) error {
	return c.ctx.Status(code).JSON(v)
}
