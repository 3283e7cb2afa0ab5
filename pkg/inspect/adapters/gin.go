package adapters

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/toyz/ejbmeta/pkg/inspect"
)

// GinAdapter implements inspect.WebServer for Gin
type GinAdapter struct {
	engine *gin.Engine

	mu     sync.Mutex
	server *http.Server
}

// NewGinAdapter creates a new Gin adapter
func NewGinAdapter(g *gin.Engine) *GinAdapter {
	return &GinAdapter{engine: g}
}

// NewDefaultGinAdapter creates a Gin adapter with panic recovery
func NewDefaultGinAdapter() *GinAdapter {
	g := gin.New()
	g.Use(gin.Recovery())
	return NewGinAdapter(g)
}

// RegisterRoute registers a route with the Gin engine
func (ga *GinAdapter) RegisterRoute(method string, path inspect.Path, handler inspect.HandlerFunc) {
	ga.engine.Handle(method, path.Format("*path"), func(c *gin.Context) {
		if err := handler(&GinRequestContext{ctx: c}); err != nil {
			code, body := inspect.ErrorResponse(err)
			c.JSON(code, body)
		}
	})
}

// Mount serves h for GET requests at path
func (ga *GinAdapter) Mount(path string, h http.Handler) {
	ga.engine.GET(path, gin.WrapH(h))
}

// Start serves until Stop is called
func (ga *GinAdapter) Start(addr string) error {
	ga.mu.Lock()
	ga.server = &http.Server{Addr: addr, Handler: ga.engine}
	srv := ga.server
	ga.mu.Unlock()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully
func (ga *GinAdapter) Stop(ctx context.Context) error {
	ga.mu.Lock()
	srv := ga.server
	ga.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

// Name returns the adapter name
func (ga *GinAdapter) Name() string {
	return "Gin"
}

// Engine returns the underlying Gin engine
func (ga *GinAdapter) Engine() *gin.Engine {
	return ga.engine
}

// GinRequestContext implements inspect.RequestContext for Gin
type GinRequestContext struct {
	ctx *gin.Context
}

func (c *GinRequestContext) Method() string {
	return c.ctx.Request.Method
}

func (c *GinRequestContext) Path() string {
	return c.ctx.Request.URL.Path
}

func (c *GinRequestContext) Param(key string) string {
	return c.ctx.Param(key)
}

func (c *GinRequestContext) QueryParam(key string) string {
	return c.ctx.Query(key)
}

func (c *GinRequestContext) JSON(code int, v any) error {
	c.ctx.JSON(code, v)
	return nil
}
