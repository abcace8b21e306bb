package graphapi

import (
	"context"
	"embed"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
)

//go:embed static/playground.html
var staticFS embed.FS

// Server is the HTTP front for the GraphQL API: a gin engine wrapping the
// parsed schema plus the *http.Server it's bound to.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
	schema     *graphql.Schema
}

// NewServer builds the gin engine, parses the SDL schema (with or without
// the Plebiscite erowid field per withErowid), and registers routes.
// debugRequests enables gin's per-request logger middleware.
func NewServer(resolver *Resolver, withErowid bool, debugRequests bool) (*Server, error) {
	sdl := BuildSchema(withErowid)
	schema, err := graphql.ParseSchema(sdl, resolver)
	if err != nil {
		return nil, fmt.Errorf("parsing graphql schema: %w", err)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), securityHeaders())
	if debugRequests {
		engine.Use(gin.Logger())
	}

	s := &Server{engine: engine, schema: schema}
	s.setupRoutes()
	return s, nil
}

// setupRoutes registers the health check and the single "/" endpoint that
// serves the GraphiQL-style playground on GET and executes GraphQL on
// POST: the playground posts back to "/" itself, there's no separate
// /graphql path.
func (s *Server) setupRoutes() {
	s.engine.GET("/health", s.healthHandler)

	relayHandler := gin.WrapH(&relay.Handler{Schema: s.schema})
	s.engine.POST("/", relayHandler)
	s.engine.GET("/", s.playgroundHandler)
}

// healthHandler handles GET /health.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// playgroundHandler serves the embedded query console page.
func (s *Server) playgroundHandler(c *gin.Context) {
	page, err := staticFS.ReadFile("static/playground.html")
	if err != nil {
		c.String(http.StatusInternalServerError, "playground unavailable")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

// securityHeaders sets a standard set of defensive response headers.
func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		c.Next()
	}
}

// Start starts the HTTP server on addr (blocking).
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// StartWithListener starts the HTTP server on a pre-created listener. Used
// by test infrastructure to serve on a random OS-assigned port.
func (s *Server) StartWithListener(ln net.Listener) error {
	s.httpServer = &http.Server{Handler: s.engine}
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
