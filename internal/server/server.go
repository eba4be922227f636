// Package server exposes scaffold generation over HTTP. It is a thin
// boundary: request decoding, response headers, and error mapping live
// here; all generation logic stays behind the lifecycle manager.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Hermes08/FastMVP-Core/internal/lifecycle"
	"github.com/Hermes08/FastMVP-Core/internal/scaffold"
)

// Generator runs one generation cycle and hands the archive to deliver.
// Satisfied by *lifecycle.Manager; an interface so handlers can be
// tested with a mock.
type Generator interface {
	Generate(ctx context.Context, cfg scaffold.ProjectConfig, deliver lifecycle.Deliverer) error
}

// Server is the FastMVP HTTP server.
type Server struct {
	gen    Generator
	logger *zap.Logger
	router *gin.Engine
}

// New creates a server around a generator. A nil logger disables
// logging.
func New(gen Generator, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		gen:    gen,
		logger: logger,
		router: router,
	}

	router.Use(s.requestLogger())

	router.GET("/healthz", s.handleHealth)
	api := router.Group("/api")
	{
		api.POST("/projects/generate", s.handleGenerate)
	}

	return s
}

// Run starts the server on addr, blocking until it exits.
func (s *Server) Run(addr string) error {
	s.logger.Info("listening", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestLogger attaches a request-scoped logger carrying a request id.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(loggerKey, s.logger.With(zap.String("request_id", id)))
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

const loggerKey = "logger"

func (s *Server) log(c *gin.Context) *zap.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(*zap.Logger); ok {
			return l
		}
	}
	return s.logger
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
