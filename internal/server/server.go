package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"form-intake/config"
	"form-intake/internal/handler"
	"form-intake/internal/middleware"
	"form-intake/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	Submission *handler.SubmissionHandler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if l == nil {
		l = logger.NewNop()
	}
	switch cfg.AppMode {
	case ReleaseMode:
		gin.SetMode(gin.ReleaseMode)
	case TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	if err := handler.RegisterValidators(); err != nil {
		l.Errorf("Failed to register validators: %s", err)
	}

	engine := gin.New()
	// multipart parts beyond this spill to temp files
	engine.MaxMultipartMemory = cfg.MaxUploadBytes()

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

func (s *Server) SetupRoutes(handlers *Handlers) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.Recovery(s.logger))
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/", handler.FormPage)
	s.engine.GET("/health", handler.Health)
	s.engine.POST("/submit", handlers.Submission.Submit)
}

// Handler exposes the routed engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start serves until SIGINT or SIGTERM, then drains in-flight requests.
func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		s.logger.Errorf("Error in starting the server: %s", err)
		return err
	case <-quit:
	}

	s.logger.Infof("Quitting signal received.. Shutting down within %s", s.config.ShutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Errorf("Error in the graceful shutdown of the server: %s", err)
		return err
	}

	s.logger.Infof("Server stopped gracefully")
	return nil
}
