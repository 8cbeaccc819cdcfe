package gin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	ginlib "github.com/gin-gonic/gin"

	"ecommerce_dataset/internal/config"
	"ecommerce_dataset/pkg/logger"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	engine *ginlib.Engine
	addr   string
	log    logger.Logger
}

// NewEngine returns a gin engine with panic recovery and request logging.
func NewEngine(log logger.Logger) *ginlib.Engine {
	if log == nil {
		log = logger.NewNop()
	}
	r := ginlib.New()
	r.Use(ginlib.Recovery(), RequestLogger(log))
	return r
}

// RequestLogger logs one line per request once the handler chain returns.
func RequestLogger(log logger.Logger) ginlib.HandlerFunc {
	return func(c *ginlib.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request",
			logger.String("method", c.Request.Method),
			logger.String("path", c.FullPath()),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("took", time.Since(start)),
		)
	}
}

func NewServer(cfg config.ServerConfig, engine *ginlib.Engine, log logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	return &Server{
		engine: engine,
		addr:   cfg.Address(),
		log:    log,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if s.engine == nil {
		return fmt.Errorf("gin engine is nil")
	}

	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", logger.String("addr", s.addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen on %s: %w", s.addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
