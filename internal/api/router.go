// ABOUTME: Local JSON HTTP API for quietwins built on gin
// ABOUTME: Routes wins CRUD, trash, tag graph, chains and classification
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/harper/quietwins/internal/logging"
	"github.com/harper/quietwins/internal/wins"
)

const requestIDHeader = "X-Request-ID"

// Handler serves the HTTP API for one wins service.
type Handler struct {
	svc            *wins.Service
	logger         *log.Logger
	retentionHours int
}

// NewRouter builds the gin engine. retentionHours is the purge threshold
// used when a purge request does not name one.
func NewRouter(svc *wins.Service, logger *log.Logger, retentionHours int) *gin.Engine {
	if logger == nil {
		logger = logging.Discard()
	}
	h := &Handler{svc: svc, logger: logger, retentionHours: retentionHours}

	r := gin.New()
	r.Use(gin.Recovery(), h.requestLogger())

	r.GET("/api/health", h.Health)

	api := r.Group("/api")
	{
		api.GET("/wins", h.ListWins)
		api.POST("/wins", h.CreateWin)
		api.GET("/wins/deleted", h.ListDeleted)
		api.POST("/wins/purge", h.Purge)
		api.GET("/wins/:id", h.GetWin)
		api.PUT("/wins/:id", h.UpdateWin)
		api.DELETE("/wins/:id", h.DeleteWin)
		api.POST("/wins/:id/restore", h.RestoreWin)

		api.GET("/graph", h.Graph)
		api.GET("/chains", h.Chains)
		api.POST("/classify", h.Classify)
	}

	return r
}

// requestLogger tags each request with an id and logs it at debug.
func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)

		start := time.Now()
		c.Next()

		h.logger.Debug("http request",
			"id", id,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Serve runs handler on addr until ctx is cancelled, then shuts down.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http api listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("http api shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
