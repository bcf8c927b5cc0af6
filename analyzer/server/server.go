// Package server exposes the template validator over HTTP so editors and
// other tools can check templates without loading Go packages.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/abiiranathan/go-format-lint/analyzer/validator"
)

// shutdownTimeout bounds how long Run waits for in-flight requests.
const shutdownTimeout = 5 * time.Second

// Server serves the validation API.
//
// Thread-safety: safe for concurrent requests; validation is pure and the
// metrics are internally synchronized.
type Server struct {
	router   *gin.Engine
	registry *prometheus.Registry
	metrics  *metrics
}

// New builds a Server with request logging, panic recovery and its own
// metrics registry.
func New() *Server {
	gin.SetMode(gin.ReleaseMode)

	registry := prometheus.NewRegistry()
	s := &Server{
		router:   gin.New(),
		registry: registry,
		metrics:  newMetrics(registry),
	}

	s.router.Use(ginzap.Ginzap(zap.L(), time.RFC3339, true))
	s.router.Use(ginzap.RecoveryWithZap(zap.L(), true))

	s.router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "online")
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	v1 := s.router.Group("/v1")
	{
		v1.POST("/validate", s.handleValidate)
		v1.GET("/kinds", handleKinds)
	}

	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.S().Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// argument is the wire form of validator.FormatArgument. A missing arraySize
// on an array argument means the size is unknown.
type argument struct {
	Label     string `json:"label"`
	IsArray   bool   `json:"isArray"`
	ArraySize *int   `json:"arraySize" binding:"omitempty,min=-1"`
}

type validateRequest struct {
	// Template is nil when the JSON value is null or absent.
	Template  *string    `json:"template"`
	Operation string     `json:"operation"`
	Arguments []argument `json:"arguments" binding:"dive"`
}

type failureResponse struct {
	Kind     validator.Kind     `json:"kind"`
	Message  string             `json:"message"`
	Severity validator.Severity `json:"severity"`
	Data     []string           `json:"data,omitempty"`
}

type validateResponse struct {
	// Valid is true when the template passed every check.
	Valid bool `json:"valid"`
	// Reported is true when a linter would surface the failure for
	// Operation.
	Reported bool             `json:"reported"`
	Failure  *failureResponse `json:"failure,omitempty"`
}

func (s *Server) handleValidate(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleInvalidInputError(c, err)
		return
	}

	args := make([]validator.FormatArgument, 0, len(req.Arguments))
	for _, a := range req.Arguments {
		if !a.IsArray {
			args = append(args, validator.Arg(a.Label))
			continue
		}
		size := validator.UnknownArraySize
		if a.ArraySize != nil {
			size = *a.ArraySize
		}
		args = append(args, validator.ArrayArg(a.Label, size))
	}

	failure := validator.ValidateFormatCall(req.Template, args)
	s.metrics.observe(req.Template, failure)

	resp := validateResponse{Valid: failure == nil}
	if failure != nil {
		resp.Reported = validator.ShouldReport(failure, req.Operation)
		resp.Failure = &failureResponse{
			Kind:     failure.Kind,
			Message:  failure.Message(),
			Severity: validator.Classify(failure.Kind),
			Data:     failure.Data,
		}
	}
	c.JSON(http.StatusOK, resp)
}

type kindResponse struct {
	Kind     validator.Kind     `json:"kind"`
	Severity validator.Severity `json:"severity"`
}

func handleKinds(c *gin.Context) {
	kinds := validator.Kinds()
	resp := make([]kindResponse, 0, len(kinds))
	for _, k := range kinds {
		resp = append(resp, kindResponse{Kind: k, Severity: validator.Classify(k)})
	}
	c.JSON(http.StatusOK, resp)
}

func handleInvalidInputError(c *gin.Context, err error) {
	zap.S().Debugw("invalid input", "error", err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
