// Package api exposes the audit service over HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/webcheck/backend/analyzer"
	"github.com/webcheck/backend/config"
	"github.com/webcheck/backend/fetcher"
	"github.com/webcheck/backend/metrics"
	"github.com/webcheck/backend/middleware"
	"github.com/webcheck/backend/stats"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

const (
	errURLRequired    = "URL is required"
	errInvalidURL     = "Invalid URL format"
	errAnalysisFailed = "Failed to analyze website. Please check the URL and try again."
)

// Auditor runs a full page analysis.
type Auditor interface {
	Analyze(ctx context.Context, rawURL string) (*analyzer.AnalysisResult, error)
}

// Server wires handlers to the analyzer and statistics.
type Server struct {
	auditor Auditor
	stats   *stats.Statistics
	limiter *middleware.RateLimiter
	cfg     config.Config
	logger  *zap.Logger
	now     func() time.Time
}

// NewServer builds a Server. A nil logger disables logging.
func NewServer(auditor Auditor, st *stats.Statistics, cfg config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		auditor: auditor,
		stats:   st,
		limiter: middleware.NewRateLimiter(cfg.RateLimit.Rate, cfg.RateLimit.Burst),
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
}

// Limiter exposes the rate limiter so the caller can prune idle clients.
func (s *Server) Limiter() *middleware.RateLimiter {
	return s.limiter
}

// Handler returns the gin engine with middleware and routes. Every route is
// served at the root and under /api.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(
		middleware.RequestIDMiddleware(),
		middleware.Logger(s.logger),
		middleware.Stats(s.stats),
		middleware.ErrorHandler(s.logger),
		middleware.CORS(s.cfg.CORS.AllowedOrigins),
	)

	for _, prefix := range []string{"/", "/api"} {
		g := r.Group(prefix)
		g.GET("/health", s.health)
		g.GET("/statistics", s.statistics)
		g.GET("/metrics", gin.WrapH(metrics.Handler()))
		g.POST("/analyze", s.limiter.RateLimit(), s.analyze)
	}
	return r
}

type analyzeRequest struct {
	URL json.RawMessage `json:"url"`
}

// targetURL extracts the url field. A missing, null or blank value is
// errURLRequired; any other non-string value is errInvalidURL.
func (r analyzeRequest) targetURL() (string, string) {
	raw := bytes.TrimSpace(r.URL)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", errURLRequired
	}
	var target string
	if err := json.Unmarshal(raw, &target); err != nil {
		return "", errInvalidURL
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return "", errURLRequired
	}
	return target, ""
}

func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errURLRequired})
		return
	}
	target, problem := req.targetURL()
	if problem != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": problem})
		return
	}
	c.Set(middleware.TargetURLKey, target)

	// In-flight analyses run to completion even if the client disconnects.
	ctx := context.WithoutCancel(c.Request.Context())
	result, err := s.auditor.Analyze(ctx, target)
	if err != nil {
		if errors.Is(err, fetcher.ErrInvalidURL) {
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidURL})
			return
		}
		s.logger.Error("analysis failed",
			zap.String("url", target),
			zap.String("request_id", middleware.RequestID(c)),
			zap.Error(err),
		)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errAnalysisFailed})
		return
	}

	c.JSON(http.StatusOK, result)
}

type healthResponse struct {
	Status      string            `json:"status"`
	Message     string            `json:"message"`
	Version     string            `json:"version"`
	Timestamp   string            `json:"timestamp"`
	Port        int               `json:"port"`
	Host        string            `json:"host"`
	Environment string            `json:"environment"`
	Endpoints   map[string]string `json:"endpoints"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:      "ok",
		Message:     "WebCheck API is running",
		Version:     Version,
		Timestamp:   s.now().UTC().Format(time.RFC3339),
		Port:        s.cfg.Server.Port,
		Host:        s.cfg.Server.Host,
		Environment: s.cfg.Server.Environment,
		Endpoints: map[string]string{
			"analyze":    "/analyze (POST)",
			"health":     "/health (GET)",
			"statistics": "/statistics (GET)",
			"metrics":    "/metrics (GET)",
		},
	})
}

func (s *Server) statistics(c *gin.Context) {
	c.JSON(http.StatusOK, s.stats.Snapshot(s.cfg.Server.DevMode))
}
