// Package api exposes the feed over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/deusflow/geointel/internal/logger"
	"github.com/deusflow/geointel/internal/scraper"
)

const (
	// FeedPath is the canonical route; LegacyFeedPath is kept for
	// front-ends still pointing at the serverless function URL.
	FeedPath           = "/api/intel"
	LegacyFeedPath     = "/.netlify/functions/fetch-intel"
	DeepScanPath       = "/api/deep-scan"
	LegacyDeepScanPath = "/.netlify/functions/deep-scan"

	cacheControl = "public, max-age=1800"
)

// FeedService is what the handlers need from the app layer.
type FeedService interface {
	Feed(ctx context.Context) ([]byte, bool, error)
	StaticFallback() []byte
	Stats() map[string]interface{}
}

// ArticleScanner extracts the main text of one article page.
type ArticleScanner interface {
	Extract(ctx context.Context, url string) (*scraper.Article, error)
}

type Handler struct {
	svc     FeedService
	scanner ArticleScanner
}

// NewHandler builds the handlers. scanner may be nil, which disables the
// deep-scan route.
func NewHandler(svc FeedService, scanner ArticleScanner) *Handler {
	return &Handler{svc: svc, scanner: scanner}
}

// GetIntel serves the aggregated feed. It always answers 200.
func (h *Handler) GetIntel(c *gin.Context) {
	body, hit, err := h.svc.Feed(c.Request.Context())
	if err != nil {
		logger.Error("Feed failed, serving static fallback", "error", err)
		h.serveFallback(c)
		return
	}

	c.Header("Cache-Control", cacheControl)
	if hit {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	c.Data(http.StatusOK, "application/json", body)
}

type deepScanRequest struct {
	URL string `json:"url"`
}

// PostDeepScan returns an excerpt of the article at the posted url.
func (h *Handler) PostDeepScan(c *gin.Context) {
	if h.scanner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "deep scan not configured"})
		return
	}

	var req deepScanRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL required"})
		return
	}

	article, err := h.scanner.Extract(c.Request.Context(), req.URL)
	if err != nil {
		logger.Warn("Deep scan failed", "url", req.URL, "error", err)
		var statusErr *scraper.StatusError
		switch {
		case errors.Is(err, scraper.ErrInvalidURL):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &statusErr):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, article)
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
		"stats":  h.svc.Stats(),
	})
}

func (h *Handler) serveFallback(c *gin.Context) {
	c.Header("Cache-Control", cacheControl)
	c.Header("X-Fallback", "static")
	c.Data(http.StatusOK, "application/json", h.svc.StaticFallback())
}

// recovery turns a panic on a feed route into the static fallback
// response; other routes get a bare 500.
func (h *Handler) recovery(c *gin.Context, recovered any) {
	logger.Error("Handler panicked", "path", c.FullPath(), "panic", recovered)
	switch c.FullPath() {
	case FeedPath, LegacyFeedPath:
		h.serveFallback(c)
		c.Abort()
	default:
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

// allowOrigin mirrors the wildcard header onto every response, including
// requests that carry no Origin header.
func allowOrigin(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Next()
}

func requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	logger.Debug("HTTP request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"cache", c.Writer.Header().Get("X-Cache"),
		"duration", time.Since(start))
}

// NewRouter builds the engine. origins of ["*"] (or empty) allows every
// origin. metricsHandler may be nil.
func NewRouter(h *Handler, origins []string, metricsHandler http.Handler) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger, gin.CustomRecovery(h.recovery))

	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"X-Cache", "X-Fallback"},
		MaxAge:        12 * time.Hour,
	}
	if allowAll {
		corsCfg.AllowAllOrigins = true
		r.Use(allowOrigin)
	} else {
		corsCfg.AllowOrigins = origins
	}
	r.Use(cors.New(corsCfg))

	r.GET(FeedPath, h.GetIntel)
	r.GET(LegacyFeedPath, h.GetIntel)
	r.POST(DeepScanPath, h.PostDeepScan)
	r.POST(LegacyDeepScanPath, h.PostDeepScan)
	r.GET("/health", h.GetHealth)
	if metricsHandler != nil {
		r.GET("/metrics", gin.WrapH(metricsHandler))
	}
	return r
}
