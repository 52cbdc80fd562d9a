package web

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/Kaushik9989/portfolio/internal/analytics"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	adminCookie     = "admin_token"
)

// requestIDMiddleware keeps a valid incoming id or assigns a new one.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// doNotTrack reports whether the client asked not to be tracked.
func doNotTrack(c *gin.Context) bool {
	return c.GetHeader("DNT") == "1" || c.GetHeader("Sec-GPC") == "1"
}

var untrackedPrefixes = []string{"/static/", "/admin", "/api/", "/favicon", "/privacy", "/healthz", "/resume.pdf", "/print"}

func tracked(method, path string) bool {
	if method != http.MethodGet {
		return false
	}
	for _, p := range untrackedPrefixes {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	return true
}

// tracker records successful page views in the background.
type tracker struct {
	store  Store
	hasher *analytics.Hasher
	logger *zap.Logger
	wg     conc.WaitGroup
}

func newTracker(store Store, hasher *analytics.Hasher, logger *zap.Logger) *tracker {
	return &tracker{store: store, hasher: hasher, logger: logger}
}

func (t *tracker) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.Request.URL.Path
		if t.store == nil || !tracked(c.Request.Method, path) || doNotTrack(c) || c.Writer.Status() >= 400 {
			return
		}
		v := analytics.Visit{
			HashedIP:  t.hasher.Hash(c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
		}
		t.wg.Go(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := t.store.RecordVisit(ctx, v); err != nil {
				t.logger.Warn("recording visitor failed", zap.Error(err))
			}
		})
	}
}

func (t *tracker) wait() { t.wg.Wait() }

func adminAuthMiddleware(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
