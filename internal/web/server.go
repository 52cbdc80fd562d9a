// Package web serves the portfolio and its supporting endpoints over gin.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kaushik9989/portfolio/internal/analytics"
	"github.com/Kaushik9989/portfolio/internal/export"
	"github.com/Kaushik9989/portfolio/internal/mail"
	"github.com/Kaushik9989/portfolio/internal/render"
)

// Store is the analytics persistence the handlers need.
type Store interface {
	RecordVisit(ctx context.Context, v analytics.Visit) error
	RecordCopy(ctx context.Context, label, hashedIP string) error
	Stats(ctx context.Context) (*analytics.Stats, error)
	RecentVisitors(ctx context.Context, limit int) ([]analytics.Visit, error)
	Visit(ctx context.Context, id int64) (analytics.Visit, error)
	Ping(ctx context.Context) error
}

// Cleaner runs an immediate retention sweep.
type Cleaner interface {
	RunOnce(ctx context.Context) (int64, error)
}

// AdminCredentials guard the dashboard. Leaving either field empty keeps
// the admin routes unmounted.
type AdminCredentials struct {
	Username string
	Password string
	Token    string
}

func (a AdminCredentials) enabled() bool {
	return a.Username != "" && a.Password != "" && a.Token != ""
}

type Options struct {
	Logger   *zap.Logger
	Renderer *render.Renderer
	Store    Store
	Hasher   *analytics.Hasher

	// Optional features; nil disables the matching routes.
	Mailer    mail.Sender
	Resume    *export.Resume
	Retention Cleaner

	// BaseURL is the public origin the print view resolves links against.
	// Empty means links stay relative to the serving host.
	BaseURL string

	Admin            AdminCredentials
	StaticDir        string
	CORSOrigins      []string
	TrustedProxies   []string
	ContactPerMinute int
	RetentionMonths  int
	TrackVisits      bool
}

type handler struct {
	opts    Options
	logger  *zap.Logger
	tracker *tracker
	contact *limiter
	logins  *limiter
}

// NewRouter builds the engine with every route the options enable. The
// returned wait function blocks until background analytics writes finish.
func NewRouter(opts Options) (*gin.Engine, func(), error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ContactPerMinute <= 0 {
		opts.ContactPerMinute = 3
	}
	if opts.Hasher == nil {
		hasher, err := analytics.NewHasher("")
		if err != nil {
			return nil, nil, err
		}
		opts.Hasher = hasher
	}

	h := &handler{
		opts:    opts,
		logger:  opts.Logger,
		tracker: newTracker(opts.Store, opts.Hasher, opts.Logger),
		contact: newLimiter(opts.ContactPerMinute),
		logins:  newLimiter(5),
	}

	r := gin.New()
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, nil, err
	}
	r.SetHTMLTemplate(opts.Renderer.Template())
	r.Use(requestIDMiddleware(), zapLoggerMiddleware(opts.Logger), gin.Recovery())
	if opts.TrackVisits {
		r.Use(h.tracker.middleware())
	}

	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}

	r.GET("/", h.index)
	r.GET("/print", h.print)
	r.GET("/sections/:id", h.section)
	r.GET("/privacy", h.privacy)
	r.GET("/healthz", h.healthz)

	api := r.Group("/api")
	api.GET("/viewport", corsMiddleware(opts.CORSOrigins), h.viewportConfig)
	api.OPTIONS("/viewport", corsMiddleware(opts.CORSOrigins))
	// copy counts only come from the page itself unless origins are listed
	api.POST("/events/copy", writeCORSMiddleware(opts.CORSOrigins), h.copyEvent)
	api.OPTIONS("/events/copy", writeCORSMiddleware(opts.CORSOrigins))

	if opts.Mailer != nil {
		r.POST("/contact", h.submitContact)
	}
	if opts.Resume != nil {
		r.GET("/resume.pdf", h.resumePDF)
	}
	if opts.Admin.enabled() && opts.Store != nil {
		h.mountAdmin(r)
	}

	return r, h.tracker.wait, nil
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "X-Request-ID"},
		MaxAge:       12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cors.New(cfg)
		}
	}
	cfg.AllowOrigins = origins
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	}
	return cors.New(cfg)
}

// writeCORSMiddleware guards state-changing endpoints. A wildcard or empty
// origin list falls back to same-origin only; cors lets requests whose Origin
// matches the request host through on its own.
func writeCORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Origin", "Content-Type", "X-Request-ID"},
		MaxAge:       12 * time.Hour,
	}
	var explicit []string
	for _, o := range origins {
		if o != "*" {
			explicit = append(explicit, o)
		}
	}
	if len(explicit) == 0 || len(explicit) != len(origins) {
		cfg.AllowOriginFunc = func(string) bool { return false }
		return cors.New(cfg)
	}
	cfg.AllowOrigins = explicit
	return cors.New(cfg)
}

// Server runs an engine until its context is cancelled.
type Server struct {
	srv     *http.Server
	logger  *zap.Logger
	drain   func()
	timeout time.Duration
}

func NewServer(addr string, engine http.Handler, drain func(), logger *zap.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger:  logger,
		drain:   drain,
		timeout: 10 * time.Second,
	}
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	err := s.srv.Shutdown(shutdownCtx)
	if s.drain != nil {
		s.drain()
	}
	return err
}
