package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/Kaushik9989/portfolio/internal/analytics"
	"github.com/Kaushik9989/portfolio/internal/config"
	"github.com/Kaushik9989/portfolio/internal/content"
	"github.com/Kaushik9989/portfolio/internal/export"
	"github.com/Kaushik9989/portfolio/internal/logging"
	"github.com/Kaushik9989/portfolio/internal/mail"
	"github.com/Kaushik9989/portfolio/internal/render"
	"github.com/Kaushik9989/portfolio/internal/web"
)

// private networks a reverse proxy may sit on
var privateProxies = []string{"127.0.0.1/32", "::1/128", "10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	gin.SetMode(cfg.GinMode)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := analytics.Open(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	hasher, err := analytics.NewHasher(cfg.HashSalt)
	if err != nil {
		return fmt.Errorf("hasher: %w", err)
	}
	if cfg.HashSalt == "" {
		logger.Info("HASH_SALT not set; unique visitor counts reset on restart")
	}

	retention, err := analytics.NewRetention(cfg.CleanupSchedule, store, cfg.RetentionMonths, logger)
	if err != nil {
		return err
	}
	if n, err := retention.RunOnce(ctx); err != nil {
		logger.Error("startup privacy cleanup failed", zap.Error(err))
	} else if n > 0 {
		logger.Info("startup privacy cleanup", zap.Int64("rows", n))
	}
	retention.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		retention.Stop(stopCtx)
	}()

	var mailer mail.Sender
	if cfg.MailEnabled() {
		mailer, err = mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SenderAddress(), cfg.ContactTo, logger)
		if err != nil {
			return fmt.Errorf("smtp: %w", err)
		}
	} else {
		logger.Info("contact form disabled: SMTP_HOST not set")
	}

	renderOpts := []render.Option{
		render.WithContactForm(mailer != nil),
		render.WithResumeLink(cfg.PDFEnabled),
	}
	if !cfg.TrackingDisabled {
		renderOpts = append(renderOpts, render.WithCopyBeacon("/api/events/copy"))
	}
	renderer, err := render.New(content.Default(), renderOpts...)
	if err != nil {
		return err
	}

	var resume *export.Resume
	if cfg.PDFEnabled {
		base := cfg.BaseURL
		if base == "" {
			base = "http://localhost:" + cfg.Port + "/"
		}
		resume = export.NewResume(export.NewChromeRenderer(cfg.ChromePath), func() (string, error) {
			var b strings.Builder
			err := renderer.Page(&b, renderer.PrintView(base))
			return b.String(), err
		}, logger)
	}

	var admin web.AdminCredentials
	if cfg.AdminEnabled() {
		token, err := analytics.RandomToken()
		if err != nil {
			return fmt.Errorf("admin token: %w", err)
		}
		admin = web.AdminCredentials{Username: cfg.AdminUsername, Password: cfg.AdminPassword, Token: token}
		logger.Info("admin access available at /admin/login")
	} else {
		logger.Warn("admin dashboard disabled: set ADMIN_USERNAME and ADMIN_PASSWORD")
	}

	var proxies []string
	if cfg.TrustProxy {
		proxies = privateProxies
	}

	engine, drain, err := web.NewRouter(web.Options{
		Logger:           logger,
		Renderer:         renderer,
		Store:            store,
		Hasher:           hasher,
		Mailer:           mailer,
		Resume:           resume,
		Retention:        retention,
		Admin:            admin,
		StaticDir:        cfg.StaticDir,
		BaseURL:          cfg.BaseURL,
		CORSOrigins:      cfg.CORSOrigins,
		TrustedProxies:   proxies,
		ContactPerMinute: cfg.ContactRatePerMinute,
		RetentionMonths:  cfg.RetentionMonths,
		TrackVisits:      !cfg.TrackingDisabled,
	})
	if err != nil {
		return err
	}

	return web.NewServer(cfg.Addr(), engine, drain, logger).Run(ctx)
}
