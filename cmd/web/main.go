package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"

	"finitefield.org/listing-web/internal/config"
	"finitefield.org/listing-web/internal/handlers"
	"finitefield.org/listing-web/internal/i18n"
	mw "finitefield.org/listing-web/internal/middleware"
	"finitefield.org/listing-web/internal/observability"
	"finitefield.org/listing-web/internal/render"
	"finitefield.org/listing-web/internal/site"
	"finitefield.org/listing-web/internal/source"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "web: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath string
		addr       string
		document   string
		pubPath    string
	)
	flag.StringVar(&configPath, "config", os.Getenv("LISTING_WEB_CONFIG"), "optional YAML config file")
	flag.StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	flag.StringVar(&document, "document", "", "listing document URL or path (overrides config)")
	flag.StringVar(&pubPath, "public", "", "public assets directory (overrides config)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}
	if document != "" {
		cfg.Document = document
	}
	if pubPath != "" {
		cfg.PublicDir = pubPath
	}

	logger, err := observability.NewLoggerWithLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	r, err := newRouter(cfg, logger)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.FetchTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web listening",
			zap.String("addr", cfg.Addr),
			zap.String("document", cfg.Document),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("web shutting down")
	return srv.Shutdown(shutdownCtx)
}

// newRouter wires the page server from cfg.
func newRouter(cfg config.Config, logger *zap.Logger) (http.Handler, error) {
	bundle, err := i18n.Default()
	if err != nil {
		return nil, fmt.Errorf("load labels: %w", err)
	}
	skeleton, err := site.Load(cfg.Template)
	if err != nil {
		return nil, err
	}
	listingHandler := &handlers.Listing{
		Source:   source.NewClient(cfg.Document, cfg.FetchTimeout),
		Skeleton: skeleton,
		Pipeline: render.NewPipeline(bundle, logger),
		BaseURL:  cfg.BaseURL,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP. Ensure only trusted proxies
	// can set these headers in production environments.
	r.Use(middleware.RealIP)
	r.Use(mw.Logger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})

	// Static assets under /assets/
	assets := http.StripPrefix("/assets", mw.AssetsWithCache(os.DirFS(filepath.Join(cfg.PublicDir, "assets"))))
	r.Handle("/assets/*", assets)

	r.Group(func(r chi.Router) {
		if cfg.RateLimit > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimit, time.Minute))
		}
		r.Use(mw.Locale)
		r.Get("/", listingHandler.Page)
		r.Get("/object.json", listingHandler.Document)
	})

	return r, nil
}
