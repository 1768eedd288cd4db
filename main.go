package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foomo/studio-gallery/assetstore"
	"github.com/foomo/studio-gallery/config"
	"github.com/foomo/studio-gallery/mcp"
	"github.com/foomo/studio-gallery/service"
	"github.com/mark3labs/mcp-go/server"
	"github.com/peterbourgon/ff/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

func main() {
	// Define command line flags, each can also be set as STUDIO_<FLAG>
	fs := flag.NewFlagSet("studio-gallery", flag.ExitOnError)
	httpAddr := fs.String("http", "", "HTTP server address (e.g., ':8080')")
	endpoint := fs.String("endpoint", "/mcp", "MCP endpoint path")
	galleryLimit := fs.Int("gallery-limit", service.DefaultPageLimit, "Default number of gallery images per page")
	maxPages := fs.Int("max-pages", service.DefaultMaxCursorPages, "Maximum search pages followed for the carousel")
	debug := fs.Bool("debug", false, "Enable development logging")
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("STUDIO")); err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(*debug)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := newStore(logger)
	if err != nil {
		logger.Fatal("failed to create asset store", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	sseServer := mcp.NewSSEServer(logger, nil)
	defer sseServer.Close()

	settings := service.DefaultSettings()
	settings.MaxCursorPages = *maxPages
	settings.PageSize.Default = *galleryLimit
	serviceInstance := service.NewService(logger, store, settings,
		service.WithMetrics(service.NewMetrics(registry)),
		service.WithObserver(sseServer.Publish),
	)

	s := mcp.NewServer(logger, serviceInstance)

	if *httpAddr == "" {
		logger.Info("starting MCP server in stdio mode")
		if err := server.ServeStdio(s); err != nil {
			logger.Fatal("stdio server failed", zap.Error(err))
		}
		return
	}

	handler := mcp.NewHTTPServer(logger, s, serviceInstance, sseServer, registry, mcp.HTTPServerConfig{
		Endpoint: *endpoint,
		PageSize: settings.PageSize,
	})
	if err := serve(logger, *httpAddr, handler); err != nil {
		logger.Fatal("http server failed", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// newStore returns nil when credentials are missing; the service then runs
// in its unconfigured mode.
func newStore(logger *zap.Logger) (assetstore.Store, error) {
	creds, err := config.ParseCredentials()
	if err != nil {
		return nil, err
	}
	if missing := creds.Missing(); len(missing) > 0 {
		logger.Warn("asset store credentials missing", zap.Strings("missing", missing))
		return nil, nil
	}
	return assetstore.NewCloudinary(creds.CloudName, creds.APIKey, creds.APISecret)
}

func serve(logger *zap.Logger, addr string, handler http.Handler) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting HTTP server", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down HTTP server")
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
