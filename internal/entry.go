// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/showcase/internal/api"
	"github.com/starford/showcase/internal/catalog"
	"github.com/starford/showcase/internal/kvstore"
	"github.com/starford/showcase/internal/mcpserver"
	"github.com/starford/showcase/internal/models"
	"github.com/starford/showcase/internal/projectservice"
	"github.com/starford/showcase/internal/site"
	"github.com/starford/showcase/internal/sse"
	"github.com/starford/showcase/internal/storage"
)

const sseKeepAlive = 30 * time.Second

func newApplication(opts []Option) (*application, error) {
	app := &application{
		version: "dev",
		out:     os.Stdout,
		logOut:  os.Stdout,
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

func (a *application) newLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(a.logOut, &slog.HandlerOptions{
		Level: a.config.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

// newPipeline wires the local loader, the optional remote loader and the
// hide set from cfg.
func newPipeline(cfg *Config, logger *slog.Logger) (*catalog.Pipeline, *catalog.Loader) {
	hide := cfg.Catalog.HideSet()
	local := catalog.NewLoader(cfg.Catalog.Source,
		catalog.WithHideSet(hide),
		catalog.WithLogger(logger))

	p := &catalog.Pipeline{
		Local:        local,
		Remote:       catalog.Empty,
		Hide:         hide,
		Fallback:     local.Fallback,
		LocalTimeout: cfg.Catalog.Timeout,
		Logger:       logger,
	}
	if cfg.Remote.Enabled {
		p.Remote = catalog.NewRemoteLoader(cfg.Remote.Endpoint,
			catalog.WithRemoteHideSet(hide),
			catalog.WithToken(cfg.Remote.Token),
			catalog.WithRemoteLogger(logger))
		p.RemoteTimeout = cfg.Remote.Timeout
	}
	return p, local
}

func openState(cfg *Config, logger *slog.Logger) (kvstore.Store, func(), error) {
	if cfg.State.Path == "" {
		logger.Info("visitor state kept in memory")
		return kvstore.NewMemory(), func() {}, nil
	}
	db, err := kvstore.Open(cfg.State.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init state: %w", err)
	}
	return db, func() { _ = db.Close() }, nil
}

// Run starts the preview server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := app.newLogger()

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("catalog_source", cfg.Catalog.Source),
		slog.Bool("remote_enabled", cfg.Remote.Enabled),
		slog.String("state_path", cfg.State.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	state, closeState, err := openState(cfg, logger)
	if err != nil {
		return err
	}
	defer closeState()

	pipeline, local := newPipeline(cfg, logger)
	svc := projectservice.NewService(pipeline, logger)
	if _, err := svc.Reload(ctx); err != nil {
		logger.Error("initial catalog load failed", slog.String("error", err.Error()))
	}

	broker := sse.NewBroker(sseKeepAlive)
	defer broker.Close()

	sessions := api.NewSessions(svc, state, logger)
	appRouter := api.NewRouter(svc, sessions, api.PageConfig{
		Title: cfg.Site.Title,
		Theme: cfg.Site.Theme,
	}, broker)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !svc.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"catalog unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/", appRouter)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Reload on catalog edits and tell open pages.
	if cfg.Catalog.Watch && !local.IsRemote() {
		g.Go(func() error {
			err := catalog.Watch(gCtx, local.Source(), logger, func() {
				snap, err := svc.Reload(gCtx)
				if err != nil {
					logger.Warn("catalog reload failed", slog.String("error", err.Error()))
					broker.PublishCatalogFailed(err)
					return
				}
				broker.PublishCatalogUpdated(snap.Version, len(snap.Projects))
			})
			if err != nil {
				logger.Warn("catalog watcher disabled", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		// Ends open event streams so the watcher and server goroutines can exit.
		broker.Close()

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group so the watcher stops alongside the server.
var errShutdown = errors.New("shutdown")

// Build loads the catalog once and writes the static site to outDir
// (cfg.Site.OutDir when empty).
func Build(ctx context.Context, outDir string, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := app.newLogger()
	if outDir == "" {
		outDir = cfg.Site.OutDir
	}

	out, err := storage.NewFS(outDir)
	if err != nil {
		return fmt.Errorf("init output: %w", err)
	}
	siteOpts := site.Options{Title: cfg.Site.Title, Theme: cfg.Site.Theme, Logger: logger}

	pipeline, _ := newPipeline(cfg, logger)
	projects, err := pipeline.Load(ctx)
	if err != nil {
		if _, ferr := site.BuildFailure(out, siteOpts); ferr != nil {
			logger.Error("failure page not written", slog.String("error", ferr.Error()))
		}
		return fmt.Errorf("build: %w", err)
	}

	res, err := site.Build(out, projects, siteOpts)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}
	logger.Info("site built",
		slog.String("out", out.Root()),
		slog.Int("projects", len(projects)),
		slog.Int("written", len(res.Written)),
		slog.Int("unchanged", len(res.Unchanged)))
	return nil
}

// List loads the catalog once and prints the projects matching st.
func List(ctx context.Context, st models.FilterState, asJSON bool, opts ...Option) error {
	app, err := newApplication(append([]Option{WithLogOutput(os.Stderr)}, opts...))
	if err != nil {
		return err
	}
	if err := st.Validate(); err != nil {
		return fmt.Errorf("list: %w", err)
	}
	logger := app.newLogger()

	pipeline, _ := newPipeline(app.config, logger)
	projects, err := pipeline.Load(ctx)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	visible := catalog.Visible(projects, st)

	if asJSON {
		enc := json.NewEncoder(app.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(visible); err != nil {
			return fmt.Errorf("list: encode: %w", err)
		}
		return nil
	}

	w := tabwriter.NewWriter(app.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tCATEGORY\tUPDATED\tNAME")
	for _, p := range visible {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Status, p.Category, catalog.FormatDate(p.LastUpdated), p.Name)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("list: %w", err)
	}
	fmt.Fprintf(app.out, "\n%d / %d shown\n", len(visible), len(projects))
	return nil
}

// ServeMCP loads the catalog and serves the MCP tools on stdio. Logs go to
// stderr since stdout carries the protocol.
func ServeMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(append([]Option{WithLogOutput(os.Stderr)}, opts...))
	if err != nil {
		return err
	}
	logger := app.newLogger()

	pipeline, _ := newPipeline(app.config, logger)
	svc := projectservice.NewService(pipeline, logger)
	if _, err := svc.Reload(ctx); err != nil {
		return fmt.Errorf("mcp: %w", err)
	}
	return mcpserver.New(svc, app.version).ServeStdio()
}
