package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"mrp/internal/config"
	"mrp/internal/infrastructure"
	"mrp/internal/services"
	handlers "mrp/internal/transport/http"
)

// Version is set at build time with -ldflags "-X mrp/internal/app.Version=..."
var Version = "dev"

// Application represents the main application container
type Application struct {
	Config     *config.Config
	Logger     *slog.Logger
	Services   *ServiceContainer
	Router     *handlers.Router
	Dispatcher *handlers.Dispatcher
	Mux        *chi.Mux
	Server     *http.Server
	Registry   *prometheus.Registry
	Tracing    *infrastructure.Tracing
}

// ServiceContainer holds all application services
type ServiceContainer struct {
	Users         *services.UserStore
	Tokens        *services.TokenStore
	Auth          *services.AuthService
	Authenticator *services.Authenticator
	Media         *services.MediaService
	Favorites     *services.FavoriteService
	Profiles      *services.UserService
}

// Option adjusts an Application before its router is built.
type Option func(*options)

type options struct {
	authOptions []services.AuthOption
}

// WithAuthOptions passes options through to the auth service.
func WithAuthOptions(opts ...services.AuthOption) Option {
	return func(o *options) {
		o.authOptions = append(o.authOptions, opts...)
	}
}

// New wires stores, services, controllers, the dispatcher and the HTTP
// server. Nothing is listening until Run or Serve is called.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &Application{
		Config: cfg,
		Logger: logger,
	}

	tracing, err := infrastructure.NewTracing(cfg.Tracing, Version, nil, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	a.Tracing = tracing

	a.initializeServices(o)
	a.setupControllers()
	a.setupDispatcher()
	a.setupRouter()
	a.createServer()

	return a, nil
}

func (a *Application) initializeServices(o options) {
	users := services.NewUserStore()
	tokens := services.NewTokenStore()
	favorites := services.NewFavoriteStore()
	media := services.NewMemoryMediaRepository()

	a.Services = &ServiceContainer{
		Users:         users,
		Tokens:        tokens,
		Auth:          services.NewAuthService(users, tokens, a.Logger, o.authOptions...),
		Authenticator: services.NewAuthenticator(users, tokens),
		Media:         services.NewMediaService(media, a.Logger),
		Favorites:     services.NewFavoriteService(favorites, media, a.Logger),
		Profiles:      services.NewUserService(users, favorites, a.Logger),
	}
}

// setupControllers fills the prefix table. It is read-only once serving
// starts.
func (a *Application) setupControllers() {
	r := handlers.NewRouter()
	r.Register("/users", handlers.NewUserController(a.Services.Profiles, a.Services.Authenticator))
	r.Register("/auth", handlers.NewAuthController(a.Services.Auth, a.Logger))
	r.Register("/media", handlers.NewMediaController(a.Services.Media, a.Services.Authenticator, a.Logger))
	r.Register("/favorite", handlers.NewFavoriteController(a.Services.Favorites, a.Services.Authenticator, a.Logger))
	r.Register("/ping", handlers.NewPingController())
	a.Router = r
}

func (a *Application) setupDispatcher() {
	opts := []handlers.DispatcherOption{handlers.WithTracer(a.Tracing.Tracer())}

	if a.Config.Metrics.Enabled {
		a.Registry = prometheus.NewRegistry()
		a.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts = append(opts, handlers.WithMetrics(handlers.NewMetrics(a.Registry)))
	}

	a.Dispatcher = handlers.NewDispatcher(a.Router, a.Logger, opts...)
}

// setupRouter builds the outer mux. Everything except the metrics endpoint
// goes to the dispatcher, which owns routing, 404 and 405.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(infrastructure.TraceIDMiddleware)

	if a.Registry != nil {
		r.Method(http.MethodGet, a.Config.Metrics.Path, promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{
			Registry: a.Registry,
		}))
	}

	r.Handle("/*", a.Dispatcher)

	a.Mux = r
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Server.Addr(),
		Handler:        a.Mux,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(a.Logger.Handler(), slog.LevelError),
	}
}

// Handler returns the root HTTP handler
func (a *Application) Handler() http.Handler {
	return a.Mux
}

// Routes lists the registered controller prefixes
func (a *Application) Routes() []handlers.Route {
	return a.Router.Routes()
}

// Run listens on the configured address and serves until ctx is cancelled
// or SIGINT/SIGTERM arrives.
func (a *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.Server.Addr, err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully.
func (a *Application) Serve(ctx context.Context, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		prefixes := make([]string, 0, a.Router.Len())
		for _, route := range a.Routes() {
			prefixes = append(prefixes, route.Prefix)
		}
		a.Logger.InfoContext(gctx, "server listening",
			slog.String("address", ln.Addr().String()),
			slog.String("version", Version),
			slog.Any("routes", prefixes),
			slog.Bool("metrics", a.Registry != nil),
			slog.Bool("tracing", a.Tracing.Enabled()))

		if err := a.Server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.Stop(context.WithoutCancel(ctx))
	})

	return g.Wait()
}

// Stop gracefully stops the server within Server.ShutdownTimeout and flushes
// pending spans.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if err := a.Tracing.Shutdown(shutdownCtx); err != nil {
		a.Logger.ErrorContext(ctx, "error shutting down tracing", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "shutdown complete")
	return nil
}
