package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"brecho/internal/domain/employees"
	"brecho/internal/domain/payroll"
	"brecho/internal/domain/tax"
	"brecho/internal/domain/timeclock"
	"brecho/internal/platform/config"
	"brecho/internal/platform/db"
	"brecho/internal/platform/metrics"
	"brecho/internal/transport/http/api"
	employeehandler "brecho/internal/transport/http/handlers/employees"
	payrollhandler "brecho/internal/transport/http/handlers/payroll"
	simulatorhandler "brecho/internal/transport/http/handlers/simulators"
	timeclockhandler "brecho/internal/transport/http/handlers/timeclock"
	"brecho/internal/transport/http/middleware"
	"brecho/internal/transport/http/shared"
	"brecho/migrations"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Tables  *tax.Tables
	Metrics *metrics.Collector
	Router  http.Handler
}

// New wires the application. Without DATABASE_URL the employee and time clock
// modules keep their records in memory.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	tables, err := loadTables(cfg.TaxTablesFile)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Tables: tables}
	if cfg.MetricsEnabled {
		app.Metrics = metrics.New()
	}

	var (
		employeeStore employees.StoreAPI
		clockStore    timeclock.StoreAPI
	)
	if cfg.HasDatabase() {
		pool, err := db.ConnectWithRetry(ctx, cfg.DatabaseURL, cfg.DBConnectTimeout)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		if cfg.RunMigrations {
			if err := db.Migrate(ctx, pool, migrationSource(cfg.MigrationsDir)); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		app.DB = pool
		employeeStore = employees.NewStore(pool)
		clockStore = timeclock.NewStore(pool)
	} else {
		slog.Warn("DATABASE_URL not set, employee and time clock records are kept in memory")
		employeeStore = employees.NewMemoryStore(time.Now)
		clockStore = timeclock.NewMemoryStore(time.Now)
	}

	app.Router = app.routes(
		employees.NewService(employeeStore),
		timeclock.NewService(clockStore, time.Now),
	)
	return app, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func (a *App) routes(employeeSvc *employees.Service, clockSvc *timeclock.Service) http.Handler {
	cfg := a.Config
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Metrics))
	router.Use(chimw.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if a.DB != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := a.DB.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if a.Metrics != nil {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, a.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
		r.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

		payrollhandler.NewHandler(payroll.NewCalculator(a.Tables), employeeSvc, clockSvc, a.Metrics).RegisterRoutes(r)
		simulatorhandler.NewHandler(a.Tables, a.Metrics).RegisterRoutes(r)
		employeehandler.NewHandler(employeeSvc).RegisterRoutes(r)
		timeclockhandler.NewHandler(clockSvc).RegisterRoutes(r)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			api.NotFound(w, "route not found", middleware.GetRequestID(r.Context()))
		})
	})

	if info, err := os.Stat(cfg.FrontendDir); err == nil && info.IsDir() {
		router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})
	}
	return router
}

// Run serves until SIGINT or SIGTERM, then drains in-flight requests.
func Run() error {
	cfg := config.Load()
	config.InitLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("brecho server listening", "addr", cfg.Addr, "env", cfg.Environment, "database", cfg.HasDatabase(), "taxYear", app.Tables.Year)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loadTables(path string) (*tax.Tables, error) {
	if path == "" {
		return tax.DefaultTables(), nil
	}
	tables, err := tax.LoadTables(path)
	if err != nil {
		return nil, fmt.Errorf("tax tables: %w", err)
	}
	slog.Info("tax tables loaded", "file", path, "year", tables.Year)
	return tables, nil
}

// migrationSource prefers an on-disk directory so migrations can be patched
// without a rebuild, and falls back to the embedded copy.
func migrationSource(dir string) fs.FS {
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return os.DirFS(dir)
	}
	return migrations.FS
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		api.NotFound(w, "route not found", middleware.GetRequestID(r.Context()))
		return
	}

	path := filepath.Join(h.staticPath, filepath.Clean("/"+r.URL.Path))
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	slog.Warn("static file lookup failed", "path", r.URL.Path, "client", shared.ClientIP(r), "err", err)
	http.NotFound(w, r)
}
