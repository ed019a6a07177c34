package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"booking-assistant/internal/calendar"
	"booking-assistant/internal/calendar/google"
	"booking-assistant/internal/calendar/memory"
	"booking-assistant/internal/config"
	bookingCreate "booking-assistant/internal/http-server/handlers/bookings/create"
	bookingGet "booking-assistant/internal/http-server/handlers/bookings/get"
	dateGet "booking-assistant/internal/http-server/handlers/dates/get"
	departmentResolve "booking-assistant/internal/http-server/handlers/departments/resolve"
	holidayCreate "booking-assistant/internal/http-server/handlers/holidays/create"
	holidayDelete "booking-assistant/internal/http-server/handlers/holidays/delete"
	holidayGet "booking-assistant/internal/http-server/handlers/holidays/get"
	slotGet "booking-assistant/internal/http-server/handlers/slots/get"
	slotNext "booking-assistant/internal/http-server/handlers/slots/next"
	slotValidate "booking-assistant/internal/http-server/handlers/slots/validate"
	"booking-assistant/internal/lock"
	svc "booking-assistant/internal/service"
	"booking-assistant/internal/slots"
	"booking-assistant/internal/storage/postgres"
	"booking-assistant/pkg/handlers/slogpretty"
	"booking-assistant/pkg/middleware/mwLogger"
	"booking-assistant/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"google.golang.org/api/option"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type lockCloser interface {
	lock.Locker
	Close() error
}

func main() {

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting booking API", slog.String("env", cfg.Env), slog.String("backend", cfg.Storage.Backend))
	log.Debug("Debug messages are enabled")

	settings, err := cfg.Business.Settings()
	if err != nil {
		log.Error("Invalid business settings", sl.Err(err))
		os.Exit(1)
	}

	cal, err := slots.NewBusinessCalendar(settings)
	if err != nil {
		log.Error("Invalid business calendar", sl.Err(err))
		os.Exit(1)
	}

	ctx := context.Background()

	backend, storage, err := setupBackend(ctx, cfg, settings)
	if err != nil {
		log.Error("Failed to init calendar backend", sl.Err(err))
		os.Exit(1)
	}

	locker, err := setupLocker(cfg.Redis)
	if err != nil {
		log.Error("Failed to init redis lock", sl.Err(err))
		os.Exit(1)
	}

	opts := svc.Options{
		DefaultCalendarID: cfg.Business.DefaultCalendarID,
		MaxLookaheadDays:  cfg.Business.MaxLookaheadDays,
		LockTTL:           cfg.Redis.LockTTL,
	}
	for _, d := range cfg.Departments {
		opts.Departments = append(opts.Departments, svc.Department{
			Name:       d.Name,
			CalendarID: d.CalendarID,
			Keywords:   d.Keywords,
		})
	}
	if storage != nil {
		opts.Holidays = storage
	}

	service := svc.NewService(log, cal, backend, locker, opts)

	if err := service.LoadHolidays(ctx); err != nil {
		log.Error("Failed to load holidays", sl.Err(err))
		os.Exit(1)
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwLogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(CORS)

	// Slots
	router.Get("/slots", slotGet.New(log, service))
	router.Post("/slots/validate", slotValidate.New(log, service))
	router.Get("/slots/next", slotNext.New(log, service))

	// Bookings
	router.Post("/bookings", bookingCreate.New(log, service))
	router.Get("/bookings", bookingGet.New(log, service))

	// Holidays
	router.Get("/holidays", holidayGet.New(log, service))
	router.Post("/holidays", holidayCreate.New(log, service))
	router.Delete("/holidays/{date}", holidayDelete.New(log, service))

	router.Get("/dates/{date}", dateGet.New(log, service))
	router.Get("/departments/resolve", departmentResolve.New(log, service))

	serv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErrCh := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", slog.String("addr", cfg.Address))
		if err := serv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErrCh:
		if err != nil {
			log.Error("HTTP server stopped unexpectedly", sl.Err(err))
		} else {
			log.Info("HTTP server stopped gracefully")
		}
	}

	shutdownTimeout := cfg.HTTPServer.ShutdownTimeout

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Shutting down HTTP server", slog.String("timeout", shutdownTimeout.String()))

	if err := serv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", sl.Err(err))
	} else {
		log.Info("Server shutdown complete")
	}

	if storage != nil {
		if err := storage.Close(); err != nil {
			log.Error("Failed to close storage", sl.Err(err))
		} else {
			log.Info("Storage closed")
		}
	}

	if lc, ok := locker.(lockCloser); ok {
		if err := lc.Close(); err != nil {
			log.Error("Failed to close locker", sl.Err(err))
		} else {
			log.Info("Locker closed")
		}
	}

	log.Info("Shutdown finished, server stopped")

}

// setupBackend returns the calendar backend and, for postgres, the storage
// that also persists holidays.
func setupBackend(ctx context.Context, cfg *config.Config, settings slots.Settings) (calendar.Backend, *postgres.Storage, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return memory.New(), nil, nil
	case config.BackendPostgres:
		storage, err := postgres.New(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := storage.Migrate(ctx); err != nil {
			storage.Close()
			return nil, nil, err
		}
		return storage, storage, nil
	case config.BackendGoogle:
		var opts []option.ClientOption
		if cfg.Google.CredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.Google.CredentialsFile))
		}
		if cfg.Google.APIKey != "" {
			opts = append(opts, option.WithAPIKey(cfg.Google.APIKey))
		}
		backend, err := google.New(ctx, settings.Location, opts...)
		if err != nil {
			return nil, nil, err
		}
		return backend, nil, nil
	}

	return nil, nil, fmt.Errorf("unknown calendar backend %q", cfg.Storage.Backend)
}

func setupLocker(cfg config.Redis) (lock.Locker, error) {
	if cfg.Addr == "" {
		return lock.NewLocalLock(), nil
	}
	return lock.NewRedisLock(cfg.Addr, cfg.Password, cfg.DB)
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
