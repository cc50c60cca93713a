package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := run(logger); err != nil {
		log.Fatalf("%v", err)
	}
}

// run owns every resource, so its defers have finished by the time main exits.
func run(logger *slog.Logger) error {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	gormDB, err := openDatabase(configs)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		return fmt.Errorf("error wiring application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("Failed to close application", "error", err)
		}
	}()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return fmt.Errorf("failed to start jobs: %w", err)
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return startWebServer(ctx, app, configs.HTTPPort)
}

// openDatabase returns nil when no database is configured.
func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	if !configs.UsesDatabase() {
		return nil, nil
	}
	db, err := gorm.Open(postgresdriver.Open(configs.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}
	if err = postgres.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// startWebServer serves until ctx is cancelled or the listener fails, then
// shuts the server down gracefully.
func startWebServer(ctx context.Context, app *cmd.CompositionRoot, port string) error {
	e, err := httpin.NewRouter(app.CreateHTTPServer(), app.Metrics())
	if err != nil {
		return fmt.Errorf("error building router: %w", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var result error
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			result = fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		result = errors.Join(result, fmt.Errorf("http shutdown: %w", err))
	}
	return result
}
