// main is the entry point of the academy registry.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Build the storage backend (Go maps or in-memory SQLite)
//  4. Build the academy and subscribe to NewStudent notifications
//  5. Register all commands
//  6. Serve commands from stdin until EOF or an OS signal
//  7. Drop the in-memory state and exit
//
// RUNNING:
//
//	echo "add-user alice Alice student" | go run ./cmd/academy --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/academy
package main

import (
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aanand-mishra/academy-registry/internal/academy"
	"github.com/aanand-mishra/academy-registry/internal/cli"
	"github.com/aanand-mishra/academy-registry/internal/cli/handlers/participant"
	"github.com/aanand-mishra/academy-registry/internal/config"
	"github.com/aanand-mishra/academy-registry/internal/events"
	"github.com/aanand-mishra/academy-registry/internal/storage/sqlite"
)

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	// Logs go to stderr; stdout carries the JSON command responses.
	log := setupLogger(cfg.Env)

	log.Info("starting academy",
		slog.String("env", cfg.Env),
		slog.String("backend", cfg.Storage.Backend),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	stores, closeStores, err := openStores(cfg)
	if err != nil {
		log.Error("failed to initialise storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStores()

	// ── 4. Academy + notifications ────────────────────────────────────────
	bus := events.NewBus(log)
	if err := bus.Subscribe(func(e events.NewStudent) error {
		log.Info("new student",
			slog.String("event_id", e.ID.String()),
			slog.String("participant", e.Participant),
		)
		return nil
	}); err != nil {
		log.Error("failed to subscribe", slog.String("error", err.Error()))
		os.Exit(1)
	}

	reg := academy.New(stores, bus, log)

	// ── 5. Register Commands ──────────────────────────────────────────────
	//   add-user <id> <name...> <teacher|student>
	//   change-name <id> <name...>
	//   rate-teacher <id>     rate-student <id>
	//   teacher-rating <id>   student-rating <id>
	//   user <id>   users   student-count
	mux := cli.NewMux(log)
	participant.Register(mux, reg)

	// ── 6. Serve ──────────────────────────────────────────────────────────
	// Serve blocks on stdin, so it runs in a goroutine and main waits for
	// whichever comes first: end of input or a shutdown signal.
	served := make(chan error, 1)
	go func() {
		served <- mux.Serve(os.Stdin, os.Stdout)
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-served:
		if err != nil {
			log.Error("failed to read commands", slog.String("error", err.Error()))
			closeStores()
			os.Exit(1)
		}
		log.Info("input closed")
	case <-done:
		log.Info("shutdown signal received")
	}

	// ── 7. Shutdown ───────────────────────────────────────────────────────
	log.Info("academy stopped",
		slog.Uint64("students_registered", reg.StudentCount()),
	)
}

// openStores builds the backend chosen by cfg. The returned close func
// releases it; for SQLite that drops the in-memory database.
func openStores(cfg *config.Config) (academy.Stores, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		db, err := sqlite.New(cfg)
		if err != nil {
			return academy.Stores{}, nil, err
		}
		stores := academy.Stores{
			Users:          db,
			TeacherRatings: db.TeacherRatings(),
			StudentRatings: db.StudentRatings(),
		}
		return stores, func() { db.Close() }, nil
	default:
		return academy.MemoryStores(), func() {}, nil
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	return slog.New(loggerHandler(env, os.Stderr))
}

func loggerHandler(env string, w io.Writer) slog.Handler {
	switch env {
	case "prod":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	case "staging":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	default: // "dev" and anything unrecognised
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
}
