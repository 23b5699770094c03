package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/inkpress/printflow/internal/config"
	"github.com/inkpress/printflow/internal/database"
	"github.com/inkpress/printflow/internal/domain"
	"github.com/inkpress/printflow/internal/handler"
	"github.com/inkpress/printflow/internal/logger"
	"github.com/inkpress/printflow/internal/notify"
	"github.com/inkpress/printflow/internal/repository"
	"github.com/nats-io/nats.go"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "printflow",
		Usage: "Print shop order workflow tracker",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:     "database-url",
				Aliases:  []string{"d"},
				Value:    config.DefaultDatabaseURL,
				Usage:    "PostgreSQL database URL",
				EnvVars:  []string{"DATABASE_URL"},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "nats-url",
				Value:   config.DefaultNATSURL,
				Usage:   "NATS server URL for live notification push (optional)",
				EnvVars: []string{"NATS_URL"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
				},
				Action: runServe,
			},
			{
				Name:   "seed",
				Usage:  "Create demo users for each role",
				Action: runSeed,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}
	databaseURL := c.String("database-url")
	natsURL := c.String("nats-url")

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	var pub notify.Publisher
	if natsURL != "" {
		nc, err := nats.Connect(natsURL,
			nats.Name("printflow"),
			nats.MaxReconnects(-1),
		)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer nc.Drain()
		pub = nc
		slog.Info("notification push enabled", "nats_url", natsURL)
	}

	dispatcher := notify.NewDispatcher(
		repository.NewNotificationRepository(db.Pool()),
		pub,
		slog.Default(),
		config.DefaultNotifyQueueSize,
	)
	defer dispatcher.Close()

	h := handler.New(db.Pool(), dispatcher)

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runSeed(c *cli.Context) error {
	ctx := c.Context
	databaseURL := c.String("database-url")

	db, err := database.New(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	userRepo := repository.NewUserRepository(db.Pool())

	for _, role := range domain.AllRoles {
		user := &domain.User{
			Email:    fmt.Sprintf("%s@printflow.local", role),
			Name:     fmt.Sprintf("Demo %s", role),
			Role:     role,
			Token:    uuid.NewString(),
			IsActive: true,
		}
		created, err := userRepo.Create(ctx, user)
		if err != nil {
			return fmt.Errorf("seed user for role %s: %w", role, err)
		}
		slog.Info("seeded user",
			"user_id", created.ID,
			"role", created.Role,
			"token", created.Token,
		)
	}

	return nil
}
