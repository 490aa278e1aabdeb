// This is the main entry point of the Tailored API application.
// It's responsible for initializing configuration, the in-memory store,
// services and handlers, setting up the HTTP router and middleware,
// and starting the HTTP server. It also handles graceful shutdown.
//
// @title Tailored API
// @version 1.0
// @description Token-authenticated API whose responses are shaped by the caller's package tier.
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	// `godotenv` loads environment variables from a .env file, useful for development.
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/user/tierapi-go/config"
)

func main() {
	app := &cli.App{
		Name:  "tierapi",
		Usage: "serve the tier-tailored API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "env-file",
				Value:   ".env",
				Usage:   "dotenv file loaded before reading the environment",
				EnvVars: []string{"ENV_FILE"},
			},
		},
		// Running without a subcommand is the same as `serve`.
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP server",
				Action: serve,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// newServer leaves the write deadline a few seconds past requestTimeout so the
// timeout middleware can still send its 504.
func newServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: requestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func serve(cCtx *cli.Context) error {
	// Load .env file
	// In production, variables are usually set directly and the file is absent.
	if err := godotenv.Load(cCtx.String("env-file")); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	handler, err := buildHandler(cfg)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%s", cfg.Server.Port)

	// Create server with graceful shutdown
	srv := newServer(addr, handler)

	// The server runs in its own goroutine so this one can wait for a shutdown signal.
	serverErr := make(chan error, 1)
	go func() {
		log.Printf("%s starting on %s", cfg.App.Name, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Println("Server stopped gracefully")
	return nil
}
