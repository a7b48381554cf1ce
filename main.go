package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backend-service/api"
	"backend-service/app"
	"backend-service/buildinfo"
	"backend-service/config"
	"backend-service/database"
	"backend-service/server"
	"backend-service/services"
	"backend-service/utils"
)

const connectTimeout = 10 * time.Second

func main() {
	// Set application start time for accurate uptime tracking
	buildinfo.SetStartTime(time.Now())
	utils.InitLogging(utils.LevelInfo)

	utils.LogInfo("Starting application", buildinfo.GetInfo().String())

	if err := loadEnvFiles(); err != nil {
		log.Fatalf("Failed to load environment files: %v", err)
	}

	// A bad PORT stops us here, before any socket is bound
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	level, _ := utils.ParseLevel(cfg.LogLevel) // validated by loadConfig
	utils.SetLevel(level)

	// Subscribe before binding so a signal during startup still drains cleanly
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	lifecycle := services.NewLifecycle()
	srv, ready, err := setup(cfg, lifecycle)
	if err != nil {
		_ = lifecycle.Shutdown()
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := serve(srv, ready, lifecycle, c); err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println("Fiber was successful shutdown.")
}

// serve starts srv and blocks until a signal arrives on signals or the serve
// loop fails, then runs the cleanup tasks.
func serve(srv *server.Server, ready *api.ReadyState, lifecycle *services.Lifecycle, signals <-chan os.Signal) error {
	if err := srv.Start(); err != nil {
		_ = lifecycle.Shutdown()
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	ready.MarkReady()

	select {
	case sig := <-signals:
		utils.LogInfo("Received signal, gracefully shutting down...", "signal", sig.String())
	case err, ok := <-srv.Errors():
		ready.MarkNotReady()
		_ = lifecycle.Shutdown()
		if !ok {
			err = errors.New("serve loop exited")
		}
		return fmt.Errorf("HTTP server stopped unexpectedly: %w", err)
	}

	ready.MarkNotReady()
	utils.LogInfo("Running cleanup tasks...")
	if err := lifecycle.Shutdown(); err != nil {
		return fmt.Errorf("error during shutdown: %w", err)
	}
	return nil
}

// setup connects the configured backing services and builds the server.
// The returned server is not yet listening.
func setup(cfg *config.Config, lifecycle *services.Lifecycle) (*server.Server, *api.ReadyState, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	conns, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	lifecycle.OnShutdown("database", conns.Close)

	ready := api.NewReadyState()
	application := app.New(cfg, conns.Checks(), ready)

	srv := server.New(application, cfg.Addr())
	lifecycle.OnShutdown("http", func() error {
		return srv.Shutdown(cfg.ShutdownTimeout)
	})

	return srv, ready, nil
}
