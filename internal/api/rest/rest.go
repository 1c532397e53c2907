package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"jobguard/internal/coordinator"
	"jobguard/internal/guard"
	"jobguard/internal/scheduler"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	nilArgErr   = "nil %v not allowed"
	emptyArgErr = "empty %v not allowed"
)

// RestApi defines methods to handle rest server
type RestApi interface {
	StartServer()
	GracefulStopServer()
}

type apiDetails struct {
	logger     *slog.Logger
	server     *http.Server
	gate       *guard.Gate
	coord      coordinator.Coordinator
	sched      *scheduler.Scheduler
	promReg    *prometheus.Registry
	serverPort string
}

// NewApi creates new api instance, otherwise returns error
func NewApi(logger *slog.Logger, port string, gate *guard.Gate, coord coordinator.Coordinator, sched *scheduler.Scheduler, promReg *prometheus.Registry) (RestApi, error) {
	if logger == nil {
		return nil, fmt.Errorf(nilArgErr, "logger")
	}

	if port == "" {
		return nil, fmt.Errorf(emptyArgErr, "port")
	}

	if gate == nil {
		return nil, fmt.Errorf(nilArgErr, "execution gate")
	}

	if coord == nil {
		return nil, fmt.Errorf(nilArgErr, "lock coordinator")
	}

	api := &apiDetails{
		logger:     logger,
		gate:       gate,
		coord:      coord,
		sched:      sched,
		promReg:    promReg,
		serverPort: port,
	}

	router := api.setupRouter()
	api.server = &http.Server{
		Addr:    fmt.Sprintf("0.0.0.0:%v", port),
		Handler: router,
	}

	return api, nil
}

// StartServer starts the rest server
// it listens for a kill signal to stop the server gracefully
func (api *apiDetails) StartServer() {
	serverAddr := api.serverPort
	if !strings.Contains(serverAddr, ":") {
		serverAddr = ":" + serverAddr
	}

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: api.setupRouter(),
	}

	serverErrChan := make(chan error, 1)

	go func() {
		api.logger.Info("Starting server",
			"address", serverAddr,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("server listen error: %w", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrChan:
		api.logger.Error("Server startup failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		api.logger.Info("Shutdown signal received",
			"signal", sig,
		)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Stop triggering and let in-flight runs drain
		if api.sched != nil {
			if err := api.sched.Stop(ctx); err != nil {
				api.logger.Error("Failed to stop scheduler", "error", err)
			}
		}

		if err := srv.Shutdown(ctx); err != nil {
			api.logger.Error("Server shutdown failed", "error", err)
		}

		api.logger.Info("Server stopped")
	}
}

// GracefulStopServer stops the rest server gracefully
func (a *apiDetails) GracefulStopServer() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
	}
	a.logger.Info("Server exiting")
}
