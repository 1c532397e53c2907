package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"jobguard/config"
	"jobguard/internal/api/rest"
	"jobguard/internal/coordinator"
	"jobguard/internal/guard"
	"jobguard/internal/metrics"
	"jobguard/internal/pubsub"
	"jobguard/internal/runner"
	"jobguard/internal/scheduler"
	"jobguard/internal/store"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// @title Jobguard API
// @version 1.0
// @description Distributed job lock coordinator API
// @termsOfService http://swagger.io/terms/

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the jobguard scheduler and REST API server",
	Long: `This command loads the configured jobs, starts the cron trigger
source and serves the REST API for triggering jobs and inspecting locks.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Create logger instance first for early logging
		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))

		logger.Info("Starting jobguard",
			"version", "1.0",
			"command", "serve",
		)

		cfg, err := config.LoadConfig()
		if err != nil {
			logger.Error("Failed to load configuration",
				"error", err,
				"error_type", fmt.Sprintf("%T", err),
			)
			os.Exit(1)
		}

		// Recreate the logger at the configured level
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: cfg.LogLevel,
		}))

		// Create the remote and fallback lock stores
		redisOpts, err := goredis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Error("Failed to parse Redis URL",
				"error", err,
				"redis_url", cfg.RedisURL,
			)
			os.Exit(1)
		}
		redisClient := goredis.NewClient(redisOpts)

		remote, err := store.NewRedisStore(logger, redisClient, time.Duration(cfg.StoreTimeoutMs)*time.Millisecond)
		if err != nil {
			logger.Error("Failed to create Redis lock store", "error", err)
			os.Exit(1)
		}
		fallback := store.NewLocalStore()

		// Create the lock coordinator
		coord, err := coordinator.New(logger, remote, fallback)
		if err != nil {
			logger.Error("Failed to create lock coordinator", "error", err)
			os.Exit(1)
		}

		// Create run event publisher when brokers are configured
		var publisher pubsub.Publisher
		if len(cfg.KafkaBrokers) > 0 {
			publisher, err = pubsub.NewKafkaWatermillPublisher(logger, cfg.KafkaBrokers)
			if err != nil {
				logger.Error("Failed to create publisher",
					"error", err,
					"kafka_brokers", cfg.KafkaBrokers,
				)
				os.Exit(1)
			}
		}

		// Bind configured jobs to their lock options
		registry := guard.NewRegistry()
		for _, job := range cfg.Jobs {
			opts := coordinator.LockOptions{
				Key:        job.Key,
				TTL:        time.Duration(job.TTLSeconds) * time.Second,
				MaxRetries: job.MaxRetries,
				RetryDelay: time.Duration(job.RetryDelayMs) * time.Millisecond,
			}
			if err := registry.Register(opts, runner.NewCommandJob(logger, job.Key, job.Command)); err != nil {
				logger.Error("Failed to register job",
					"key", job.Key,
					"error", err,
				)
				os.Exit(1)
			}
		}

		gate, err := guard.NewGate(logger, coord, registry, publisher)
		if err != nil {
			logger.Error("Failed to create execution gate", "error", err)
			os.Exit(1)
		}

		// Create the cron trigger source
		sched, err := scheduler.New(logger, gate)
		if err != nil {
			logger.Error("Failed to create scheduler", "error", err)
			os.Exit(1)
		}
		for _, job := range cfg.Jobs {
			if job.Schedule == "" {
				continue
			}
			if err := sched.Add(job.Key, job.Schedule); err != nil {
				logger.Error("Failed to schedule job",
					"key", job.Key,
					"schedule", job.Schedule,
					"error", err,
				)
				os.Exit(1)
			}
		}
		sched.Start()

		// Create a new rest api instance
		api, err := rest.NewApi(logger, cfg.ServerPort, gate, coord, sched, metrics.NewRegistry())
		if err != nil {
			logger.Error("Failed to create new rest api",
				"error", err,
				"server_port", cfg.ServerPort,
			)
			os.Exit(1)
		}

		// Start the rest server, blocks until shutdown
		api.StartServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
