// Varasto - container inventory service
//
// This is the main entry point for the varasto web application: named
// containers with a fixed capacity and a fill level, managed through HTML
// forms, with an optional SQLite snapshot store and optional MQTT and
// InfluxDB telemetry.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/mehutonkka/ohtuvarasto/migrations"

	"github.com/mehutonkka/ohtuvarasto/internal/api"
	"github.com/mehutonkka/ohtuvarasto/internal/audit"
	"github.com/mehutonkka/ohtuvarasto/internal/container"
	"github.com/mehutonkka/ohtuvarasto/internal/infrastructure/config"
	"github.com/mehutonkka/ohtuvarasto/internal/infrastructure/database"
	"github.com/mehutonkka/ohtuvarasto/internal/infrastructure/influxdb"
	"github.com/mehutonkka/ohtuvarasto/internal/infrastructure/logging"
	"github.com/mehutonkka/ohtuvarasto/internal/infrastructure/mqtt"
	"github.com/mehutonkka/ohtuvarasto/internal/telemetry"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// It returns nil on clean shutdown.
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting varasto",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	registry := container.NewRegistry()
	registry.SetLogger(log)

	var notifiers container.Notifiers

	// Open database (optional)
	var db *database.DB
	var auditRepo audit.Repository
	if cfg.Database.Enabled {
		db, err = openDatabase(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer func() {
			log.Info("closing database")
			if closeErr := db.Close(); closeErr != nil {
				log.Error("error closing database", "error", closeErr)
			}
		}()
		log.Info("database ready", "path", cfg.Database.Path)

		registry.SetRepository(container.NewSQLiteRepository(db.DB))
		if loadErr := registry.Load(ctx); loadErr != nil {
			return fmt.Errorf("loading container registry: %w", loadErr)
		}
		log.Info("container registry loaded", "containers", registry.Count())

		// Registered after the database close, so it runs first: the
		// recorder drains its queue while the database is still open.
		auditSQL := audit.NewSQLiteRepository(db.DB)
		recorder := audit.NewRecorder(auditSQL, 0)
		recorder.SetLogger(log)
		stopRecorder := startRecorder(recorder)
		defer stopRecorder()
		auditRepo = auditSQL
		notifiers = append(notifiers, recorder)
	} else {
		log.Info("database disabled, containers live in memory only")
	}

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.Connect(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT: %w", err)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
			"prefix", mqttClient.Topics().Prefix(),
		)

		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})
	} else {
		log.Info("MQTT disabled")
	}

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(ctx, cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	if mqttClient != nil || influxClient != nil {
		notifiers = append(notifiers, newTelemetry(mqttClient, influxClient, log))
	}
	if len(notifiers) > 0 {
		registry.SetNotifier(notifiers)
	}

	// Start HTTP server
	apiServer, err := api.New(api.Deps{
		Config:   cfg.API,
		Logger:   log,
		Registry: registry,
		Audit:    auditRepo,
		SiteName: cfg.Site.Name,
		Version:  version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	if err := apiServer.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := apiServer.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()

	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		log.Warn("initial health check failed", "error", err)
	}

	log.Info("varasto started",
		"address", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
		"containers", registry.Count(),
	)

	<-ctx.Done()
	log.Info("shutdown signal received")

	return nil
}

// getConfigPath returns the configuration file path.
// It checks the VARASTO_CONFIG environment variable first,
// then falls back to the default path.
func getConfigPath() string {
	if path := os.Getenv("VARASTO_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// openDatabase opens the snapshot database and applies pending migrations.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*database.DB, error) {
	db, err := database.Open(ctx, database.Config{
		Path:        cfg.Path,
		WALMode:     cfg.WALMode,
		BusyTimeout: cfg.BusyTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		db.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// startRecorder runs the audit recorder in the background. The returned
// function stops it and waits until queued entries are written.
func startRecorder(rec *audit.Recorder) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		rec.Run(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

// newTelemetry builds the registry notifier from whichever clients are
// connected. Options only receives non-nil clients so the interfaces it
// stores are never typed nils.
func newTelemetry(mqttClient *mqtt.Client, influxClient *influxdb.Client, log *logging.Logger) *telemetry.Publisher {
	opts := telemetry.Options{Logger: log}
	if mqttClient != nil {
		opts.MQTT = mqttClient
		opts.Topics = mqttClient.Topics()
		opts.QoS = mqttClient.QoS()
	}
	if influxClient != nil {
		opts.Metrics = influxClient
	}
	return telemetry.NewPublisher(opts)
}

// healthCheck verifies the enabled infrastructure connections.
// Disabled components are skipped.
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if db != nil {
		if err := db.HealthCheck(ctx); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	if mqttClient != nil {
		if err := mqttClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
	}
	if influxClient != nil {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}
	return nil
}
