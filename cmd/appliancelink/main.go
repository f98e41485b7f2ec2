// ApplianceLink - Vendor Appliance Cloud Bridge
//
// This is the main entry point for the ApplianceLink service. It keeps a
// local mirror of every appliance registered to a vendor cloud account,
// updated over a push event stream with a polling fallback, and exposes the
// mirrored state and appliance controls to local hosts over MQTT.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/quennell/appliancelink/migrations"

	"github.com/quennell/appliancelink/internal/appliance"
	"github.com/quennell/appliancelink/internal/cloud"
	"github.com/quennell/appliancelink/internal/infrastructure/config"
	"github.com/quennell/appliancelink/internal/infrastructure/database"
	"github.com/quennell/appliancelink/internal/infrastructure/influxdb"
	"github.com/quennell/appliancelink/internal/infrastructure/logging"
	"github.com/quennell/appliancelink/internal/infrastructure/mqtt"
	"github.com/quennell/appliancelink/internal/publisher"
	"github.com/quennell/appliancelink/internal/sync"
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
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting ApplianceLink",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Vendor cloud clients
	api := cloud.NewHTTPClient(cfg.Vendor.BaseURL, cfg.Vendor.APIKey, cfg.Vendor.AccessToken, cfg.GetVendorTimeout())
	stream := cloud.NewWebSocketStream(cfg.Vendor.StreamURL, cfg.Vendor.AccessToken)

	// Appliance registry and sync coordinator
	registry := appliance.NewRegistry()
	registry.SetLogger(log.Component("registry"))

	coordinator := sync.NewCoordinator(api, stream, registry, syncConfig(cfg))
	coordinator.SetLogger(log.Component("sync"))
	defer func() {
		log.Info("stopping coordinator")
		if closeErr := coordinator.Close(); closeErr != nil {
			log.Error("error closing coordinator", "error", closeErr)
		}
	}()

	// State history audit trail
	coordinator.AddSink(appliance.NewSQLiteHistoryRepository(db.DB))

	// Connect to InfluxDB (optional)
	var influxClient *influxdb.Client
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		coordinator.AddSink(influxdb.NewRecorder(influxClient))
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("InfluxDB disabled")
	}

	// Connect to MQTT broker (optional)
	var mqttClient *mqtt.Client
	var pub *publisher.Publisher
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
		)

		mqttClient.SetLogger(log.Component("mqtt"))
		mqttClient.SetOnConnect(func() {
			log.Info("MQTT reconnected")
		})
		mqttClient.SetOnDisconnect(func(err error) {
			log.Warn("MQTT disconnected", "error", err)
		})

		pub = publisher.NewPublisher(mqttClient, registry, coordinator, api)
		pub.SetLogger(log.Component("publisher"))
		coordinator.SetNotifier(pub)
	} else {
		log.Info("MQTT disabled")
	}

	// Verify vendor credentials before discovery
	if err := coordinator.Login(ctx); err != nil {
		return fmt.Errorf("vendor login: %w", err)
	}
	log.Info("vendor login verified")

	// Discover and register the account's appliances
	if err := coordinator.SetupAppliances(ctx); err != nil {
		return fmt.Errorf("appliance discovery: %w", err)
	}
	log.Info("appliances registered", "count", registry.Count())

	// Inbound commands from hosts
	if pub != nil {
		if err := pub.Start(); err != nil {
			return fmt.Errorf("starting command subscription: %w", err)
		}
	}

	// Event stream and renewal loop
	if err := coordinator.Start(ctx); err != nil {
		return fmt.Errorf("starting event stream: %w", err)
	}
	log.Info("event stream connected")

	// Verify infrastructure connections are healthy
	if err := healthCheck(ctx, db, mqttClient, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	log.Info("initialisation complete, entering poll loop",
		"poll_interval", cfg.GetPollInterval(),
	)

	// Polling fallback: periodically refetch every appliance so missed
	// stream events are compensated.
	ticker := time.NewTicker(cfg.GetPollInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("shutdown signal received, cleaning up")
			log.Info("ApplianceLink stopped")
			return nil
		case <-ticker.C:
			if err := coordinator.RefreshAll(ctx); err != nil {
				if errors.Is(err, sync.ErrAuthenticationFailed) {
					return fmt.Errorf("polling refresh: %w", err)
				}
				log.Warn("polling refresh failed", "error", err)
			}
		}
	}
}

// syncConfig maps the YAML sync settings onto the coordinator config.
// Zero values keep the production defaults.
func syncConfig(cfg *config.Config) sync.Config {
	sc := sync.DefaultConfig()
	if cfg.Sync.RenewInterval > 0 {
		sc.RenewInterval = time.Duration(cfg.Sync.RenewInterval) * time.Second
	}
	if cfg.Sync.DeferredDelay > 0 {
		sc.DeferredDelay = time.Duration(cfg.Sync.DeferredDelay) * time.Second
	}
	if cfg.Sync.DeferredTaskLimit > 0 {
		sc.DeferredTaskLimit = cfg.Sync.DeferredTaskLimit
	}
	if cfg.Sync.ReconcileInterval > 0 {
		sc.ReconcileInterval = time.Duration(cfg.Sync.ReconcileInterval) * time.Second
	}
	return sc
}

// getConfigPath returns the configuration file path.
// Uses APPLIANCELINK_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("APPLIANCELINK_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - db: Database connection to check
//   - mqttClient: MQTT client to check (may be nil if disabled)
//   - influxClient: InfluxDB client to check (may be nil if disabled)
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
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
