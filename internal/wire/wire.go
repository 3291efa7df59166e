// Package wire provides dependency injection for the armada application.
// It creates singleton services with lazy initialization.
package wire

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	cliadapter "github.com/example/armada/internal/adapters/cli"
	"github.com/example/armada/internal/adapters/filesystem"
	"github.com/example/armada/internal/adapters/sqldb"
	"github.com/example/armada/internal/app"
	"github.com/example/armada/internal/catalog"
	"github.com/example/armada/internal/config"
	"github.com/example/armada/internal/db"
	"github.com/example/armada/internal/logging"
	"github.com/example/armada/internal/ports/primary"
)

var (
	configPath string

	cfg            *config.Config
	logger         zerolog.Logger
	database       *sqlx.DB
	fleetService   primary.FleetService
	catalogService primary.CatalogService
	logService     primary.LogService
	initErr        error
	once           sync.Once
)

// SetConfigPath selects the config file read on initialization.
// It has no effect once services are initialized.
func SetConfigPath(path string) {
	configPath = path
}

// ConfigPath returns the config file in use, defaulting to ~/.armada/armada.toml.
func ConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigPath()
}

// Init initializes all services and reports the first failure.
func Init() error {
	once.Do(initServices)
	return initErr
}

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Logger returns the shared logger.
func Logger() zerolog.Logger {
	once.Do(initServices)
	return logger
}

// DB returns the shared database handle.
func DB() *sqlx.DB {
	once.Do(initServices)
	return database
}

// FleetService returns the singleton FleetService instance.
func FleetService() primary.FleetService {
	once.Do(initServices)
	return fleetService
}

// CatalogService returns the singleton CatalogService instance.
func CatalogService() primary.CatalogService {
	once.Do(initServices)
	return catalogService
}

// LogService returns the singleton LogService instance.
func LogService() primary.LogService {
	once.Do(initServices)
	return logService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	initErr = buildServices(context.Background())
}

func buildServices(ctx context.Context) error {
	loaded, err := loadConfig(ConfigPath())
	if err != nil {
		return err
	}
	cfg = loaded

	logger, err = logging.New(cfg.Log)
	if err != nil {
		return err
	}

	database, err = db.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	if _, err := db.RunMigrations(ctx, database, logger); err != nil {
		return err
	}

	// Unit catalog (secondary port) feeding the shared ship-info table
	units, err := filesystem.NewUnitCatalog(cfg.Units.Path)
	if err != nil {
		return err
	}
	shipCatalog, err := catalog.New(units, cfg.Units.Group, catalog.Rates{
		Metal:     cfg.Exchange.Metal,
		Crystal:   cfg.Exchange.Crystal,
		Deuterium: cfg.Exchange.Deuterium,
	})
	if err != nil {
		return err
	}

	// Create repository adapters (secondary ports) with injected DB
	fleetRepo := sqldb.NewFleetRepository(database)
	logRepo := sqldb.NewFleetLogRepository(database)
	logWriter := sqldb.NewLogWriterAdapter(logRepo)

	executor := app.NewEffectExecutor(logger)

	// Create services (primary ports implementation)
	fleetService = app.NewFleetService(database, fleetRepo, shipCatalog, logWriter, executor, logger)
	catalogService = app.NewCatalogService(shipCatalog)
	logService = app.NewLogService(logRepo)
	return nil
}

// loadConfig reads path, falling back to defaults next to it when the file
// does not exist, then applies environment overrides.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return nil, errors.New("no config path: home directory is not accessible")
	}

	loaded, err := config.LoadConfig(path)
	if errors.Is(err, fs.ErrNotExist) {
		loaded, err = config.DefaultConfig(filepath.Dir(path)), nil
	}
	if err != nil {
		return nil, err
	}

	config.ApplyEnv(loaded)
	if err := loaded.Validate(); err != nil {
		return nil, err
	}
	return loaded, nil
}

// FleetAdapter returns a new FleetAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func FleetAdapter() *cliadapter.FleetAdapter {
	return FleetAdapterWithOutput(os.Stdout)
}

// FleetAdapterWithOutput returns a new FleetAdapter writing to the given output.
func FleetAdapterWithOutput(out io.Writer) *cliadapter.FleetAdapter {
	once.Do(initServices)
	return cliadapter.NewFleetAdapter(fleetService, out)
}

// CatalogAdapter returns a new CatalogAdapter writing to stdout.
func CatalogAdapter() *cliadapter.CatalogAdapter {
	once.Do(initServices)
	return cliadapter.NewCatalogAdapter(catalogService, os.Stdout)
}

// LogAdapter returns a new LogAdapter writing to stdout.
func LogAdapter() *cliadapter.LogAdapter {
	once.Do(initServices)
	return cliadapter.NewLogAdapter(logService, os.Stdout)
}
