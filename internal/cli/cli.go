// Package cli implements the driftboard command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/driftboard/driftboard/pkg/buildinfo"
	"github.com/driftboard/driftboard/pkg/cache"
	"github.com/driftboard/driftboard/pkg/config"
	"github.com/driftboard/driftboard/pkg/errors"
	"github.com/driftboard/driftboard/pkg/geometry"
	"github.com/driftboard/driftboard/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "driftboard"

	// defaultConfigFile is the config file looked up when --config is unset.
	defaultConfigFile = "driftboard.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "driftboard",
		Short:        "Driftboard arranges spatial canvas scenes without overlaps",
		Long:         `Driftboard is a geometric placement engine for spatial canvases: it resolves entity sizes, detects collisions, computes drag repulsion, and finds collision-free positions for new entities.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default driftboard.toml if present)")

	// Register all subcommands
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.arrangeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.sceneCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config and Backend Factories
// =============================================================================

// loadConfig reads the configured (or default) config file.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		path = defaultConfigFile
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	c.Logger.Debug("config loaded", "path", path)
	return cfg, nil
}

// newEngine builds the geometry engine from the config file.
func (c *CLI) newEngine() (*geometry.Engine, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return cfg.Engine(), nil
}

// newStore builds the scene store selected by the config.
func (c *CLI) newStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendMongo:
		return store.NewMongoStore(ctx, cfg.Store.MongoURI, cfg.Store.MongoDB)
	case config.BackendFile:
		dir := cfg.Store.Dir
		if dir == "" {
			var err error
			if dir, err = dataDir(); err != nil {
				return nil, errors.Wrap(errors.ErrCodeStore, err, "resolve data dir")
			}
		}
		return store.NewFileStore(dir)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", cfg.Store.Backend)
	}
}

// newCache builds the artifact cache selected by the config. noCache
// forces the null cache regardless of configuration.
func (c *CLI) newCache(ctx context.Context, cfg config.Config, noCache bool) cache.Cache {
	if noCache || cfg.Cache.Backend == config.BackendNone {
		return cache.NewNullCache()
	}

	if cfg.Cache.Backend == config.BackendRedis {
		ca, err := cache.NewRedisCache(ctx, cfg.Cache.RedisAddr)
		if err != nil {
			printWarning("Redis unavailable, caching disabled: %v", err)
			return cache.NewNullCache()
		}
		return ca
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			return cache.NewNullCache()
		}
	}
	ca, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return ca
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/driftboard/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// dataDir returns the scene store directory using XDG standard
// (~/.local/share/driftboard/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}
