// Package config loads the optional driftboard TOML configuration file.
//
// Everything has a default: a missing file, a missing section, or a
// missing key silently falls back, so the zero-config path always works.
// The file can override the engine's tuning constants, extend the
// type-to-size table with new entity types, and select the store and
// cache backends:
//
//	[tuning]
//	padding_min = 20
//	force_damping = 0.8
//
//	[sizes.sticker]
//	width = 80
//	height = 80
//
//	[store]
//	backend = "file"        # or "mongo"
//	mongo_uri = "mongodb://localhost:27017"
//
//	[cache]
//	backend = "file"        # or "redis", "none"
//	redis_addr = "localhost:6379"
package config

import (
	stderrors "errors"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/driftboard/driftboard/pkg/errors"
	"github.com/driftboard/driftboard/pkg/geometry"
	"github.com/driftboard/driftboard/pkg/scene"
)

// Backend names for stores and caches.
const (
	BackendFile  = "file"
	BackendMongo = "mongo"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full configuration file.
type Config struct {
	Tuning geometry.Params       `toml:"tuning"`
	Sizes  map[string]scene.Size `toml:"sizes"`
	Store  StoreConfig           `toml:"store"`
	Cache  CacheConfig           `toml:"cache"`
	Server ServerConfig          `toml:"server"`
}

// StoreConfig selects the scene persistence backend.
type StoreConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`       // file backend
	MongoURI string `toml:"mongo_uri"` // mongo backend
	MongoDB  string `toml:"mongo_db"`  // mongo backend, database name
}

// CacheConfig selects the artifact cache backend.
type CacheConfig struct {
	Backend   string `toml:"backend"`
	Dir       string `toml:"dir"`        // file backend
	RedisAddr string `toml:"redis_addr"` // redis backend
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the zero-config defaults.
func Default() Config {
	return Config{
		Tuning: geometry.DefaultParams(),
		Store:  StoreConfig{Backend: BackendFile},
		Cache:  CacheConfig{Backend: BackendFile},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads a TOML config file and merges it over the defaults.
// A missing file is not an error: the defaults come back unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	// Partial [tuning] sections keep defaults for unset keys.
	cfg.Tuning.SetDefaults()

	if err := cfg.validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// validate rejects backends this build does not know.
func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendFile, BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	for typ, size := range c.Sizes {
		if !size.Valid() {
			return errors.New(errors.ErrCodeInvalidConfig, "size for type %q must have positive width and height", typ)
		}
	}
	return nil
}

// SizeTable builds the engine's size table: the built-in defaults
// overlaid with the configured entries.
func (c *Config) SizeTable() geometry.SizeTable {
	table := geometry.DefaultSizes()
	for typ, size := range c.Sizes {
		table[typ] = size
	}
	return table
}

// Engine constructs a geometry engine from the configuration.
func (c *Config) Engine() *geometry.Engine {
	return geometry.New(c.SizeTable(), c.Tuning)
}
