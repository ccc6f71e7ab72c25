package utils

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ridoystarlord/primitivedb/storage"
)

const envPrefix = "PRIMITIVE_DB"

// Config keys, shared by flags and PRIMITIVE_DB_* environment variables.
const (
	KeyRoot    = "root"
	KeyCatalog = "catalog"
	KeyDataDir = "data_dir"

	// KeyDatabaseURL is read from DATABASE_URL, without the prefix.
	KeyDatabaseURL = "database_url"
)

var ErrNoDatabaseURL = errors.New("DATABASE_URL not set (in .env or environment)")

// Config locates the catalog document and the record files on disk, and the
// Postgres database used by import-pg.
type Config struct {
	Root        string
	CatalogFile string
	DataDir     string
	DatabaseURL string
}

// SetDefaults registers defaults and environment lookups on v.
func SetDefaults(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	v.BindEnv(KeyDatabaseURL, "DATABASE_URL")

	v.SetDefault(KeyRoot, ".")
	v.SetDefault(KeyCatalog, storage.DefaultCatalogFile)
	v.SetDefault(KeyDataDir, storage.DefaultDataDir)
}

// LoadConfig resolves the effective configuration from v. Flags bound to v
// take precedence over the environment, which takes precedence over defaults.
func LoadConfig(v *viper.Viper) Config {
	SetDefaults(v)
	cfg := Config{
		Root:        v.GetString(KeyRoot),
		CatalogFile: v.GetString(KeyCatalog),
		DataDir:     v.GetString(KeyDataDir),
		DatabaseURL: v.GetString(KeyDatabaseURL),
	}
	if cfg.Root == "" {
		cfg.Root = "."
	}
	cfg.Root = filepath.Clean(cfg.Root)
	return cfg
}

func (c Config) StoreOptions() storage.Options {
	return storage.Options{CatalogFile: c.CatalogFile, DataDir: c.DataDir}
}

// RequireDatabaseURL returns the connection string or ErrNoDatabaseURL.
func (c Config) RequireDatabaseURL() (string, error) {
	if c.DatabaseURL == "" {
		return "", ErrNoDatabaseURL
	}
	return c.DatabaseURL, nil
}
