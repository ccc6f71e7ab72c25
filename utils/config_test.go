package utils

import (
	"errors"
	"testing"

	"github.com/spf13/viper"

	"github.com/ridoystarlord/primitivedb/storage"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PRIMITIVE_DB_ROOT", "")
	t.Setenv("PRIMITIVE_DB_CATALOG", "")
	t.Setenv("PRIMITIVE_DB_DATA_DIR", "")

	cfg := LoadConfig(viper.New())
	if cfg.Root != "." {
		t.Errorf("expected root '.', got %q", cfg.Root)
	}
	if cfg.CatalogFile != storage.DefaultCatalogFile {
		t.Errorf("expected catalog %q, got %q", storage.DefaultCatalogFile, cfg.CatalogFile)
	}
	if cfg.DataDir != storage.DefaultDataDir {
		t.Errorf("expected data dir %q, got %q", storage.DefaultDataDir, cfg.DataDir)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PRIMITIVE_DB_ROOT", "/var/lib/primitive/")
	t.Setenv("PRIMITIVE_DB_CATALOG", "meta.json")
	t.Setenv("PRIMITIVE_DB_DATA_DIR", "tables")

	cfg := LoadConfig(viper.New())
	t.Setenv("DATABASE_URL", "")
	want := Config{Root: "/var/lib/primitive", CatalogFile: "meta.json", DataDir: "tables"}
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}

	opts := cfg.StoreOptions()
	if opts.CatalogFile != "meta.json" || opts.DataDir != "tables" {
		t.Errorf("unexpected store options %+v", opts)
	}
}

func TestLoadConfigOverride(t *testing.T) {
	t.Setenv("PRIMITIVE_DB_DATA_DIR", "tables")

	v := viper.New()
	v.Set(KeyDataDir, "override")
	if cfg := LoadConfig(v); cfg.DataDir != "override" {
		t.Errorf("expected explicit value to win, got %q", cfg.DataDir)
	}
}

func TestDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	cfg := LoadConfig(viper.New())
	if _, err := cfg.RequireDatabaseURL(); !errors.Is(err, ErrNoDatabaseURL) {
		t.Errorf("expected ErrNoDatabaseURL, got %v", err)
	}

	t.Setenv("DATABASE_URL", "postgres://localhost/app")
	cfg = LoadConfig(viper.New())
	url, err := cfg.RequireDatabaseURL()
	if err != nil || url != "postgres://localhost/app" {
		t.Errorf("got %q, %v", url, err)
	}
}
