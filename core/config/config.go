package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"master-sync/core/database"
	"master-sync/core/logger"
	"master-sync/core/pipeline"
	"master-sync/core/server"
	"master-sync/core/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the application configuration, one section per component.
type Config struct {
	Server   server.Config   `mapstructure:"server"`
	Storage  storage.Config  `mapstructure:"storage"`
	Log      logger.Config   `mapstructure:"log"`
	Database database.Config `mapstructure:"database"`
	// Reconcile holds the column lists and parsing options of a run.
	Reconcile pipeline.Config `mapstructure:"reconcile"`
}

// LoadConfig reads <path>/.env (optional) and the environment on top of the
// defaults declared in struct tags, then validates the result.
func LoadConfig(path string) (*Config, error) {
	// A missing .env is normal in production.
	_ = godotenv.Overload(filepath.Join(path, ".env"))

	v := viper.New()
	bindValues(v, Config{}, "")

	// SERVER_PORT -> server.port
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case database.DriverMySQL, database.DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("database.driver: unsupported driver %q", c.Database.Driver))
	}
	if c.Server.MaxUploadMB <= 0 {
		errs = append(errs, fmt.Errorf("server.max_upload_mb: must be positive, got %d", c.Server.MaxUploadMB))
	}
	if c.Reconcile.PreviewRows < 0 {
		errs = append(errs, fmt.Errorf("reconcile.preview_rows: must not be negative, got %d", c.Reconcile.PreviewRows))
	}
	if c.Storage.Bucket == "" {
		errs = append(errs, errors.New("storage.bucket: must be set"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// bindValues walks the struct tags and registers every key with its default.
// Keys without a default are registered too, or AutomaticEnv would never
// see them during Unmarshal.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
