// Package config loads and validates the FeatureFlow ingestion
// configuration. Configuration comes from layered JSON files with
// FEATUREFLOW_* environment overrides; a .env file in the working directory
// is loaded first when present.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Default values applied before any configuration layer.
const (
	DefaultSplitRatio     = 0.2
	DefaultSeed           = 42
	DefaultConnectTimeout = 10 * time.Second

	envPrefix = "FEATUREFLOW"
)

// Config represents the complete application configuration.
type Config struct {
	Version   string          `json:"version,omitempty"`
	Mongo     MongoConfig     `json:"mongo"`
	Ingestion IngestionConfig `json:"ingestion"`
	Notify    NotifyConfig    `json:"notify,omitempty"`
}

// MongoConfig defines the source database connection. The URI is explicit
// configuration handed to the reader at construction; it is never read from
// ambient process state inside the reader itself.
type MongoConfig struct {
	URI            string        `json:"uri"`
	Database       string        `json:"database"`
	Collection     string        `json:"collection"`
	CAFile         string        `json:"ca_file,omitempty"`
	ConnectTimeout time.Duration `json:"connect_timeout,omitempty"`
	DisableTLS     bool          `json:"disable_tls,omitempty"`
}

// IngestionConfig defines the output paths and the train/test partition.
type IngestionConfig struct {
	FeatureStorePath string  `json:"feature_store_path"`
	TrainingFilePath string  `json:"training_file_path"`
	TestingFilePath  string  `json:"testing_file_path"`
	SplitRatio       float64 `json:"split_ratio"`
	Seed             int64   `json:"seed"`
}

// NotifyConfig defines optional artifact publication over NATS.
type NotifyConfig struct {
	Enabled bool     `json:"enabled"`
	URLs    []string `json:"urls,omitempty"`
	Subject string   `json:"subject,omitempty"`
}

// Validate checks if the config is valid.
func (c *Config) Validate() error {
	if c.Mongo.URI == "" {
		return errors.New("mongo.uri is required")
	}
	if c.Mongo.Database == "" {
		return errors.New("mongo.database is required")
	}
	if c.Mongo.Collection == "" {
		return errors.New("mongo.collection is required")
	}
	if c.Mongo.CAFile != "" {
		if _, err := os.Stat(c.Mongo.CAFile); err != nil {
			return fmt.Errorf("mongo.ca_file: %w", err)
		}
	}

	if c.Ingestion.FeatureStorePath == "" {
		return errors.New("ingestion.feature_store_path is required")
	}
	if c.Ingestion.TrainingFilePath == "" {
		return errors.New("ingestion.training_file_path is required")
	}
	if c.Ingestion.TestingFilePath == "" {
		return errors.New("ingestion.testing_file_path is required")
	}
	if c.Ingestion.SplitRatio <= 0 || c.Ingestion.SplitRatio >= 1 {
		return fmt.Errorf("ingestion.split_ratio must be in (0,1), got %v", c.Ingestion.SplitRatio)
	}

	if c.Notify.Enabled {
		if len(c.Notify.URLs) == 0 {
			return errors.New("notify.urls is required when notify is enabled")
		}
		if c.Notify.Subject == "" {
			return errors.New("notify.subject is required when notify is enabled")
		}
	}

	return nil
}

// Loader handles configuration loading with layers and overrides.
type Loader struct {
	layers     []string
	validation bool
	envPrefix  string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		validation: true,
		envPrefix:  envPrefix,
	}
}

// AddLayer adds a configuration file layer. Later layers override earlier
// ones field by field.
func (l *Loader) AddLayer(path string) {
	l.layers = append(l.layers, path)
}

// EnableValidation enables or disables configuration validation.
func (l *Loader) EnableValidation(enable bool) {
	l.validation = enable
}

// LoadFile loads configuration from a single file.
func (l *Loader) LoadFile(path string) (*Config, error) {
	l.layers = []string{path}
	return l.Load()
}

// Load loads defaults, applies all configuration layers in order, then
// environment overrides, then validates.
func (l *Loader) Load() (*Config, error) {
	// Best-effort: a .env in the working directory populates the process
	// environment before overrides are read. Absence is not an error.
	_ = godotenv.Load()

	cfg := defaults()

	for _, path := range l.layers {
		if err := applyFile(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	l.applyEnvOverrides(cfg)

	if l.validation {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// defaults returns the base configuration before any layer is applied.
func defaults() *Config {
	return &Config{
		Mongo: MongoConfig{
			ConnectTimeout: DefaultConnectTimeout,
		},
		Ingestion: IngestionConfig{
			FeatureStorePath: "artifacts/feature_store/phishing.csv",
			TrainingFilePath: "artifacts/ingested/train.csv",
			TestingFilePath:  "artifacts/ingested/test.csv",
			SplitRatio:       DefaultSplitRatio,
			Seed:             DefaultSeed,
		},
	}
}

// applyFile decodes a JSON layer over the current configuration. Fields
// absent from the file keep their current values.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, cfg)
}

// applyEnvOverrides applies environment variable overrides.
func (l *Loader) applyEnvOverrides(cfg *Config) {
	if val := os.Getenv(l.envPrefix + "_MONGO_URI"); val != "" {
		cfg.Mongo.URI = val
	}
	if val := os.Getenv(l.envPrefix + "_MONGO_DATABASE"); val != "" {
		cfg.Mongo.Database = val
	}
	if val := os.Getenv(l.envPrefix + "_MONGO_COLLECTION"); val != "" {
		cfg.Mongo.Collection = val
	}
	if val := os.Getenv(l.envPrefix + "_MONGO_CA_FILE"); val != "" {
		cfg.Mongo.CAFile = val
	}
	if val := os.Getenv(l.envPrefix + "_SPLIT_RATIO"); val != "" {
		if ratio, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Ingestion.SplitRatio = ratio
		}
	}
	if val := os.Getenv(l.envPrefix + "_SEED"); val != "" {
		if seed, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Ingestion.Seed = seed
		}
	}
}

// UnmarshalJSON implements custom JSON unmarshaling for MongoConfig so the
// connect timeout can be given as a duration string ("10s") or nanoseconds.
func (m *MongoConfig) UnmarshalJSON(data []byte) error {
	type Alias MongoConfig
	aux := &struct {
		ConnectTimeout any `json:"connect_timeout,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(m),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	switch v := aux.ConnectTimeout.(type) {
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		m.ConnectTimeout = d
	case float64:
		m.ConnectTimeout = time.Duration(v)
	}

	return nil
}

// String returns a JSON representation of the config.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
