package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := defaults()
	cfg.Mongo.URI = "mongodb://localhost:27017"
	cfg.Mongo.Database = "phishing"
	cfg.Mongo.Collection = "urls"
	return cfg
}

func TestDefaults(t *testing.T) {
	cfg := defaults()

	assert.Equal(t, DefaultSplitRatio, cfg.Ingestion.SplitRatio)
	assert.Equal(t, int64(DefaultSeed), cfg.Ingestion.Seed)
	assert.Equal(t, DefaultConnectTimeout, cfg.Mongo.ConnectTimeout)
	assert.NotEmpty(t, cfg.Ingestion.FeatureStorePath)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(_ *Config) {}, false},
		{"missing uri", func(c *Config) { c.Mongo.URI = "" }, true},
		{"missing database", func(c *Config) { c.Mongo.Database = "" }, true},
		{"missing collection", func(c *Config) { c.Mongo.Collection = "" }, true},
		{"missing feature store path", func(c *Config) { c.Ingestion.FeatureStorePath = "" }, true},
		{"missing training path", func(c *Config) { c.Ingestion.TrainingFilePath = "" }, true},
		{"missing testing path", func(c *Config) { c.Ingestion.TestingFilePath = "" }, true},
		{"ratio zero", func(c *Config) { c.Ingestion.SplitRatio = 0 }, true},
		{"ratio one", func(c *Config) { c.Ingestion.SplitRatio = 1 }, true},
		{"ratio negative", func(c *Config) { c.Ingestion.SplitRatio = -0.2 }, true},
		{"ratio in range", func(c *Config) { c.Ingestion.SplitRatio = 0.5 }, false},
		{"nonexistent ca file", func(c *Config) { c.Mongo.CAFile = "/nope/ca.pem" }, true},
		{"notify enabled without urls", func(c *Config) {
			c.Notify = NotifyConfig{Enabled: true, Subject: "ingestion.artifact"}
		}, true},
		{"notify enabled without subject", func(c *Config) {
			c.Notify = NotifyConfig{Enabled: true, URLs: []string{"nats://localhost:4222"}}
		}, true},
		{"notify fully configured", func(c *Config) {
			c.Notify = NotifyConfig{
				Enabled: true,
				URLs:    []string{"nats://localhost:4222"},
				Subject: "ingestion.artifact",
			}
		}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := validConfig()
			test.mutate(cfg)

			err := cfg.Validate()
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFile_LayeredOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"mongo": {
			"uri": "mongodb+srv://cluster.example.net",
			"database": "phishing",
			"collection": "urls",
			"connect_timeout": "5s"
		},
		"ingestion": {
			"split_ratio": 0.3
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := NewLoader().LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "mongodb+srv://cluster.example.net", cfg.Mongo.URI)
	assert.Equal(t, 0.3, cfg.Ingestion.SplitRatio)
	assert.Equal(t, "5s", cfg.Mongo.ConnectTimeout.String())
	// Untouched fields keep defaults.
	assert.Equal(t, int64(DefaultSeed), cfg.Ingestion.Seed)
	assert.Equal(t, "artifacts/ingested/train.csv", cfg.Ingestion.TrainingFilePath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FEATUREFLOW_MONGO_URI", "mongodb://override:27017")
	t.Setenv("FEATUREFLOW_MONGO_DATABASE", "envdb")
	t.Setenv("FEATUREFLOW_MONGO_COLLECTION", "envcoll")
	t.Setenv("FEATUREFLOW_SPLIT_RATIO", "0.25")
	t.Setenv("FEATUREFLOW_SEED", "7")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://override:27017", cfg.Mongo.URI)
	assert.Equal(t, "envdb", cfg.Mongo.Database)
	assert.Equal(t, "envcoll", cfg.Mongo.Collection)
	assert.Equal(t, 0.25, cfg.Ingestion.SplitRatio)
	assert.Equal(t, int64(7), cfg.Ingestion.Seed)
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	loader := NewLoader()
	// No URI anywhere: defaults alone must not validate.
	_, err := loader.Load()
	assert.Error(t, err)
}
