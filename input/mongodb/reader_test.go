package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		URI:        "mongodb://localhost:27017",
		Database:   "phishing",
		Collection: "urls",
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(_ *Config) {}, false},
		{"missing uri", func(c *Config) { c.URI = "" }, true},
		{"missing database", func(c *Config) { c.Database = "" }, true},
		{"missing collection", func(c *Config) { c.Collection = "" }, true},
		{"negative timeout", func(c *Config) { c.ConnectTimeout = -time.Second }, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := valid
			test.mutate(&cfg)

			err := cfg.Validate()
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewReader_DefaultsApplied(t *testing.T) {
	reader, err := NewReader(Config{
		URI:        "mongodb://localhost:27017",
		Database:   "db",
		Collection: "coll",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, reader.cfg.ConnectTimeout)
	assert.NotNil(t, reader.logger)
}

func TestNewReader_InvalidConfig(t *testing.T) {
	_, err := NewReader(Config{}, nil)
	assert.Error(t, err)
}

func TestConvertValue(t *testing.T) {
	oid, err := primitive.ObjectIDFromHex("5f1d7f9a8b4c2a0001a3b4c5")
	require.NoError(t, err)

	dt := primitive.NewDateTimeFromTime(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	tests := []struct {
		name     string
		value    any
		expected any
	}{
		{"object id", oid, "5f1d7f9a8b4c2a0001a3b4c5"},
		{"datetime", dt, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)},
		{"null", primitive.Null{}, nil},
		{"string passthrough", "na", "na"},
		{"int32 passthrough", int32(1), int32(1)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, convertValue(test.value))
		})
	}
}
