// Package mongodb provides the collection reader input component. It opens
// a TLS-verified connection to the source database and materializes one
// named collection into a feature table.
package mongodb

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/c360/featureflow/errors"
	"github.com/c360/featureflow/featuretable"
	"github.com/c360/featureflow/pkg/tlsutil"
)

// identifierColumn is the implicit per-document identifier added by the
// source database; it is dropped from the exported table when present.
const identifierColumn = "_id"

// missingToken is the literal normalized to the missing-value marker.
const missingToken = "na"

// Config holds configuration for the collection reader
type Config struct {
	URI            string        `json:"uri"`
	Database       string        `json:"database"`
	Collection     string        `json:"collection"`
	CAFile         string        `json:"ca_file,omitempty"`
	ConnectTimeout time.Duration `json:"connect_timeout,omitempty"`
	DisableTLS     bool          `json:"disable_tls,omitempty"`
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.URI == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate", "uri is required")
	}
	if c.Database == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate", "database is required")
	}
	if c.Collection == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate", "collection is required")
	}
	if c.ConnectTimeout < 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Config", "Validate",
			"connect_timeout cannot be negative")
	}
	return nil
}

// Reader exports a named collection as a feature table. A Reader holds no
// connection between calls; each Export opens, reads, and disconnects.
type Reader struct {
	cfg    Config
	logger *slog.Logger
}

// NewReader creates a collection reader from explicit configuration.
func NewReader(cfg Config, logger *slog.Logger) (*Reader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{cfg: cfg, logger: logger}, nil
}

// Export materializes every document in the configured collection into a
// feature table. The identifier column is dropped when present and the
// literal "na" is normalized to the missing marker. Any connection,
// authentication, or transfer failure is wrapped and returned; nothing is
// retried.
func (r *Reader) Export(ctx context.Context) (*featuretable.Table, error) {
	opts := options.Client().
		ApplyURI(r.cfg.URI).
		SetConnectTimeout(r.cfg.ConnectTimeout)

	if !r.cfg.DisableTLS {
		tlsConfig, err := tlsutil.LoadClientTLSConfig(tlsutil.ClientConfig{CAFile: r.cfg.CAFile})
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsConfig)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.WrapTransient(err, "Reader", "Export", "connect to database")
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			r.logger.Warn("failed to disconnect from database",
				"component", "mongodb-reader",
				"error", err)
		}
	}()

	r.logger.Info("exporting collection",
		"component", "mongodb-reader",
		"database", r.cfg.Database,
		"collection", r.cfg.Collection)

	cursor, err := client.Database(r.cfg.Database).Collection(r.cfg.Collection).Find(ctx, bson.D{})
	if err != nil {
		return nil, errors.WrapTransient(err, "Reader", "Export", "find documents")
	}

	var raw []bson.D
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, errors.WrapTransient(err, "Reader", "Export", "read cursor")
	}

	docs := make([]featuretable.Document, 0, len(raw))
	for _, d := range raw {
		doc := make(featuretable.Document, 0, len(d))
		for _, e := range d {
			doc = append(doc, featuretable.Field{Name: e.Key, Value: convertValue(e.Value)})
		}
		docs = append(docs, doc)
	}

	table := featuretable.FromDocuments(docs)
	table.DropColumn(identifierColumn)
	normalized := table.NormalizeMissing(missingToken)

	r.logger.Info("collection exported",
		"component", "mongodb-reader",
		"rows", table.NumRows(),
		"columns", table.NumColumns(),
		"missing_normalized", normalized)

	return table, nil
}

// convertValue maps driver-specific BSON values onto plain Go values the
// feature table knows how to stringify.
func convertValue(v any) any {
	switch val := v.(type) {
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC()
	case primitive.Decimal128:
		return val.String()
	case primitive.Null:
		return nil
	default:
		return v
	}
}
