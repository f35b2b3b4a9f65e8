// Package notify publishes ingestion artifacts to NATS so downstream
// pipeline stages can react to completed runs. Publication is outbound
// only; the module exposes no listeners.
package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/c360/featureflow/errors"
	"github.com/c360/featureflow/ingestion"
)

// Config holds configuration for the artifact publisher
type Config struct {
	URLs    []string      `json:"urls"`
	Subject string        `json:"subject"`
	Timeout time.Duration `json:"timeout,omitempty"`
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if len(c.URLs) == 0 {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate", "urls are required")
	}
	if c.Subject == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "Config", "Validate", "subject is required")
	}
	return nil
}

// Publisher announces ingestion artifacts on a NATS subject.
type Publisher struct {
	conn    *nats.Conn
	subject string
	timeout time.Duration
	logger  *slog.Logger
}

// NewPublisher connects to NATS and returns a publisher. The connection is
// held until Close.
func NewPublisher(cfg Config, logger *slog.Logger) (*Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := nats.Connect(strings.Join(cfg.URLs, ","),
		nats.Name("featureflow-notify"),
		nats.Timeout(cfg.Timeout),
		nats.MaxReconnects(0),
	)
	if err != nil {
		return nil, errors.WrapTransient(err, "Publisher", "NewPublisher", "connect to NATS")
	}

	return &Publisher{
		conn:    conn,
		subject: cfg.Subject,
		timeout: cfg.Timeout,
		logger:  logger,
	}, nil
}

// PublishArtifact publishes the artifact as JSON to the configured subject.
func (p *Publisher) PublishArtifact(_ context.Context, artifact ingestion.Artifact) error {
	data, err := json.Marshal(artifact)
	if err != nil {
		return errors.WrapInvalid(err, "Publisher", "PublishArtifact", "marshal artifact")
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		return errors.WrapTransient(err, "Publisher", "PublishArtifact", "publish artifact")
	}
	if err := p.conn.FlushTimeout(p.timeout); err != nil {
		return errors.WrapTransient(err, "Publisher", "PublishArtifact", "flush connection")
	}

	p.logger.Info("ingestion artifact published",
		"component", "notify",
		"subject", p.subject,
		"trained_file_path", artifact.TrainedFilePath,
		"test_file_path", artifact.TestFilePath)

	return nil
}

// Close drains the connection.
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}
