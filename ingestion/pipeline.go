// Package ingestion provides the pipeline orchestrator: it runs the
// collection reader, feature store writer, and train/test splitter in
// strict sequence and returns the ingestion artifact naming the two split
// files. This is the sole externally invoked entry point of the module.
package ingestion

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/c360/featureflow/config"
	"github.com/c360/featureflow/errors"
	"github.com/c360/featureflow/featuretable"
	"github.com/c360/featureflow/metric"
	"github.com/c360/featureflow/output/featurestore"
	"github.com/c360/featureflow/split"
)

// State represents the orchestrator lifecycle. Failed is terminal; a
// pipeline instance runs at most once.
type State int

// Pipeline states
const (
	StateNotStarted State = iota
	StateInProgress
	StateCompleted
	StateFailed
)

// String returns the string representation of State
func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Exporter materializes the source collection into a feature table.
type Exporter interface {
	Export(ctx context.Context) (*featuretable.Table, error)
}

// Publisher announces a completed ingestion to interested consumers.
type Publisher interface {
	PublishArtifact(ctx context.Context, artifact Artifact) error
}

// Pipeline orchestrates one ingestion run: export, persist, split.
// Execution is strictly sequential and blocking; concurrent runs against
// the same output paths are not supported.
type Pipeline struct {
	cfg      config.IngestionConfig
	exporter Exporter
	store    *featurestore.Writer
	splitter *split.Splitter

	publisher Publisher
	metrics   *metric.Metrics
	logger    *slog.Logger

	mu    sync.Mutex
	state State
}

// Option configures optional pipeline collaborators.
type Option func(*Pipeline)

// WithPublisher attaches an artifact publisher invoked after a successful
// run.
func WithPublisher(p Publisher) Option {
	return func(pl *Pipeline) { pl.publisher = p }
}

// WithMetrics attaches pipeline metrics.
func WithMetrics(m *metric.Metrics) Option {
	return func(pl *Pipeline) { pl.metrics = m }
}

// WithLogger sets the pipeline logger.
func WithLogger(l *slog.Logger) Option {
	return func(pl *Pipeline) { pl.logger = l }
}

// NewPipeline creates a pipeline from an exporter and ingestion settings.
func NewPipeline(cfg config.IngestionConfig, exporter Exporter, opts ...Option) (*Pipeline, error) {
	if exporter == nil {
		return nil, errors.WrapInvalid(errors.ErrMissingConfig, "Pipeline", "NewPipeline",
			"exporter is required")
	}

	p := &Pipeline{
		cfg:      cfg,
		exporter: exporter,
		state:    StateNotStarted,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}

	p.store = featurestore.NewWriter(p.logger)
	splitter, err := split.NewSplitter(cfg.SplitRatio, cfg.Seed, p.store, p.logger)
	if err != nil {
		return nil, err
	}
	p.splitter = splitter

	return p, nil
}

// State returns the current pipeline state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *Pipeline) setState(s State) {
	p.mu.Lock()
	p.state = s
	p.mu.Unlock()

	if p.metrics != nil {
		p.metrics.PipelineStatus.WithLabelValues("ingestion").Set(float64(s))
	}
}

// Run executes the ingestion sequence: export the collection, persist the
// feature store, split into train and test files. If any step fails the
// whole run fails; files written by earlier steps remain on disk. On
// success it returns the artifact naming the two split-file paths.
func (p *Pipeline) Run(ctx context.Context) (Artifact, error) {
	p.mu.Lock()
	if p.state != StateNotStarted {
		state := p.state
		p.mu.Unlock()
		return Artifact{}, errors.WrapInvalid(errors.ErrAlreadyStarted, "Pipeline", "Run",
			"run from state "+state.String())
	}
	p.state = StateInProgress
	p.mu.Unlock()

	if p.metrics != nil {
		p.metrics.PipelineStatus.WithLabelValues("ingestion").Set(float64(StateInProgress))
	}

	p.logger.Info("starting data ingestion", "component", "pipeline")

	table, err := p.runStage(ctx, "export", func() (*featuretable.Table, error) {
		return p.exporter.Export(ctx)
	})
	if err != nil {
		return Artifact{}, p.fail("export collection", err)
	}
	if p.metrics != nil {
		p.metrics.DocumentsExported.Add(float64(table.NumRows()))
	}

	table, err = p.runStage(ctx, "feature_store", func() (*featuretable.Table, error) {
		return p.store.Write(table, p.cfg.FeatureStorePath)
	})
	if err != nil {
		return Artifact{}, p.fail("write feature store", err)
	}
	if p.metrics != nil {
		p.metrics.RowsWritten.WithLabelValues("feature_store").Add(float64(table.NumRows()))
	}

	_, err = p.runStage(ctx, "split", func() (*featuretable.Table, error) {
		return table, p.splitter.SplitToFiles(table, p.cfg.TrainingFilePath, p.cfg.TestingFilePath)
	})
	if err != nil {
		return Artifact{}, p.fail("split train and test", err)
	}
	if p.metrics != nil {
		train, test := splitSizes(table.NumRows(), p.cfg.SplitRatio)
		p.metrics.RowsWritten.WithLabelValues("train").Add(float64(train))
		p.metrics.RowsWritten.WithLabelValues("test").Add(float64(test))
	}

	artifact := Artifact{
		TrainedFilePath: p.cfg.TrainingFilePath,
		TestFilePath:    p.cfg.TestingFilePath,
	}

	p.setState(StateCompleted)
	p.logger.Info("data ingestion completed",
		"component", "pipeline",
		"rows", table.NumRows(),
		"trained_file_path", artifact.TrainedFilePath,
		"test_file_path", artifact.TestFilePath)

	// Artifact publication is best-effort: the run has already succeeded
	// and the files exist, so a publish failure is logged, not returned.
	if p.publisher != nil {
		if err := p.publisher.PublishArtifact(ctx, artifact); err != nil {
			p.logger.Warn("failed to publish ingestion artifact",
				"component", "pipeline",
				"error", err,
				"trace", errors.TraceOf(err))
		}
	}

	return artifact, nil
}

// runStage times a stage and records its duration.
func (p *Pipeline) runStage(_ context.Context, stage string, fn func() (*featuretable.Table, error)) (*featuretable.Table, error) {
	start := time.Now()
	table, err := fn()
	if p.metrics != nil {
		p.metrics.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}
	return table, err
}

// fail transitions to the terminal failed state and wraps the cause.
func (p *Pipeline) fail(action string, err error) error {
	p.setState(StateFailed)
	if p.metrics != nil {
		p.metrics.ErrorsTotal.WithLabelValues("pipeline").Inc()
	}

	wrapped := errors.Wrap(err, "Pipeline", "Run", action)
	p.logger.Error("data ingestion failed",
		"component", "pipeline",
		"action", action,
		"error", wrapped,
		"trace", errors.TraceOf(err))
	return wrapped
}
