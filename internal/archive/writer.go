// Package archive mirrors committed blocks into an external store for
// offline analysis. It runs beside the validator and never feeds back into
// ledger state.
package archive

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/roadledger/internal/model"
	"github.com/goodnatureofminers/roadledger/pkg/batcher"
	"github.com/goodnatureofminers/roadledger/pkg/workerpool"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Repository interface {
		InsertBlocks(ctx context.Context, blocks []model.Block) error
		InsertOperations(ctx context.Context, blocks []model.Block) error
		InsertEventDecisions(ctx context.Context, blocks []model.Block) error
		MaxBlockHeight(ctx context.Context) (uint64, error)
	}
)

// Config bounds the archive writer.
type Config struct {
	BatchSize     int
	FlushInterval time.Duration
	FlushRPS      int
	QueueCapacity int
	Workers       int
}

// DefaultConfig returns the writer defaults.
func DefaultConfig() Config {
	return Config{
		BatchSize:     100,
		FlushInterval: 2 * time.Second,
		FlushRPS:      10,
		QueueCapacity: 1024,
		Workers:       3,
	}
}

// Writer batches committed blocks and inserts them table by table.
type Writer struct {
	repo     Repository
	cfg      Config
	blocks   *batcher.Batcher[model.Block]
	logger   *zap.Logger
	metrics  Metrics
	archived atomic.Uint64
}

// NewWriter builds a Writer over repo.
func NewWriter(repo Repository, cfg Config, logger *zap.Logger) (*Writer, error) {
	if repo == nil {
		return nil, errors.New("archive repository is required")
	}
	w := &Writer{repo: repo, cfg: cfg, logger: logger, metrics: nopMetrics{}}
	b, err := batcher.New(logger, w.flush, batcher.Options{
		Size:     cfg.BatchSize,
		Interval: cfg.FlushInterval,
		RPS:      cfg.FlushRPS,
		Capacity: cfg.QueueCapacity,
	})
	if err != nil {
		return nil, fmt.Errorf("archive batcher: %w", err)
	}
	w.blocks = b
	return w, nil
}

// WithMetrics sets the collector receiving flush observations.
func (w *Writer) WithMetrics(m Metrics) *Writer {
	if m != nil {
		w.metrics = m
	}
	return w
}

// Start reads the archived height and begins flushing.
func (w *Writer) Start(ctx context.Context) error {
	height, err := w.repo.MaxBlockHeight(ctx)
	if err != nil {
		return fmt.Errorf("read archived height: %w", err)
	}
	w.archived.Store(height)
	w.metrics.SetArchivedHeight(height)
	w.logger.Info("archive writer started", zap.Uint64("archived_height", height))
	w.blocks.Start(ctx)
	return nil
}

// Observe queues a committed block. It never blocks the caller.
func (w *Writer) Observe(b model.Block) {
	if !w.blocks.TryAdd(b) {
		w.metrics.ObserveDropped()
		w.logger.Warn("archive queue full, block dropped",
			zap.Uint64("height", b.Height),
			zap.Uint64("dropped", w.blocks.Dropped()),
		)
	}
}

// Stop flushes queued blocks and waits for the writer to finish.
func (w *Writer) Stop() {
	w.blocks.Stop()
}

// ArchivedHeight returns the highest height written so far.
func (w *Writer) ArchivedHeight() uint64 {
	return w.archived.Load()
}

type insert struct {
	table string
	fn    func(context.Context, []model.Block) error
}

func (w *Writer) flush(ctx context.Context, blocks []model.Block) (err error) {
	started := time.Now()
	defer func() { w.metrics.ObserveFlush(err, len(blocks), started) }()

	inserts := []insert{
		{table: "blocks", fn: w.repo.InsertBlocks},
		{table: "operations", fn: w.repo.InsertOperations},
		{table: "event_decisions", fn: w.repo.InsertEventDecisions},
	}
	err = workerpool.Process(ctx, w.cfg.Workers, inserts, func(ctx context.Context, in insert) error {
		if err := in.fn(ctx, blocks); err != nil {
			return fmt.Errorf("archive %s: %w", in.table, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	top := w.archived.Load()
	for _, b := range blocks {
		top = max(top, b.Height)
	}
	w.archived.Store(top)
	w.metrics.SetArchivedHeight(top)
	return nil
}
