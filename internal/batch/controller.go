// Package batch implements the adaptive batch admission controller that
// decides when buffered ledger operations become a block candidate.
package batch

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/roadledger/internal/clock"
	"github.com/goodnatureofminers/roadledger/internal/codec"
	"github.com/goodnatureofminers/roadledger/internal/model"
	"github.com/goodnatureofminers/roadledger/pkg/safe"
)

// Trigger names what caused a flush.
type Trigger string

const (
	TriggerSize   Trigger = "size"
	TriggerTime   Trigger = "time"
	TriggerTimer  Trigger = "timer"
	TriggerManual Trigger = "manual"
)

// ErrFlushInProgress is returned by Submit while a flush is running.
var ErrFlushInProgress = errors.New("flush in progress")

// State is a snapshot of the controller's adaptive signals.
type State struct {
	Buffered         int
	Target           int
	BaseBatch        int
	MaxFlushInterval time.Duration
	Rate             float64
	AvgRate          float64
	Latency          time.Duration
	Congestion       float64
	ReporterCount    int
}

// Controller buffers operations and flushes them to the Proposer when the
// DABP target, the flush interval or the flush timer says so.
// All methods must run on the scheduler's event queue.
type Controller struct {
	cfg      Config
	sched    clock.Scheduler
	proposer Proposer
	metrics  Metrics
	logger   *zap.Logger

	buffer    []model.Operation
	seen      map[string]struct{}
	arrivals  []time.Time
	latencies []float64

	rate       float64
	rateSet    bool
	avgRate    float64
	latency    float64
	congestion float64
	reporters  int
	target     int

	baseBatch   int
	maxInterval time.Duration
	lastFlush   time.Time
	timer       clock.Handle
	flushing    bool
}

// NewController builds a Controller. The flush interval is measured from construction.
func NewController(cfg Config, sched clock.Scheduler, proposer Proposer, metrics Metrics, logger *zap.Logger) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("batch config: %w", err)
	}
	if sched == nil {
		return nil, errors.New("batch controller scheduler is required")
	}
	if proposer == nil {
		return nil, errors.New("batch controller proposer is required")
	}
	if metrics == nil {
		return nil, errors.New("batch controller metrics is required")
	}

	c := &Controller{
		cfg:         cfg,
		sched:       sched,
		proposer:    proposer,
		metrics:     metrics,
		logger:      logger,
		seen:        make(map[string]struct{}),
		avgRate:     cfg.InitialAvgRate,
		latency:     cfg.InitialLatency.Seconds(),
		congestion:  1,
		baseBatch:   cfg.BaseBatch,
		maxInterval: cfg.MaxFlushInterval,
		lastFlush:   sched.Now(),
	}
	c.target = c.computeTarget()
	return c, nil
}

// Submit admits op into the buffer. Duplicate ids are ignored without error.
func (c *Controller) Submit(op model.Operation) error {
	if c.flushing {
		c.logger.Warn("operation rejected during flush", zap.String("op", op.ID()))
		return ErrFlushInProgress
	}
	if err := op.Validate(); err != nil {
		c.logger.Warn("malformed operation ignored", zap.Error(err))
		return fmt.Errorf("submit: %w", err)
	}

	id := op.ID()
	if _, dup := c.seen[id]; dup {
		c.logger.Debug("duplicate operation ignored", zap.String("op", id))
		return nil
	}
	c.seen[id] = struct{}{}
	c.buffer = append(c.buffer, op)

	now := c.sched.Now()
	c.arrivals = append(c.arrivals, now)
	c.evictArrivals(now)
	c.updateRate()
	c.updateLatency()
	c.target = c.computeTarget()

	c.checkTriggers(now)
	return nil
}

// Flush hands the buffer to the proposer immediately.
func (c *Controller) Flush() {
	c.flush(TriggerManual)
}

// UpdateNetworkParameters folds peer-reported network state into the controller.
func (c *Controller) UpdateNetworkParameters(reporterCount int, observedLatency time.Duration) {
	if reporterCount < 0 {
		c.logger.Warn("negative reporter count ignored", zap.Int("reporters", reporterCount))
		return
	}
	c.reporters = reporterCount
	c.congestion = ema(c.congestion, congestionTarget(reporterCount), congestionSmoothing)
	if observedLatency > 0 {
		c.latency = observedLatency.Seconds()
	}
}

// State returns the current adaptive signals.
func (c *Controller) State() State {
	return State{
		Buffered:         len(c.buffer),
		Target:           c.target,
		BaseBatch:        c.baseBatch,
		MaxFlushInterval: c.maxInterval,
		Rate:             c.rate,
		AvgRate:          c.avgRate,
		Latency:          seconds(c.latency),
		Congestion:       c.congestion,
		ReporterCount:    c.reporters,
	}
}

// Close cancels a pending flush timer.
func (c *Controller) Close() {
	c.cancelTimer()
}

func (c *Controller) checkTriggers(now time.Time) {
	if len(c.buffer) >= c.target {
		c.flush(TriggerSize)
		return
	}
	if now.Sub(c.lastFlush) >= c.maxInterval {
		c.flush(TriggerTime)
		return
	}
	if c.timer == 0 {
		wait := min(c.maxInterval, max(c.cfg.TimerFloor, c.cfg.MaxLatency-seconds(c.latency)))
		c.timer = c.sched.ScheduleAfter(wait, c.onTimer)
	}
}

func (c *Controller) onTimer() {
	c.timer = 0
	c.flush(TriggerTimer)
}

func (c *Controller) flush(trigger Trigger) {
	if c.flushing {
		c.logger.Warn("reentrant flush ignored", zap.String("trigger", string(trigger)))
		return
	}
	if len(c.buffer) == 0 {
		c.cancelTimer()
		return
	}
	c.flushing = true
	defer func() { c.flushing = false }()

	snapshot := slices.Clone(c.buffer)
	c.proposer.BroadcastBatch(codec.Batch{
		Operations:    snapshot,
		Rate:          c.rate,
		Latency:       c.latency,
		Congestion:    c.congestion,
		ReporterCount: c.reporters,
	})
	c.proposer.EnqueueForProposal(snapshot)

	delay := safe.Clamp(seconds(c.latency), c.cfg.ProposalDelayMin, c.cfg.ProposalDelayMax)
	c.sched.ScheduleAfter(delay, c.proposer.RequestProposal)

	c.metrics.ObserveFlush(string(trigger), len(snapshot), c.target)
	c.logger.Debug("batch flushed",
		zap.String("trigger", string(trigger)),
		zap.Int("size", len(snapshot)),
		zap.Int("target", c.target),
	)

	c.lastFlush = c.sched.Now()
	c.buffer = c.buffer[:0:0]
	c.cancelTimer()
	if len(c.seen) > c.cfg.DedupeLimit {
		clear(c.seen)
	}
	c.adjustParameters()
}

func (c *Controller) cancelTimer() {
	if c.timer != 0 {
		c.sched.Cancel(c.timer)
		c.timer = 0
	}
}

func (c *Controller) evictArrivals(now time.Time) {
	cutoff := now.Add(-c.cfg.ArrivalWindow)
	i := 0
	for i < len(c.arrivals) && c.arrivals[i].Before(cutoff) {
		i++
	}
	c.arrivals = c.arrivals[i:]
}

func (c *Controller) updateRate() {
	if len(c.arrivals) < 2 {
		return
	}
	instant := float64(len(c.arrivals)) / c.cfg.ArrivalWindow.Seconds()
	if c.rateSet {
		c.rate = ema(c.rate, instant, rateSmoothing)
	} else {
		c.rate = instant
		c.rateSet = true
	}
	if c.avgRate <= 0 {
		c.avgRate = c.rate
	} else {
		c.avgRate = ema(c.avgRate, c.rate, avgRateSmoothing)
	}
}

func (c *Controller) updateLatency() {
	c.latency = estimateLatency(c.congestion, c.rate, c.reporters, c.cfg.MaxLatency.Seconds())
	c.latencies = append(c.latencies, c.latency)
	if len(c.latencies) > c.cfg.LatencyHistory {
		c.latencies = c.latencies[len(c.latencies)-c.cfg.LatencyHistory:]
	}
}

func (c *Controller) computeTarget() int {
	return targetSize(c.baseBatch, c.cfg.MinBatch, c.cfg.MaxBatch,
		c.rate, c.avgRate, c.latency, c.cfg.MaxLatency.Seconds(), c.congestion)
}

func (c *Controller) adjustParameters() {
	maxLatency := c.cfg.MaxLatency.Seconds()
	switch avg := mean(c.latencies); {
	case len(c.latencies) == 0:
	case avg > shrinkLatencyRatio*maxLatency:
		c.baseBatch = max(c.cfg.MinBatch, int(float64(c.baseBatch)*baseShrink))
	case avg < growLatencyRatio*maxLatency:
		c.baseBatch = min(c.cfg.MaxBatch, int(float64(c.baseBatch)*baseGrow))
	}

	switch {
	case c.rate > burstRateRatio*c.avgRate:
		c.maxInterval = max(c.cfg.FlushIntervalFloor, c.maxInterval*9/10)
	case c.rate < idleRateRatio*c.avgRate:
		c.maxInterval = min(c.cfg.FlushIntervalCeiling, c.maxInterval*12/10)
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
