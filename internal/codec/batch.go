package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goodnatureofminers/roadledger/internal/model"
)

// Batch is a flushed set of operations plus the sender's network state.
// The network fields are diagnostic only.
type Batch struct {
	Operations    []model.Operation
	Rate          float64
	Latency       float64
	Congestion    float64
	ReporterCount int
}

const (
	batchPrefix      = "BATCH:"
	ratePrefix       = "RATE:"
	latencyPrefix    = "LATENCY:"
	congestionPrefix = "CONGESTION:"
	reportersPrefix  = "REPORTERS:"
	batchHeaderLen   = 5
)

// EncodeBatch renders a count-prefixed, pipe-delimited batch.
func EncodeBatch(b Batch) string {
	parts := make([]string, 0, batchHeaderLen+len(b.Operations))
	parts = append(parts,
		batchPrefix+strconv.Itoa(len(b.Operations)),
		ratePrefix+formatFloat(b.Rate),
		latencyPrefix+formatFloat(b.Latency),
		congestionPrefix+formatFloat(b.Congestion),
		reportersPrefix+strconv.Itoa(b.ReporterCount),
	)
	for _, op := range b.Operations {
		parts = append(parts, EncodeOperation(op))
	}
	return strings.Join(parts, recordSep)
}

// DecodeBatch parses a batch. A malformed header fails the whole batch;
// malformed records are skipped and returned in skipped.
func DecodeBatch(s string) (b Batch, skipped []error, err error) {
	parts := strings.Split(s, recordSep)
	if len(parts) < batchHeaderLen {
		return Batch{}, nil, fmt.Errorf("%w: batch header", ErrMalformed)
	}

	count, err := headerInt(parts[0], batchPrefix)
	if err != nil {
		return Batch{}, nil, err
	}
	if b.Rate, err = headerFloat(parts[1], ratePrefix); err != nil {
		return Batch{}, nil, err
	}
	if b.Latency, err = headerFloat(parts[2], latencyPrefix); err != nil {
		return Batch{}, nil, err
	}
	if b.Congestion, err = headerFloat(parts[3], congestionPrefix); err != nil {
		return Batch{}, nil, err
	}
	if b.ReporterCount, err = headerInt(parts[4], reportersPrefix); err != nil {
		return Batch{}, nil, err
	}

	records := parts[batchHeaderLen:]
	if count == 0 && len(records) == 1 && records[0] == "" {
		records = nil
	}
	if len(records) != count {
		return Batch{}, nil, fmt.Errorf("%w: batch announces %d records, carries %d", ErrMalformed, count, len(records))
	}

	b.Operations = make([]model.Operation, 0, count)
	for i, record := range records {
		op, decodeErr := DecodeOperation(record)
		if decodeErr != nil {
			skipped = append(skipped, fmt.Errorf("record %d: %w", i, decodeErr))
			continue
		}
		b.Operations = append(b.Operations, op)
	}
	return b, skipped, nil
}

func headerInt(field, prefix string) (int, error) {
	v, ok := strings.CutPrefix(field, prefix)
	if !ok {
		return 0, fmt.Errorf("%w: expected %s", ErrMalformed, prefix)
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s%q", ErrMalformed, prefix, v)
	}
	return n, nil
}

func headerFloat(field, prefix string) (float64, error) {
	v, ok := strings.CutPrefix(field, prefix)
	if !ok {
		return 0, fmt.Errorf("%w: expected %s", ErrMalformed, prefix)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s%q", ErrMalformed, prefix, v)
	}
	return f, nil
}
