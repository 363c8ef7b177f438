package analyzer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/jacobarthurs/pgseq/internal/sequence"

	"go.uber.org/zap"
)

const DefaultThreshold = 0.9

var ErrInvalidThreshold = errors.New("threshold must be between 0 and 1")

type Analyzer struct {
	collector *sequence.Collector
	threshold float64
	logger    *zap.Logger
}

// New builds an Analyzer whose collector classifies sequences against
// threshold, the fraction of the range that may be consumed before a
// sequence is flagged.
func New(q sequence.Querier, threshold float64, logger *zap.Logger) (*Analyzer, error) {
	if math.IsNaN(threshold) || threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		collector: sequence.NewCollector(q, threshold, logger),
		threshold: threshold,
		logger:    logger,
	}, nil
}

func (a *Analyzer) Analyze(ctx context.Context) (Result, error) {
	records, err := a.collector.Collect(ctx)
	if err != nil {
		return Result{}, err
	}

	sortByHeadroom(records)

	result := Result{
		Threshold: a.threshold,
		Records:   records,
	}
	for _, r := range records {
		if !r.Healthy {
			result.Unhealthy = append(result.Unhealthy, r)
		}
	}

	a.logger.Debug("Analyzed sequences",
		zap.Int("total", len(result.Records)),
		zap.Int("unhealthy", len(result.Unhealthy)),
		zap.Float64("threshold", a.threshold),
	)

	return result, nil
}

func (a *Analyzer) BuildReport(ctx context.Context) (string, error) {
	result, err := a.Analyze(ctx)
	if err != nil {
		return "", err
	}
	return FormatReport(result), nil
}

// sortByHeadroom orders by absolute values remaining, not by percentage, so
// a small sequence that is nearly full ranks above a large one at the same
// percentage.
func sortByHeadroom(records []sequence.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Remaining() < records[j].Remaining()
	})
}
