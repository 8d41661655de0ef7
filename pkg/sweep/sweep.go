package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BoyarinO/dataroot2/pkg/core"
	"github.com/BoyarinO/dataroot2/pkg/data"
	"github.com/BoyarinO/dataroot2/pkg/model"
)

// Result is the outcome of one k of a sweep.
type Result struct {
	K        int
	Accuracy float64
	// Elapsed covers the neighbour vote only; the shared distance matrix is built once per sweep.
	Elapsed             time.Duration
	Misclassified       []int
	MisclassifiedPoints [][]float64
}

// Evaluator runs k sweeps over a fixed train/test split.
type Evaluator struct {
	logger  *slog.Logger
	workers int
}

// Option functional config for Evaluator
type Option func(*Evaluator)

func WithLogger(l *slog.Logger) Option { return func(e *Evaluator) { e.logger = l } }

// WithWorkers sets the goroutines used for the distance matrix; <= 0 uses GOMAXPROCS.
func WithWorkers(n int) Option { return func(e *Evaluator) { e.workers = n } }

func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{workers: 1}
	for _, o := range opts {
		o(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Evaluate builds the test-by-train distance matrix once and scores every k
// of ks against it, in the order given. The first failing k aborts the sweep.
func (e *Evaluator) Evaluate(ctx context.Context, train, test data.Dataset, ks []int) ([]Result, error) {
	if len(ks) == 0 {
		return nil, core.WrapError("Evaluate", fmt.Errorf("%w: no k values", core.ErrInvalidRange))
	}
	if err := train.Validate(); err != nil {
		return nil, fmt.Errorf("train: %w", err)
	}
	if err := test.Validate(); err != nil {
		return nil, fmt.Errorf("test: %w", err)
	}

	e.logger.Info("building distance matrix", "train", train.Len(), "test", test.Len(), "dim", train.Dim())
	t0 := time.Now()
	dist, err := e.buildDistances(train, test)
	if err != nil {
		return nil, err
	}
	e.logger.Info("distance matrix ready", "elapsed", time.Since(t0))

	results := make([]Result, 0, len(ks))
	for _, k := range ks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t0 := time.Now()
		predicted, err := model.Predict(dist, train.Y, k)
		elapsed := time.Since(t0)
		if err != nil {
			return nil, fmt.Errorf("k=%d: %w", k, err)
		}

		acc, err := model.Accuracy(predicted, test.Y)
		if err != nil {
			return nil, fmt.Errorf("k=%d: %w", k, err)
		}

		miss := model.Misclassified(predicted, test.Y)
		r := Result{
			K:                   k,
			Accuracy:            acc,
			Elapsed:             elapsed,
			Misclassified:       miss,
			MisclassifiedPoints: test.Subset(miss).X,
		}
		results = append(results, r)

		e.logger.Info("evaluated k", "k", k, "accuracy", acc, "elapsed", elapsed, "misclassified", len(miss))
	}
	return results, nil
}

func (e *Evaluator) buildDistances(train, test data.Dataset) (*core.Matrix, error) {
	if e.workers == 1 {
		return core.BuildDistances(train.X, test.X)
	}
	return core.BuildDistancesParallel(train.X, test.X, e.workers)
}
