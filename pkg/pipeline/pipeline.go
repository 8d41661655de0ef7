package pipeline

import (
	"fmt"

	"github.com/BoyarinO/dataroot2/pkg/data"
)

// Transformer interface for fit/transform pattern.
type Transformer interface {
	Fit(X [][]float64) error
	Transform(X [][]float64) ([][]float64, error)
}

// Pipeline chains multiple transformers.
type Pipeline struct {
	steps []Transformer
}

func NewPipeline(steps ...Transformer) *Pipeline {
	return &Pipeline{steps: steps}
}

// Len returns the number of steps.
func (p *Pipeline) Len() int { return len(p.steps) }

// Fit fits every step on the output of the previous one.
func (p *Pipeline) Fit(X [][]float64) error {
	for i, step := range p.steps {
		if err := step.Fit(X); err != nil {
			return fmt.Errorf("pipeline: fit step %d: %w", i, err)
		}
		var err error
		if X, err = step.Transform(X); err != nil {
			return fmt.Errorf("pipeline: transform step %d: %w", i, err)
		}
	}
	return nil
}

func (p *Pipeline) Transform(X [][]float64) ([][]float64, error) {
	for i, step := range p.steps {
		var err error
		if X, err = step.Transform(X); err != nil {
			return nil, fmt.Errorf("pipeline: transform step %d: %w", i, err)
		}
	}
	return X, nil
}

// Apply fits the pipeline on the training features and transforms both
// datasets with it. Labels are shared with the inputs.
func (p *Pipeline) Apply(train, test data.Dataset) (data.Dataset, data.Dataset, error) {
	if len(p.steps) == 0 {
		return train, test, nil
	}
	if err := p.Fit(train.X); err != nil {
		return data.Dataset{}, data.Dataset{}, err
	}
	trainX, err := p.Transform(train.X)
	if err != nil {
		return data.Dataset{}, data.Dataset{}, err
	}
	testX, err := p.Transform(test.X)
	if err != nil {
		return data.Dataset{}, data.Dataset{}, err
	}
	return data.Dataset{X: trainX, Y: train.Y}, data.Dataset{X: testX, Y: test.Y}, nil
}
