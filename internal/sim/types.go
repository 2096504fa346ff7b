package sim

import (
	"errors"

	"github.com/san-kum/deskstead/internal/metrics"
)

var ErrInvalidRun = errors.New("sim: invalid run config")

type Observer interface {
	OnStep(s metrics.Sample)
}

type Config struct {
	Dt       float64
	Duration float64
}

// Steps is the number of whole ticks that fit in the duration.
func (c Config) Steps() int {
	return int(c.Duration/c.Dt + 1e-9)
}

type Result struct {
	Samples    []metrics.Sample
	StepsTaken int
	Metrics    map[string]float64
}

// Series extracts one value per sample. Samples where pick reports false are
// skipped.
func (r *Result) Series(pick func(metrics.Sample) (float64, bool)) []float64 {
	out := make([]float64, 0, len(r.Samples))
	for _, s := range r.Samples {
		if v, ok := pick(s); ok {
			out = append(out, v)
		}
	}
	return out
}
