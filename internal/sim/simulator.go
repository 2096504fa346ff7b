// Package sim runs a physics scene without a window.
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/deskstead/internal/metrics"
	"github.com/san-kum/deskstead/internal/render"
	"github.com/san-kum/deskstead/internal/scene"
)

type Simulator struct {
	phys      *scene.Physics
	pointer   render.Pointer
	metrics   []metrics.Metric
	observers []Observer
}

func New(phys *scene.Physics) *Simulator {
	return &Simulator{
		phys:      phys,
		metrics:   make([]metrics.Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m metrics.Metric) { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)     { s.observers = append(s.observers, o) }

// SetPointer scripts the drag input. Nil means no pointer.
func (s *Simulator) SetPointer(p render.Pointer) { s.pointer = p }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	result := &Result{
		Samples: make([]metrics.Sample, 0, steps),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	err := s.RunWithCallback(ctx, cfg, func(sample metrics.Sample) bool {
		result.Samples = append(result.Samples, sample)
		result.StepsTaken++
		return true
	})

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, err
}

// RunWithCallback steps until the duration is used up, the callback returns
// false or ctx is cancelled. Metrics and observers see every sample.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(metrics.Sample) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	steps := cfg.Steps()
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		stats, err := s.phys.Tick(s.pointer, cfg.Dt)
		if err != nil {
			return fmt.Errorf("sim: step %d: %w", i, err)
		}

		sample := metrics.Snapshot(s.phys.World, stats)
		for _, m := range s.metrics {
			m.Observe(sample)
		}
		for _, obs := range s.observers {
			obs.OnStep(sample)
		}
		if !callback(sample) {
			return nil
		}
	}
	return nil
}

func validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidRun, cfg.Dt)
	}
	if !(cfg.Duration > 0) {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidRun, cfg.Duration)
	}
	return nil
}
