package sim

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/san-kum/deskstead/internal/metrics"
	"github.com/san-kum/deskstead/internal/scene"
)

// Build creates one independent scene for an ensemble member.
type Build func() (*scene.Physics, error)

// Ensemble runs several scenes concurrently. Every member gets its own
// world and its own metric instances.
type Ensemble struct {
	builds     []Build
	newMetrics func() []metrics.Metric
}

func NewEnsemble(newMetrics func() []metrics.Metric) *Ensemble {
	return &Ensemble{newMetrics: newMetrics}
}

func (e *Ensemble) Add(b Build) { e.builds = append(e.builds, b) }
func (e *Ensemble) Len() int    { return len(e.builds) }

// Run returns results in the order members were added. The first failing
// member's error is returned.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	results := make([]*Result, len(e.builds))
	errs := make([]error, len(e.builds))

	var wg sync.WaitGroup
	for i, build := range e.builds {
		wg.Add(1)
		go func(idx int, build Build) {
			defer wg.Done()

			phys, err := build()
			if err != nil {
				errs[idx] = fmt.Errorf("sim: member %d: %w", idx, err)
				return
			}
			s := New(phys)
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					s.AddMetric(m)
				}
			}
			results[idx], errs[idx] = s.Run(ctx, cfg)
		}(i, build)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Best returns the index of the result with the smallest value of the named
// metric. Results without the metric, or with a NaN value, are skipped; ok is
// false when nothing qualifies.
func Best(results []*Result, metric string) (idx int, value float64, ok bool) {
	value = math.Inf(1)
	idx = -1
	for i, r := range results {
		if r == nil {
			continue
		}
		v, has := r.Metrics[metric]
		if !has || math.IsNaN(v) {
			continue
		}
		if v < value {
			idx, value = i, v
		}
	}
	return idx, value, idx >= 0
}
