package device

import (
	"context"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/venusengine/venus/logging"
)

// DiscreteBonus is added to the score of discrete GPUs. It is larger than any
// maxImageDimension2D a real device reports, so device type always dominates.
const DiscreteBonus = 10000

var (
	ErrNoAdapters        = errors.New("no graphics adapters found")
	ErrNoSuitableAdapter = errors.New("no suitable graphics adapter")
)

type Criteria struct {
	RequiredExtensions []string
	// MinAPIVersion zeroes the score of adapters that report an older API.
	MinAPIVersion APIVersion
	// Parallelism bounds concurrent probes. Zero or less probes one at a time.
	Parallelism int
}

// Score rates a candidate. Zero means "never pick", which Select treats the
// same as failing the candidate filter.
func Score(caps Capabilities, minAPI APIVersion) int {
	if !caps.Features.GeometryShader {
		return 0
	}
	if caps.Properties.APIVersion < minAPI {
		return 0
	}

	score := 0
	if caps.Properties.Type == DeviceTypeDiscreteGPU {
		score += DiscreteBonus
	}
	score += caps.Properties.MaxImageDimension2D
	return score
}

type Selection[A Adapter] struct {
	Index        int
	Adapter      A
	Capabilities Capabilities
	Score        int
}

type probeResult struct {
	caps Capabilities
	err  error
}

// Select probes every adapter and returns the highest-scoring candidate. Ties
// go to the adapter enumerated first.
func Select[A Adapter](ctx context.Context, adapters []A, criteria Criteria, logger logging.Logger) (Selection[A], error) {
	var best Selection[A]
	if len(adapters) == 0 {
		return best, ErrNoAdapters
	}

	results := make([]probeResult, len(adapters))
	g, gctx := errgroup.WithContext(ctx)
	parallelism := criteria.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}
	g.SetLimit(parallelism)

	for i, adapter := range adapters {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			caps, err := Probe(adapter, criteria.RequiredExtensions)
			results[i] = probeResult{caps: caps, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return best, errors.Wrap(err, "probe adapters")
	}

	best.Index = -1
	for i, result := range results {
		name := result.caps.Properties.Name
		if result.err != nil {
			logger.Warnf("Adapter %d (%s) skipped: %v", i, name, result.err)
			continue
		}
		if !result.caps.Candidate() {
			logger.Debugf("Adapter %d (%s) does not meet minimum requirements.", i, name)
			continue
		}

		score := Score(result.caps, criteria.MinAPIVersion)
		logger.Infof("[%s] type=%s vulkan=%s score=%d", name, result.caps.Properties.Type, result.caps.Properties.APIVersion, score)
		if score == 0 {
			continue
		}

		if score > best.Score {
			best = Selection[A]{
				Index:        i,
				Adapter:      adapters[i],
				Capabilities: result.caps,
				Score:        score,
			}
		}
	}

	if best.Index < 0 {
		return best, ErrNoSuitableAdapter
	}

	logger.Infof("GPU has been selected: %s (cache %s)", best.Capabilities.Properties.Name, best.Capabilities.Properties.PipelineCacheUUID)
	return best, nil
}
