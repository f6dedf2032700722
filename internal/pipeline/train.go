package pipeline

import (
	"context"
	"fmt"

	"github.com/correctocr/correctocr/internal/align"
	"github.com/correctocr/correctocr/internal/model"
	"github.com/sourcegraph/conc/pool"
)

// GoldNoisyPair is one aligned-training-corpus entry: a gold word and
// its corresponding noisy OCR output (spec §4.1's aligner input).
type GoldNoisyPair struct {
	Gold  string
	Noisy string
}

// AlignCorpus runs the aligner over every (gold, noisy) pair
// concurrently and merges the resulting misread counts (spec §5's "the
// aligner is serial per document pair but trivially parallel across
// pairs").
func AlignCorpus(ctx context.Context, pairs []GoldNoisyPair, cfg align.Config, maxWorkers int) (align.MisreadCount, error) {
	if maxWorkers <= 0 {
		maxWorkers = DefaultConfig().MaxWorkers
	}

	wp := pool.NewWithResults[align.MisreadCount]().WithMaxGoroutines(maxWorkers).WithErrors().WithContext(ctx)
	for _, pair := range pairs {
		pair := pair
		wp.Go(func(ctx context.Context) (align.MisreadCount, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			_, misreads := align.Align(pair.Gold, pair.Noisy, cfg)
			return misreads, nil
		})
	}

	perPair, err := wp.Wait()
	if err != nil {
		return nil, fmt.Errorf("pipeline: align phase: %w", err)
	}

	merged := make(align.MisreadCount)
	for _, mc := range perPair {
		merged.Merge(mc)
	}
	return merged, nil
}

// Train runs alignment over the full corpus and builds an HMM from the
// merged misread counts, composing the Aligner and Model Builder
// subsystems (spec §1's pipeline stages 1-2).
func Train(ctx context.Context, pairs []GoldNoisyPair, alignCfg align.Config, buildCfg model.Config, maxWorkers int) (*model.HMM, error) {
	misreads, err := AlignCorpus(ctx, pairs, alignCfg, maxWorkers)
	if err != nil {
		return nil, err
	}

	goldWords := make([]string, len(pairs))
	for i, p := range pairs {
		goldWords[i] = p.Gold
	}

	hmm, err := model.Build(buildCfg, misreads, goldWords)
	if err != nil {
		return nil, fmt.Errorf("pipeline: model build phase: %w", err)
	}
	return hmm, nil
}
