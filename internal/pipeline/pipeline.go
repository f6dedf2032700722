// Package pipeline orchestrates the Aligner, Model Builder, Decoder,
// and Heuristic Binner across a corpus of documents using a bounded
// worker pool (spec §5), adapted from the teacher's
// ProcessImagesParallelContext worker-pool pattern but built on
// sourcegraph/conc's structured pools instead of hand-rolled
// channel/WaitGroup plumbing.
package pipeline

import (
	"context"
	"fmt"

	"github.com/correctocr/correctocr/internal/decode"
	"github.com/correctocr/correctocr/internal/heuristics"
	"github.com/correctocr/correctocr/internal/model"
	"github.com/correctocr/correctocr/internal/token"
	"github.com/sourcegraph/conc/pool"
)

// Config controls the worker pool (spec §5's "bounded worker pool
// fanning out over tokens within a document and over documents across
// a corpus").
type Config struct {
	MaxWorkers int
}

// DefaultConfig returns sensible pool defaults.
func DefaultConfig() Config {
	return Config{MaxWorkers: 8}
}

// Pipeline wires a trained HMM, decoder, and corrector together to run
// decode+bin over whole documents.
type Pipeline struct {
	Decoder   *decode.Decoder
	Corrector *heuristics.Corrector
	Config    Config
}

// New builds a Pipeline from a trained model and a corrector.
func New(hmm *model.HMM, dec *decode.Decoder, corrector *heuristics.Corrector, cfg Config) *Pipeline {
	if cfg.MaxWorkers <= 0 {
		cfg.MaxWorkers = DefaultConfig().MaxWorkers
	}
	return &Pipeline{Decoder: dec, Corrector: corrector, Config: cfg}
}

// ProcessDocument decodes and bins every word token of list, fanning
// out across Config.MaxWorkers goroutines. Per-token results are
// independent (spec §4.4 "Ordering guarantees"); the token slice is
// mutated in place and its original order is never changed, only the
// KBest/Bin/Heuristic/Selection fields of each *Token are populated.
func (p *Pipeline) ProcessDocument(ctx context.Context, list *token.List) error {
	words := list.Words()
	if len(words) == 0 {
		return nil
	}

	wp := pool.New().WithMaxGoroutines(p.Config.MaxWorkers).WithErrors().WithContext(ctx)
	for _, t := range words {
		t := t
		wp.Go(func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			cands := p.Decoder.Decode(t.Original)
			t.KBest = make([]token.KBest, len(cands))
			for i, c := range cands {
				t.KBest[i] = token.KBest{Candidate: c.String, LogProb: c.LogProb}
			}
			return nil
		})
	}
	if err := wp.Wait(); err != nil {
		return fmt.Errorf("pipeline: decode phase: %w", err)
	}

	// Binning and hyphenation propagation is inherently sequential per
	// document (a hyphenated token's resolution depends on its
	// neighbor), but is cheap relative to decoding; run it once the
	// whole document has been decoded. A nil Corrector means the
	// caller only wants k-best candidates (decode-only), skip binning.
	if p.Corrector != nil {
		p.Corrector.BinTokens(list, false)
	}
	return nil
}

// ProcessCorpus runs ProcessDocument across many documents concurrently
// (spec §5's "trivially parallel across pairs/documents"), returning
// the first error encountered, if any. Each document's internal
// fan-out is bounded by Config.MaxWorkers separately; conc's pools are
// not goroutine-budget-aware across pools, so up to MaxWorkers ×
// MaxWorkers decode goroutines can run at once.
func (p *Pipeline) ProcessCorpus(ctx context.Context, lists []*token.List) error {
	wp := pool.New().WithMaxGoroutines(p.Config.MaxWorkers).WithErrors().WithContext(ctx).WithCancelOnError()
	for _, list := range lists {
		list := list
		wp.Go(func(ctx context.Context) error {
			return p.ProcessDocument(ctx, list)
		})
	}
	return wp.Wait()
}
