package survey

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"ca-survey/internal/core"
	"ca-survey/internal/ledger"
)

// Summary counts trial outcomes.
type Summary struct {
	Trials   int
	Rendered int
	Skipped  int
	Boring   int
	Failed   int
}

func (s *Summary) add(status ledger.Status) {
	s.Trials++
	switch status {
	case ledger.StatusRendered:
		s.Rendered++
	case ledger.StatusSkipped:
		s.Skipped++
	case ledger.StatusBoring:
		s.Boring++
	default:
		s.Failed++
	}
}

// Survey runs cfg.Trials trials round-robin over the configured variants.
// Trial i draws from an RNG seeded with cfg.Seed+i. A failing trial is logged
// and counted; it never stops the survey. Cancelling ctx stops issuing trials.
func (r *Runner) Survey(ctx context.Context, cfg Config) (Summary, error) {
	variants, err := cfg.Resolve()
	if err != nil {
		return Summary{}, err
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	var (
		mu      sync.Mutex
		summary Summary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < cfg.Trials; i++ {
		if gctx.Err() != nil {
			break
		}
		v := variants[i%len(variants)]
		seed := cfg.Seed + int64(i)
		g.Go(func() error {
			// Cancelled while waiting for a worker slot.
			if gctx.Err() != nil {
				return nil
			}
			res, err := r.Run(gctx, v, core.NewRNG(seed))
			status := res.Status
			if err != nil {
				r.logf("trial %d (%s): %v", i, v.Name, err)
				status = ledger.StatusFailed
			}
			mu.Lock()
			summary.add(status)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return summary, ctx.Err()
}
