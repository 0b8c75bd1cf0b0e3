package survey

import (
	"context"
	"errors"
	"image/color"
	"io"
	"iter"
	"testing"

	"ca-survey/internal/ledger"
	"ca-survey/internal/rules"
)

var errTest = errors.New("render failed")

func TestSurveySequential(t *testing.T) {
	ctx := context.Background()
	r, renderer, store := newTestRunner(t)
	cfg := DefaultConfig()
	cfg.Trials = 6
	cfg.Presets = nil
	cfg.Variants = []Variant{fixedVariant()}

	summary, err := r.Survey(ctx, cfg)
	if err != nil {
		t.Fatalf("survey: %v", err)
	}
	if summary.Trials != 6 || summary.Rendered != 1 || summary.Skipped != 5 || summary.Failed != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if renderer.Calls() != 1 {
		t.Fatalf("renderer called %d times", renderer.Calls())
	}
	counts, err := store.Counts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts[ledger.StatusRendered] != 1 || counts[ledger.StatusSkipped] != 5 {
		t.Fatalf("ledger counts %v", counts)
	}
}

func TestSurveyParallelRendersOnce(t *testing.T) {
	r, renderer, _ := newTestRunner(t)
	cfg := DefaultConfig()
	cfg.Trials = 32
	cfg.Workers = 8
	cfg.Presets = nil
	cfg.Variants = []Variant{fixedVariant()}

	summary, err := r.Survey(context.Background(), cfg)
	if err != nil {
		t.Fatalf("survey: %v", err)
	}
	if summary.Rendered != 1 || summary.Skipped != 31 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if renderer.Calls() != 1 {
		t.Fatalf("renderer called %d times, want exactly once", renderer.Calls())
	}
}

func TestSurveyContinuesAfterFailures(t *testing.T) {
	r, renderer, _ := newTestRunner(t)
	renderer.fail = errTest
	cfg := DefaultConfig()
	cfg.Trials = 3
	cfg.Presets = nil
	cfg.Variants = []Variant{fixedVariant()}

	summary, err := r.Survey(context.Background(), cfg)
	if err != nil {
		t.Fatalf("survey: %v", err)
	}
	if summary.Failed != 3 || summary.Trials != 3 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestSurveyRoundRobinsVariants(t *testing.T) {
	r, _, store := newTestRunner(t)
	cfg := DefaultConfig()
	cfg.Trials = 4
	cfg.Presets = []string{"1d-single", "2d-conway"}
	cfg.Variants = nil

	if _, err := r.Survey(context.Background(), cfg); err != nil {
		t.Fatalf("survey: %v", err)
	}
	seen := map[string]int{}
	for _, rec := range store.Records() {
		seen[rec.Variant]++
	}
	if seen["1d-single"] != 2 || seen["2d-conway"] != 2 {
		t.Fatalf("variant distribution %v", seen)
	}
}

func TestSurveyStopsWhenCancelled(t *testing.T) {
	r, renderer, _ := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg := DefaultConfig()
	cfg.Trials = 10
	cfg.Presets = nil
	cfg.Variants = []Variant{fixedVariant()}

	summary, err := r.Survey(ctx, cfg)
	if err == nil {
		t.Fatal("expected context error")
	}
	if summary.Trials != 0 || renderer.Calls() != 0 {
		t.Fatalf("cancelled survey ran trials: %+v", summary)
	}
}

// cancellingRenderer cancels the survey while its first render is running.
type cancellingRenderer struct {
	countingRenderer
	cancel context.CancelFunc
}

func (c *cancellingRenderer) Render(w io.Writer, p color.Palette, width, height int, frames iter.Seq[[]uint8]) error {
	c.cancel()
	return c.countingRenderer.Render(w, p, width, height, frames)
}

func TestSurveyStopsMidway(t *testing.T) {
	r, _, _ := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	renderer := &cancellingRenderer{cancel: cancel}
	r.Renderer = renderer
	r.MarkBoring = true
	cfg := DefaultConfig()
	cfg.Trials = 5
	cfg.Workers = 1
	cfg.Presets = nil
	v := fixedVariant()
	v.Rule = RuleRandom
	v.Bias = int(rules.FairBias)
	cfg.Variants = []Variant{v}

	summary, err := r.Survey(ctx, cfg)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if renderer.Calls() != 1 || summary.Trials != 1 {
		t.Fatalf("trials ran after cancellation: renders=%d summary=%+v", renderer.Calls(), summary)
	}
}
