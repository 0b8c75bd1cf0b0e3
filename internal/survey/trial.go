// Package survey runs rule-table trials: build a table, simulate it, classify
// it and render interesting runs under a path derived from the table itself.
//
// Deduplication is purely filesystem based. A path that exists is skipped
// before any simulation, and artifacts are created with O_EXCL so that when
// trials run concurrently exactly one of two identical tables is rendered.
package survey

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"ca-survey/internal/core"
	"ca-survey/internal/engine"
	"ca-survey/internal/ledger"
	"ca-survey/internal/render"
	"ca-survey/internal/rules"
)

// Result summarises one trial.
type Result struct {
	Key        string
	Path       string
	Status     ledger.Status
	Interest   rules.Interestingness
	Iterations int
}

// Runner executes trials against one output tree.
type Runner struct {
	Output     string
	Renderer   render.FrameRenderer
	Ledger     ledger.Store
	Logger     *log.Logger
	MarkBoring bool
	Sidecars   bool
}

// NewRunner returns a runner writing GIFs below output.
func NewRunner(output string) *Runner {
	return &Runner{Output: output, Renderer: render.NewGIFRenderer()}
}

// CanonicalPath is the artifact location for a rule table. Identical tables
// always map to the same path.
func CanonicalPath(root string, dimension, radius int, key string, in rules.Interestingness, ext string) string {
	name := in.String() + "_" + key + "." + ext
	return filepath.Join(root, strconv.Itoa(dimension), strconv.Itoa(radius), name)
}

// PathExists reports whether an artifact is already present.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (r *Runner) logf(format string, args ...any) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
		return
	}
	log.Printf(format, args...)
}

// Run executes a single trial of v. Errors are local to the trial.
func (r *Runner) Run(ctx context.Context, v Variant, src core.BitSource) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := v.Validate(); err != nil {
		return Result{}, err
	}
	if r.Renderer == nil {
		return Result{}, fmt.Errorf("%w: no renderer", ErrConfig)
	}
	table, err := v.Table(src)
	if err != nil {
		return Result{}, err
	}

	in := table.Classify()
	res := Result{
		Key:      table.Key(),
		Interest: in,
		Path:     CanonicalPath(r.Output, v.Dimension, v.Radius, table.Key(), in, r.Renderer.Ext()),
	}

	if PathExists(res.Path) {
		r.logf("!! Path exists: %s. Skipping...", res.Path)
		res.Status = ledger.StatusSkipped
		return res, r.record(ctx, v, res, nil)
	}

	r.logf("Rules = %s", table.Encode(true))
	space, err := core.NewSpace(v.Dimension, v.Steps, v.Width, v.Height)
	if err != nil {
		return r.fail(ctx, v, res, err)
	}
	if err := engine.Seed(space, engine.Seeding(v.Seeding), src); err != nil {
		return r.fail(ctx, v, res, err)
	}
	auto, err := engine.New(table, space)
	if err != nil {
		return r.fail(ctx, v, res, err)
	}
	if _, err := auto.RunToCompletion(v.SkipBoring); err != nil {
		return r.fail(ctx, v, res, err)
	}
	res.Iterations = auto.Iteration()

	if !in.Interesting && !r.MarkBoring {
		res.Status = ledger.StatusBoring
		return res, r.record(ctx, v, res, nil)
	}

	created, err := r.write(res.Path, space, in.Interesting)
	if err != nil {
		return r.fail(ctx, v, res, err)
	}
	if !created {
		r.logf("!! Path exists: %s. Skipping...", res.Path)
		res.Status = ledger.StatusSkipped
		return res, r.record(ctx, v, res, nil)
	}
	res.Status = ledger.StatusRendered
	if !in.Interesting {
		res.Status = ledger.StatusBoring
	}
	if r.Sidecars {
		if err := writeSidecar(res.Path+".yaml", v, res); err != nil {
			// An artifact never outlives a failed sidecar.
			_ = os.Remove(res.Path)
			return r.fail(ctx, v, res, err)
		}
	}
	r.logf("writing: %s", res.Path)
	return res, r.record(ctx, v, res, nil)
}

// write creates path exclusively and renders the space into it. It reports
// false when another trial created the path first.
func (r *Runner) write(path string, space *core.Space, interesting bool) (bool, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("create %s: %w", path, err)
	}

	w, h := space.FrameSize()
	frames := space.Frames()
	if !interesting {
		w, h, frames = render.Placeholder()
	}
	err = r.Renderer.Render(f, render.Palette, w, h, frames)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("close %s: %w", path, cerr)
	}
	if err != nil {
		_ = os.Remove(path)
		return false, fmt.Errorf("render %s: %w", path, err)
	}
	return true, nil
}

func (r *Runner) fail(ctx context.Context, v Variant, res Result, err error) (Result, error) {
	res.Status = ledger.StatusFailed
	if rerr := r.record(ctx, v, res, err); rerr != nil {
		r.logf("ledger: %v", rerr)
	}
	return res, err
}

func (r *Runner) record(ctx context.Context, v Variant, res Result, trialErr error) error {
	if r.Ledger == nil {
		return nil
	}
	rec := ledger.NewRecord()
	rec.Key = res.Key
	rec.Dimension = v.Dimension
	rec.Radius = v.Radius
	rec.Variant = v.Name
	rec.AliveRatio = res.Interest.AliveRatio
	rec.Interesting = res.Interest.Interesting
	rec.Status = res.Status
	rec.Path = res.Path
	if trialErr != nil {
		rec.Error = trialErr.Error()
	}
	if err := r.Ledger.Save(ctx, rec); err != nil {
		return fmt.Errorf("ledger save %s: %w", res.Key, err)
	}
	return nil
}
