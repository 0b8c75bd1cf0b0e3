package elementary

import (
	"testing"

	"ca-survey/internal/core"
)

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{"w": "31", "h": "12", "r": "2", "rule": "02", "seeding": "random", "bias": "64"})
	if c.Width != 31 || c.Steps != 12 || c.Radius != 2 || c.Rule != "02" || c.Seeding != "random" || c.Bias != 64 {
		t.Fatalf("unexpected config %+v", c)
	}
	c = FromMap(map[string]string{"r": "9", "seeding": "diagonal", "w": "-1"})
	if c != DefaultConfig() {
		t.Fatalf("invalid values should keep defaults, got %+v", c)
	}
}

func TestStepRevealsRows(t *testing.T) {
	// Entry 1 (only the left neighbor alive) is the sole live entry, so the
	// seed cell moves one column right per generation.
	cfg := DefaultConfig()
	cfg.Width, cfg.Steps, cfg.Rule = 9, 6, "02"
	e := New(cfg)
	e.Reset(1)

	if e.Shown() != 1 {
		t.Fatalf("shown %d after reset, want 1", e.Shown())
	}
	cells := e.Cells()
	for i := cfg.Width; i < len(cells); i++ {
		if cells[i] != 0 {
			t.Fatalf("row %d visible before stepping", i/cfg.Width)
		}
	}
	for i := 0; i < 10; i++ {
		e.Step()
	}
	if e.Shown() != cfg.Steps {
		t.Fatalf("shown %d, want %d", e.Shown(), cfg.Steps)
	}
	for y := 0; y < cfg.Steps; y++ {
		want := (cfg.Width/2 + y) % cfg.Width
		for x := 0; x < cfg.Width; x++ {
			alive := cells[y*cfg.Width+x] == 1
			if alive != (x == want) {
				t.Fatalf("row %d col %d alive=%v, want live cell at %d", y, x, alive, want)
			}
		}
	}
}

func TestInvalidRuleFallsBackToRandom(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Steps, cfg.Rule = 8, 4, "zz"
	e := New(cfg)
	e.Reset(3)
	if e.Table() == nil || e.Table().Len() != 8 {
		t.Fatalf("expected a random radius-1 table, got %v", e.Table())
	}
}

func TestRadiusControl(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Steps = 16, 8
	e := New(cfg)
	e.Reset(5)
	if len(e.ParameterControls()) != 1 {
		t.Fatal("random rule should expose the radius control")
	}
	if !e.SetIntParameter("r", 2) {
		t.Fatal("radius change rejected")
	}
	if e.Table().Len() != 32 {
		t.Fatalf("table len %d after radius 2, want 32", e.Table().Len())
	}
	if e.SetIntParameter("r", maxViewerRadius+1) {
		t.Fatal("radius beyond the control range accepted")
	}

	cfg.Rule = "02"
	fixed := New(cfg)
	fixed.Reset(5)
	if fixed.SetIntParameter("r", 2) || len(fixed.ParameterControls()) != 0 {
		t.Fatal("a fixed rule key must pin the radius")
	}
}

func TestParametersReportKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Steps, cfg.Rule = 9, 3, "02"
	e := New(cfg)
	e.Reset(1)
	values := map[string]string{}
	for _, g := range e.Parameters().Groups {
		for _, p := range g.Params {
			values[p.Key] = p.Value
		}
	}
	if values["rule"] != "02" || values["ratio"] != "0.1250" || values["interesting"] != "false" || values["row"] != "1" {
		t.Fatalf("unexpected parameters %v", values)
	}
}

func TestRegistered(t *testing.T) {
	factory, ok := core.Sims()["elementary"]
	if !ok {
		t.Fatal("elementary not registered")
	}
	sim := factory(map[string]string{"w": "10", "h": "4"})
	if sim.Size() != (core.Size{W: 10, H: 4}) {
		t.Fatalf("size %+v", sim.Size())
	}
}

func TestProbe(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Steps, cfg.Rule = 9, 4, "02"
	e := New(cfg)
	e.Reset(1)
	// The cell right of the seed sees only its left neighbor.
	idx, entry, ok := e.Probe(5, 0)
	if !ok || idx != 1 || entry != 1 {
		t.Fatalf("probe (5,0) = %d,%d,%v", idx, entry, ok)
	}
	idx, entry, ok = e.Probe(4, 0)
	if !ok || idx != 2 || entry != 0 {
		t.Fatalf("probe (4,0) = %d,%d,%v", idx, entry, ok)
	}
	if _, _, ok := e.Probe(4, 1); ok {
		t.Fatal("probe of a hidden row should fail")
	}
}

func TestRadiusZeroKey(t *testing.T) {
	e := New(FromMap(map[string]string{"w": "9", "h": "3", "r": "0", "rule": "02"}))
	e.Reset(1)
	if e.Table().Radius() != 0 || e.Table().Len() != 2 {
		t.Fatalf("table radius %d len %d, want radius 0", e.Table().Radius(), e.Table().Len())
	}
}
