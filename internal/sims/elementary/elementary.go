package elementary

import (
	"log"
	"strconv"

	"ca-survey/internal/core"
	"ca-survey/internal/engine"
	"ca-survey/internal/rules"
	"ca-survey/internal/survey"
)

const maxViewerRadius = 4

// Config holds parameters for the one-dimensional rule-table automaton.
type Config struct {
	Width   int
	Steps   int
	Radius  int
	Rule    string
	Seeding engine.Seeding
	Bias    rules.Bias
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Width:   256,
		Steps:   256,
		Radius:  1,
		Rule:    survey.RuleRandom,
		Seeding: engine.SeedSingle,
		Bias:    rules.FairBias,
	}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Steps = parsed
		}
	}
	if v, ok := cfg["r"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= maxViewerRadius {
			c.Radius = parsed
		}
	}
	if v, ok := cfg["rule"]; ok && v != "" {
		c.Rule = v
	}
	if v, ok := cfg["seeding"]; ok {
		if parsed, err := engine.ParseSeeding(v); err == nil {
			c.Seeding = parsed
		}
	}
	if v, ok := cfg["bias"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 256 {
			c.Bias = rules.Bias(parsed)
		}
	}
	return c
}

// Variant expresses the configuration as a survey variant.
func (c Config) Variant() survey.Variant {
	return survey.Variant{
		Name:      "elementary",
		Dimension: 1,
		Radius:    c.Radius,
		Width:     c.Width,
		Steps:     c.Steps,
		Seeding:   string(c.Seeding),
		Bias:      int(c.Bias),
		Rule:      c.Rule,
	}
}

// Elementary plays back a fully simulated space-time diagram one row per step.
type Elementary struct {
	cfg   Config
	seed  int64
	table *rules.Table
	space *core.Space
	shown int
	view  []uint8
}

// New creates an automaton for the configuration. Call Reset before use.
func New(cfg Config) *Elementary {
	return &Elementary{cfg: cfg, view: make([]uint8, cfg.Width*cfg.Steps)}
}

// Name returns the simulation identifier.
func (e *Elementary) Name() string { return "elementary" }

// Size returns the simulation grid dimensions.
func (e *Elementary) Size() core.Size { return core.Size{W: e.cfg.Width, H: e.cfg.Steps} }

// Cells exposes the render buffer.
func (e *Elementary) Cells() []uint8 { return e.view }

// Table returns the rule table of the current run.
func (e *Elementary) Table() *rules.Table { return e.table }

// Shown reports how many rows are visible.
func (e *Elementary) Shown() int { return e.shown }

// Reset draws a table (for random rules), simulates every generation and
// shows only the first row.
func (e *Elementary) Reset(seed int64) {
	e.seed = seed
	rng := core.NewRNG(seed)
	v := e.cfg.Variant()
	if err := v.Validate(); err != nil {
		log.Printf("elementary: %v; falling back to a random table", err)
		v.Rule = survey.RuleRandom
		v.Bias = int(rules.FairBias)
	}
	table, err := v.Table(rng)
	if err != nil {
		log.Printf("elementary: %v", err)
		return
	}
	space, err := core.NewSpace(1, v.Steps, v.Width, 1)
	if err != nil {
		log.Printf("elementary: %v", err)
		return
	}
	if err := engine.Seed(space, engine.Seeding(v.Seeding), rng); err != nil {
		log.Printf("elementary: %v", err)
		return
	}
	a, err := engine.New(table, space)
	if err != nil {
		log.Printf("elementary: %v", err)
		return
	}
	if _, err := a.RunToCompletion(false); err != nil {
		log.Printf("elementary: %v", err)
		return
	}
	e.table, e.space = table, space
	clear(e.view)
	copy(e.view, space.Plane(0))
	e.shown = 1
}

// Step reveals the next row until the diagram is complete.
func (e *Elementary) Step() {
	if e.space == nil || e.shown >= e.space.Steps {
		return
	}
	copy(e.view[e.shown*e.cfg.Width:], e.space.Plane(e.shown))
	e.shown++
}

// Parameters returns the values shown by the HUD.
func (e *Elementary) Parameters() core.ParameterSnapshot {
	key, ratio, interesting := "--", "--", "--"
	if e.table != nil {
		in := e.table.Classify()
		key = e.table.Key()
		ratio = strconv.FormatFloat(in.AliveRatio, 'f', 4, 64)
		interesting = strconv.FormatBool(in.Interesting)
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Rule", Params: []core.Parameter{
			{Key: "rule", Label: "Key", Type: core.ParamTypeString, Value: key},
			{Key: "ratio", Label: "Alive ratio", Type: core.ParamTypeFloat, Value: ratio},
			{Key: "interesting", Label: "Interesting", Type: core.ParamTypeString, Value: interesting},
		}},
		{Name: "Space", Params: []core.Parameter{
			{Key: "r", Label: "Radius", Type: core.ParamTypeInt, Value: strconv.Itoa(e.cfg.Radius)},
			{Key: "row", Label: "Row", Type: core.ParamTypeInt, Value: strconv.Itoa(e.shown)},
		}},
	}}
}

// ParameterControls exposes the radius while the table is drawn at random.
func (e *Elementary) ParameterControls() []core.ParameterControl {
	if e.cfg.Rule != survey.RuleRandom {
		return nil
	}
	return []core.ParameterControl{{Key: "r", Label: "Radius", Step: 1, Min: 0, Max: maxViewerRadius}}
}

// SetIntParameter changes the radius and restarts with the same seed.
func (e *Elementary) SetIntParameter(key string, value int) bool {
	if key != "r" || e.cfg.Rule != survey.RuleRandom || value < 0 || value > maxViewerRadius {
		return false
	}
	e.cfg.Radius = value
	e.Reset(e.seed)
	return true
}

func init() {
	core.Register("elementary", func(cfg map[string]string) core.Sim {
		return New(FromMap(cfg))
	})
}

// Probe encodes the neighborhood of the visible cell (x, y).
func (e *Elementary) Probe(x, y int) (int, uint8, bool) {
	if e.space == nil || x < 0 || x >= e.cfg.Width || y < 0 || y >= e.shown {
		return 0, 0, false
	}
	idx := engine.Encode1D(e.space.Plane(y), e.cfg.Width, e.table.Radius(), x)
	return idx, e.table.Entry(idx), true
}
