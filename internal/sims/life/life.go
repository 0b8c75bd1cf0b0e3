// Package life plays a two-dimensional rule table, Conway's Game of Life by
// default, as an endless animation.
package life

import (
	"log"
	"strconv"

	"ca-survey/internal/core"
	"ca-survey/internal/engine"
	"ca-survey/internal/rules"
	"ca-survey/internal/survey"
)

// Config holds parameters for the 2D automaton.
type Config struct {
	Width   int
	Height  int
	Steps   int
	Rule    string
	Seeding engine.Seeding
	Bias    rules.Bias
}

// DefaultConfig returns Conway's rules on a randomly seeded 128x128 torus.
func DefaultConfig() Config {
	return Config{
		Width:   128,
		Height:  128,
		Steps:   64,
		Rule:    survey.RuleConway,
		Seeding: engine.SeedRandom,
		Bias:    rules.QuarterBias,
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
			c.Height = parsed
		}
	}
	if v, ok := cfg["steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 1 {
			c.Steps = parsed
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
		Name:      "life",
		Dimension: 2,
		Radius:    1,
		Width:     c.Width,
		Height:    c.Height,
		Steps:     c.Steps,
		Seeding:   string(c.Seeding),
		Bias:      int(c.Bias),
		Rule:      c.Rule,
	}
}

// Life simulates Steps planes at a time and shows one per tick. When the
// last plane is reached it becomes plane 0 of the next block.
type Life struct {
	cfg        Config
	table      *rules.Table
	space      *core.Space
	frame      int
	generation int
}

// New returns a Life simulation for the configuration. Call Reset before use.
func New(cfg Config) *Life {
	if cfg.Steps < 2 {
		cfg.Steps = 2
	}
	return &Life{cfg: cfg}
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life" }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return core.Size{W: l.cfg.Width, H: l.cfg.Height} }

// Table returns the rule table in play.
func (l *Life) Table() *rules.Table { return l.table }

// Generation counts steps since the last Reset.
func (l *Life) Generation() int { return l.generation }

// Cells exposes the current plane.
func (l *Life) Cells() []uint8 {
	if l.space == nil {
		return make([]uint8, l.cfg.Width*l.cfg.Height)
	}
	return l.space.Plane(l.frame)
}

// Reset draws the table and seeds plane 0 using the provided seed.
func (l *Life) Reset(seed int64) {
	rng := core.NewRNG(seed)
	v := l.cfg.Variant()
	if err := v.Validate(); err != nil {
		log.Printf("life: %v; falling back to conway", err)
		v.Rule = survey.RuleConway
	}
	table, err := v.Table(rng)
	if err != nil {
		log.Printf("life: %v", err)
		return
	}
	space, err := core.NewSpace(2, v.Steps, v.Width, v.Height)
	if err != nil {
		log.Printf("life: %v", err)
		return
	}
	if err := engine.Seed(space, engine.Seeding(v.Seeding), rng); err != nil {
		log.Printf("life: %v", err)
		return
	}
	l.table, l.space = table, space
	l.frame, l.generation = 0, 0
	l.simulate()
}

// Step advances the simulation by one generation.
func (l *Life) Step() {
	if l.space == nil {
		return
	}
	l.generation++
	if l.frame+1 < l.space.Steps {
		l.frame++
		return
	}
	copy(l.space.Plane(0), l.space.Plane(l.frame))
	l.simulate()
	l.frame = 1
}

// simulate fills planes 1..Steps-1 from plane 0.
func (l *Life) simulate() {
	a, err := engine.New(l.table, l.space)
	if err != nil {
		log.Printf("life: %v", err)
		return
	}
	if _, err := a.RunToCompletion(false); err != nil {
		log.Printf("life: %v", err)
	}
}

// Parameters returns the values shown by the HUD.
func (l *Life) Parameters() core.ParameterSnapshot {
	key, ratio := "--", "--"
	if l.table != nil {
		key = l.table.Key()
		ratio = strconv.FormatFloat(l.table.Classify().AliveRatio, 'f', 4, 64)
	}
	if len(key) > 16 {
		key = key[:16] + "..."
	}
	alive := 0
	for _, c := range l.Cells() {
		alive += int(c)
	}
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{Name: "Rule", Params: []core.Parameter{
			{Key: "rule", Label: "Key", Type: core.ParamTypeString, Value: key},
			{Key: "ratio", Label: "Alive ratio", Type: core.ParamTypeFloat, Value: ratio},
		}},
		{Name: "State", Params: []core.Parameter{
			{Key: "generation", Label: "Generation", Type: core.ParamTypeInt, Value: strconv.Itoa(l.generation)},
			{Key: "alive", Label: "Alive cells", Type: core.ParamTypeInt, Value: strconv.Itoa(alive)},
		}},
	}}
}

func init() {
	core.Register("life", func(cfg map[string]string) core.Sim {
		return New(FromMap(cfg))
	})
}

// Probe encodes the 3x3 neighborhood of (x, y) on the current plane.
func (l *Life) Probe(x, y int) (int, uint8, bool) {
	if l.space == nil || x < 0 || x >= l.cfg.Width || y < 0 || y >= l.cfg.Height {
		return 0, 0, false
	}
	idx := engine.Encode2D(l.Cells(), l.cfg.Width, l.cfg.Height, x, y)
	return idx, l.table.Entry(idx), true
}
