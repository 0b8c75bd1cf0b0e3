package survey

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"ca-survey/internal/core"
	"ca-survey/internal/engine"
	"ca-survey/internal/rules"
)

// ErrConfig reports a configuration that cannot run.
var ErrConfig = errors.New("invalid survey configuration")

const (
	// RuleRandom draws a fresh table for every trial.
	RuleRandom = "random"
	// RuleConway uses Conway's Game of Life (2D only).
	RuleConway = "conway"
)

// Variant describes one family of trials.
type Variant struct {
	Name       string `yaml:"name"`
	Dimension  int    `yaml:"dimension"`
	Radius     int    `yaml:"radius"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Steps      int    `yaml:"steps"`
	Seeding    string `yaml:"seeding"`
	Bias       int    `yaml:"bias"`
	Rule       string `yaml:"rule"`
	SkipBoring bool   `yaml:"skip_boring"`
}

var presets = map[string]Variant{
	"1d-single": {Name: "1d-single", Dimension: 1, Radius: 1, Width: 100, Steps: 100,
		Seeding: string(engine.SeedSingle), Bias: int(rules.FairBias), Rule: RuleRandom, SkipBoring: true},
	"1d-random": {Name: "1d-random", Dimension: 1, Radius: 1, Width: 100, Steps: 100,
		Seeding: string(engine.SeedRandom), Bias: int(rules.FairBias), Rule: RuleRandom, SkipBoring: true},
	"2d-random": {Name: "2d-random", Dimension: 2, Radius: 1, Width: 64, Height: 64, Steps: 64,
		Seeding: string(engine.SeedRandom), Bias: int(rules.QuarterBias), Rule: RuleRandom},
	"2d-conway": {Name: "2d-conway", Dimension: 2, Radius: 1, Width: 64, Height: 64, Steps: 64,
		Seeding: string(engine.SeedRandom), Rule: RuleConway},
}

// Preset returns a named built-in variant.
func Preset(name string) (Variant, bool) {
	v, ok := presets[name]
	return v, ok
}

// PresetNames lists the built-in variants.
func PresetNames() []string {
	return []string{"1d-single", "1d-random", "2d-random", "2d-conway"}
}

// Validate rejects unsupported shapes before any simulation work.
func (v Variant) Validate() error {
	if _, err := rules.Size(v.Dimension, v.Radius); err != nil {
		return fmt.Errorf("%w: variant %q: %w", ErrConfig, v.Name, err)
	}
	if v.Width <= 0 || v.Steps <= 0 || (v.Dimension == 2 && v.Height <= 0) {
		return fmt.Errorf("%w: variant %q: size %dx%d over %d steps", ErrConfig, v.Name, v.Width, v.Height, v.Steps)
	}
	if _, err := engine.ParseSeeding(v.Seeding); err != nil {
		return fmt.Errorf("%w: variant %q: %w", ErrConfig, v.Name, err)
	}
	switch v.Rule {
	case "", RuleRandom:
		if v.Bias <= 0 || v.Bias > 256 {
			return fmt.Errorf("%w: variant %q: bias %d outside (0, 256]", ErrConfig, v.Name, v.Bias)
		}
	case RuleConway:
		if v.Dimension != 2 {
			return fmt.Errorf("%w: variant %q: conway needs a 2D space", ErrConfig, v.Name)
		}
	default:
		if _, err := rules.Decode(v.Dimension, v.Radius, v.Rule, false); err != nil {
			return fmt.Errorf("%w: variant %q: %w", ErrConfig, v.Name, err)
		}
	}
	return nil
}

// Table builds the variant's rule table, drawing from src for random rules.
func (v Variant) Table(src core.BitSource) (*rules.Table, error) {
	switch v.Rule {
	case "", RuleRandom:
		return rules.Random(src, v.Dimension, v.Radius, rules.Bias(v.Bias))
	case RuleConway:
		return rules.Conway(), nil
	default:
		return rules.Decode(v.Dimension, v.Radius, v.Rule, false)
	}
}

// Config controls a survey.
type Config struct {
	Trials     int       `yaml:"trials"`
	Workers    int       `yaml:"workers"`
	Seed       int64     `yaml:"seed"`
	Output     string    `yaml:"output"`
	Presets    []string  `yaml:"presets"`
	Variants   []Variant `yaml:"variants"`
	MarkBoring bool      `yaml:"mark_boring"`
	Sidecars   bool      `yaml:"sidecars"`
	Scale      int       `yaml:"scale"`
	Delay      int       `yaml:"delay"`
	Ledger     string    `yaml:"ledger"`
	LedgerPath string    `yaml:"ledger_path"`
}

// DefaultConfig returns the standard configuration: a thousand 2D trials.
func DefaultConfig() Config {
	return Config{
		Trials:     1024,
		Workers:    1,
		Seed:       1337,
		Output:     "output",
		Presets:    []string{"2d-random"},
		MarkBoring: true,
		Sidecars:   true,
		Scale:      4,
		Delay:      8,
		Ledger:     "memory",
		LedgerPath: "survey.db",
	}
}

// FromMap populates a Config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["trials"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Trials = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["output"]; ok && v != "" {
		c.Output = v
	}
	if v, ok := cfg["presets"]; ok && v != "" {
		c.Presets = splitList(v)
	}
	if v, ok := cfg["mark_boring"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.MarkBoring = parsed
		}
	}
	if v, ok := cfg["sidecars"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Sidecars = parsed
		}
	}
	if v, ok := cfg["scale"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Scale = parsed
		}
	}
	if v, ok := cfg["delay"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Delay = parsed
		}
	}
	if v, ok := cfg["ledger"]; ok && v != "" {
		c.Ledger = v
	}
	if v, ok := cfg["ledger_path"]; ok && v != "" {
		c.LedgerPath = v
	}
	return c
}

// LoadConfig reads a YAML file over the defaults.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("yaml unmarshal %s: %w", path, err)
	}
	return c, nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Trials, "trials", c.Trials, "number of trials to run")
	fs.IntVar(&c.Workers, "workers", c.Workers, "concurrent trials")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "base seed; trial i uses seed+i")
	fs.StringVar(&c.Output, "output", c.Output, "output directory")
	fs.Var(listValue{&c.Presets}, "presets", "comma-separated variant presets ("+strings.Join(PresetNames(), ", ")+")")
	fs.BoolVar(&c.MarkBoring, "mark-boring", c.MarkBoring, "write a placeholder artifact for boring rule tables so they are not simulated again")
	fs.BoolVar(&c.Sidecars, "sidecars", c.Sidecars, "write YAML metadata next to each artifact")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.Delay, "delay", c.Delay, "frame delay in 1/100s")
	fs.StringVar(&c.Ledger, "ledger", c.Ledger, "trial ledger backend (memory, sqlite)")
	fs.StringVar(&c.LedgerPath, "ledger-path", c.LedgerPath, "sqlite ledger path")
}

// Resolve expands presets and returns every validated variant.
func (c Config) Resolve() ([]Variant, error) {
	var out []Variant
	for _, name := range c.Presets {
		v, ok := Preset(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown preset %q", ErrConfig, name)
		}
		out = append(out, v)
	}
	out = append(out, c.Variants...)
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no variants", ErrConfig)
	}
	for _, v := range out {
		if err := v.Validate(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// listValue is a flag.Value over a comma-separated list.
type listValue struct{ list *[]string }

func (l listValue) String() string {
	if l.list == nil {
		return ""
	}
	return strings.Join(*l.list, ",")
}

func (l listValue) Set(v string) error {
	*l.list = splitList(v)
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
