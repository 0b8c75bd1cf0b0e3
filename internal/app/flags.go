package app

import (
	"flag"
	"fmt"
	"strconv"

	"ca-survey/internal/survey"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim     string
	Scale   int
	TPS     int
	Seed    int64
	Rule    string
	Radius  int
	Width   int
	Height  int
	Steps   int
	Seeding string
	From    string
}

// NewConfig returns a Config populated with sensible defaults. Zero sizes,
// a negative radius and empty strings defer to the simulation's own defaults.
func NewConfig() *Config {
	return &Config{Sim: "life", Scale: 3, TPS: 30, Seed: 42, Radius: -1}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run (life, elementary)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "generations per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.StringVar(&c.Rule, "rule", c.Rule, "rule table: conway, random or a hex key")
	fs.IntVar(&c.Radius, "r", c.Radius, "1D neighborhood radius (-1 keeps the sim default)")
	fs.IntVar(&c.Width, "w", c.Width, "grid width")
	fs.IntVar(&c.Height, "h", c.Height, "grid height (rows shown for 1D)")
	fs.IntVar(&c.Steps, "steps", c.Steps, "planes simulated per block (2D)")
	fs.StringVar(&c.Seeding, "seeding", c.Seeding, "seeding policy (single, random)")
	fs.StringVar(&c.From, "from", c.From, "replay the rule table of a survey sidecar (.yaml)")
}

// ApplySidecar copies the table and space of a survey artifact's metadata.
func (c *Config) ApplySidecar(path string) error {
	meta, err := survey.ReadSidecar(path)
	if err != nil {
		return err
	}
	switch meta.Dimension {
	case 1:
		c.Sim = "elementary"
		c.Height = meta.Steps
	case 2:
		c.Sim = "life"
		c.Height = meta.Height
		c.Steps = meta.Steps
	default:
		return fmt.Errorf("sidecar %s: unsupported dimension %d", path, meta.Dimension)
	}
	c.Rule = meta.Key
	c.Radius = meta.Radius
	c.Width = meta.Width
	c.Seeding = meta.Seeding
	return nil
}

// ToMap renders the set options in the key/value form the sim factories read.
func (c *Config) ToMap() map[string]string {
	m := map[string]string{}
	if c.Rule != "" {
		m["rule"] = c.Rule
	}
	if c.Seeding != "" {
		m["seeding"] = c.Seeding
	}
	if c.Radius >= 0 {
		m["r"] = strconv.Itoa(c.Radius)
	}
	if c.Width > 0 {
		m["w"] = strconv.Itoa(c.Width)
	}
	if c.Height > 0 {
		m["h"] = strconv.Itoa(c.Height)
	}
	if c.Steps > 0 {
		m["steps"] = strconv.Itoa(c.Steps)
	}
	return m
}
