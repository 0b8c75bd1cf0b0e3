package survey

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Metadata is the YAML sidecar written next to each artifact.
type Metadata struct {
	Key         string  `yaml:"key"`
	Variant     string  `yaml:"variant"`
	Dimension   int     `yaml:"dimension"`
	Radius      int     `yaml:"radius"`
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height,omitempty"`
	Steps       int     `yaml:"steps"`
	Seeding     string  `yaml:"seeding"`
	AliveRatio  float64 `yaml:"alive_ratio"`
	Interesting bool    `yaml:"interesting"`
	Iterations  int     `yaml:"iterations"`
}

func writeSidecar(path string, v Variant, res Result) error {
	meta := Metadata{
		Key:         res.Key,
		Variant:     v.Name,
		Dimension:   v.Dimension,
		Radius:      v.Radius,
		Width:       v.Width,
		Height:      v.Height,
		Steps:       v.Steps,
		Seeding:     v.Seeding,
		AliveRatio:  res.Interest.AliveRatio,
		Interesting: res.Interest.Interesting,
		Iterations:  res.Iterations,
	}
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("yaml marshal: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	_, err = f.Write(data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// ReadSidecar loads the metadata written beside an artifact.
func ReadSidecar(path string) (Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("read %s: %w", path, err)
	}
	var meta Metadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return Metadata{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	return meta, nil
}
