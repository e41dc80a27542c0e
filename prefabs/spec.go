package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidLevel = errors.New("prefabs: invalid level")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LevelSpec is a level layout in world units, y up, with box origins at the
// lower-left corner.
type LevelSpec struct {
	Name   string     `yaml:"name"`
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Spawn  PointSpec  `yaml:"spawn"`
	Solids []BoxSpec  `yaml:"solids"`
	Zones  []ZoneSpec `yaml:"zones"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type BoxSpec struct {
	X      float64    `yaml:"x"`
	Y      float64    `yaml:"y"`
	Width  float64    `yaml:"width"`
	Height float64    `yaml:"height"`
	Color  *YAMLColor `yaml:"color"`
}

// ZoneSpec is a scripted modifier zone.
type ZoneSpec struct {
	Name   string         `yaml:"name"`
	Script string         `yaml:"script"`
	Params map[string]any `yaml:"params"`

	BoxSpec `yaml:",inline"`
}

func LoadLevelSpec(filename string) (LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](filename)
	if err != nil {
		return LevelSpec{}, err
	}
	if err := spec.Validate(); err != nil {
		return LevelSpec{}, fmt.Errorf("prefabs: level %s: %w", filename, err)
	}
	return spec, nil
}

func (l LevelSpec) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: size must be positive, got %vx%v", ErrInvalidLevel, l.Width, l.Height)
	}
	for i, s := range l.Solids {
		if s.Width <= 0 || s.Height <= 0 {
			return fmt.Errorf("%w: solid %d has a non-positive size", ErrInvalidLevel, i)
		}
	}
	for i, z := range l.Zones {
		if z.Width <= 0 || z.Height <= 0 {
			return fmt.Errorf("%w: zone %d (%s) has a non-positive size", ErrInvalidLevel, i, z.Name)
		}
		if strings.TrimSpace(z.Script) == "" {
			return fmt.Errorf("%w: zone %d (%s) has no script", ErrInvalidLevel, i, z.Name)
		}
	}
	return nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
