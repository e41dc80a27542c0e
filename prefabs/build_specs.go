package prefabs

import (
	"fmt"

	"github.com/milk9111/platformer/camera"
	"github.com/milk9111/platformer/movement"
	"gopkg.in/yaml.v3"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var out T
	err := DecodeComponentSpecInto(raw, &out)
	return out, err
}

// DecodeComponentSpecInto decodes raw over the values already in out, so
// fields the prefab leaves out keep their defaults.
func DecodeComponentSpecInto[T any](raw any, out *T) error {
	if raw == nil || out == nil {
		return nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

type TransformComponentSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type PhysicsBodyComponentSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type CameraComponentSpec struct {
	TargetName string `yaml:"target_name"`

	camera.Config `yaml:",inline"`
}

// DecodeMovementSpec decodes the movement component over DefaultStats and
// validates the result.
func DecodeMovementSpec(raw any) (movement.Stats, error) {
	stats := movement.DefaultStats()
	if err := DecodeComponentSpecInto(raw, &stats); err != nil {
		return movement.Stats{}, err
	}
	if err := stats.Validate(); err != nil {
		return movement.Stats{}, err
	}
	return stats, nil
}

// DecodeCameraSpec decodes the camera component over camera.DefaultConfig.
func DecodeCameraSpec(raw any) (CameraComponentSpec, error) {
	spec := CameraComponentSpec{Config: camera.DefaultConfig()}
	if err := DecodeComponentSpecInto(raw, &spec); err != nil {
		return CameraComponentSpec{}, err
	}
	if err := spec.Config.Validate(); err != nil {
		return CameraComponentSpec{}, err
	}
	return spec, nil
}

// ActorSpec is the typed view of an actor prefab.
type ActorSpec struct {
	Name     string
	Stats    movement.Stats
	Collider PhysicsBodyComponentSpec
	Spawn    TransformComponentSpec
}

// LoadActorSpec loads an actor prefab and validates its movement stats.
func LoadActorSpec(filename string) (ActorSpec, error) {
	build, err := LoadEntityBuildSpec(filename)
	if err != nil {
		return ActorSpec{}, err
	}
	spec, err := ActorSpecFrom(build)
	if err != nil {
		return ActorSpec{}, fmt.Errorf("prefabs: actor %s: %w", filename, err)
	}
	return spec, nil
}

// ActorSpecFrom picks the movement, physics_body and transform components
// out of an entity prefab.
func ActorSpecFrom(build EntityBuildSpec) (ActorSpec, error) {
	raw, ok := build.Components["movement"]
	if !ok {
		return ActorSpec{}, fmt.Errorf("missing movement component")
	}
	stats, err := DecodeMovementSpec(raw)
	if err != nil {
		return ActorSpec{}, err
	}
	collider, err := DecodeComponentSpec[PhysicsBodyComponentSpec](build.Components["physics_body"])
	if err != nil {
		return ActorSpec{}, err
	}
	if collider.Width <= 0 || collider.Height <= 0 {
		return ActorSpec{}, fmt.Errorf("physics_body needs a positive width and height")
	}
	spawn, err := DecodeComponentSpec[TransformComponentSpec](build.Components["transform"])
	if err != nil {
		return ActorSpec{}, err
	}
	return ActorSpec{Name: build.Name, Stats: stats, Collider: collider, Spawn: spawn}, nil
}

// LoadCameraSpec loads the camera component of a camera prefab.
func LoadCameraSpec(filename string) (CameraComponentSpec, error) {
	build, err := LoadEntityBuildSpec(filename)
	if err != nil {
		return CameraComponentSpec{}, err
	}
	spec, err := DecodeCameraSpec(build.Components["camera"])
	if err != nil {
		return CameraComponentSpec{}, fmt.Errorf("prefabs: camera %s: %w", filename, err)
	}
	return spec, nil
}
