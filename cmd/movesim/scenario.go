package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/game"
	"github.com/milk9111/platformer/movement"
	"github.com/milk9111/platformer/prefabs"
	"gopkg.in/yaml.v3"
)

// SensorFrame is a held sensor reading lasting Ticks ticks.
type SensorFrame struct {
	Ticks    int  `yaml:"ticks"`
	Grounded bool `yaml:"grounded"`
	Ceiling  bool `yaml:"ceiling"`
	Wall     bool `yaml:"wall"`
	WallDir  int  `yaml:"wall_dir"`
}

// Scenario drives one controller through an input timeline. Without Level
// the controller runs bare against the sensor timeline; with Level it runs
// as the player of the full game and senses the level geometry.
type Scenario struct {
	Name  string         `yaml:"name"`
	Level bool           `yaml:"level"`
	Stats map[string]any `yaml:"stats"`

	// Ticks is the run length; zero runs until the input timeline ends.
	Ticks   int                 `yaml:"ticks"`
	Inputs  []system.InputFrame `yaml:"inputs"`
	Sensors []SensorFrame       `yaml:"sensors"`

	stats movement.Stats
}

type TickEvent struct {
	Tick int
	movement.Event
}

type Result struct {
	Name     string
	Ticks    int
	Velocity cp.Vector
	Grounded bool
	Events   []TickEvent
}

// LoadScenario reads a scenario and validates its stats, which are applied
// over the default tuning.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = path
	}
	stats, err := prefabs.DecodeMovementSpec(sc.Stats)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	sc.stats = stats
	if sc.Ticks <= 0 {
		sc.Ticks = timelineLength(sc.Inputs)
	}
	if sc.Ticks <= 0 {
		return nil, fmt.Errorf("scenario %s: nothing to run", path)
	}
	return &sc, nil
}

func timelineLength(frames []system.InputFrame) int {
	n := 0
	for _, f := range frames {
		n += f.Ticks
	}
	return n
}

// Run plays the scenario to the end or until ctx is done.
func (sc *Scenario) Run(ctx context.Context) (Result, error) {
	if sc.Level {
		return sc.runLevel(ctx)
	}
	return sc.runBare(ctx)
}

func (sc *Scenario) runBare(ctx context.Context) (Result, error) {
	ctrl, err := movement.New(sc.stats)
	if err != nil {
		return Result{}, err
	}
	input := system.NewScriptedInput(sc.Inputs...)
	sensors := &sensorTimeline{frames: sc.Sensors}

	res := Result{Name: sc.Name}
	var v cp.Vector
	for tick := 1; tick <= sc.Ticks; tick++ {
		if tick%60 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		in := input.Poll()
		applyInput(ctrl, &in)

		s := sensors.next()
		s.BodyVelocity = v
		v = ctrl.Tick(s, system.DefaultDT)

		for _, evt := range ctrl.Events().Drain() {
			res.Events = append(res.Events, TickEvent{Tick: tick, Event: evt})
		}
		res.Ticks = tick
	}
	res.Velocity = v
	res.Grounded = ctrl.Grounded()
	return res, nil
}

func (sc *Scenario) runLevel(ctx context.Context) (Result, error) {
	recorder := &eventRecorder{}
	g, err := game.New(game.Options{
		Input:     system.NewScriptedInput(sc.Inputs...),
		Logger:    discardLogger(),
		Observers: []ecs.System{recorder},
	})
	if err != nil {
		return Result{}, err
	}
	defer g.Close()
	recorder.player = g.Player()

	ctrl := g.PlayerController()
	if err := ctrl.SetStats(sc.stats); err != nil {
		return Result{}, err
	}

	res := Result{Name: sc.Name}
	for tick := 1; tick <= sc.Ticks; tick++ {
		if tick%60 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		if err := g.Step(); err != nil {
			return res, err
		}
		res.Ticks = tick
	}
	res.Events = recorder.events
	res.Velocity = ctrl.Velocity()
	res.Grounded = ctrl.Grounded()
	return res, nil
}

func applyInput(ctrl *movement.Controller, in *component.Input) {
	ctrl.SetInputDirection(cp.Vector{X: in.MoveX, Y: in.MoveY})
	if in.JumpPressed {
		ctrl.JumpInput()
	}
	if in.JumpReleased {
		ctrl.JumpReleased()
	}
	if in.Dash {
		ctrl.DashInput()
	}
}

// sensorTimeline replays held sensor frames. Past the end it keeps the last
// frame, or reads no contact when there were none.
type sensorTimeline struct {
	frames []SensorFrame
	frame  int
	tick   int
}

func (t *sensorTimeline) next() movement.Sensors {
	for t.frame < len(t.frames) && t.tick >= t.frames[t.frame].Ticks {
		t.frame++
		t.tick = 0
	}
	var f SensorFrame
	switch {
	case t.frame < len(t.frames):
		f = t.frames[t.frame]
		t.tick++
	case len(t.frames) > 0:
		f = t.frames[len(t.frames)-1]
	}
	return movement.Sensors{Grounded: f.Grounded, Ceiling: f.Ceiling, Wall: f.Wall, WallDir: f.WallDir}
}
