// Package game wires prefabs, the ECS world and the systems into one fixed
// step simulation. It knows nothing about windows or rendering.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/milk9111/platformer/camera"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/movement"
	"github.com/milk9111/platformer/prefabs"
)

// DT is the fixed tick length.
const DT = system.DefaultDT

var ErrClosed = errors.New("game: closed")

type Options struct {
	PlayerPrefab string
	CameraPrefab string
	LevelPrefab  string

	// Input drives the player. Nil leaves the player idle.
	Input  system.InputSource
	Logger *slog.Logger

	// Observers run after the camera, while the tick's events are still
	// queued.
	Observers []ecs.System

	// Watch starts a prefab watcher on WatchDirs, or on prefabs/ and
	// prefabs/scripts/ when WatchDirs is empty.
	Watch     bool
	WatchDirs []string
}

func (o *Options) defaults() {
	if o.PlayerPrefab == "" {
		o.PlayerPrefab = "player.yaml"
	}
	if o.CameraPrefab == "" {
		o.CameraPrefab = "camera.yaml"
	}
	if o.LevelPrefab == "" {
		o.LevelPrefab = "level.yaml"
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Watch && len(o.WatchDirs) == 0 {
		o.WatchDirs = []string{"prefabs", filepath.Join("prefabs", "scripts")}
	}
}

type Game struct {
	opts Options
	log  *slog.Logger

	world     *ecs.World
	scheduler *ecs.Scheduler
	zones     *system.ModifierZoneSystem

	level  prefabs.LevelSpec
	player ecs.Entity
	camera ecs.Entity

	watcher *prefabs.Watcher
	ticks   uint64
	closed  bool
}

// New loads the level, player and camera prefabs and builds a ready world.
func New(opts Options) (*Game, error) {
	opts.defaults()

	lvl, err := prefabs.LoadLevelSpec(opts.LevelPrefab)
	if err != nil {
		return nil, fmt.Errorf("game: load level: %w", err)
	}

	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld())

	if err := entity.BuildLevel(w, lvl); err != nil {
		return nil, fmt.Errorf("game: build level: %w", err)
	}
	player, err := entity.BuildActor(w, opts.PlayerPrefab, lvl.Spawn.X, lvl.Spawn.Y)
	if err != nil {
		return nil, fmt.Errorf("game: build player: %w", err)
	}
	cam, err := entity.BuildCamera(w, opts.CameraPrefab)
	if err != nil {
		return nil, fmt.Errorf("game: build camera: %w", err)
	}

	g := &Game{
		opts:   opts,
		log:    opts.Logger,
		world:  w,
		zones:  system.NewModifierZoneSystem(DT, opts.Logger),
		level:  lvl,
		player: player,
		camera: cam,
	}
	g.scheduler = ecs.NewScheduler(
		system.NewInputSystem(opts.Input),
		system.NewMovementSystem(DT),
		g.zones,
		system.NewPhysicsSystem(DT),
		system.NewCameraSystem(DT),
	)
	for _, o := range opts.Observers {
		g.scheduler.Add(o)
	}
	g.scheduler.Add(system.NewEventLogSystem(opts.Logger))

	if opts.Watch {
		watcher, err := prefabs.NewWatcher(opts.WatchDirs...)
		if err != nil {
			return nil, fmt.Errorf("game: watch prefabs: %w", err)
		}
		g.watcher = watcher
	}

	g.log.Info("game ready", "level", lvl.Name, "player", player.String(), "zones", len(lvl.Zones))
	return g, nil
}

// Step applies pending prefab reloads and runs one tick.
func (g *Game) Step() error {
	if g.closed {
		return ErrClosed
	}
	g.pollReloads()
	g.scheduler.Update(g.world)
	g.ticks++
	return nil
}

func (g *Game) pollReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			_ = g.ReloadSpec(change.Name)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn("prefab watcher error", "err", err)
			}
		default:
			return
		}
	}
}

// ReloadSpec re-applies one edited prefab. Scripts are recompiled on the
// next tick; actor prefabs push their validated stats into every live
// controller built from them. Invalid stats are logged and leave the
// running controllers untouched.
func (g *Game) ReloadSpec(name string) error {
	if g.closed {
		return ErrClosed
	}
	name = prefabs.Name(name)

	if strings.EqualFold(filepath.Ext(name), ".tengo") {
		g.zones.ReloadScripts()
		g.log.Info("zone scripts reloaded", "script", name)
		return nil
	}

	if name == filepath.ToSlash(g.opts.CameraPrefab) {
		return g.reloadCamera(name)
	}

	var (
		matched  []*movement.Controller
		reloaded int
	)
	ecs.ForEach(g.world, component.MovementComponent.Kind(), func(_ ecs.Entity, mv *component.Movement) {
		if mv.Controller != nil && prefabs.Name(mv.Prefab) == name {
			matched = append(matched, mv.Controller)
		}
	})
	if len(matched) == 0 {
		g.log.Debug("prefab change ignored", "prefab", name)
		return nil
	}

	spec, err := prefabs.LoadActorSpec(name)
	if err != nil {
		g.log.Error("rejected prefab reload", "prefab", name, "err", err)
		return err
	}
	for _, ctrl := range matched {
		if err := ctrl.SetStats(spec.Stats); err != nil {
			g.log.Error("rejected prefab reload", "prefab", name, "err", err)
			return err
		}
		reloaded++
	}
	g.log.Info("prefab reloaded", "prefab", name, "controllers", reloaded)
	return nil
}

func (g *Game) reloadCamera(name string) error {
	spec, err := prefabs.LoadCameraSpec(name)
	if err != nil {
		g.log.Error("rejected camera reload", "prefab", name, "err", err)
		return err
	}
	cam, ok := ecs.Get(g.world, g.camera, component.CameraComponent.Kind())
	if !ok {
		return nil
	}
	rig, err := camera.New(spec.Config, cam.Rig.Position())
	if err != nil {
		g.log.Error("rejected camera reload", "prefab", name, "err", err)
		return err
	}
	cam.Rig = rig
	cam.TargetName = spec.TargetName
	g.log.Info("camera reloaded", "prefab", name)
	return nil
}

// Close disables every controller and stops the watcher. The game cannot be
// stepped afterwards.
func (g *Game) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true
	ecs.ForEach(g.world, component.MovementComponent.Kind(), func(_ ecs.Entity, mv *component.Movement) {
		if mv.Controller != nil {
			mv.Controller.Disable()
		}
	})
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}

func (g *Game) World() *ecs.World        { return g.world }
func (g *Game) Level() prefabs.LevelSpec { return g.level }
func (g *Game) Player() ecs.Entity       { return g.player }
func (g *Game) CameraEntity() ecs.Entity { return g.camera }
func (g *Game) Ticks() uint64            { return g.ticks }

func (g *Game) Zones() *system.ModifierZoneSystem { return g.zones }

// PlayerController returns the player's controller, or nil once the player
// entity is gone.
func (g *Game) PlayerController() *movement.Controller {
	mv, ok := ecs.Get(g.world, g.player, component.MovementComponent.Kind())
	if !ok {
		return nil
	}
	return mv.Controller
}

// PlayerPosition is the center of the player's body.
func (g *Game) PlayerPosition() (x, y float64, ok bool) {
	t, ok := ecs.Get(g.world, g.player, component.TransformComponent.Kind())
	if !ok {
		return 0, 0, false
	}
	return t.X, t.Y, true
}

// Camera returns the camera rig.
func (g *Game) Camera() *camera.Camera {
	cam, ok := ecs.Get(g.world, g.camera, component.CameraComponent.Kind())
	if !ok {
		return nil
	}
	return cam.Rig
}
