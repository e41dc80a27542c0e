package system

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/d5/tengo/v2"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/movement"
	"github.com/milk9111/platformer/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addZone(t *testing.T, w *ecs.World, name, script string, params map[string]any) ecs.Entity {
	t.Helper()
	e, err := entity.BuildModifierZone(w, prefabs.ZoneSpec{
		Name:    name,
		Script:  script,
		Params:  params,
		BoxSpec: prefabs.BoxSpec{X: 0, Y: 1, Width: 10, Height: 5},
	})
	require.NoError(t, err)
	return e
}

func zoneScheduler(zones *ModifierZoneSystem) *ecs.Scheduler {
	return ecs.NewScheduler(
		NewMovementSystem(DefaultDT),
		zones,
		NewPhysicsSystem(DefaultDT),
	)
}

func TestSpeedZoneAppliesOnEnterAndClearsOnExit(t *testing.T) {
	w, actor := newActorWorld(t, 4, 1.8)
	zone := addZone(t, w, "tailwind", "speed_boost.tengo", map[string]any{"speed_mult": 1.6, "acceleration_mult": 1.4})
	zones := NewModifierZoneSystem(DefaultDT, nil)
	s := zoneScheduler(zones)

	s.Update(w)

	mv, _ := ecs.Get(w, actor, component.MovementComponent.Kind())
	ctrl := mv.Controller
	assert.Equal(t, zone.ID(), ctrl.ModifierOwner())
	assert.Equal(t, 1.6, ctrl.Modifiers().SpeedMult)
	assert.Equal(t, 1.4, ctrl.Modifiers().AccelerationMult)
	assert.Equal(t, 1.0, ctrl.Modifiers().GravityMult)
	assert.Equal(t, []ecs.Entity{actor}, zones.Occupants(zone))

	require.NoError(t, entity.SetEntityTransform(w, actor, 30, 1.8))
	s.Update(w)

	assert.Equal(t, movement.NoOwner, ctrl.ModifierOwner())
	assert.Equal(t, movement.IdentityModifiers(), ctrl.Modifiers())
	assert.Empty(t, zones.Occupants(zone))
}

func TestLowGravityZoneWaitsBeforeApplying(t *testing.T) {
	w, actor := newActorWorld(t, 4, 1.8)
	addZone(t, w, "low_gravity", "low_gravity.tengo", map[string]any{
		"gravity_mult":    0.4,
		"jump_force_mult": 1.2,
		"extra_jumps":     1,
	})
	s := zoneScheduler(NewModifierZoneSystem(DefaultDT, nil))
	mv, _ := ecs.Get(w, actor, component.MovementComponent.Kind())

	run(s, w, 3)
	assert.Equal(t, movement.NoOwner, mv.Controller.ModifierOwner())

	run(s, w, 20)
	m := mv.Controller.Modifiers()
	assert.Equal(t, 0.4, m.GravityMult)
	assert.Equal(t, 1.2, m.JumpForceMult)
	assert.Equal(t, 1, m.ExtraJumps)
	assert.Equal(t, 1.0, m.SpeedMult)
}

func TestRemovedZoneClearsItsModifiers(t *testing.T) {
	w, actor := newActorWorld(t, 4, 1.8)
	zone := addZone(t, w, "tailwind", "speed_boost.tengo", map[string]any{"speed_mult": 2})
	s := zoneScheduler(NewModifierZoneSystem(DefaultDT, nil))
	mv, _ := ecs.Get(w, actor, component.MovementComponent.Kind())

	s.Update(w)
	require.Equal(t, 2.0, mv.Controller.Modifiers().SpeedMult)

	require.True(t, ecs.DestroyEntity(w, zone))
	s.Update(w)
	assert.Equal(t, movement.IdentityModifiers(), mv.Controller.Modifiers())
}

func TestZoneDoesNotClearAnotherOwnersModifiers(t *testing.T) {
	w, actor := newActorWorld(t, 4, 1.8)
	addZone(t, w, "tailwind", "speed_boost.tengo", map[string]any{"speed_mult": 2})
	s := zoneScheduler(NewModifierZoneSystem(DefaultDT, nil))
	mv, _ := ecs.Get(w, actor, component.MovementComponent.Kind())

	s.Update(w)
	// a later effect takes over the modifier slot
	mv.Controller.ApplyModifiers(999, movement.Modifiers{SpeedMult: 0.5, AccelerationMult: 1, DecelerationMult: 1, GravityMult: 1, JumpForceMult: 1})

	require.NoError(t, entity.SetEntityTransform(w, actor, 30, 1.8))
	s.Update(w)
	assert.Equal(t, 999, mv.Controller.ModifierOwner())
	assert.Equal(t, 0.5, mv.Controller.Modifiers().SpeedMult)
}

func TestBrokenZoneScriptIsReportedOnce(t *testing.T) {
	w, actor := newActorWorld(t, 4, 1.8)
	addZone(t, w, "broken", "does_not_exist.tengo", nil)
	logger, buf := bufferLogger()
	zones := NewModifierZoneSystem(DefaultDT, logger)
	s := zoneScheduler(zones)

	run(s, w, 3)
	assert.Equal(t, 1, strings.Count(buf.String(), "zone script failed to compile"))

	zones.ReloadScripts()
	s.Update(w)
	assert.Equal(t, 2, strings.Count(buf.String(), "zone script failed to compile"))

	mv, _ := ecs.Get(w, actor, component.MovementComponent.Kind())
	assert.Equal(t, movement.NoOwner, mv.Controller.ModifierOwner())
}

func TestModifiersFromObject(t *testing.T) {
	m, ok := modifiersFromObject(&tengo.Map{Value: map[string]tengo.Object{
		"speed_mult":  &tengo.Int{Value: 2},
		"extra_jumps": &tengo.Int{Value: -3},
		"unknown":     &tengo.String{Value: "x"},
	}})
	require.True(t, ok)
	want := movement.IdentityModifiers()
	want.SpeedMult = 2
	assert.Equal(t, want, m)

	_, ok = modifiersFromObject(&tengo.String{Value: "fast"})
	assert.False(t, ok)
}

func TestEmbeddedZoneScriptsCompile(t *testing.T) {
	entries, err := fs.ReadDir(prefabs.ScriptsFS, "scripts")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, entry := range entries {
		t.Run(entry.Name(), func(t *testing.T) {
			_, err := compileZoneScript(entry.Name())
			assert.NoError(t, err)
		})
	}
}
