package system

import (
	"log/slog"
	"sort"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// ModifierZoneSystem runs each zone's script for the actors overlapping it:
// onEnter on the first tick inside, update on every later tick and onExit
// once the actor has left. The zone entity id is the modifier owner, so a
// zone can only clear what it applied itself.
type ModifierZoneSystem struct {
	dt  float64
	log *slog.Logger

	scriptCache map[ecs.Entity]*zoneScriptRuntime
	failed      map[ecs.Entity]string
	occupants   map[ecs.Entity]map[ecs.Entity]float64
}

func NewModifierZoneSystem(dt float64, logger *slog.Logger) *ModifierZoneSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &ModifierZoneSystem{
		dt:          fixedDT(dt),
		log:         logger,
		scriptCache: map[ecs.Entity]*zoneScriptRuntime{},
		failed:      map[ecs.Entity]string{},
		occupants:   map[ecs.Entity]map[ecs.Entity]float64{},
	}
}

// ReloadScripts drops every compiled script; zones recompile on their next
// tick. Actors currently inside keep their modifiers.
func (s *ModifierZoneSystem) ReloadScripts() {
	s.scriptCache = map[ecs.Entity]*zoneScriptRuntime{}
	s.failed = map[ecs.Entity]string{}
}

func (s *ModifierZoneSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	pw := w.PhysicsWorld()

	// a removed zone takes its modifiers with it
	for zoneEnt, occupants := range s.occupants {
		if !ecs.Has(w, zoneEnt, component.ModifierZoneComponent.Kind()) {
			for e := range occupants {
				if mv, ok := ecs.Get(w, e, component.MovementComponent.Kind()); ok && mv.Controller != nil {
					mv.Controller.ClearModifiers(zoneEnt.ID())
				}
			}
			delete(s.occupants, zoneEnt)
			delete(s.scriptCache, zoneEnt)
			delete(s.failed, zoneEnt)
		}
	}

	ecs.ForEach(w, component.ModifierZoneComponent.Kind(), func(zoneEnt ecs.Entity, zone *component.ModifierZone) {
		rt := s.runtime(zoneEnt, zone)
		if rt == nil {
			return
		}

		inside := map[ecs.Entity]bool{}
		for _, e := range pw.Overlapping(zone.Shape) {
			if ecs.Has(w, e, component.MovementComponent.Kind()) {
				inside[e] = true
			}
		}

		prev := s.occupants[zoneEnt]
		if prev == nil {
			prev = map[ecs.Entity]float64{}
			s.occupants[zoneEnt] = prev
		}

		for _, e := range sortedEntities(prev) {
			if inside[e] {
				continue
			}
			elapsed := prev[e]
			delete(prev, e)
			if ecs.IsAlive(w, e) {
				s.run(w, rt, zoneEnt, zone, e, zonePhaseExit, elapsed)
			}
		}

		for _, e := range sortedEntities(inside) {
			elapsed, ok := prev[e]
			if !ok {
				prev[e] = 0
				s.run(w, rt, zoneEnt, zone, e, zonePhaseEnter, 0)
				continue
			}
			elapsed += s.dt
			prev[e] = elapsed
			s.run(w, rt, zoneEnt, zone, e, zonePhaseUpdate, elapsed)
		}
	})
}

// Occupants lists the actors a zone currently considers inside.
func (s *ModifierZoneSystem) Occupants(zone ecs.Entity) []ecs.Entity {
	return sortedEntities(s.occupants[zone])
}

func (s *ModifierZoneSystem) runtime(zoneEnt ecs.Entity, zone *component.ModifierZone) *zoneScriptRuntime {
	if rt, ok := s.scriptCache[zoneEnt]; ok && rt.scriptPath == zone.Script {
		return rt
	}
	if s.failed[zoneEnt] == zone.Script {
		return nil
	}
	rt, err := compileZoneScript(zone.Script)
	if err != nil {
		s.failed[zoneEnt] = zone.Script
		s.log.Error("zone script failed to compile", "zone", zone.Name, "script", zone.Script, "err", err)
		return nil
	}
	delete(s.failed, zoneEnt)
	s.scriptCache[zoneEnt] = rt
	return rt
}

func (s *ModifierZoneSystem) run(w *ecs.World, rt *zoneScriptRuntime, zoneEnt ecs.Entity, zone *component.ModifierZone, actor ecs.Entity, phase string, elapsed float64) {
	mv, ok := ecs.Get(w, actor, component.MovementComponent.Kind())
	if !ok || mv.Controller == nil {
		return
	}
	var name string
	if n, ok := ecs.Get(w, actor, component.NameComponent.Kind()); ok {
		name = n.Value
	}

	a := zoneActor{name: name, owner: zoneEnt.ID(), ctrl: mv.Controller}
	err := rt.runPhase(phase,
		buildZoneScriptEngine(a, s.log),
		zoneObject(zone.Name, zone.Params, elapsed),
		actorObject(name, mv.Controller),
	)
	if err != nil {
		s.log.Warn("zone script error", "zone", zone.Name, "phase", phase, "actor", actor, "err", err)
	}
}

func sortedEntities[V any](set map[ecs.Entity]V) []ecs.Entity {
	out := make([]ecs.Entity, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
