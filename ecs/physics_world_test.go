package ecs

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/prefabs"
)

func newProbeWorld(t *testing.T) (*PhysicsWorld, Entity, *cp.Body, SenseShape) {
	t.Helper()
	w := NewWorld()
	pw := NewPhysicsWorld()
	w.SetPhysicsWorld(pw)

	// floor top at y=1, wall face at x=6, ceiling underside at y=5
	pw.AddSolid(0, 0, 12, 1)
	pw.AddSolid(6, 1, 1, 3)
	pw.AddSolid(0, 5, 4, 1)

	e := CreateEntity(w)
	body, shape := pw.EnsureBody(e, 5, 1.8, 0.8, 1.6)
	if body == nil || shape == nil {
		t.Fatalf("expected body and shape")
	}
	probe := SenseShape{Width: 0.8, Height: 1.6, GroundOffset: 0.05, Mask: CategorySolid, Group: ActorGroup(e)}
	return pw, e, body, probe
}

func TestSenseContacts(t *testing.T) {
	cases := []struct {
		name     string
		pos      cp.Vector
		travelX  float64
		grounded bool
		ceiling  bool
		wall     bool
		wallDir  int
	}{
		{"standing_facing_wall", cp.Vector{X: 5, Y: 1.8}, 3, true, false, true, 1},
		{"standing_facing_away", cp.Vector{X: 5, Y: 1.8}, -3, true, false, false, -1},
		{"standing_still", cp.Vector{X: 5, Y: 1.8}, 0, true, false, false, 0},
		{"airborne", cp.Vector{X: 9, Y: 3}, 0, false, false, false, 0},
		{"under_ceiling", cp.Vector{X: 2, Y: 4.1}, 0, false, true, false, 0},
		{"wall_out_of_reach", cp.Vector{X: 2, Y: 1.8}, 4, true, false, false, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			pw, _, body, probe := newProbeWorld(t)
			body.SetPosition(c.pos)

			s := pw.Sense(body, probe, c.travelX)
			if s.Grounded != c.grounded {
				t.Fatalf("grounded: expected %v, got %v", c.grounded, s.Grounded)
			}
			if s.Ceiling != c.ceiling {
				t.Fatalf("ceiling: expected %v, got %v", c.ceiling, s.Ceiling)
			}
			if s.Wall != c.wall {
				t.Fatalf("wall: expected %v, got %v", c.wall, s.Wall)
			}
			if s.WallDir != c.wallDir {
				t.Fatalf("wall dir: expected %d, got %d", c.wallDir, s.WallDir)
			}
		})
	}
}

func TestSenseContactsOnShippedLevel(t *testing.T) {
	level, err := prefabs.LoadLevelSpec("level.yaml")
	if err != nil {
		t.Fatalf("load level: %v", err)
	}

	cases := []struct {
		name     string
		pos      cp.Vector
		travelX  float64
		grounded bool
		ceiling  bool
		wall     bool
	}{
		{"spawn_floor", cp.Vector{X: 4, Y: 1.8}, -3, true, false, false},
		{"under_ledge", cp.Vector{X: 10, Y: 3.1}, 0, false, true, false},
		{"on_ledge", cp.Vector{X: 10, Y: 5.8}, 0, true, false, false},
		{"against_shaft_wall", cp.Vector{X: 39, Y: 1.8}, 3, true, false, true},
		{"airborne", cp.Vector{X: 22, Y: 12}, 0, false, false, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			pw := NewPhysicsWorld()
			w.SetPhysicsWorld(pw)
			for _, solid := range level.Solids {
				if pw.AddSolid(solid.X, solid.Y, solid.Width, solid.Height) == nil {
					t.Fatalf("expected solid %+v to be added", solid)
				}
			}

			e := CreateEntity(w)
			body, _ := pw.EnsureBody(e, c.pos.X, c.pos.Y, 0.8, 1.6)
			collider := SenseShape{Width: 0.8, Height: 1.6, GroundOffset: 0.05, Mask: CategorySolid, Group: ActorGroup(e)}

			s := pw.Sense(body, collider, c.travelX)
			if s.Grounded != c.grounded {
				t.Fatalf("grounded: expected %v, got %v", c.grounded, s.Grounded)
			}
			if s.Ceiling != c.ceiling {
				t.Fatalf("ceiling: expected %v, got %v", c.ceiling, s.Ceiling)
			}
			if s.Wall != c.wall {
				t.Fatalf("wall: expected %v, got %v", c.wall, s.Wall)
			}
		})
	}
}

func TestSenseWithoutBodyReadsNoContact(t *testing.T) {
	pw := NewPhysicsWorld()
	pw.AddSolid(0, 0, 10, 1)

	s := pw.Sense(nil, SenseShape{Width: 1, Height: 2, Mask: CategorySolid}, 1)
	if s.Grounded || s.Ceiling || s.Wall {
		t.Fatalf("expected no contact, got %+v", s)
	}

	var nilWorld *PhysicsWorld
	if s := nilWorld.Sense(nil, SenseShape{}, 1); s.Grounded {
		t.Fatalf("nil physics world should read no contact")
	}
}

func TestSenseIgnoresGeometryOutsideMask(t *testing.T) {
	pw, _, body, probe := newProbeWorld(t)
	probe.Mask = 0

	if s := pw.Sense(body, probe, 1); s.Grounded || s.Wall {
		t.Fatalf("empty mask should see nothing, got %+v", s)
	}
}

func TestZonesDoNotBlockProbes(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	e := CreateEntity(w)
	zone := CreateEntity(w)

	body, _ := pw.EnsureBody(e, 2, 3, 1, 2)
	pw.AddZone(zone, 0, 0, 10, 10)

	s := pw.Sense(body, SenseShape{Width: 1, Height: 2, Mask: CategorySolid | CategoryZone, Group: ActorGroup(e)}, 1)
	if s.Grounded || s.Wall || s.Ceiling {
		t.Fatalf("sensor zone should not read as contact, got %+v", s)
	}
}

func TestOverlappingReportsActorsInZone(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	inside := CreateEntity(w)
	outside := CreateEntity(w)
	zoneEnt := CreateEntity(w)

	pw.EnsureBody(inside, 3, 3, 1, 2)
	pw.EnsureBody(outside, 30, 3, 1, 2)
	zone := pw.AddZone(zoneEnt, 0, 0, 8, 8)

	got := pw.Overlapping(zone)
	if len(got) != 1 || got[0] != inside {
		t.Fatalf("expected only %v inside, got %v", inside, got)
	}

	pw.Teleport(inside, cp.Vector{X: 20, Y: 3})
	pw.Teleport(outside, cp.Vector{X: 4, Y: 4})
	got = pw.Overlapping(zone)
	if len(got) != 1 || got[0] != outside {
		t.Fatalf("expected teleports to count before a step, got %v", got)
	}
}

func TestEnsureBodyIsIdempotentAndRemovable(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	e := CreateEntity(w)

	b1, s1 := pw.EnsureBody(e, 0, 0, 1, 1)
	b2, s2 := pw.EnsureBody(e, 5, 5, 1, 1)
	if b1 != b2 || s1 != s2 {
		t.Fatalf("EnsureBody should return the existing body")
	}
	if pw.Body(e) != b1 {
		t.Fatalf("Body lookup mismatch")
	}

	pw.RemoveBody(e)
	if pw.Body(e) != nil {
		t.Fatalf("expected body removed")
	}
	pw.RemoveBody(e)
}

func TestStepMovesBodyWithoutGravity(t *testing.T) {
	w := NewWorld()
	pw := NewPhysicsWorld()
	e := CreateEntity(w)
	body, _ := pw.EnsureBody(e, 0, 10, 1, 1)

	body.SetVelocity(3, 0)
	for i := 0; i < 60; i++ {
		pw.Step(1.0 / 60.0)
	}
	p := body.Position()
	if p.Y != 10 {
		t.Fatalf("space gravity should be zero, y=%v", p.Y)
	}
	if p.X < 2.9 || p.X > 3.1 {
		t.Fatalf("expected x near 3, got %v", p.X)
	}
}
