package ecs

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/movement"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeActor
	collisionTypeZone
)

// Category bits. Level geometry lives in CategorySolid; probes filter with the
// actor's collision mask, so actors never see themselves or each other.
const (
	CategorySolid uint = 1 << iota
	CategoryActor
	CategoryZone
)

// wallProbeWidths is the wall ray length in collider widths.
const wallProbeWidths = 1.5

// PhysicsWorld owns the Chipmunk space. The space has no gravity of its own;
// actor controllers own gravity and write velocities directly.
type PhysicsWorld struct {
	space *cp.Space

	shapeToEntity map[*cp.Shape]Entity
	bodies        map[Entity]*cp.Body
}

// NewPhysicsWorld creates an empty space.
func NewPhysicsWorld() *PhysicsWorld {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})

	return &PhysicsWorld{
		space:         space,
		shapeToEntity: make(map[*cp.Shape]Entity),
		bodies:        make(map[Entity]*cp.Body),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// AddSolid adds a static box with its lower-left corner at (x, y).
func (pw *PhysicsWorld) AddSolid(x, y, width, height float64) *cp.Shape {
	if pw == nil || pw.space == nil || width <= 0 || height <= 0 {
		return nil
	}
	bb := cp.BB{L: x, B: y, R: x + width, T: y + height}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetFriction(0)
	shape.SetCollisionType(collisionTypeSolid)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategorySolid, cp.ALL_CATEGORIES))
	pw.space.AddShape(shape)
	return shape
}

// AddZone adds a static sensor box. Sensors never block bodies or probes.
func (pw *PhysicsWorld) AddZone(e Entity, x, y, width, height float64) *cp.Shape {
	if pw == nil || pw.space == nil || width <= 0 || height <= 0 {
		return nil
	}
	bb := cp.BB{L: x, B: y, R: x + width, T: y + height}
	shape := cp.NewBox2(pw.space.StaticBody, bb, 0)
	shape.SetSensor(true)
	shape.SetCollisionType(collisionTypeZone)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryZone, CategoryActor))
	pw.space.AddShape(shape)
	pw.shapeToEntity[shape] = e
	return shape
}

// EnsureBody creates the dynamic body for an actor centered at (x, y), or
// returns the existing one. Rotation is locked.
func (pw *PhysicsWorld) EnsureBody(e Entity, x, y, width, height float64) (*cp.Body, *cp.Shape) {
	if pw == nil || pw.space == nil {
		return nil, nil
	}
	if body, ok := pw.bodies[e]; ok {
		var shape *cp.Shape
		body.EachShape(func(s *cp.Shape) {
			if shape == nil {
				shape = s
			}
		})
		return body, shape
	}

	body := cp.NewBody(1, math.Inf(1))
	body.SetPosition(cp.Vector{X: x, Y: y})
	// velocity comes from the controller alone
	body.SetVelocityUpdateFunc(func(b *cp.Body, _ cp.Vector, _ float64, dt float64) {
		cp.BodyUpdateVelocity(b, cp.Vector{}, 1, dt)
	})

	shape := cp.NewBox(body, width, height, 0)
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeActor)
	// own probes share the body's group and skip it
	shape.SetFilter(cp.NewShapeFilter(ActorGroup(e), CategoryActor, CategorySolid|CategoryZone))

	pw.space.AddBody(body)
	pw.space.AddShape(shape)
	pw.bodies[e] = body
	pw.shapeToEntity[shape] = e
	return body, shape
}

// RemoveBody drops an actor's body and shapes from the space.
func (pw *PhysicsWorld) RemoveBody(e Entity) {
	if pw == nil || pw.space == nil {
		return
	}
	body, ok := pw.bodies[e]
	if !ok {
		return
	}
	var shapes []*cp.Shape
	body.EachShape(func(s *cp.Shape) { shapes = append(shapes, s) })
	for _, s := range shapes {
		delete(pw.shapeToEntity, s)
		pw.space.RemoveShape(s)
	}
	pw.space.RemoveBody(body)
	delete(pw.bodies, e)
}

// Body returns the body registered for e.
func (pw *PhysicsWorld) Body(e Entity) *cp.Body {
	if pw == nil {
		return nil
	}
	return pw.bodies[e]
}

// Step advances the physics simulation.
func (pw *PhysicsWorld) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
}

// Overlapping returns the actors whose shapes overlap the zone shape, in
// entity order. Positions are read from the bodies directly, so a teleport
// counts before the next step.
func (pw *PhysicsWorld) Overlapping(zone *cp.Shape) []Entity {
	if pw == nil || pw.space == nil || zone == nil {
		return nil
	}
	zoneBB := zone.BB()
	var out []Entity
	for shape, e := range pw.shapeToEntity {
		body := shape.Body()
		if shape == zone || body == nil || body.GetType() != cp.BODY_DYNAMIC {
			continue
		}
		if zone.Filter.Reject(shape.Filter) {
			continue
		}
		if !zoneBB.Intersects(shape.CacheBB()) {
			continue
		}
		if cp.ShapesCollide(zone, shape).Count > 0 {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Teleport moves an actor's body and stops it.
func (pw *PhysicsWorld) Teleport(e Entity, pos cp.Vector) {
	body := pw.Body(e)
	if body == nil {
		return
	}
	body.SetPosition(pos)
	body.SetVelocity(0, 0)
}

// ActorGroup is the shape filter group of an actor's body.
func ActorGroup(e Entity) uint {
	return uint(e.id())
}

// SenseShape describes the collider an actor senses with.
type SenseShape struct {
	Width        float64
	Height       float64
	GroundOffset float64
	Mask         uint
	Group        uint
}

// Sense reads ground, ceiling and walls around body. travelX is the
// horizontal velocity the wall probe looks along. A missing body reads as no
// contact.
func (pw *PhysicsWorld) Sense(body *cp.Body, p SenseShape, travelX float64) movement.Sensors {
	if pw == nil || pw.space == nil || body == nil {
		return movement.Sensors{}
	}
	s := movement.Sensors{
		Grounded:     pw.probeVertical(body, p, -1),
		Ceiling:      pw.probeVertical(body, p, 1),
		BodyVelocity: body.Velocity(),
	}
	if dir := common.Sign(travelX); dir != 0 {
		s.WallDir = dir
		s.Wall = pw.probeWall(body, p, dir)
	}
	return s
}

// probeVertical sweeps a circle of half the collider width from the center
// toward dirY for half the height minus the ground offset.
func (pw *PhysicsWorld) probeVertical(body *cp.Body, p SenseShape, dirY float64) bool {
	dist := p.Height/2 - p.GroundOffset
	if dist <= 0 {
		return false
	}
	start := body.Position()
	end := start.Add(cp.Vector{Y: dirY * dist})
	return pw.hit(start, end, p.Width/2, p)
}

func (pw *PhysicsWorld) probeWall(body *cp.Body, p SenseShape, dir int) bool {
	start := body.Position()
	end := start.Add(cp.Vector{X: float64(dir) * p.Width * wallProbeWidths})
	return pw.hit(start, end, 0, p)
}

// hit sweeps a circle of radius from start to end. Candidates are gathered by
// the swept bounds because the space's segment query culls its tree by the bare
// segment and would miss surfaces only the radius reaches.
func (pw *PhysicsWorld) hit(start, end cp.Vector, radius float64, p SenseShape) bool {
	filter := cp.NewShapeFilter(p.Group, cp.ALL_CATEGORIES, p.Mask)
	bb := cp.BB{
		L: math.Min(start.X, end.X) - radius,
		B: math.Min(start.Y, end.Y) - radius,
		R: math.Max(start.X, end.X) + radius,
		T: math.Max(start.Y, end.Y) + radius,
	}
	found := false
	pw.space.BBQuery(bb, filter, func(shape *cp.Shape, _ interface{}) {
		if found || shape.Sensor() {
			return
		}
		var info cp.SegmentQueryInfo
		found = shape.SegmentQuery(start, end, radius, &info)
	}, nil)
	return found
}
