package system

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/platformer/movement"
	"github.com/milk9111/platformer/prefabs"
)

const (
	zonePhaseEnter  = "enter"
	zonePhaseUpdate = "update"
	zonePhaseExit   = "exit"
)

// Zone scripts define onEnter, update and onExit, each taking
// (engine, zone, actor).
const zoneLifecycleDispatchScript = `
if __phase == "enter" {
	onEnter(__engine, __zone, __actor)
} else if __phase == "update" {
	update(__engine, __zone, __actor)
} else if __phase == "exit" {
	onExit(__engine, __zone, __actor)
}
`

type zoneScriptRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
}

func compileZoneScript(scriptPath string) (*zoneScriptRuntime, error) {
	if strings.TrimSpace(scriptPath) == "" {
		return nil, fmt.Errorf("zone script path is empty")
	}
	scriptBytes, err := prefabs.LoadScript(scriptPath)
	if err != nil {
		return nil, err
	}

	src := string(scriptBytes) + "\n" + zoneLifecycleDispatchScript
	script := tengo.NewScript([]byte(src))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__zone", map[string]any{})
	_ = script.Add("__actor", map[string]any{})

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	return &zoneScriptRuntime{scriptPath: scriptPath, compiled: compiled}, nil
}

func (rt *zoneScriptRuntime) runPhase(phase string, engine, zone, actor *tengo.ImmutableMap) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil zone script runtime")
	}
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__zone", zone); err != nil {
		return err
	}
	if err := rt.compiled.Set("__actor", actor); err != nil {
		return err
	}
	return rt.compiled.Run()
}

// zoneActor is what a script may read about, and do to, one actor.
type zoneActor struct {
	name  string
	owner int
	ctrl  *movement.Controller
}

func buildZoneScriptEngine(a zoneActor, log *slog.Logger) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["apply"] = &tengo.UserFunction{Name: "apply", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if a.ctrl == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		m, ok := modifiersFromObject(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		a.ctrl.ApplyModifiers(a.owner, m)
		return tengo.TrueValue, nil
	}}

	values["clear"] = &tengo.UserFunction{Name: "clear", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if a.ctrl == nil || !a.ctrl.ClearModifiers(a.owner) {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, arg := range args {
			parts = append(parts, objectAsString(arg))
		}
		log.Debug("zone script", "actor", a.name, "msg", strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func zoneObject(name string, params map[string]any, elapsed float64) *tengo.ImmutableMap {
	paramObj, err := tengo.FromInterface(params)
	if err != nil || params == nil {
		paramObj = &tengo.Map{Value: map[string]tengo.Object{}}
	}
	return &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"name":    &tengo.String{Value: name},
		"params":  paramObj,
		"elapsed": &tengo.Float{Value: elapsed},
	}}
}

func actorObject(name string, ctrl *movement.Controller) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"name": &tengo.String{Value: name},
	}
	if ctrl != nil {
		v := ctrl.Velocity()
		values["grounded"] = boolObject(ctrl.Grounded())
		values["dashing"] = boolObject(ctrl.Dashing())
		values["velocity_x"] = &tengo.Float{Value: v.X}
		values["velocity_y"] = &tengo.Float{Value: v.Y}
		values["jump_count"] = &tengo.Int{Value: int64(ctrl.JumpCount())}
	}
	return &tengo.ImmutableMap{Value: values}
}

// modifiersFromObject reads a script map over the identity set; keys the
// script leaves out stay at identity.
func modifiersFromObject(obj tengo.Object) (movement.Modifiers, bool) {
	var values map[string]tengo.Object
	switch v := obj.(type) {
	case *tengo.Map:
		values = v.Value
	case *tengo.ImmutableMap:
		values = v.Value
	default:
		return movement.Modifiers{}, false
	}

	m := movement.IdentityModifiers()
	floats := map[string]*float64{
		"speed_mult":        &m.SpeedMult,
		"acceleration_mult": &m.AccelerationMult,
		"deceleration_mult": &m.DecelerationMult,
		"gravity_mult":      &m.GravityMult,
		"jump_force_mult":   &m.JumpForceMult,
	}
	for key, dst := range floats {
		if f, ok := tengo.ToFloat64(values[key]); ok {
			*dst = f
		}
	}
	if n, ok := tengo.ToInt(values["extra_jumps"]); ok && n > 0 {
		m.ExtraJumps = n
	}
	return m, true
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
