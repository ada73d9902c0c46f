package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/spacewalk/ecs"
	"github.com/milk9111/spacewalk/ecs/component"
	"github.com/milk9111/spacewalk/prefabs"
)

// ScriptSystem runs per-crew tengo behaviors. Scripts are compiled once per
// entity and re-run on their own cadence; a script drives its crew member
// through the same intention toggles the player uses.
type ScriptSystem struct {
	intentions *IntentionSystem
	cache      map[ecs.Entity]*scriptRuntime
}

type scriptRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	stateData  *tengo.Map
}

const scriptDispatch = `
tick(__engine, __state)
`

func NewScriptSystem(intentions *IntentionSystem) *ScriptSystem {
	return &ScriptSystem{
		intentions: intentions,
		cache:      map[ecs.Entity]*scriptRuntime{},
	}
}

// Invalidate drops compiled scripts so the next tick recompiles from the
// current prefab sources. Called on hot reload.
func (ss *ScriptSystem) Invalidate() {
	if ss == nil {
		return
	}
	ss.cache = map[ecs.Entity]*scriptRuntime{}
}

func (ss *ScriptSystem) Update(w *ecs.World) {
	if ss == nil || w == nil {
		return
	}
	ecs.ForEach(w, component.ScriptBehaviorComponent.Kind(), func(e ecs.Entity, behavior *component.ScriptBehavior) {
		every := behavior.EveryFrames
		if every < 1 {
			every = 1
		}
		behavior.Timer++
		if behavior.Timer < every {
			return
		}
		behavior.Timer = 0

		rt, err := ss.getRuntime(e, behavior)
		if err != nil {
			log.Printf("script: entity=%d load error: %v", e, err)
			return
		}
		if err := rt.run(ss.buildEngine(w, e)); err != nil {
			log.Printf("script: entity=%d run error: %v", e, err)
		}
	})

	for e := range ss.cache {
		if !ecs.IsAlive(w, e) {
			delete(ss.cache, e)
		}
	}
}

func (ss *ScriptSystem) getRuntime(e ecs.Entity, behavior *component.ScriptBehavior) (*scriptRuntime, error) {
	if strings.TrimSpace(behavior.Path) == "" {
		return nil, fmt.Errorf("empty script path")
	}
	if rt, ok := ss.cache[e]; ok && rt != nil && rt.scriptPath == behavior.Path {
		return rt, nil
	}

	scriptBytes, err := prefabs.LoadScript(behavior.Path)
	if err != nil {
		return nil, err
	}

	src := string(scriptBytes) + "\n" + scriptDispatch
	script := tengo.NewScript([]byte(src))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}

	rt := &scriptRuntime{
		scriptPath: behavior.Path,
		compiled:   compiled,
		stateData:  &tengo.Map{Value: map[string]tengo.Object{}},
	}
	ss.cache[e] = rt
	return rt, nil
}

func (rt *scriptRuntime) run(engine *tengo.ImmutableMap) error {
	if rt == nil || rt.compiled == nil {
		return fmt.Errorf("nil script runtime")
	}
	if engine == nil {
		engine = &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func (ss *ScriptSystem) buildEngine(w *ecs.World, e ecs.Entity) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	boolObj := func(v bool) tengo.Object {
		if v {
			return tengo.TrueValue
		}
		return tengo.FalseValue
	}

	values["toggle_board"] = &tengo.UserFunction{Name: "toggle_board", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ss.intentions == nil {
			return tengo.FalseValue, nil
		}
		ss.intentions.ToggleBoardIntent(w, e)
		return tengo.TrueValue, nil
	}}

	values["toggle_grab"] = &tengo.UserFunction{Name: "toggle_grab", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ss.intentions == nil {
			return tengo.FalseValue, nil
		}
		ss.intentions.ToggleGrabIntent(w, e)
		return tengo.TrueValue, nil
	}}

	values["wants_board"] = &tengo.UserFunction{Name: "wants_board", Value: func(args ...tengo.Object) (tengo.Object, error) {
		it, ok := ecs.Get(w, e, component.IntentionComponent.Kind())
		return boolObj(ok && it.WantsBoard), nil
	}}

	values["wants_grab"] = &tengo.UserFunction{Name: "wants_grab", Value: func(args ...tengo.Object) (tengo.Object, error) {
		it, ok := ecs.Get(w, e, component.IntentionComponent.Kind())
		return boolObj(ok && it.WantsGrab), nil
	}}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
		if !ok {
			return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: 0}, &tengo.Float{Value: 0}}}, nil
		}
		return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: tr.X}, &tengo.Float{Value: tr.Y}}}, nil
	}}

	values["at_airlock"] = &tengo.UserFunction{Name: "at_airlock", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObj(ResolveAirlock(w, e).Valid()), nil
	}}

	values["near_ladder"] = &tengo.UserFunction{Name: "near_ladder", Value: func(args ...tengo.Object) (tengo.Object, error) {
		status, ok := ecs.Get(w, e, component.CrewStatusComponent.Kind())
		return boolObj(ok && status.ClimbTriggers > 0), nil
	}}

	values["is_aboard"] = &tengo.UserFunction{Name: "is_aboard", Value: func(args ...tengo.Object) (tengo.Object, error) {
		status, ok := ecs.Get(w, e, component.CrewStatusComponent.Kind())
		return boolObj(ok && status.Aboard != 0), nil
	}}

	return &tengo.ImmutableMap{Value: values}
}
