package entity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/milk9111/spacewalk/ecs"
	"github.com/milk9111/spacewalk/ecs/component"
	"github.com/milk9111/spacewalk/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"crew_tag":           addCrewTag,
	"vessel_tag":         addVesselTag,
	"camera_tag":         addCameraTag,
	"crew":               addCrew,
	"crew_status":        addCrewStatus,
	"crew_state_machine": addCrewStateMachine,
	"input":              addInput,
	"transform":          addTransform,
	"physics_body":       addPhysicsBody,
	"camera":             addCamera,
	"vessel":             addVessel,
	"script":             addScript,
}

// Transform builds before vessel so seat and airlock children can anchor to
// the parent position.
var componentBuildOrder = []string{
	"crew_tag",
	"vessel_tag",
	"camera_tag",
	"crew",
	"crew_status",
	"crew_state_machine",
	"input",
	"transform",
	"physics_body",
	"camera",
	"vessel",
	"script",
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, prefabPath, spec)
}

// BuildEntityAt builds a prefab with its transform repositioned before any
// component builder runs, so children anchored to the transform land in the
// right place.
func BuildEntityAt(w *ecs.World, prefabPath string, x, y float64) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}

	tr, _ := spec.Components["transform"].(map[string]any)
	if tr == nil {
		tr = map[string]any{}
	}
	tr["x"] = x
	tr["y"] = y
	if spec.Components == nil {
		spec.Components = map[string]any{}
	}
	spec.Components["transform"] = tr

	return buildFromSpec(w, prefabPath, spec)
}

func buildFromSpec(w *ecs.World, prefabPath string, spec prefabs.EntityBuildSpec) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		builder, ok := componentRegistry[name]
		if !ok {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
		if err := builder(w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			builder, ok := componentRegistry[name]
			if !ok {
				ecs.DestroyEntity(w, e)
				return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
			}
			if err := builder(w, e, remaining[name], ctx); err != nil {
				ecs.DestroyEntity(w, e)
				return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
			}
		}
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addCrewTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CrewTagComponent.Kind(), &component.CrewTag{})
}

func addVesselTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.VesselTagComponent.Kind(), &component.VesselTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

type crewSpec = prefabs.CrewComponentSpec

func addCrew(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[crewSpec](raw)
	if err != nil {
		return fmt.Errorf("decode crew spec: %w", err)
	}
	return ecs.Add(w, e, component.CrewComponent.Kind(), &component.Crew{
		Name:       spec.Name,
		MoveSpeed:  spec.MoveSpeed,
		ClimbSpeed: spec.ClimbSpeed,
	})
}

func addCrewStatus(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CrewStatusComponent.Kind(), &component.CrewStatus{})
}

func addCrewStateMachine(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CrewStateMachineComponent.Kind(), &component.CrewStateMachine{})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: spec.Rotation,
	})
}

type physicsBodySpec = prefabs.PhysicsBodySpec

func addPhysicsBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[physicsBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode physics body spec: %w", err)
	}
	if !spec.Static && spec.Mass == 0 {
		spec.Mass = 1
	}
	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:      spec.Width,
		Height:     spec.Height,
		Radius:     spec.Radius,
		Mass:       spec.Mass,
		Friction:   spec.Friction,
		Elasticity: spec.Elasticity,
		Static:     spec.Static,
		Sensor:     spec.Sensor,
		OffsetX:    spec.OffsetX,
		OffsetY:    spec.OffsetY,
	})
}

type cameraSpec = prefabs.CameraComponentSpec

func addCamera(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cameraSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.Smoothness == 0 {
		spec.Smoothness = 0.15
	}
	mode := component.CameraModeAuto
	switch strings.ToLower(strings.TrimSpace(spec.Mode)) {
	case "", "auto":
	case "chase":
		mode = component.CameraModeChase
	case "free":
		mode = component.CameraModeFree
	default:
		return fmt.Errorf("unknown camera mode %q", spec.Mode)
	}
	cam := &component.Camera{Mode: mode, Smoothness: spec.Smoothness}
	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		cam.PivotX = tr.X
		cam.PivotY = tr.Y
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), cam)
}

type vesselSpec = prefabs.VesselComponentSpec

// addVessel attaches the vessel component and builds its seat, airlock, and
// ladder child entities at offsets from the vessel transform.
func addVessel(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[vesselSpec](raw)
	if err != nil {
		return fmt.Errorf("decode vessel spec: %w", err)
	}

	if err := ecs.Add(w, e, component.VesselComponent.Kind(), &component.Vessel{
		Name:         spec.Name,
		Controllable: spec.Controllable,
		Packed:       spec.Packed,
	}); err != nil {
		return err
	}

	baseX, baseY := 0.0, 0.0
	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		baseX, baseY = tr.X, tr.Y
	}

	if spec.Hull != nil {
		hull := spec.Hull
		if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Width:      hull.Width,
			Height:     hull.Height,
			Radius:     hull.Radius,
			Friction:   hull.Friction,
			Elasticity: hull.Elasticity,
			Static:     true,
			OffsetX:    hull.OffsetX,
			OffsetY:    hull.OffsetY,
		}); err != nil {
			return fmt.Errorf("vessel hull: %w", err)
		}
	}

	for i, seat := range spec.Seats {
		child := ecs.CreateEntity(w)
		if err := ecs.Add(w, child, component.SeatTagComponent.Kind(), &component.SeatTag{}); err != nil {
			return fmt.Errorf("seat %d: %w", i, err)
		}
		if err := ecs.Add(w, child, component.SeatComponent.Kind(), &component.Seat{Vessel: uint64(e)}); err != nil {
			return fmt.Errorf("seat %d: %w", i, err)
		}
		if err := SetEntityTransform(w, child, baseX+seat.OffsetX, baseY+seat.OffsetY, 0); err != nil {
			return fmt.Errorf("seat %d: %w", i, err)
		}
	}

	for i, al := range spec.Airlocks {
		capacity := al.Capacity
		if capacity < 1 {
			capacity = 1
		}
		child := ecs.CreateEntity(w)
		if err := ecs.Add(w, child, component.AirlockTagComponent.Kind(), &component.AirlockTag{}); err != nil {
			return fmt.Errorf("airlock %d: %w", i, err)
		}
		if err := ecs.Add(w, child, component.AirlockComponent.Kind(), &component.Airlock{
			Vessel:   uint64(e),
			Capacity: capacity,
		}); err != nil {
			return fmt.Errorf("airlock %d: %w", i, err)
		}
		if err := SetEntityTransform(w, child, baseX+al.OffsetX, baseY+al.OffsetY, 0); err != nil {
			return fmt.Errorf("airlock %d: %w", i, err)
		}
		if err := ecs.Add(w, child, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Width:  al.Width,
			Height: al.Height,
			Static: true,
			Sensor: true,
		}); err != nil {
			return fmt.Errorf("airlock %d: %w", i, err)
		}
	}

	for i, ladder := range spec.Ladders {
		child := ecs.CreateEntity(w)
		if err := ecs.Add(w, child, component.LadderTagComponent.Kind(), &component.LadderTag{}); err != nil {
			return fmt.Errorf("ladder %d: %w", i, err)
		}
		if err := SetEntityTransform(w, child, baseX+ladder.OffsetX, baseY+ladder.OffsetY, 0); err != nil {
			return fmt.Errorf("ladder %d: %w", i, err)
		}
		if err := ecs.Add(w, child, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
			Width:  ladder.Width,
			Height: ladder.Height,
			Static: true,
			Sensor: true,
		}); err != nil {
			return fmt.Errorf("ladder %d: %w", i, err)
		}
	}

	return nil
}

type scriptSpec = prefabs.ScriptComponentSpec

func addScript(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[scriptSpec](raw)
	if err != nil {
		return fmt.Errorf("decode script spec: %w", err)
	}
	if strings.TrimSpace(spec.Path) == "" {
		return fmt.Errorf("script spec missing path")
	}
	if spec.EveryFrames < 1 {
		spec.EveryFrames = 1
	}
	return ecs.Add(w, e, component.ScriptBehaviorComponent.Kind(), &component.ScriptBehavior{
		Path:        spec.Path,
		EveryFrames: spec.EveryFrames,
	})
}
