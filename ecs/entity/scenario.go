package entity

import (
	"fmt"

	"github.com/milk9111/spacewalk/ecs"
	"github.com/milk9111/spacewalk/ecs/component"
	"github.com/milk9111/spacewalk/prefabs"
)

// LoadScenario builds every entity a scenario names and seeds the focus
// singleton: the first controllable vessel gets the view, the first crew
// member gets local input.
func LoadScenario(w *ecs.World, scenarioPath string) error {
	if w == nil {
		return fmt.Errorf("load scenario: world is nil")
	}

	spec, err := prefabs.LoadScenarioSpec(scenarioPath)
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}

	for i, ent := range spec.Entities {
		if _, err := BuildEntityAt(w, ent.Prefab, ent.X, ent.Y); err != nil {
			return fmt.Errorf("load scenario: entity %d: %w", i, err)
		}
	}

	focus := &component.SimFocus{}
	for _, e := range w.Query(component.VesselComponent.Kind()) {
		if vessel, ok := ecs.Get(w, e, component.VesselComponent.Kind()); ok && vessel.Controllable {
			focus.ActiveVessel = uint64(e)
			break
		}
	}
	if e, ok := w.First(component.CrewComponent.Kind()); ok {
		focus.ActiveCrew = uint64(e)
	}

	focusEnt := ecs.CreateEntity(w)
	if err := ecs.Add(w, focusEnt, component.SimFocusComponent.Kind(), focus); err != nil {
		return fmt.Errorf("load scenario: focus: %w", err)
	}
	return nil
}
