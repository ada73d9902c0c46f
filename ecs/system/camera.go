package system

import (
	"github.com/milk9111/spacewalk/common"
	"github.com/milk9111/spacewalk/ecs"
	"github.com/milk9111/spacewalk/ecs/component"
)

// CameraSystem eases the observer viewpoint toward the focused context:
// the active EVA crew member when there is one, otherwise the active
// vessel.
type CameraSystem struct {
	camEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs == nil || w == nil {
		return
	}
	if !cs.camEntity.Valid() || !ecs.IsAlive(w, cs.camEntity) {
		camEntity, ok := w.First(component.CameraComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok || cam.Mode == component.CameraModeFree {
		return
	}

	target, ok := cameraTarget(w)
	if !ok {
		return
	}
	tr, ok := ecs.Get(w, target, component.TransformComponent.Kind())
	if !ok {
		return
	}

	smooth := cam.Smoothness
	if smooth <= 0 || smooth > 1 {
		smooth = 0.15
	}
	cam.PivotX = common.Lerp(cam.PivotX, tr.X, smooth)
	cam.PivotY = common.Lerp(cam.PivotY, tr.Y, smooth)
	cam.ViewX = cam.PivotX - common.BaseWidth/2
	cam.ViewY = cam.PivotY - common.BaseHeight/2
}

func cameraTarget(w *ecs.World) (ecs.Entity, bool) {
	focusEnt, ok := w.First(component.SimFocusComponent.Kind())
	if !ok {
		return 0, false
	}
	focus, ok := ecs.Get(w, focusEnt, component.SimFocusComponent.Kind())
	if !ok {
		return 0, false
	}
	if crew := ecs.Entity(focus.ActiveCrew); crew.Valid() && ecs.IsAlive(w, crew) {
		return crew, true
	}
	if vessel := ecs.Entity(focus.ActiveVessel); vessel.Valid() && ecs.IsAlive(w, vessel) {
		return vessel, true
	}
	return 0, false
}

// CaptureCamera snapshots the current viewpoint. The returned state is an
// owned copy; a later capture overwrites nothing the caller holds.
func CaptureCamera(w *ecs.World) *component.CameraState {
	camEnt, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return nil
	}
	cam, ok := ecs.Get(w, camEnt, component.CameraComponent.Kind())
	if !ok {
		return nil
	}
	return &component.CameraState{
		Mode:   cam.Mode,
		ViewX:  cam.ViewX,
		ViewY:  cam.ViewY,
		PivotX: cam.PivotX,
		PivotY: cam.PivotY,
	}
}

// RestoreCamera writes a snapshot back to the viewpoint. Restoring the
// same state twice is a no-op the second time; nothing else runs as a
// side effect.
func RestoreCamera(w *ecs.World, state *component.CameraState) {
	if state == nil {
		return
	}
	camEnt, ok := w.First(component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, ok := ecs.Get(w, camEnt, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam.Mode = state.Mode
	cam.ViewX = state.ViewX
	cam.ViewY = state.ViewY
	cam.PivotX = state.PivotX
	cam.PivotY = state.PivotY
}
