package system

import (
	"math"
	"testing"

	"github.com/milk9111/spacewalk/common"
	"github.com/milk9111/spacewalk/ecs"
	"github.com/milk9111/spacewalk/ecs/component"
)

func newCamera(t *testing.T, w *ecs.World, cam component.Camera) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.CameraComponent.Kind(), &cam); err != nil {
		t.Fatal(err)
	}
	return e
}

func TestCaptureRestoreCamera(t *testing.T) {
	t.Run("round_trip", func(t *testing.T) {
		w := ecs.NewWorld()
		camEnt := newCamera(t, w, component.Camera{
			Mode:   component.CameraModeChase,
			ViewX:  10,
			ViewY:  20,
			PivotX: 650,
			PivotY: 380,
		})

		snap := CaptureCamera(w)
		if snap == nil {
			t.Fatal("expected a snapshot")
		}

		cam, _ := ecs.Get(w, camEnt, component.CameraComponent.Kind())
		cam.ViewX = 999
		cam.PivotY = -5
		cam.Mode = component.CameraModeFree

		RestoreCamera(w, snap)
		if cam.ViewX != 10 || cam.ViewY != 20 || cam.PivotX != 650 || cam.PivotY != 380 {
			t.Fatalf("restore did not reinstate the snapshot: %+v", cam)
		}
		if cam.Mode != component.CameraModeChase {
			t.Fatal("restore must reinstate the mode")
		}
	})

	t.Run("restore_is_idempotent", func(t *testing.T) {
		w := ecs.NewWorld()
		camEnt := newCamera(t, w, component.Camera{ViewX: 1, ViewY: 2, PivotX: 3, PivotY: 4})

		snap := CaptureCamera(w)
		RestoreCamera(w, snap)
		RestoreCamera(w, snap)

		cam, _ := ecs.Get(w, camEnt, component.CameraComponent.Kind())
		if cam.ViewX != 1 || cam.ViewY != 2 || cam.PivotX != 3 || cam.PivotY != 4 {
			t.Fatalf("double restore changed state: %+v", cam)
		}
	})

	t.Run("snapshot_is_an_owned_copy", func(t *testing.T) {
		w := ecs.NewWorld()
		camEnt := newCamera(t, w, component.Camera{PivotX: 100})

		snap := CaptureCamera(w)
		cam, _ := ecs.Get(w, camEnt, component.CameraComponent.Kind())
		cam.PivotX = 0

		if snap.PivotX != 100 {
			t.Fatal("mutating the live camera must not touch the snapshot")
		}
	})

	t.Run("nil_and_missing_are_no_ops", func(t *testing.T) {
		w := ecs.NewWorld()
		RestoreCamera(w, nil)
		if snap := CaptureCamera(w); snap != nil {
			t.Fatalf("capture without a camera should be nil, got %+v", snap)
		}
		RestoreCamera(w, &component.CameraState{ViewX: 1})
	})
}

func TestCameraFollow(t *testing.T) {
	t.Run("eases_toward_active_crew", func(t *testing.T) {
		w := ecs.NewWorld()
		fs := NewFocusSystem()
		camEnt := newCamera(t, w, component.Camera{Mode: component.CameraModeChase, Smoothness: 0.5})
		crew := newCrew(t, w, "Val")
		tr, _ := ecs.Get(w, crew, component.TransformComponent.Kind())
		tr.X = 100
		tr.Y = 50

		focus, _ := fs.Focus(w)
		focus.ActiveCrew = uint64(crew)

		cs := NewCameraSystem()
		cs.Update(w)

		cam, _ := ecs.Get(w, camEnt, component.CameraComponent.Kind())
		if math.Abs(cam.PivotX-50) > 1e-9 || math.Abs(cam.PivotY-25) > 1e-9 {
			t.Fatalf("expected pivot halfway to the target, got (%v, %v)", cam.PivotX, cam.PivotY)
		}
		if want := cam.PivotX - common.BaseWidth/2; cam.ViewX != want {
			t.Fatalf("view should trail the pivot by half a screen, got %v want %v", cam.ViewX, want)
		}
	})

	t.Run("falls_back_to_active_vessel", func(t *testing.T) {
		w := ecs.NewWorld()
		fs := NewFocusSystem()
		camEnt := newCamera(t, w, component.Camera{Mode: component.CameraModeChase, Smoothness: 1})

		vessel := newVessel(t, w, "Shuttle", true, false)
		if err := ecs.Add(w, vessel, component.TransformComponent.Kind(), &component.Transform{X: 400, Y: 300, ScaleX: 1, ScaleY: 1}); err != nil {
			t.Fatal(err)
		}

		focus, _ := fs.Focus(w)
		focus.ActiveVessel = uint64(vessel)

		cs := NewCameraSystem()
		cs.Update(w)

		// Smoothness 1 snaps straight to the target.
		cam, _ := ecs.Get(w, camEnt, component.CameraComponent.Kind())
		if cam.PivotX != 400 || cam.PivotY != 300 {
			t.Fatalf("expected pivot on the vessel, got (%v, %v)", cam.PivotX, cam.PivotY)
		}
	})

	t.Run("free_mode_holds_still", func(t *testing.T) {
		w := ecs.NewWorld()
		fs := NewFocusSystem()
		camEnt := newCamera(t, w, component.Camera{Mode: component.CameraModeFree, PivotX: 7, Smoothness: 1})
		crew := newCrew(t, w, "Val")

		focus, _ := fs.Focus(w)
		focus.ActiveCrew = uint64(crew)

		cs := NewCameraSystem()
		cs.Update(w)

		cam, _ := ecs.Get(w, camEnt, component.CameraComponent.Kind())
		if cam.PivotX != 7 {
			t.Fatalf("free camera must not follow, got pivot %v", cam.PivotX)
		}
	})
}
