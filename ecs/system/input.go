package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/spacewalk/ecs"
	"github.com/milk9111/spacewalk/ecs/component"
)

// keyState is one frame of sampled keyboard input.
type keyState struct {
	moveX, moveY   float64
	boardPressed   bool
	grabPressed    bool
	cycleForward   bool
	cycleBackward  bool
	overviewToggle bool
}

type InputSystem struct{}

func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	applyKeyState(w, readKeyboard())
}

func readKeyboard() keyState {
	var st keyState
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		st.moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		st.moveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		st.moveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		st.moveY += 1
	}
	st.boardPressed = inpututil.IsKeyJustPressed(ebiten.KeyB)
	st.grabPressed = inpututil.IsKeyJustPressed(ebiten.KeyG)
	st.cycleForward = inpututil.IsKeyJustPressed(ebiten.KeyBracketRight)
	st.cycleBackward = inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft)
	st.overviewToggle = inpututil.IsKeyJustPressed(ebiten.KeyM)
	return st
}

// applyKeyState distributes one frame of input. View edges (vessel cycling,
// overview) are shared by every Input component so the view keeps responding
// even without an active crew member. Movement and the board/grab presses
// drive only the crew member the player controls; everyone else, scripted
// crew included, gets a zeroed frame.
func applyKeyState(w *ecs.World, st keyState) {
	textFocused := false
	var activeCrew ecs.Entity
	if e, ok := w.First(component.SimFocusComponent.Kind()); ok {
		if focus, ok := ecs.Get(w, e, component.SimFocusComponent.Kind()); ok {
			textFocused = focus.TextInputFocused
			activeCrew = ecs.Entity(focus.ActiveCrew)
		}
	}

	// Typing in a HUD field never leaks into the simulation.
	if textFocused {
		st = keyState{}
	}

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		input.CycleForwardEdge = st.cycleForward
		input.CycleBackwardEdge = st.cycleBackward
		input.OverviewToggleEdge = st.overviewToggle
		if e == activeCrew {
			input.MoveX = st.moveX
			input.MoveY = st.moveY
			input.BoardPressed = st.boardPressed
			input.GrabPressed = st.grabPressed
			return
		}
		input.MoveX = 0
		input.MoveY = 0
		input.BoardPressed = false
		input.GrabPressed = false
	})
}
