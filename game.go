package main

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/spacewalk/common"
	"github.com/milk9111/spacewalk/ecs"
	"github.com/milk9111/spacewalk/ecs/component"
	"github.com/milk9111/spacewalk/ecs/entity"
	"github.com/milk9111/spacewalk/ecs/system"
	"github.com/milk9111/spacewalk/prefabs"
)

type Game struct {
	frames int
	debug  bool

	world     *ecs.World
	scheduler *ecs.Scheduler

	physics       *system.PhysicsSystem
	focus         *system.FocusSystem
	intentions    *system.IntentionSystem
	notifications *system.NotificationSystem
	scripts       *system.ScriptSystem

	hud     *HUD
	watcher *prefabs.Watcher
}

func NewGame(scenarioPath string, debug bool) (*Game, error) {
	w := ecs.NewWorld()

	notifications := system.NewNotificationSystem()
	physics := system.NewPhysicsSystem()
	focus := system.NewFocusSystem()
	intentions := system.NewIntentionSystem(notifications, physics, focus)
	scripts := system.NewScriptSystem(intentions)

	scheduler := ecs.NewScheduler(
		system.NewInputSystem(),
		scripts,
		focus,
		intentions,
		system.NewCrewStateSystem(),
		physics,
		system.NewCameraSystem(),
		notifications,
	)

	if err := entity.LoadScenario(w, scenarioPath); err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	g := &Game{
		debug:         debug,
		world:         w,
		scheduler:     scheduler,
		physics:       physics,
		focus:         focus,
		intentions:    intentions,
		notifications: notifications,
		scripts:       scripts,
	}
	g.hud = NewHUD(g)

	watcher, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
	if err != nil {
		log.Printf("prefab watcher disabled: %v", err)
	} else {
		g.watcher = watcher
	}

	return g, nil
}

func (g *Game) Update() error {
	g.frames++

	g.drainWatcher()
	g.scheduler.Update(g.world)
	g.hud.Update(g.world)

	return nil
}

// drainWatcher applies prefab hot-reload events. Script sources recompile on
// their next run; yaml prefabs affect newly built entities only.
func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes():
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefab changed: %s", change.Path)
			if change.Kind == prefabs.ChangeScript {
				g.scripts.Invalidate()
			}
		case err, ok := <-g.watcher.Errs():
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefab watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	viewX, viewY := 0.0, 0.0
	if camEnt, ok := g.world.First(component.CameraComponent.Kind()); ok {
		if cam, ok := ecs.Get(g.world, camEnt, component.CameraComponent.Kind()); ok {
			viewX, viewY = cam.ViewX, cam.ViewY
		}
	}

	g.drawWorld(screen, viewX, viewY)
	g.hud.Draw(screen)

	if g.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f", g.frames, ebiten.ActualFPS()))
	}
}

var (
	hullColor    = color.NRGBA{R: 0x5a, G: 0x64, B: 0x78, A: 0xff}
	airlockColor = color.NRGBA{R: 0xd9, G: 0xa4, B: 0x41, A: 0xff}
	ladderColor  = color.NRGBA{R: 0x9a, G: 0xb8, B: 0xd0, A: 0xff}
	seatOpen     = color.NRGBA{R: 0x4f, G: 0xb0, B: 0x62, A: 0xff}
	seatTaken    = color.NRGBA{R: 0xb0, G: 0x4f, B: 0x4f, A: 0xff}
	crewColor    = color.NRGBA{R: 0xe8, G: 0xe4, B: 0xd8, A: 0xff}
)

func (g *Game) drawWorld(screen *ebiten.Image, viewX, viewY float64) {
	w := g.world

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, body *component.PhysicsBody, tr *component.Transform) {
			x := float32(tr.X - viewX)
			y := float32(tr.Y - viewY)
			c := hullColor
			switch {
			case ecs.Has(w, e, component.AirlockTagComponent.Kind()):
				c = airlockColor
			case ecs.Has(w, e, component.LadderTagComponent.Kind()):
				c = ladderColor
			case ecs.Has(w, e, component.CrewTagComponent.Kind()):
				vector.DrawFilledCircle(screen, x, y, float32(body.Radius), crewColor, true)
				return
			}
			vector.DrawFilledRect(screen, x-float32(body.Width/2), y-float32(body.Height/2),
				float32(body.Width), float32(body.Height), c, false)
		})

	ecs.ForEach2(w, component.SeatComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, seat *component.Seat, tr *component.Transform) {
			c := seatOpen
			if !seat.Open() {
				c = seatTaken
			}
			vector.DrawFilledRect(screen, float32(tr.X-viewX-4), float32(tr.Y-viewY-4), 8, 8, c, false)
		})
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}
