package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/spacewalk/common"
	"github.com/milk9111/spacewalk/ecs"
	"github.com/milk9111/spacewalk/ecs/component"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the notification feed and, while overview mode is up, a
// roster of vessels and crew. Built on colored nine-slices and the basic
// font so no theme assets are needed.
type HUD struct {
	game *Game

	feedUI   *ebitenui.UI
	feedText *widget.Text

	overviewUI   *ebitenui.UI
	overviewText *widget.Text

	showOverview bool
}

func NewHUD(g *Game) *HUD {
	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	feedText := widget.NewText(
		widget.TextOpts.Text("", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
			HorizontalPosition: widget.AnchorLayoutPositionStart,
			VerticalPosition:   widget.AnchorLayoutPositionStart,
		})),
	)
	feedRoot := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Top: 12, Left: 12}),
		)),
	)
	feedRoot.AddChild(feedText)

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	overviewText := widget.NewText(
		widget.TextOpts.Text("", &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/2, common.BaseHeight/2),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
	)
	panel.AddChild(overviewText)
	overviewRoot := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	overviewRoot.AddChild(panel)

	return &HUD{
		game:         g,
		feedUI:       &ebitenui.UI{Container: feedRoot},
		feedText:     feedText,
		overviewUI:   &ebitenui.UI{Container: overviewRoot},
		overviewText: overviewText,
	}
}

func (h *HUD) Update(w *ecs.World) {
	if h == nil || w == nil {
		return
	}

	h.feedText.Label = feedLabel(w)

	h.showOverview = false
	if e, ok := w.First(component.SimFocusComponent.Kind()); ok {
		if focus, ok := ecs.Get(w, e, component.SimFocusComponent.Kind()); ok {
			h.showOverview = focus.Overview
		}
	}
	if h.showOverview {
		h.overviewText.Label = rosterLabel(w)
		h.overviewUI.Update()
	}
	h.feedUI.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil {
		return
	}
	h.feedUI.Draw(screen)
	if h.showOverview {
		h.overviewUI.Draw(screen)
	}
}

func feedLabel(w *ecs.World) string {
	e, ok := w.First(component.NotificationFeedComponent.Kind())
	if !ok {
		return ""
	}
	feed, ok := ecs.Get(w, e, component.NotificationFeedComponent.Kind())
	if !ok {
		return ""
	}
	lines := make([]string, 0, len(feed.Entries))
	for _, n := range feed.Entries {
		lines = append(lines, n.Text)
	}
	return strings.Join(lines, "\n")
}

func rosterLabel(w *ecs.World) string {
	var b strings.Builder
	b.WriteString("Vessels\n")
	ecs.ForEach(w, component.VesselComponent.Kind(), func(e ecs.Entity, v *component.Vessel) {
		state := "adrift"
		if v.Controllable {
			state = "controllable"
		}
		if v.Packed {
			state = "packed"
		}
		fmt.Fprintf(&b, "  %s (%s)\n", v.Name, state)
	})
	b.WriteString("\nCrew\n")
	ecs.ForEach2(w, component.CrewComponent.Kind(), component.CrewStatusComponent.Kind(),
		func(e ecs.Entity, crew *component.Crew, status *component.CrewStatus) {
			where := "EVA"
			switch {
			case status.Seated != 0:
				where = "seated"
			case status.Aboard != 0:
				if vessel, ok := ecs.Get(w, ecs.Entity(status.Aboard), component.VesselComponent.Kind()); ok {
					where = "aboard " + vessel.Name
				} else {
					where = "aboard"
				}
			case status.Climbing:
				where = "climbing"
			}
			fmt.Fprintf(&b, "  %s (%s)\n", crew.Name, where)
		})
	return b.String()
}
