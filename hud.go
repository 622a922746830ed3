package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// HUD shows the equipped weapon's state and a button per loadout slot.
type HUD struct {
	UI *ebitenui.UI

	panel  *widget.Container
	weapon *widget.Text
	ammo   *widget.Text
	state  *widget.Text
}

type hudSnapshot struct {
	Weapon    string
	Armed     bool
	Clip      int
	Available int
	Firing    bool
	Reloading bool
	Progress  float64
	Shots     int
}

// NewHUD builds the overlay. equip is called with the prefab name when a
// loadout button is clicked.
func NewHUD(loadout []string, equip func(name string)) *HUD {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 160})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	label := func() *widget.Text {
		return widget.NewText(widget.TextOpts.Text("", &face, white))
	}
	h := &HUD{weapon: label(), ammo: label(), state: label()}

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionEnd, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(h.weapon)
	panel.AddChild(h.ammo)
	panel.AddChild(h.state)

	for i, name := range loadout {
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
			widget.ButtonOpts.Text(fmt.Sprintf("%d  %s", i+1, name), &face, btnTextColor),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				equip(name)
			}),
		))
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout(
			widget.AnchorLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 12, Right: 12}),
		)),
	)
	root.AddChild(panel)

	h.panel = panel
	h.UI = &ebitenui.UI{Container: root}
	return h
}

func (h *HUD) Set(s hudSnapshot) {
	h.weapon.Label = hudWeaponLine(s)
	h.ammo.Label = hudAmmoLine(s)
	h.state.Label = hudStateLine(s)
}

// Contains reports whether the screen point lies on the panel.
func (h *HUD) Contains(x, y int) bool {
	if h == nil || h.panel == nil {
		return false
	}
	return image.Pt(x, y).In(h.panel.GetWidget().Rect)
}

func hudWeaponLine(s hudSnapshot) string {
	if s.Weapon == "" {
		return "Weapon: none"
	}
	return "Weapon: " + s.Weapon
}

func hudAmmoLine(s hudSnapshot) string {
	if !s.Armed {
		return "Ammo: -"
	}
	return fmt.Sprintf("Ammo: %d / %d", s.Clip, s.Available)
}

func hudStateLine(s hudSnapshot) string {
	switch {
	case !s.Armed:
		return "Unarmed"
	case s.Reloading:
		return fmt.Sprintf("Reloading %3.0f%%", s.Progress*100)
	case s.Firing:
		return fmt.Sprintf("Firing (%d shots)", s.Shots)
	default:
		return fmt.Sprintf("Ready (%d shots)", s.Shots)
	}
}
