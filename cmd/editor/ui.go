package main

import (
	"fmt"
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/bevatsal1122/agentverse-sub000/levels"
	"github.com/bevatsal1122/agentverse-sub000/station"
)

const toolbarHeight = 48

// ToolBar keeps the radio groups so keyboard shortcuts can move the
// selection the same way clicks do.
type ToolBar struct {
	tools    *widget.RadioGroup
	toolBtns []*widget.Button
	tiles    *widget.RadioGroup
	tileBtns []*widget.Button
}

func (tb *ToolBar) SetTool(t Tool) {
	idx := int(t)
	if tb == nil || idx < 0 || idx >= len(tb.toolBtns) {
		return
	}
	tb.tools.SetActive(tb.toolBtns[idx])
}

func (tb *ToolBar) SetTile(idx int) {
	if tb == nil || idx < 0 || idx >= len(tb.tileBtns) {
		return
	}
	tb.tiles.SetActive(tb.tileBtns[idx])
}

func buttonImage(clr color.Color) *widget.ButtonImage {
	r, g, b, _ := clr.RGBA()
	idle := color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255}
	pressed := color.NRGBA{R: idle.R / 2, G: idle.G / 2, B: idle.B / 2, A: 255}
	return &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(idle),
		Hover:   imageui.NewNineSliceColor(idle),
		Pressed: imageui.NewNineSliceColor(pressed),
	}
}

func radio(buttons []*widget.Button, onChange func(idx int)) *widget.RadioGroup {
	elements := make([]widget.RadioGroupElement, 0, len(buttons))
	for _, b := range buttons {
		elements = append(elements, b)
	}
	return widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			for idx, b := range buttons {
				if args.Active == b {
					onChange(idx)
					return
				}
			}
		}),
	)
}

// buildUI lays out the tool buttons followed by one swatch per tile type
// along the top edge.
func buildUI(e *Editor) (*ebitenui.UI, *ToolBar) {
	var face text.Face = text.NewGoXFace(basicfont.Face7x13)
	textColor := &widget.ButtonTextColor{
		Idle:     color.Black,
		Hover:    color.Black,
		Pressed:  color.White,
		Disabled: color.Gray{Y: 128},
	}

	bar := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(color.NRGBA{R: 220, G: 220, B: 240, A: 255})),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 4, Bottom: 4, Left: 8, Right: 8}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(screenWidth, toolbarHeight),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionStart, StretchHorizontal: true}),
		),
	)

	toggle := func(label string, img *widget.ButtonImage) *widget.Button {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(img),
			widget.ButtonOpts.Text(label, &face, textColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(48, 40)),
		)
		bar.AddChild(btn)
		return btn
	}

	tb := &ToolBar{}
	for _, t := range []Tool{ToolBrush, ToolErase, ToolFill, ToolLine} {
		tb.toolBtns = append(tb.toolBtns, toggle(t.String(), buttonImage(color.NRGBA{R: 200, G: 200, B: 210, A: 255})))
	}
	for i, tt := range station.TileTypes {
		tb.tileBtns = append(tb.tileBtns, toggle(fmt.Sprintf("%d %c", i+1, levels.Glyph(tt)), buttonImage(tileColor(tt))))
	}
	tb.tools = radio(tb.toolBtns, func(idx int) { e.tool = Tool(idx) })
	tb.tiles = radio(tb.tileBtns, func(idx int) { e.selectTile(idx) })

	save := widget.NewButton(
		widget.ButtonOpts.Image(buttonImage(color.NRGBA{R: 180, G: 230, B: 180, A: 255})),
		widget.ButtonOpts.Text("Save", &face, textColor),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(56, 40)),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			e.save()
		}),
	)
	bar.AddChild(save)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(bar)
	return &ebitenui.UI{Container: root}, tb
}
