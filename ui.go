package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/rustyfarm/common"
	"golang.org/x/image/font/basicfont"
)

var (
	panelColor  = color.NRGBA{R: 0x1e, G: 0x16, B: 0x10, A: 220}
	buttonColor = color.NRGBA{R: 0x5a, G: 0x3e, B: 0x24, A: 255}
	hoverColor  = color.NRGBA{R: 0x7a, G: 0x56, B: 0x32, A: 255}
	textColor   = color.NRGBA{R: 0xff, G: 0xf4, B: 0xd6, A: 0xff}
)

type menuButton struct {
	label   string
	onClick func()
}

// uiFace uses the built-in basic font so menus need no font assets.
func uiFace() *ebtext.Face {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	return &face
}

// newMenuUI builds a centered panel with a title, optional text lines and a
// column of buttons.
func newMenuUI(title string, lines []string, buttons ...menuButton) *ebitenui.UI {
	face := uiFace()
	panelImg := imageui.NewNineSliceColor(panelColor)
	btnImg := &widget.ButtonImage{
		Idle:    imageui.NewNineSliceColor(buttonColor),
		Hover:   imageui.NewNineSliceColor(hoverColor),
		Pressed: imageui.NewNineSliceColor(hoverColor),
	}
	btnTextColor := &widget.ButtonTextColor{Idle: textColor}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(8),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 16, Bottom: 16, Left: 24, Right: 24}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/3, common.BaseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)

	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(title, face, textColor),
		widget.TextOpts.WidgetOpts(center),
	))
	for _, line := range lines {
		panel.AddChild(widget.NewText(
			widget.TextOpts.Text(line, face, textColor),
			widget.TextOpts.WidgetOpts(center),
		))
	}
	for _, b := range buttons {
		onClick := b.onClick
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(btnImg),
			widget.ButtonOpts.Text(b.label, face, btnTextColor),
			widget.ButtonOpts.TextPadding(&widget.Insets{Left: 12, Right: 12, Top: 4, Bottom: 4}),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				onClick()
			}),
		))
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}
