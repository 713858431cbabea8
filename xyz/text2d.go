// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xyz

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Text2D presents 2D rendered text on a billboard quad that always
// faces the camera, using a texture. Call [Text2D.RenderText] after
// changing the text or style to update the texture.
// The quad has a fixed world size given by Size, independent of the
// size of the rendered texture; Pose.Pos is the center of the quad.
type Text2D struct {
	NodeBase

	// Text is the text string to display.
	Text string

	// Color is the color of the text.
	Color color.RGBA

	// FontSize is the font size in pixels of the rendered texture.
	FontSize float64

	// TexSize is the size in pixels of the rendered texture.
	TexSize image.Point

	// Size is the world size of the billboard quad (width, height).
	Size [2]float64

	// Material holds the texture the text is rendered into.
	Material *Material
}

// NewText2D returns a new text node with the given name and text,
// with its texture rendered using default styles: white bold 40px text
// centered on a transparent 256x64 texture, on a 2x0.5 quad.
func NewText2D(name, text string) *Text2D {
	txt := &Text2D{Text: text}
	txt.Name = name
	txt.Defaults()
	if err := txt.RenderText(); err != nil {
		panic(err) // only fails if the embedded font is invalid
	}
	return txt
}

// Defaults sets the default styles.
func (txt *Text2D) Defaults() {
	txt.Pose.Defaults()
	txt.Color = color.RGBA{255, 255, 255, 255}
	txt.FontSize = 40
	txt.TexSize = image.Point{256, 64}
	txt.Size = [2]float64{2, 0.5}
	txt.Material = NewMaterial(color.RGBA{255, 255, 255, 255})
}

var labelFont = sync.OnceValues(func() (*sfnt.Font, error) {
	return opentype.Parse(gobold.TTF)
})

// RenderText rasterizes the text onto a new texture image, replacing
// (and disposing) any previous texture.
func (txt *Text2D) RenderText() error {
	f, err := labelFont()
	if err != nil {
		return fmt.Errorf("xyz.Text2D: parsing font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: txt.FontSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return fmt.Errorf("xyz.Text2D: %w", err)
	}
	defer face.Close()

	img := image.NewRGBA(image.Rectangle{Max: txt.TexSize})
	d := font.Drawer{Dst: img, Src: image.NewUniform(txt.Color), Face: face}
	adv := d.MeasureString(txt.Text)
	m := face.Metrics()
	x := (txt.TexSize.X - adv.Round()) / 2
	y := (txt.TexSize.Y + m.Ascent.Round() - m.Descent.Round()) / 2
	d.Dot = fixed.P(x, y)
	d.DrawString(txt.Text)

	if txt.Material.Texture != nil {
		txt.Material.Texture.Dispose()
	}
	txt.Material.Texture = NewTexture("__Text2D_"+txt.Name, img)
	return nil
}

// Dispose releases the text texture.
func (txt *Text2D) Dispose() {
	txt.Material.Dispose()
	txt.NodeBase.Dispose()
}
