// text.go - Centred text with an optional drop shadow.
package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// drawCentered draws text with its middle at (cx, cy): horizontally centred
// on the advance width, vertically centred between ascent and descent.
func drawCentered(dst draw.Image, face font.Face, text string, cx, cy int, col color.Color) {
	if text == "" {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
	}
	advance := d.MeasureString(text)
	m := face.Metrics()

	x := fixed.I(cx) - advance/2
	y := fixed.I(cy) + (m.Ascent-m.Descent)/2
	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(text)
}

// drawText renders one TextSpec, shadow first.
func drawText(dst draw.Image, fm *FontManager, t TextSpec) {
	face := fm.Face(t.Size)
	if t.Shadow != 0 {
		drawCentered(dst, face, t.Text, t.X+t.Shadow, t.Y+t.Shadow, ShadowBlack)
	}
	drawCentered(dst, face, t.Text, t.X, t.Y, t.Color)
}

// TextBounds returns the pixel rectangle a TextSpec covers, without shadow.
func TextBounds(fm *FontManager, t TextSpec) image.Rectangle {
	face := fm.Face(t.Size)
	advance := font.MeasureString(face, t.Text)
	m := face.Metrics()

	x0 := fixed.I(t.X) - advance/2
	baseline := fixed.I(t.Y) + (m.Ascent-m.Descent)/2
	return image.Rect(
		x0.Floor(), (baseline - m.Ascent).Floor(),
		(x0 + advance).Ceil(), (baseline + m.Descent).Ceil(),
	)
}
