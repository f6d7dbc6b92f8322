// Package canvas draws the trailer artwork: movie posters and category banners.
//
// Every asset is built in layers: a solid background, random decorative
// shapes, a drop-shadowed title, an optional caption and the brand watermark.
package canvas

import "image/color"

// Kind distinguishes the asset templates.
type Kind string

const (
	KindPoster Kind = "poster"
	KindBanner Kind = "banner"
)

// Sizes maps each kind to its fixed [width, height].
var Sizes = map[Kind][2]int{
	KindPoster: {600, 900},  // 2:3
	KindBanner: {1280, 720}, // 16:9
}

// Watermark is stamped on every asset.
const Watermark = "NETFIX"

// Brand colours.
var (
	BrandRed    = color.RGBA{229, 9, 20, 255}
	TextWhite   = color.RGBA{255, 255, 255, 255}
	CaptionGrey = color.RGBA{200, 200, 200, 255}
	ShadowBlack = color.RGBA{0, 0, 0, 255}
)

// ChannelRange is an inclusive [Min, Max] bound for one colour channel.
type ChannelRange struct {
	Min, Max int
}

// Background ranges for random fills.
var (
	PosterBackgroundRange   = ChannelRange{20, 60}
	FallbackBannerRange     = ChannelRange{20, 180}
	PosterShapeChannelRange = ChannelRange{100, 255}
)

// TextSpec places one line of centred text.
type TextSpec struct {
	Text   string
	X, Y   int     // centre point
	Size   float64 // points at 72 DPI
	Color  color.RGBA
	Shadow int // shadow offset in pixels; 0 disables the shadow
}

// Layout is a fully resolved asset ready to draw.
type Layout struct {
	Kind       Kind
	Width      int
	Height     int
	Background color.RGBA
	Shapes     []Shape
	Texts      []TextSpec
}
