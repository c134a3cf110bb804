// Package glyph renders the triangular glyph the picker scans.
//
// A picker asset is normally shipped as an image with the triangle drawn
// into its alpha channel. This package synthesizes an equivalent glyph
// programmatically, so the library works without a bundled file and
// tests and benchmarks have a realistic locator input.
//
//	img := glyph.Image(256, 256, glyph.WithInset(8))
//	tri := tripick.Locate(img)
//
// The anti-aliased edges match what a real asset's decoder produces:
// fringe pixels below the scan threshold at the tip, full coverage along
// the base.
package glyph

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"

	"github.com/tripick/tripick"
)

// DefaultFill is the fill color used by Image when no option overrides
// it.
var DefaultFill = color.NRGBA{R: 0x46, G: 0x82, B: 0xc8, A: 0xff}

// Option configures glyph rendering.
type Option func(*options)

// options holds the configuration of one rendered glyph.
type options struct {
	inset float64
	fill  color.NRGBA
}

// defaultOptions returns the default glyph options: no inset,
// DefaultFill.
func defaultOptions() options {
	return options{fill: DefaultFill}
}

// WithInset keeps the glyph px pixels away from every image edge, the
// margin a hand-drawn asset usually carries. Negative values are treated
// as 0; an inset too large for the image is clamped so the triangle
// keeps a positive area whenever the image allows one.
func WithInset(px float64) Option {
	return func(o *options) {
		if px > 0 {
			o.inset = px
		}
	}
}

// WithFill sets the fill color used by Image.
func WithFill(c color.NRGBA) Option {
	return func(o *options) {
		o.fill = c
	}
}

// Vertices returns the three corners of the glyph that Mask and Image
// draw for the same size and options: apex at the top center, base
// corners at the bottom left and right. These are continuous
// coordinates; the vertices Locate recovers from the rendered raster
// land within a pixel or two of them, depending on the scan threshold.
func Vertices(width, height int, opts ...Option) (top, left, right tripick.Point) {
	o := apply(width, height, opts)
	w, h := float64(width), float64(height)
	return tripick.Pt(w/2, o.inset),
		tripick.Pt(o.inset, h-o.inset),
		tripick.Pt(w-o.inset, h-o.inset)
}

// Mask renders the glyph as an anti-aliased alpha silhouette, the input
// shape LocateAlpha scans.
func Mask(width, height int, opts ...Option) *image.Alpha {
	dst := image.NewAlpha(image.Rect(0, 0, max(width, 0), max(height, 0)))
	if width <= 0 || height <= 0 {
		return dst
	}
	o := apply(width, height, opts)
	rasterize(width, height, o.inset).Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// Image renders the glyph filled with the configured color on a
// transparent background.
func Image(width, height int, opts ...Option) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	if width <= 0 || height <= 0 {
		return dst
	}
	o := apply(width, height, opts)
	rasterize(width, height, o.inset).Draw(dst, dst.Bounds(), image.NewUniform(o.fill), image.Point{})
	return dst
}

// apply resolves the options for a width x height glyph, clamping the
// inset so the triangle cannot invert.
func apply(width, height int, opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if lim := float64(min(width, height))/2 - 1; o.inset > lim {
		o.inset = max(lim, 0)
	}
	return o
}

// rasterize fills the triangle spanning the inset image bounds.
func rasterize(width, height int, inset float64) *vector.Rasterizer {
	z := vector.NewRasterizer(width, height)
	z.DrawOp = draw.Src
	w, h := float64(width), float64(height)
	z.MoveTo(float32(w/2), float32(inset))
	z.LineTo(float32(w-inset), float32(h-inset))
	z.LineTo(float32(inset), float32(h-inset))
	z.ClosePath()
	return z
}
