// Package spectrogram renders magnitude matrices into pixel buffers and
// overlays derived annotation marks.
package spectrogram

import (
	"image"
	"image/color"
	"image/png"
	"io"
)

// Surface is a pixel-addressable drawing surface backed by an RGBA buffer.
// A zero-area surface is valid and all drawing on it is a no-op.
type Surface struct {
	img *image.RGBA
}

// NewSurface creates a surface of the given dimensions. Non-positive
// dimensions are clamped to zero.
func NewSurface(width, height int) *Surface {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int {
	return s.img.Rect.Dx()
}

// Height returns the surface height in pixels.
func (s *Surface) Height() int {
	return s.img.Rect.Dy()
}

// Empty reports whether the surface has zero area.
func (s *Surface) Empty() bool {
	return s.Width() == 0 || s.Height() == 0
}

// Set writes one pixel. Out-of-bounds writes are ignored.
func (s *Surface) Set(x, y int, c color.RGBA) {
	s.img.SetRGBA(x, y, c)
}

// At reads one pixel.
func (s *Surface) At(x, y int) color.RGBA {
	return s.img.RGBAAt(x, y)
}

// Clone returns an independent copy of the surface. Overlay drawing
// happens on clones so cached buffers are never mutated.
func (s *Surface) Clone() *Surface {
	dst := image.NewRGBA(s.img.Rect)
	copy(dst.Pix, s.img.Pix)
	return &Surface{img: dst}
}

// Image exposes the backing image for display or further drawing.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// EncodePNG writes the surface as a PNG stream.
func (s *Surface) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.img)
}
