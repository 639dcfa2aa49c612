package spectrogram

import (
	"image"
	"image/color"
	"math"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Mark is a derived, positioned annotation to overlay on a rendered
// spectrogram. Marks keep the order their producer emitted them in.
type Mark struct {
	Label   string  `json:"label"`
	Value   string  `json:"value,omitempty"`
	Seconds float64 `json:"seconds"`
}

var (
	markLineColor = color.RGBA{R: 0x40, G: 0xFF, B: 0x40, A: 0xFF}
	markTextColor = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// DrawMarks draws each mark's tick line and label onto the surface,
// mapping the mark's time position to a horizontal pixel coordinate via
// the file duration. Marks whose position cannot be mapped (non-finite,
// negative, or beyond the duration) are skipped and returned so the
// caller can surface them as "could not render"; they never fail the
// call. The surface is expected to be a live copy, never a cached buffer.
func DrawMarks(surface *Surface, marks []Mark, duration time.Duration) []Mark {
	var failed []Mark

	durSeconds := duration.Seconds()
	for _, mark := range marks {
		if surface.Empty() || durSeconds <= 0 ||
			math.IsNaN(mark.Seconds) || math.IsInf(mark.Seconds, 0) ||
			mark.Seconds < 0 || mark.Seconds > durSeconds {
			failed = append(failed, mark)
			continue
		}

		x := int(mark.Seconds / durSeconds * float64(surface.Width()-1))
		drawMark(surface, x, mark)
	}

	return failed
}

func drawMark(surface *Surface, x int, mark Mark) {
	for y := 0; y < surface.Height(); y++ {
		surface.Set(x, y, markLineColor)
	}

	text := mark.Label
	if mark.Value != "" {
		text += ": " + mark.Value
	}
	if text == "" {
		return
	}

	face := basicfont.Face7x13
	drawer := &font.Drawer{
		Dst:  surface.Image(),
		Src:  image.NewUniform(markTextColor),
		Face: face,
		Dot:  fixed.P(x+3, face.Height),
	}
	drawer.DrawString(text)
}
