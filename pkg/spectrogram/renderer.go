package spectrogram

import (
	"image/color"
	"math"

	"github.com/kylejlin/snafed/pkg/audio/spectral"
)

// DefaultFloorDB is the default dynamic range floor for magnitude scaling.
const DefaultFloorDB = -90.0

// palette is a monotonic quiet-to-loud color ramp, dark blue through
// magenta and orange to white.
var palette = []color.RGBA{
	{R: 0x00, G: 0x00, B: 0x20, A: 0xFF},
	{R: 0x00, G: 0x00, B: 0x60, A: 0xFF},
	{R: 0x20, G: 0x00, B: 0xA0, A: 0xFF},
	{R: 0x60, G: 0x00, B: 0xD0, A: 0xFF},
	{R: 0xA0, G: 0x00, B: 0xC0, A: 0xFF},
	{R: 0xD0, G: 0x20, B: 0x80, A: 0xFF},
	{R: 0xF0, G: 0x60, B: 0x40, A: 0xFF},
	{R: 0xFF, G: 0xA0, B: 0x20, A: 0xFF},
	{R: 0xFF, G: 0xD0, B: 0x60, A: 0xFF},
	{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
}

// Renderer maps magnitude matrices to pixel buffers. It is a pure
// function over its inputs and never touches cache state.
type Renderer struct {
	floorDB float64
}

// NewRenderer creates a renderer with the given dynamic range floor in
// dB relative to the signal peak. A non-negative floor falls back to
// DefaultFloorDB.
func NewRenderer(floorDB float64) *Renderer {
	if floorDB >= 0 {
		floorDB = DefaultFloorDB
	}
	return &Renderer{floorDB: floorDB}
}

// Render draws the spectrum into a new surface of exactly width x
// spec.FreqBins pixels. Row 0 holds the highest frequency bin. Columns
// are resampled from the time-bin axis by nearest bin when the counts
// differ. A zero display width yields a zero-area surface, not an error.
func (r *Renderer) Render(spec *spectral.Spectrum, width int) *Surface {
	height := spec.FreqBins
	surface := NewSurface(width, height)
	if surface.Empty() || spec.TimeBins == 0 {
		return surface
	}

	for x := 0; x < width; x++ {
		timeBin := x * spec.TimeBins / width
		if timeBin >= spec.TimeBins {
			timeBin = spec.TimeBins - 1
		}
		column := spec.Magnitude[timeBin]

		for y := 0; y < height; y++ {
			freqBin := height - 1 - y
			surface.Set(x, y, r.colorFor(column[freqBin], spec.Peak))
		}
	}

	return surface
}

// colorFor maps one magnitude to a palette color on a dB scale relative
// to the matrix peak.
func (r *Renderer) colorFor(magnitude, peak float64) color.RGBA {
	t := 0.0
	if peak > 0 && magnitude > 0 {
		db := 20 * math.Log10(magnitude/peak)
		if db < r.floorDB {
			db = r.floorDB
		}
		t = 1 - db/r.floorDB
	}

	idx := int(t * float64(len(palette)-1))
	if idx < 0 {
		idx = 0
	}
	if idx > len(palette)-1 {
		idx = len(palette) - 1
	}
	return palette[idx]
}
