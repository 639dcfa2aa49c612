package spectrogram

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kylejlin/snafed/pkg/audio/spectral"
)

// rampSpectrum builds a spectrum whose magnitude grows along both axes.
func rampSpectrum(timeBins, freqBins int) *spectral.Spectrum {
	magnitude := make([][]float64, timeBins)
	peak := 0.0
	for t := 0; t < timeBins; t++ {
		magnitude[t] = make([]float64, freqBins)
		for f := 0; f < freqBins; f++ {
			magnitude[t][f] = float64(t+1) * float64(f+1)
			if magnitude[t][f] > peak {
				peak = magnitude[t][f]
			}
		}
	}
	return &spectral.Spectrum{
		Magnitude:  magnitude,
		TimeBins:   timeBins,
		FreqBins:   freqBins,
		WindowSize: 1024,
		HopSize:    256,
		SampleRate: 16000,
		Peak:       peak,
	}
}

func TestRenderExactDimensions(t *testing.T) {
	renderer := NewRenderer(DefaultFloorDB)
	surface := renderer.Render(rampSpectrum(100, 256), 800)

	assert.Equal(t, 800, surface.Width())
	assert.Equal(t, 256, surface.Height())
}

func TestRenderZeroWidth(t *testing.T) {
	renderer := NewRenderer(DefaultFloorDB)
	surface := renderer.Render(rampSpectrum(100, 256), 0)

	require.NotNil(t, surface)
	assert.True(t, surface.Empty())
	assert.Equal(t, 0, surface.Width()*surface.Height())
}

func TestRenderNegativeWidthClamped(t *testing.T) {
	renderer := NewRenderer(DefaultFloorDB)
	surface := renderer.Render(rampSpectrum(10, 64), -5)

	assert.Equal(t, 0, surface.Width())
}

func TestRenderRowZeroIsHighestFrequency(t *testing.T) {
	// One time bin where only the highest frequency bin carries energy:
	// the bright pixel must land on row 0.
	spec := &spectral.Spectrum{
		Magnitude: [][]float64{make([]float64, 8)},
		TimeBins:  1,
		FreqBins:  8,
		Peak:      1,
	}
	spec.Magnitude[0][7] = 1

	renderer := NewRenderer(DefaultFloorDB)
	surface := renderer.Render(spec, 4)

	top := surface.At(0, 0)
	bottom := surface.At(0, 7)
	assert.Greater(t, int(top.R)+int(top.G)+int(top.B), int(bottom.R)+int(bottom.G)+int(bottom.B))
}

func TestRenderDeterminism(t *testing.T) {
	renderer := NewRenderer(DefaultFloorDB)
	spec := rampSpectrum(50, 128)

	first := renderer.Render(spec, 333)
	second := renderer.Render(spec, 333)

	assert.Equal(t, first.Image().Pix, second.Image().Pix)
}

func TestRenderSilence(t *testing.T) {
	spec := &spectral.Spectrum{
		Magnitude: [][]float64{make([]float64, 16)},
		TimeBins:  1,
		FreqBins:  16,
		Peak:      0,
	}

	renderer := NewRenderer(DefaultFloorDB)
	surface := renderer.Render(spec, 10)

	// All-zero magnitude maps to the darkest palette entry everywhere.
	dark := surface.At(0, 0)
	for x := 0; x < surface.Width(); x++ {
		for y := 0; y < surface.Height(); y++ {
			require.Equal(t, dark, surface.At(x, y))
		}
	}
}

func TestSurfaceCloneIsIndependent(t *testing.T) {
	original := NewSurface(4, 4)
	clone := original.Clone()

	clone.Set(1, 1, markLineColor)

	assert.NotEqual(t, original.At(1, 1), clone.At(1, 1))
}

func TestSurfaceEncodePNG(t *testing.T) {
	surface := NewSurface(8, 8)

	var buf bytes.Buffer
	require.NoError(t, surface.EncodePNG(&buf))
	assert.Equal(t, []byte("\x89PNG"), buf.Bytes()[:4])
}
