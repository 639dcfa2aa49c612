// Package spectral computes windowed frequency-magnitude spectra from
// decoded sample buffers.
package spectral

import (
	"fmt"
	"math/cmplx"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// Config holds the analysis parameters. FreqBins is the number of
// low-frequency bins kept per frame and is constant across all signals
// analyzed with the same Config, which keeps spectrogram heights uniform.
type Config struct {
	WindowSize int `mapstructure:"window_size" json:"window_size"`
	HopSize    int `mapstructure:"hop_size" json:"hop_size"`
	FreqBins   int `mapstructure:"freq_bins" json:"freq_bins"`
}

// DefaultConfig returns the default analysis parameters.
func DefaultConfig() Config {
	return Config{
		WindowSize: 1024,
		HopSize:    256,
		FreqBins:   256,
	}
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.WindowSize <= 0 {
		return fmt.Errorf("window size must be positive, got %d", c.WindowSize)
	}
	if c.HopSize <= 0 {
		return fmt.Errorf("hop size must be positive, got %d", c.HopSize)
	}
	if c.FreqBins <= 0 {
		return fmt.Errorf("frequency bin count must be positive, got %d", c.FreqBins)
	}
	if max := c.WindowSize/2 + 1; c.FreqBins > max {
		return fmt.Errorf("frequency bin count %d exceeds %d available for window size %d",
			c.FreqBins, max, c.WindowSize)
	}
	return nil
}

// Spectrum is a 2-D magnitude matrix indexed [timeBin][freqBin].
// Immutable once produced.
type Spectrum struct {
	Magnitude  [][]float64 `json:"-"`
	TimeBins   int         `json:"time_bins"`
	FreqBins   int         `json:"freq_bins"`
	WindowSize int         `json:"window_size"`
	HopSize    int         `json:"hop_size"`
	SampleRate int         `json:"sample_rate"`
	Peak       float64     `json:"peak"` // largest magnitude in the matrix
}

// Analyzer runs a sliding-window Fourier transform over sample buffers.
type Analyzer struct {
	cfg    Config
	fft    *FFT
	window *Hann
}

// NewAnalyzer creates an analyzer for the given configuration.
func NewAnalyzer(cfg Config) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis config: %w", err)
	}
	return &Analyzer{
		cfg:    cfg,
		fft:    NewFFT(),
		window: NewHann(cfg.WindowSize),
	}, nil
}

// Config returns the analyzer's configuration.
func (a *Analyzer) Config() Config {
	return a.cfg
}

// Analyze computes the magnitude spectrogram of a mono signal. Signals
// shorter than one window are zero-padded to a single frame rather than
// rejected. Per-frame transforms run on a worker pool, but every worker
// writes only its own pre-allocated row, so output is bit-for-bit
// reproducible for identical input and configuration.
func (a *Analyzer) Analyze(signal []float64, sampleRate int) (*Spectrum, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}

	windowSize := a.cfg.WindowSize
	hopSize := a.cfg.HopSize
	freqBins := a.cfg.FreqBins

	if len(signal) < windowSize {
		padded := make([]float64, windowSize)
		copy(padded, signal)
		signal = padded
	}

	numFrames := (len(signal)-windowSize)/hopSize + 1

	magnitude := make([][]float64, numFrames)
	for i := 0; i < numFrames; i++ {
		magnitude[i] = make([]float64, freqBins)
	}

	numWorkers := optimalWorkerCount(numFrames)
	jobs := make(chan int, numFrames)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// reused per worker
			frameBuffer := make([]float64, windowSize)

			for frameIdx := range jobs {
				start := frameIdx * hopSize
				copy(frameBuffer, signal[start:start+windowSize])

				if err := a.window.ApplyInPlace(frameBuffer); err != nil {
					continue
				}

				fftResult := a.fft.Compute(frameBuffer)
				for i := 0; i < freqBins; i++ {
					magnitude[frameIdx][i] = cmplx.Abs(fftResult[i])
				}
			}
		}()
	}

	for frameIdx := 0; frameIdx < numFrames; frameIdx++ {
		jobs <- frameIdx
	}
	close(jobs)
	wg.Wait()

	var peak float64
	for _, row := range magnitude {
		if m := floats.Max(row); m > peak {
			peak = m
		}
	}

	return &Spectrum{
		Magnitude:  magnitude,
		TimeBins:   numFrames,
		FreqBins:   freqBins,
		WindowSize: windowSize,
		HopSize:    hopSize,
		SampleRate: sampleRate,
		Peak:       peak,
	}, nil
}

// optimalWorkerCount sizes the pool to the workload.
func optimalWorkerCount(numFrames int) int {
	numCPU := runtime.NumCPU()
	if numFrames < 100 {
		return max(1, min(numCPU/2, numFrames))
	}
	if numFrames < 1000 {
		return min(numCPU, 8)
	}
	return numCPU
}
