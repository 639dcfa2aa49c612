// Package view drives the decode → analyze → render → overlay pipeline
// for the currently selected file, backed by the session caches.
package view

import (
	"context"
	"fmt"
	"sync"

	"github.com/kylejlin/snafed/internal/cache"
	"github.com/kylejlin/snafed/internal/logging"
	"github.com/kylejlin/snafed/pkg/audio/decode"
	"github.com/kylejlin/snafed/pkg/audio/spectral"
	"github.com/kylejlin/snafed/pkg/spectrogram"
)

// Orchestrator sequences the render pipeline over an ordered file list.
// It owns the two session caches and is the only component that mutates
// them. Render requests are never cancelled once started; a superseded
// request still completes and caches its result for later reuse, with
// the last write to a given index winning.
type Orchestrator struct {
	files    []AudioFile
	analyzer *spectral.Analyzer
	renderer *spectrogram.Renderer
	fields   FieldProvider
	logger   logging.Logger

	// decodeFn is swappable for tests; production uses decode.Decode.
	decodeFn func(name string, content []byte) (*decode.DecodedAudio, error)

	audio  *cache.Store[*AudioData]
	images *cache.Store[*spectrogram.Surface]

	mu       sync.Mutex
	selected int
	width    int
}

// NewOrchestrator creates an orchestrator over the given file list. A
// nil fields provider yields no marks; a nil logger is silent.
func NewOrchestrator(files []AudioFile, analyzer *spectral.Analyzer, renderer *spectrogram.Renderer, fields FieldProvider, logger logging.Logger) *Orchestrator {
	if fields == nil {
		fields = noFields{}
	}
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	return &Orchestrator{
		files:    files,
		analyzer: analyzer,
		renderer: renderer,
		fields:   fields,
		logger:   logger.WithFields(logging.Fields{"component": "orchestrator"}),
		decodeFn: decode.Decode,
		audio:    cache.NewStore[*AudioData](),
		images:   cache.NewStore[*spectrogram.Surface](),
	}
}

// FileCount returns the number of files in the session.
func (o *Orchestrator) FileCount() int {
	return len(o.files)
}

// Selected returns the current file index.
func (o *Orchestrator) Selected() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.selected
}

// SelectFile changes the current selection. It does not render; the
// view layer follows up with Render when it wants the pixels.
func (o *Orchestrator) SelectFile(index int) error {
	if index < 0 || index >= len(o.files) {
		return fmt.Errorf("file index %d out of range [0,%d)", index, len(o.files))
	}
	o.mu.Lock()
	o.selected = index
	o.mu.Unlock()

	o.logger.Debug("selection changed", logging.Fields{"index": index})
	return nil
}

// Resize sets the display width. A changed width clears the rendered
// image cache, whose entries are all sized to the old viewport; decoded
// audio is viewport-independent and survives.
func (o *Orchestrator) Resize(width int) {
	o.mu.Lock()
	changed := width != o.width
	o.width = width
	o.mu.Unlock()

	if changed {
		o.images.Clear()
		o.logger.Debug("viewport resized, image cache cleared", logging.Fields{"width": width})
	}
}

// Width returns the current display width.
func (o *Orchestrator) Width() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.width
}

// Render runs the pipeline for the current selection, honoring cache
// hits at the decode/analyze and render stages. Overlays are drawn on
// every call onto a copy of the cached buffer, since mark data is
// mutable upstream. Decode and analysis failures abort only this
// request and cache nothing.
func (o *Orchestrator) Render(ctx context.Context) (*RenderResult, error) {
	o.mu.Lock()
	index := o.selected
	width := o.width
	o.mu.Unlock()

	return o.renderIndex(ctx, index, width)
}

func (o *Orchestrator) renderIndex(ctx context.Context, index, width int) (*RenderResult, error) {
	if index < 0 || index >= len(o.files) {
		return nil, fmt.Errorf("file index %d out of range [0,%d)", index, len(o.files))
	}
	file := o.files[index]

	path := []State{StateIdle}

	data, err := o.audio.GetOrCompute(index, func() (*AudioData, error) {
		path = append(path, StateDecoding)
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		audio, err := o.decodeFn(file.Name, file.Content)
		if err != nil {
			return nil, err
		}

		path = append(path, StateAnalyzing)
		spectrum, err := o.analyzer.Analyze(audio.PCM, audio.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("%s: analysis failed: %w", file.Name, err)
		}

		o.logger.Debug("audio decoded and analyzed", logging.Fields{
			"index":       index,
			"name":        file.Name,
			"sample_rate": audio.SampleRate,
			"duration_s":  audio.Duration.Seconds(),
			"time_bins":   spectrum.TimeBins,
		})

		return &AudioData{Audio: audio, Spectrum: spectrum}, nil
	})
	if err != nil {
		o.logger.Error(err, "render request aborted", logging.Fields{"index": index, "name": file.Name})
		return nil, err
	}

	surface, err := o.images.GetOrCompute(index, func() (*spectrogram.Surface, error) {
		path = append(path, StateRendering)
		return o.renderer.Render(data.Spectrum, width), nil
	})
	if err != nil {
		return nil, err
	}

	// Overlays are never cached: they depend on mutable field data.
	path = append(path, StateOverlaying)
	live := surface.Clone()
	marks, underivable := o.fields.Derive(file.Name)
	skipped := spectrogram.DrawMarks(live, marks, data.Audio.Duration)

	path = append(path, StateDone)

	o.logger.Debug("render complete", logging.Fields{
		"index":       index,
		"width":       live.Width(),
		"height":      live.Height(),
		"marks":       len(marks),
		"skipped":     len(skipped),
		"underivable": len(underivable),
	})

	return &RenderResult{
		Index:       index,
		Surface:     live,
		Skipped:     skipped,
		Underivable: underivable,
		Path:        path,
	}, nil
}
