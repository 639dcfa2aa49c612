package view

import (
	"github.com/kylejlin/snafed/pkg/audio/decode"
	"github.com/kylejlin/snafed/pkg/audio/spectral"
	"github.com/kylejlin/snafed/pkg/spectrogram"
)

// AudioFile is one entry of the session's file list: a name plus raw
// byte content, owned by the caller and consumed read-only.
type AudioFile struct {
	Name    string
	Content []byte
}

// AudioData pairs a decoded sample buffer with its spectrum for one
// file index. Viewport-independent, so resizing never invalidates it.
type AudioData struct {
	Audio    *decode.DecodedAudio
	Spectrum *spectral.Spectrum
}

// FieldProvider supplies derived annotation fields for a file name: an
// ordered sequence of marks plus the names of fields that could not be
// computed. The orchestrator treats it as an opaque collaborator.
type FieldProvider interface {
	Derive(name string) (marks []spectrogram.Mark, underivable []string)
}

// noFields is the provider used when none is supplied.
type noFields struct{}

func (noFields) Derive(string) ([]spectrogram.Mark, []string) { return nil, nil }

// State identifies one stage of a render request.
type State int

const (
	StateIdle State = iota
	StateDecoding
	StateAnalyzing
	StateRendering
	StateOverlaying
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDecoding:
		return "decoding"
	case StateAnalyzing:
		return "analyzing"
	case StateRendering:
		return "rendering"
	case StateOverlaying:
		return "overlaying"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// RenderResult is the outcome of one render request.
type RenderResult struct {
	Index       int                  // file index this render belongs to
	Surface     *spectrogram.Surface // live surface with overlays drawn
	Skipped     []spectrogram.Mark   // marks whose position could not be mapped
	Underivable []string             // field names the provider could not compute
	Path        []State              // states visited; cache hits skip stages
}
