// Package decode turns raw audio file bytes into sample buffers.
//
// Format decoders register themselves in a Registry keyed by format name.
// The package-level Decode sniffs the container from magic bytes, falls
// back to the file extension, and dispatches to the matching decoder. All
// decoders mix the source down to a single mono float64 channel in [-1,1].
package decode

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DecodedAudio is an immutable decoded sample buffer.
type DecodedAudio struct {
	PCM        []float64     // mono samples in [-1,1]
	SampleRate int           // Hz
	Channels   int           // channel count of the source before mixdown
	Duration   time.Duration // derived from len(PCM) and SampleRate
}

// Decoder constructs a DecodedAudio from an input reader.
type Decoder interface {
	Decode(r io.Reader) (*DecodedAudio, error)
}

// Registry maps format names (e.g., "wav", "mp3", "ogg") to decoders.
type Registry struct {
	mu     sync.Mutex
	codecs map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.codecs[format]
	return d, ok
}

// defaultRegistry holds the built-in format decoders. It is shared
// process-wide; decoders are stateless per call so no further locking is
// needed beyond the registry's own.
var defaultRegistry = NewRegistry()

func init() {
	defaultRegistry.Register(FormatWAV, WAVDecoder{})
	defaultRegistry.Register(FormatMP3, MP3Decoder{})
	defaultRegistry.Register(FormatOgg, VorbisDecoder{})
}

// Format names understood by the default registry.
const (
	FormatWAV = "wav"
	FormatMP3 = "mp3"
	FormatOgg = "ogg"
)

// DetectFormat sniffs the container format from leading magic bytes.
// Returns "" when the bytes match no known container.
func DetectFormat(content []byte) string {
	switch {
	case len(content) >= 12 &&
		bytes.HasPrefix(content, []byte("RIFF")) &&
		bytes.Equal(content[8:12], []byte("WAVE")):
		return FormatWAV
	case bytes.HasPrefix(content, []byte("OggS")):
		return FormatOgg
	case bytes.HasPrefix(content, []byte("ID3")):
		return FormatMP3
	case len(content) >= 2 && content[0] == 0xFF && content[1]&0xE0 == 0xE0:
		// bare MPEG frame sync
		return FormatMP3
	default:
		return ""
	}
}

// formatFromName maps a file extension to a format name.
func formatFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".wav", ".wave":
		return FormatWAV
	case ".mp3":
		return FormatMP3
	case ".ogg", ".oga":
		return FormatOgg
	default:
		return ""
	}
}

// Decode decodes raw file bytes using the default registry. The name is
// used for error reporting and as an extension fallback when sniffing
// fails. Identical input bytes always produce identical output.
func Decode(name string, content []byte) (*DecodedAudio, error) {
	if len(content) == 0 {
		return nil, NewDecodeError("", name, ErrCodeEmpty, "empty audio content", nil)
	}

	format := DetectFormat(content)
	if format == "" {
		format = formatFromName(name)
	}
	if format == "" {
		return nil, NewDecodeError("", name, ErrCodeUnsupported, "unrecognized audio format", nil)
	}

	dec, ok := defaultRegistry.Get(format)
	if !ok {
		return nil, NewDecodeError(format, name, ErrCodeUnsupported, "no decoder registered for format", nil)
	}

	audio, err := dec.Decode(bytes.NewReader(content))
	if err != nil {
		if de, ok := err.(*DecodeError); ok {
			de.Name = name
			return nil, de
		}
		return nil, NewDecodeError(format, name, ErrCodeCorrupt, "failed to decode audio", err)
	}
	return audio, nil
}

// mixToMono averages interleaved channels into a single channel.
func mixToMono(interleaved []float64, channels int) []float64 {
	if channels <= 1 {
		return interleaved
	}
	frames := len(interleaved) / channels
	mono := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += interleaved[i*channels+c]
		}
		mono[i] = sum / float64(channels)
	}
	return mono
}

// durationOf derives the play time of a mono sample buffer.
func durationOf(samples, sampleRate int) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(samples) / float64(sampleRate) * float64(time.Second))
}
