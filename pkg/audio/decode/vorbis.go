package decode

import (
	"io"

	"github.com/jfreymuth/oggvorbis"
)

// VorbisDecoder decodes Ogg Vorbis content.
type VorbisDecoder struct{}

func (VorbisDecoder) Decode(r io.Reader) (*DecodedAudio, error) {
	data, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, NewDecodeError(FormatOgg, "", ErrCodeCorrupt, "failed to decode ogg vorbis stream", err)
	}
	if len(data) == 0 {
		return nil, NewDecodeError(FormatOgg, "", ErrCodeEmpty, "ogg vorbis stream contains no samples", nil)
	}

	channels := format.Channels
	if channels <= 0 {
		channels = 1
	}

	interleaved := make([]float64, len(data))
	for i, s := range data {
		interleaved[i] = float64(s)
	}

	mono := mixToMono(interleaved, channels)

	return &DecodedAudio{
		PCM:        mono,
		SampleRate: format.SampleRate,
		Channels:   channels,
		Duration:   durationOf(len(mono), format.SampleRate),
	}, nil
}
