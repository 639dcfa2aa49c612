package decode

import (
	"encoding/binary"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
)

// MP3Decoder decodes MPEG layer 3 content.
type MP3Decoder struct{}

func (MP3Decoder) Decode(r io.Reader) (*DecodedAudio, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, NewDecodeError(FormatMP3, "", ErrCodeCorrupt, "failed to parse mp3 stream", err)
	}

	// go-mp3 always emits 16-bit little-endian stereo PCM.
	const channels = 2

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, NewDecodeError(FormatMP3, "", ErrCodeCorrupt, "failed to decode mp3 frames", err)
	}
	if len(raw) < 4 {
		return nil, NewDecodeError(FormatMP3, "", ErrCodeEmpty, "mp3 stream contains no samples", nil)
	}

	samples := len(raw) / 2
	interleaved := make([]float64, samples)
	for i := 0; i < samples; i++ {
		v := int16(binary.LittleEndian.Uint16(raw[2*i : 2*i+2]))
		interleaved[i] = float64(v) / 32768.0
	}

	mono := mixToMono(interleaved, channels)
	sampleRate := dec.SampleRate()

	return &DecodedAudio{
		PCM:        mono,
		SampleRate: sampleRate,
		Channels:   channels,
		Duration:   durationOf(len(mono), sampleRate),
	}, nil
}
