package decode

import (
	"bytes"
	"io"

	gowavaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAVDecoder decodes RIFF/WAVE PCM content.
type WAVDecoder struct{}

func (WAVDecoder) Decode(r io.Reader) (*DecodedAudio, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, NewDecodeError(FormatWAV, "", ErrCodeCorrupt, "failed to read wav content", err)
	}

	dec := wav.NewDecoder(bytes.NewReader(data))
	dec.ReadInfo()
	if !dec.IsValidFile() {
		return nil, NewDecodeError(FormatWAV, "", ErrCodeCorrupt, "not a valid wav file", nil)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, NewDecodeError(FormatWAV, "", ErrCodeCorrupt, "failed to read wav samples", err)
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, NewDecodeError(FormatWAV, "", ErrCodeEmpty, "wav file contains no samples", nil)
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		channels = 1
	}
	sampleRate := buf.Format.SampleRate

	interleaved := normalizePCM(buf, int(dec.BitDepth))
	mono := mixToMono(interleaved, channels)

	return &DecodedAudio{
		PCM:        mono,
		SampleRate: sampleRate,
		Channels:   channels,
		Duration:   durationOf(len(mono), sampleRate),
	}, nil
}

// normalizePCM scales an integer PCM buffer to float64 samples in [-1,1].
func normalizePCM(buf *gowavaudio.IntBuffer, bitDepth int) []float64 {
	if bitDepth == 0 {
		bitDepth = buf.SourceBitDepth
	}
	if bitDepth == 0 {
		bitDepth = 16
	}
	scale := float64(int64(1) << (bitDepth - 1))

	samples := make([]float64, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = float64(s) / scale
	}
	return samples
}
