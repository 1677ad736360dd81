// Package audio moves rendered samples to files, pipes and sound devices.
package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var (
	// ErrBitDepth is returned for WAV bit depths other than 16 and 24.
	ErrBitDepth = errors.New("audio: unsupported bit depth")
	// ErrNoAudioDevice is returned when playback is unavailable in this build.
	ErrNoAudioDevice = errors.New("audio: no audio device")
)

// wavFormatPCM is the WAVE_FORMAT_PCM tag
const wavFormatPCM = 1

// Quantize converts a sample to a signed integer of bitDepth bits.
// Oscillator output is unnormalized, so values are clamped to [-1, 1] here.
func Quantize(sample float32, bitDepth int) int {
	s := float64(sample)
	switch {
	case math.IsNaN(s):
		s = 0
	case s > 1:
		s = 1
	case s < -1:
		s = -1
	}
	full := float64(int(1)<<(bitDepth-1) - 1)
	return int(math.Round(s * full))
}

// WriteWAV encodes mono samples as PCM WAV.
func WriteWAV(w io.WriteSeeker, samples []float32, sampleRate, bitDepth int) error {
	if bitDepth != 16 && bitDepth != 24 {
		return fmt.Errorf("%w: %d", ErrBitDepth, bitDepth)
	}

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = Quantize(s, bitDepth)
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, 1, wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("audio: encoding wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("audio: finalizing wav: %w", err)
	}
	return nil
}

// WriteRaw writes samples as headerless float32 little-endian PCM.
func WriteRaw(w io.Writer, samples []float32) error {
	buf := make([]byte, 4*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(s))
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("audio: writing raw samples: %w", err)
	}
	return nil
}
