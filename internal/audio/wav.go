package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// ToInt16 converts float32 samples in [-1, 1] to 16-bit PCM, clamping
// out-of-range values.
func ToInt16(samples []float32) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		}
		if s < -1.0 {
			s = -1.0
		}
		out[i] = int16(s * 32767)
	}
	return out
}

// EncodeWAV writes the samples as a mono 16-bit PCM WAV stream
func EncodeWAV(w io.Writer, samples []float32, sampleRate int) error {
	pcm := ToInt16(samples)

	const (
		numChannels   = uint16(1)
		bitsPerSample = uint16(16)
	)
	byteRate := uint32(sampleRate) * uint32(numChannels) * uint32(bitsPerSample) / 8
	blockAlign := numChannels * bitsPerSample / 8
	dataSize := uint32(len(pcm) * 2)

	if _, err := w.Write([]byte("RIFF")); err != nil {
		return err
	}
	binary.Write(w, binary.LittleEndian, uint32(36+dataSize))
	w.Write([]byte("WAVE"))

	w.Write([]byte("fmt "))
	binary.Write(w, binary.LittleEndian, uint32(16)) // chunk size
	binary.Write(w, binary.LittleEndian, uint16(1))  // PCM
	binary.Write(w, binary.LittleEndian, numChannels)
	binary.Write(w, binary.LittleEndian, uint32(sampleRate))
	binary.Write(w, binary.LittleEndian, byteRate)
	binary.Write(w, binary.LittleEndian, blockAlign)
	binary.Write(w, binary.LittleEndian, bitsPerSample)

	w.Write([]byte("data"))
	binary.Write(w, binary.LittleEndian, dataSize)
	return binary.Write(w, binary.LittleEndian, pcm)
}

// WriteWAVFile writes the samples as a WAV file at path
func WriteWAVFile(path string, samples []float32, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create WAV file: %w", err)
	}
	defer f.Close()

	if err := EncodeWAV(f, samples, sampleRate); err != nil {
		return fmt.Errorf("failed to encode WAV: %w", err)
	}
	return nil
}
