package speech

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/jinchangsung/safetyspeak2/internal/models"
)

// WriteWAV saves an audio artifact as a 16-bit mono PCM WAV file.
func WriteWAV(path string, audio *models.AudioArtifact) error {
	if audio == nil || len(audio.Samples) == 0 {
		return fmt.Errorf("no audio to write")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	dataSize := uint32(len(audio.Samples) * 2)
	sampleRate := uint32(audio.SampleRate)

	var header [44]byte
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(header[22:24], 1) // mono
	binary.LittleEndian.PutUint32(header[24:28], sampleRate)
	binary.LittleEndian.PutUint32(header[28:32], sampleRate*2) // byte rate
	binary.LittleEndian.PutUint16(header[32:34], 2)            // block align
	binary.LittleEndian.PutUint16(header[34:36], 16)           // bits per sample
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := f.Write(header[:]); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	pcm := make([]byte, len(audio.Samples)*2)
	for i, sample := range audio.Samples {
		v := math.Max(-1, math.Min(1, float64(sample)))
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(int16(v*32767)))
	}
	if _, err := f.Write(pcm); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	return nil
}
