package speech

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/jinchangsung/safetyspeak2/internal/models"
)

// TestWriteWAV verifies the RIFF header and 16-bit PCM payload, including
// clamping of out-of-range samples.
func TestWriteWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	audio := &models.AudioArtifact{
		Samples:    []float32{0, 0.5, -0.5, 1.5, -1.5},
		SampleRate: 16000,
	}

	if err := WriteWAV(path, audio); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 44+len(audio.Samples)*2 {
		t.Fatalf("file size = %d", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Fatal("bad RIFF header")
	}
	if sr := binary.LittleEndian.Uint32(data[24:28]); sr != 16000 {
		t.Fatalf("sample rate = %d", sr)
	}
	if bits := binary.LittleEndian.Uint16(data[34:36]); bits != 16 {
		t.Fatalf("bits per sample = %d", bits)
	}

	// Out-of-range samples clamp to full scale instead of wrapping.
	if v := int16(binary.LittleEndian.Uint16(data[44+3*2:])); v != 32767 {
		t.Fatalf("clipped positive sample = %d, want 32767", v)
	}
	if v := int16(binary.LittleEndian.Uint16(data[44+4*2:])); v != -32767 {
		t.Fatalf("clipped negative sample = %d, want -32767", v)
	}
}

// TestWriteWAVRejectsEmptyAudio verifies nil and empty buffers error.
func TestWriteWAVRejectsEmptyAudio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	if err := WriteWAV(path, nil); err == nil {
		t.Fatal("nil audio accepted")
	}
	if err := WriteWAV(path, &models.AudioArtifact{SampleRate: 16000}); err == nil {
		t.Fatal("empty buffer accepted")
	}
}
