package playback

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/jinchangsung/safetyspeak2/internal/models"
)

// Device emits a decoded audio buffer from a given offset. The device owns
// the actual audio clock; done fires only when the buffer finishes on its
// own, never on Stop.
type Device interface {
	Start(a *models.AudioArtifact, offset time.Duration, done func()) error
	Stop()
}

// artifactStreamer adapts a mono float32 buffer to beep's stereo samples.
type artifactStreamer struct {
	samples []float32
	pos     int
}

func (s *artifactStreamer) Stream(out [][2]float64) (int, bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	n := 0
	for i := range out {
		if s.pos >= len(s.samples) {
			break
		}
		v := float64(s.samples[s.pos])
		out[i][0], out[i][1] = v, v
		s.pos++
		n++
	}
	return n, true
}

func (s *artifactStreamer) Err() error { return nil }

// SpeakerDevice plays audio through the system output via the beep speaker.
type SpeakerDevice struct {
	mu         sync.Mutex
	sampleRate beep.SampleRate
}

// NewSpeakerDevice creates an uninitialized speaker device. The speaker is
// initialized lazily from the first artifact's sample rate.
func NewSpeakerDevice() *SpeakerDevice {
	return &SpeakerDevice{}
}

// Start begins emission at the given offset into the buffer.
func (d *SpeakerDevice) Start(a *models.AudioArtifact, offset time.Duration, done func()) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if a == nil || a.SampleRate <= 0 {
		return fmt.Errorf("no playable audio buffer")
	}

	sr := beep.SampleRate(a.SampleRate)
	if sr != d.sampleRate {
		if err := speaker.Init(sr, sr.N(time.Second/10)); err != nil {
			return fmt.Errorf("failed to initialize speaker: %w", err)
		}
		d.sampleRate = sr
	}

	start := sr.N(offset)
	if start > len(a.Samples) {
		start = len(a.Samples)
	}

	streamer := &artifactStreamer{samples: a.Samples, pos: start}
	speaker.Play(beep.Seq(streamer, beep.Callback(done)))
	return nil
}

// Stop halts emission. Queued callbacks are dropped, not fired.
func (d *SpeakerDevice) Stop() {
	speaker.Clear()
}
