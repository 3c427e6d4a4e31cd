package models

import "time"

// AudioArtifact is a fully-decoded mono PCM buffer produced by synthesis.
type AudioArtifact struct {
	Samples    []float32
	SampleRate int
}

// Duration returns the playing time of the buffer.
func (a *AudioArtifact) Duration() time.Duration {
	if a == nil || a.SampleRate <= 0 {
		return 0
	}
	seconds := float64(len(a.Samples)) / float64(a.SampleRate)
	return time.Duration(seconds * float64(time.Second))
}
