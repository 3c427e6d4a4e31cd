// Package playback owns the single active audio session used to audit
// synthesized speech, with pause/resume via accumulated offset tracking.
package playback

// State represents the playback state.
type State int

const (
	StateStopped State = iota // No session active
	StatePlaying              // Actively emitting audio
	StatePaused               // Session suspended, offset retained
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}
