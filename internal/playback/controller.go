package playback

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/jinchangsung/safetyspeak2/internal/models"
)

// ErrNoPausedSession is returned when Resume is called with nothing paused.
var ErrNoPausedSession = errors.New("no paused playback session")

// Snapshot is a read-only view of the playback session for the UI.
type Snapshot struct {
	State           string  `json:"state"`
	ItemID          string  `json:"item_id,omitempty"`
	Progress        float64 `json:"progress"`
	PositionSeconds float64 `json:"position_seconds"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// Controller owns at most one playback session process-wide. Starting
// playback on a second item stops the first; pause retains the accumulated
// offset so resume continues where it left off.
type Controller struct {
	device Device

	mu        sync.Mutex
	state     State
	itemID    string
	artifact  *models.AudioArtifact
	offset    time.Duration // playback consumed across prior play intervals
	startedAt time.Time     // start of the current uninterrupted interval
	progress  float64
	// generation invalidates the progress sampler and the device done
	// callback of a superseded emission. It is bumped before every halt, so
	// a halt caused by Pause or Stop is never mistaken for a natural end.
	generation int

	sampleEvery time.Duration
}

// NewController creates a stopped controller over the given device.
func NewController(device Device) *Controller {
	return &Controller{
		device:      device,
		sampleEvery: 100 * time.Millisecond,
	}
}

// Play begins or resumes playback of the item's artifact. A fresh play of a
// different item stops the active session first; a fresh play always starts
// at offset zero.
func (c *Controller) Play(artifact *models.AudioArtifact, itemID string, resume bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playLocked(artifact, itemID, resume)
}

func (c *Controller) playLocked(artifact *models.AudioArtifact, itemID string, resume bool) error {
	if c.itemID != "" && c.itemID != itemID {
		c.stopLocked()
	}
	if c.state == StatePlaying {
		// Restarting the already-playing item from the top.
		c.generation++
		c.device.Stop()
		c.state = StateStopped
	}
	if !resume || c.artifact == nil {
		c.offset = 0
		c.progress = 0
	}

	c.generation++
	gen := c.generation
	c.itemID = itemID
	c.artifact = artifact
	c.startedAt = time.Now()

	// Devices deliver done from their emission goroutine, possibly holding
	// the lock their Stop needs. Servicing it on a fresh goroutine keeps a
	// concurrent Pause/Stop (which holds c.mu across device.Stop) from
	// deadlocking against that delivery; finished discards stale generations.
	if err := c.device.Start(artifact, c.offset, func() { go c.finished(gen) }); err != nil {
		c.resetLocked()
		return err
	}
	c.state = StatePlaying
	go c.sample(gen)
	return nil
}

// Pause suspends the session, adding the elapsed interval to the cumulative
// offset. No-op when nothing is playing.
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StatePlaying {
		return
	}
	c.generation++ // this halt is a pause, not a natural end
	c.device.Stop()
	c.offset += time.Since(c.startedAt)
	c.state = StatePaused
	c.progress = c.ratio(c.offset)
}

// Resume continues a paused session at its accumulated offset. The check and
// the restart share one critical section so a concurrent Play of another item
// cannot interleave between them.
func (c *Controller) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StatePaused || c.artifact == nil {
		return ErrNoPausedSession
	}
	return c.playLocked(c.artifact, c.itemID, true)
}

// Stop halts emission and fully resets the session.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

// StopItem tears down the session if it is bound to the given item. Called
// when a queue item is removed so the session never outlives its item.
func (c *Controller) StopItem(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.itemID == itemID {
		c.stopLocked()
	}
}

// Progress returns the current progress estimate in [0, 1].
func (c *Controller) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

// Snapshot returns the session state for rendering.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	pos := c.offset
	if c.state == StatePlaying {
		pos += time.Since(c.startedAt)
	}
	snap := Snapshot{
		State:           c.state.String(),
		ItemID:          c.itemID,
		Progress:        c.progress,
		PositionSeconds: pos.Seconds(),
	}
	if c.artifact != nil {
		snap.DurationSeconds = c.artifact.Duration().Seconds()
	}
	return snap
}

func (c *Controller) stopLocked() {
	if c.state == StateStopped && c.itemID == "" {
		return
	}
	c.generation++
	if c.state == StatePlaying {
		c.device.Stop()
	}
	c.resetLocked()
}

func (c *Controller) resetLocked() {
	c.state = StateStopped
	c.itemID = ""
	c.artifact = nil
	c.offset = 0
	c.progress = 0
}

// finished handles natural end-of-audio from the device. A stale generation
// means the halt came from Pause, Stop or a superseding Play; those already
// settled the session and the callback is ignored.
func (c *Controller) finished(gen int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return
	}
	c.generation++
	c.resetLocked()
}

// sample polls the wall clock while playing and publishes a progress
// estimate. It self-terminates once progress reaches 1.0 or its generation
// is superseded. The audio clock itself stays with the device; this only
// drives the visual indicator.
func (c *Controller) sample(gen int) {
	ticker := time.NewTicker(c.sampleEvery)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		if gen != c.generation || c.state != StatePlaying {
			c.mu.Unlock()
			return
		}
		progress := c.ratio(c.offset + time.Since(c.startedAt))
		c.progress = progress
		c.mu.Unlock()
		if progress >= 1.0 {
			return
		}
	}
}

// ratio converts an elapsed duration to a progress value in [0, 1].
func (c *Controller) ratio(elapsed time.Duration) float64 {
	duration := c.artifact.Duration()
	if duration <= 0 {
		return 1.0
	}
	return math.Min(float64(elapsed)/float64(duration), 1.0)
}
