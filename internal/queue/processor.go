package queue

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/jinchangsung/safetyspeak2/internal/models"
	"github.com/jinchangsung/safetyspeak2/internal/stage"
)

// StageGateway is the pipeline's view of the extraction, translation and
// synthesis backends.
type StageGateway interface {
	Extract(ctx context.Context, source models.Source) (string, error)
	Translate(ctx context.Context, text string, target models.Language) (string, error)
	Synthesize(ctx context.Context, text string) (*models.AudioArtifact, error)
}

// PlaybackStopper tears down audio playback sessions. The processor calls it
// when an item that may own the active session is removed.
type PlaybackStopper interface {
	StopItem(id string)
	Stop()
}

// HistoryStore archives items that reached a terminal status.
type HistoryStore interface {
	Record(ctx context.Context, item models.QueueItem) error
}

// Processor drives queue items through the pipeline, one item at a time,
// strictly in insertion order among Idle items.
type Processor struct {
	queue    *Queue
	gateway  StageGateway
	events   *EventBus
	playback PlaybackStopper
	history  HistoryStore

	interItemDelay     time.Duration
	translateSkipDelay time.Duration

	mu      sync.Mutex
	running bool
	wg      sync.WaitGroup
}

// ProcessorOption configures optional Processor behavior.
type ProcessorOption func(*Processor)

// WithPlayback wires the playback teardown hook used on item removal.
func WithPlayback(p PlaybackStopper) ProcessorOption {
	return func(proc *Processor) { proc.playback = p }
}

// WithHistory wires the archive store for finished items.
func WithHistory(h HistoryStore) ProcessorOption {
	return func(proc *Processor) { proc.history = h }
}

// WithDelays overrides the inter-item and translation-skip delays (tests).
func WithDelays(interItem, translateSkip time.Duration) ProcessorOption {
	return func(proc *Processor) {
		proc.interItemDelay = interItem
		proc.translateSkipDelay = translateSkip
	}
}

// NewProcessor creates a stopped processor over an empty queue.
func NewProcessor(gateway StageGateway, events *EventBus, opts ...ProcessorOption) *Processor {
	p := &Processor{
		queue:   NewQueue(),
		gateway: gateway,
		events:  events,
		// Short gap between items so backend calls never arrive back to back.
		interItemDelay: 500 * time.Millisecond,
		// Keeps the Translating stage visible when translation is skipped.
		translateSkipDelay: 300 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Queue exposes the underlying queue for read-only snapshots.
func (p *Processor) Queue() *Queue {
	return p.queue
}

// Running reports whether the driving loop is active.
func (p *Processor) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Start launches the driving loop. Calling Start while running is a no-op.
func (p *Processor) Start(ctx context.Context) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run(ctx)
	log.Println("Queue processing started")
}

// Stop requests a cooperative halt. The current item is never aborted; the
// loop observes the flag before selecting the next item.
func (p *Processor) Stop() {
	p.mu.Lock()
	p.running = false
	p.mu.Unlock()
	log.Println("Queue processing stop requested")
}

// Wait blocks until the driving loop has exited. Test helper.
func (p *Processor) Wait() {
	p.wg.Wait()
}

// Enqueue appends items to the queue. Newly idle items become eligible on
// the driving loop's next scan.
func (p *Processor) Enqueue(items ...*models.QueueItem) {
	p.queue.Enqueue(items...)
	for _, item := range items {
		log.Printf("Enqueued %q (%s -> %s)", item.DisplayName, item.Source.Type, item.TargetLanguage)
	}
}

// Remove deletes an item. If the item owns the active playback session, the
// session is torn down before the removal completes.
func (p *Processor) Remove(id string) bool {
	if p.playback != nil {
		p.playback.StopItem(id)
	}
	return p.queue.Remove(id)
}

// Clear removes all items, force-stops the driving loop and stops playback.
func (p *Processor) Clear() {
	p.Stop()
	if p.playback != nil {
		p.playback.Stop()
	}
	p.queue.Clear()
}

// AddDerivedJob enqueues a new item that reuses the already-extracted text of
// an existing item for a different target language.
func (p *Processor) AddDerivedJob(id string, lang models.Language) (*models.QueueItem, error) {
	parent, ok := p.queue.Get(id)
	if !ok {
		return nil, &stage.ExtractionError{Detail: "item not found: " + id}
	}
	if strings.TrimSpace(parent.OriginalText) == "" {
		return nil, stage.ErrEmptyContent
	}
	item := models.NewDerivedItem(&parent, lang)
	p.Enqueue(item)
	return item, nil
}

func (p *Processor) run(ctx context.Context) {
	defer p.wg.Done()

	for {
		if !p.Running() {
			return
		}
		id, ok := p.queue.NextIdle()
		if !ok {
			// Re-check under the lock that guards running: an item enqueued
			// after the failed scan, whose Start saw running == true, must be
			// picked up here rather than stranded with the loop gone.
			p.mu.Lock()
			id, ok = p.queue.NextIdle()
			if !ok {
				p.running = false
				p.mu.Unlock()
				log.Println("Queue drained, processing stopped")
				return
			}
			p.mu.Unlock()
		}

		p.processItem(ctx, id)

		select {
		case <-ctx.Done():
			p.Stop()
			return
		case <-time.After(p.interItemDelay):
		}
	}
}

// processItem drives one item to a terminal status. Every mutation goes
// through Queue.Update so work for an item removed mid-flight is discarded.
func (p *Processor) processItem(ctx context.Context, id string) {
	item, ok := p.queue.Get(id)
	if !ok {
		return
	}
	log.Printf("Processing %q (%s)", item.DisplayName, id)

	// Stage 1: extraction, only when text is not already in hand.
	if item.OriginalText == "" && item.Source.NeedsExtraction() {
		if !p.transition(id, models.StatusExtracting) {
			return
		}
		text, err := p.gateway.Extract(ctx, item.Source)
		if err != nil {
			p.failItem(ctx, id, err.Error())
			return
		}
		text = stage.Truncate(text)
		if !p.queue.Update(id, func(it *models.QueueItem) { it.OriginalText = text }) {
			return
		}
		item.OriginalText = text
	}

	// Guard: a document that extracts to nothing has nothing to translate.
	if strings.TrimSpace(item.OriginalText) == "" {
		p.failItem(ctx, id, stage.ErrEmptyContent.Error())
		return
	}

	// Stage 2: translation. The no-translation language copies text through
	// unchanged after a short delay so the stage stays visible.
	if !p.transition(id, models.StatusTranslating) {
		return
	}
	var translated string
	if item.TargetLanguage == models.NoTranslationLanguage {
		time.Sleep(p.translateSkipDelay)
		translated = item.OriginalText
	} else {
		out, err := p.gateway.Translate(ctx, item.OriginalText, item.TargetLanguage)
		if err != nil {
			p.failItem(ctx, id, err.Error())
			return
		}
		translated = out
	}
	if !p.queue.Update(id, func(it *models.QueueItem) { it.TranslatedText = translated }) {
		return
	}

	// Stage 3: synthesis. A failure here is soft: the text deliverable is
	// intact, so the item completes with the audio absent and a warning.
	if !p.transition(id, models.StatusSpeaking) {
		return
	}
	audio, err := p.gateway.Synthesize(ctx, translated)
	warning := ""
	if err != nil {
		log.Printf("Synthesis failed for %q: %v", item.DisplayName, err)
		warning = err.Error()
		audio = nil
	}

	now := time.Now()
	ok = p.queue.Update(id, func(it *models.QueueItem) {
		it.Status = models.StatusCompleted
		it.Audio = audio
		it.HasAudio = audio != nil
		it.ErrorMessage = warning
		it.CompletedAt = &now
	})
	if !ok {
		return
	}
	p.publishStatus(id, models.StatusCompleted, warning)
	p.archive(ctx, id)
	log.Printf("Completed %q", item.DisplayName)
}

// transition advances the item's status, enforcing the state machine. A false
// return means the item vanished or was forced terminal externally; the
// pipeline abandons it either way.
func (p *Processor) transition(id string, to models.Status) bool {
	advanced := false
	ok := p.queue.Update(id, func(it *models.QueueItem) {
		if models.ValidTransition(it.Status, to) {
			it.Status = to
			advanced = true
		}
	})
	if !ok || !advanced {
		return false
	}
	p.publishStatus(id, to, "")
	return true
}

func (p *Processor) failItem(ctx context.Context, id string, message string) {
	now := time.Now()
	ok := p.queue.Update(id, func(it *models.QueueItem) {
		it.Status = models.StatusError
		it.ErrorMessage = message
		it.CompletedAt = &now
	})
	if !ok {
		return
	}
	log.Printf("Item %s failed: %s", id, message)
	p.publishStatus(id, models.StatusError, message)
	p.archive(ctx, id)
}

func (p *Processor) publishStatus(id string, status models.Status, message string) {
	if p.events == nil {
		return
	}
	p.events.Publish(Event{Type: EventTypeStatus, ItemID: id, Status: status, Message: message})
}

// archive records a terminal item in the history store. Best effort: archive
// failures are logged and never affect the pipeline.
func (p *Processor) archive(ctx context.Context, id string) {
	if p.history == nil {
		return
	}
	item, ok := p.queue.Get(id)
	if !ok {
		return
	}
	if err := p.history.Record(ctx, item); err != nil {
		log.Printf("Failed to archive item %s: %v", id, err)
	}
}
