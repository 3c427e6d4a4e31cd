package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jinchangsung/safetyspeak2/internal/playback"
	"github.com/jinchangsung/safetyspeak2/internal/queue"
)

// PlaybackHandler exposes the playback controller over HTTP.
type PlaybackHandler struct {
	controller *playback.Controller
	queue      *queue.Queue
}

// NewPlaybackHandler creates a new PlaybackHandler.
func NewPlaybackHandler(controller *playback.Controller, q *queue.Queue) *PlaybackHandler {
	return &PlaybackHandler{controller: controller, queue: q}
}

// Play starts playback of a completed item's audio from the beginning.
// POST /api/playback/:id/play
func (h *PlaybackHandler) Play(c echo.Context) error {
	id := c.Param("id")
	item, ok := h.queue.Get(id)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "item not found"})
	}
	if item.Audio == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "no audio available for item"})
	}
	if err := h.controller.Play(item.Audio, id, false); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, h.controller.Snapshot())
}

// Pause suspends the active session, keeping its position.
// POST /api/playback/pause
func (h *PlaybackHandler) Pause(c echo.Context) error {
	h.controller.Pause()
	return c.JSON(http.StatusOK, h.controller.Snapshot())
}

// Resume continues a paused session.
// POST /api/playback/resume
func (h *PlaybackHandler) Resume(c echo.Context) error {
	if err := h.controller.Resume(); err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, h.controller.Snapshot())
}

// Stop halts playback and resets the session.
// POST /api/playback/stop
func (h *PlaybackHandler) Stop(c echo.Context) error {
	h.controller.Stop()
	return c.JSON(http.StatusOK, h.controller.Snapshot())
}

// Status returns the current playback snapshot.
// GET /api/playback
func (h *PlaybackHandler) Status(c echo.Context) error {
	return c.JSON(http.StatusOK, h.controller.Snapshot())
}
