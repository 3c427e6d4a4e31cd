package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/jinchangsung/safetyspeak2/internal/ingestion"
	"github.com/jinchangsung/safetyspeak2/internal/models"
	"github.com/jinchangsung/safetyspeak2/internal/queue"
)

// QueueHandler exposes the job queue over HTTP.
type QueueHandler struct {
	processor *queue.Processor
	ingester  *ingestion.DocumentIngester
	events    *queue.EventBus
	// baseCtx outlives individual requests; pipeline stages run on it, not
	// on the request context of the Start call.
	baseCtx context.Context
}

// NewQueueHandler creates a new QueueHandler.
func NewQueueHandler(baseCtx context.Context, processor *queue.Processor, ingester *ingestion.DocumentIngester, events *queue.EventBus) *QueueHandler {
	return &QueueHandler{processor: processor, ingester: ingester, events: events, baseCtx: baseCtx}
}

// List returns a snapshot of the queue and the processor control state.
// GET /api/queue
func (h *QueueHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"running": h.processor.Running(),
		"items":   h.processor.Queue().Items(),
	})
}

type enqueueRequest struct {
	Name     string `json:"name"`
	Text     string `json:"text"`
	URL      string `json:"url"`
	Language string `json:"language"`
}

// Enqueue adds a text or URL item to the queue.
// POST /api/queue/items
func (h *QueueHandler) Enqueue(c echo.Context) error {
	var req enqueueRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	lang, ok := models.ParseLanguage(req.Language)
	if !ok {
		h.events.PublishError("unsupported target language: " + req.Language)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unsupported target language: " + req.Language})
	}

	var item *models.QueueItem
	var err error
	switch {
	case req.URL != "":
		item, err = h.ingester.IngestURL(req.URL, lang)
	default:
		item, err = h.ingester.IngestText(req.Name, req.Text, lang)
	}
	if err != nil {
		h.events.PublishError(err.Error())
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	h.processor.Enqueue(item)
	return c.JSON(http.StatusCreated, item)
}

// Upload adds an uploaded document file to the queue.
// POST /api/queue/upload
func (h *QueueHandler) Upload(c echo.Context) error {
	lang, ok := models.ParseLanguage(c.FormValue("language"))
	if !ok {
		h.events.PublishError("unsupported target language: " + c.FormValue("language"))
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unsupported target language"})
	}

	file, err := c.FormFile("document")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "no document provided"})
	}
	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	defer src.Close()

	item, err := h.ingester.IngestFile(ingestion.Upload{Filename: file.Filename, Reader: src}, lang)
	if err != nil {
		h.events.PublishError(err.Error())
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	h.processor.Enqueue(item)
	return c.JSON(http.StatusCreated, item)
}

type deriveRequest struct {
	Language string `json:"language"`
}

// Derive enqueues a new job reusing an item's extracted text for another language.
// POST /api/queue/items/:id/derive
func (h *QueueHandler) Derive(c echo.Context) error {
	var req deriveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	lang, ok := models.ParseLanguage(req.Language)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unsupported target language: " + req.Language})
	}

	item, err := h.processor.AddDerivedJob(c.Param("id"), lang)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, item)
}

// Remove deletes an item from the queue.
// DELETE /api/queue/items/:id
func (h *QueueHandler) Remove(c echo.Context) error {
	if !h.processor.Remove(c.Param("id")) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "item not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Clear removes all items and stops processing and playback.
// DELETE /api/queue
func (h *QueueHandler) Clear(c echo.Context) error {
	h.processor.Clear()
	return c.NoContent(http.StatusNoContent)
}

// Start begins queue processing.
// POST /api/queue/start
func (h *QueueHandler) Start(c echo.Context) error {
	h.processor.Start(h.baseCtx)
	return c.JSON(http.StatusOK, map[string]bool{"running": true})
}

// Stop requests a cooperative processing halt.
// POST /api/queue/stop
func (h *QueueHandler) Stop(c echo.Context) error {
	h.processor.Stop()
	return c.JSON(http.StatusOK, map[string]bool{"running": false})
}

// Events returns queue events after the given sequence number.
// GET /api/queue/events?since=N
func (h *QueueHandler) Events(c echo.Context) error {
	var since int64
	if s := c.QueryParam("since"); s != "" {
		if parsed, err := strconv.ParseInt(s, 10, 64); err == nil {
			since = parsed
		}
	}
	return c.JSON(http.StatusOK, h.events.Since(since))
}
