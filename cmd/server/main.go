package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jinchangsung/safetyspeak2/internal/config"
	"github.com/jinchangsung/safetyspeak2/internal/extract"
	"github.com/jinchangsung/safetyspeak2/internal/handlers"
	"github.com/jinchangsung/safetyspeak2/internal/ingestion"
	"github.com/jinchangsung/safetyspeak2/internal/playback"
	"github.com/jinchangsung/safetyspeak2/internal/queue"
	"github.com/jinchangsung/safetyspeak2/internal/speech"
	"github.com/jinchangsung/safetyspeak2/internal/stage"
	"github.com/jinchangsung/safetyspeak2/internal/storage"
	"github.com/jinchangsung/safetyspeak2/internal/translate"
	"github.com/jinchangsung/safetyspeak2/internal/version"
)

func main() {
	// Load .env if present.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// History archive database.
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	historyRepo := storage.NewHistoryRepository(db)

	// Stage backends.
	web, err := extract.NewWebExtractor(&extract.WebOptions{
		Stealth:     true,
		BrowserPath: cfg.BrowserPath,
	})
	if err != nil {
		log.Printf("Web extraction unavailable: %v", err)
		web = nil
	} else {
		defer web.Close()
	}
	extractor := extract.NewService(web)

	translator := translate.NewGemini(cfg.GeminiAPIKeys, cfg.GeminiModel)
	if len(cfg.GeminiAPIKeys) == 0 {
		log.Println("GEMINI_API_KEYS not set; translation jobs will fail")
	}

	speechConfig, err := speech.NewConfig(cfg.TTSModelDir)
	if err != nil {
		log.Fatal(err)
	}
	speechConfig.NumThreads = cfg.TTSNumThreads
	synthesizer, err := speech.NewSynthesizer(speechConfig)
	if err != nil {
		log.Fatal(err)
	}
	defer synthesizer.Close()

	gateway := stage.NewGateway(extractor, translator, synthesizer)

	// Playback and queue processing.
	controller := playback.NewController(playback.NewSpeakerDevice())
	events := queue.NewEventBus(500)
	processor := queue.NewProcessor(gateway, events,
		queue.WithPlayback(controller),
		queue.WithHistory(historyRepo),
	)

	ingester := ingestion.NewDocumentIngester(cfg.DataDir)

	// HTTP surface.
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	queueHandler := handlers.NewQueueHandler(context.Background(), processor, ingester, events)
	playbackHandler := handlers.NewPlaybackHandler(controller, processor.Queue())
	historyHandler := handlers.NewHistoryHandler(historyRepo)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "ok",
			"version": version.Version,
		})
	})

	e.GET("/api/queue", queueHandler.List)
	e.POST("/api/queue/items", queueHandler.Enqueue)
	e.POST("/api/queue/upload", queueHandler.Upload)
	e.POST("/api/queue/items/:id/derive", queueHandler.Derive)
	e.DELETE("/api/queue/items/:id", queueHandler.Remove)
	e.DELETE("/api/queue", queueHandler.Clear)
	e.POST("/api/queue/start", queueHandler.Start)
	e.POST("/api/queue/stop", queueHandler.Stop)
	e.GET("/api/queue/events", queueHandler.Events)

	e.GET("/api/playback", playbackHandler.Status)
	e.POST("/api/playback/:id/play", playbackHandler.Play)
	e.POST("/api/playback/pause", playbackHandler.Pause)
	e.POST("/api/playback/resume", playbackHandler.Resume)
	e.POST("/api/playback/stop", playbackHandler.Stop)

	e.GET("/api/history", historyHandler.List)
	e.GET("/api/history/stats", historyHandler.Stats)

	log.Printf("Starting SafetySpeak v%s on port %s", version.Version, cfg.Port)
	if err := e.Start(fmt.Sprintf(":%s", cfg.Port)); err != nil {
		log.Fatal(err)
	}
}
