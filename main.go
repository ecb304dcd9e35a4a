package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"citypulse/cronjobs"
	"citypulse/db"
	"citypulse/decision"
	"citypulse/ocr"
	"citypulse/processor"
	"citypulse/routes"
	"citypulse/storage"
	"citypulse/vision"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	store := db.Open(envOr("INCIDENT_STORE_PATH", "incidents.json"), logger)

	var reasoner decision.Reasoner
	if r := decision.NewOpenAIReasoner(os.Getenv("OPENAI_API_KEY")); r != nil {
		logger.Info("OPENAI_API_KEY loaded, LLM reasoning enabled")
		reasoner = r
	} else {
		logger.Info("no OPENAI_API_KEY, running on deterministic fallback")
	}
	engine := decision.NewEngine(reasoner, logger)

	var detector vision.Detector
	if d := vision.NewHTTPDetector(os.Getenv("VISION_SERVICE_URL")); d != nil {
		detector = d
	} else {
		logger.Info("no VISION_SERVICE_URL, label detection disabled")
	}

	var mediaStore storage.MediaStore
	fb, err := storage.NewFirebaseStore(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize Firebase storage: %v", err)
	}
	if fb != nil {
		mediaStore = fb
	} else {
		logger.Info("Firebase storage not configured, media kept local")
	}

	p := &processor.Processor{
		Detector: detector,
		OCR:      ocr.TesseractExtractor{},
		Media:    mediaStore,
		Engine:   engine,
		Store:    store,
		Log:      logger,
	}

	cronjobs.InitCronJobs(store, logger)

	r := routes.SetupRouter(p, engine, store, os.Getenv("CLIENT_URL"))
	if err := r.Run(":" + envOr("PORT", "8080")); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
