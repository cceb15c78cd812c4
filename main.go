package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/littlesteps/littlestepsbackend/ai"
	"github.com/littlesteps/littlestepsbackend/config"
	"github.com/littlesteps/littlestepsbackend/database"
	"github.com/littlesteps/littlestepsbackend/handlers"
	"github.com/littlesteps/littlestepsbackend/media"
	"github.com/littlesteps/littlestepsbackend/repository"
	"github.com/littlesteps/littlestepsbackend/services"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Info: No .env file found or error loading: %v", err)
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err)
	}

	if dbDir := filepath.Dir(cfg.DatabasePath); dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			log.Fatalf("FATAL: Failed to create database directory %s: %v", dbDir, err)
		}
	}

	db, err := database.InitGormDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrateModels(db); err != nil {
		log.Fatalf("FATAL: Failed to migrate database: %v", err)
	}

	mediaStore, err := media.NewLocalStorage(cfg.MediaStoragePath)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize media store: %v", err)
	}

	familyRepo := repository.NewFamilyRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	eventRepo := repository.NewEventRepository(db)
	timeline := services.NewTimelineService(eventRepo, profileRepo, mediaStore)

	var advisor ai.Advisor
	if cfg.GeminiAPIKey != "" {
		advisor = ai.NewGeminiAdvisor(cfg.GeminiAPIKey, cfg.GeminiModel)
		log.Printf("Advice gateway enabled (model: %s)", cfg.GeminiModel)
	} else {
		advisor = ai.Disabled{}
		log.Printf("Advice gateway disabled: GEMINI_API_KEY not set")
	}

	log.Printf("Using database: %s", cfg.DatabasePath)
	log.Printf("Storing media in: %s", cfg.MediaStoragePath)

	r := chi.NewRouter()

	corsOptions := cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", handlers.FamilyIDHeader},
		ExposedHeaders:   []string{"ETag"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	corsHandler := cors.New(corsOptions)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsHandler.Handler)

	familyHandler := &handlers.FamilyHandler{Families: familyRepo}
	profileHandler := &handlers.ProfileHandler{Profiles: profileRepo, Store: mediaStore}
	timelineHandler := &handlers.TimelineHandler{Timeline: timeline}
	mediaHandler := &handlers.MediaHandler{Store: mediaStore}
	aiHandler := &handlers.AIHandler{Advisor: advisor, Timeout: cfg.AdviceTimeout}
	debugHandler := &handlers.DebugHandler{Store: mediaStore}

	r.Route("/api", func(r chi.Router) {
		r.Post("/family", familyHandler.CreateFamily)

		// the media key itself is the secret; no family header here
		r.Get("/media/*", mediaHandler.GetMedia)

		r.Group(func(r chi.Router) {
			r.Use(handlers.FamilyAuth)
			r.Get("/profile", profileHandler.GetProfile)
			r.Put("/profile", profileHandler.UpdateProfile)
			r.Post("/profile/avatar", profileHandler.UploadAvatar)
			r.Get("/timeline", timelineHandler.ListTimeline)
			r.Post("/timeline", timelineHandler.AddEvent)
			r.Post("/ai/journal", aiHandler.ComposeJournal)
			r.Post("/ai/milestones", aiHandler.MilestoneAdvice)
		})
	})

	r.Route("/debug", func(r chi.Router) {
		// GET /debug/media?family_id=...
		r.Get("/media", debugHandler.ListFamilyMedia)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	serverAddr := ":" + port
	fmt.Printf("Server starting on http://localhost:%s\n", port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
