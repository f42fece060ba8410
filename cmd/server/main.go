package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/noor-app/backend/internal/auth"
	"github.com/noor-app/backend/internal/config"
	"github.com/noor-app/backend/internal/database"
	"github.com/noor-app/backend/internal/metrics"
	"github.com/noor-app/backend/internal/middleware"
	"github.com/noor-app/backend/internal/prayer"
	"github.com/noor-app/backend/internal/quiz"
	"github.com/noor-app/backend/internal/quran"
	"github.com/noor-app/backend/internal/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	secret := []byte(cfg.JWTSecret)

	// Initialize services and handlers
	prayerService := prayer.NewService(
		prayer.NewClient(cfg.PrayerAPIBaseURL),
		prayer.NewCache(redisClient),
	)
	prayerHandler := prayer.NewHandler(prayerService)

	quranStore := quran.NewStore(db)
	statsService := stats.NewService(stats.NewStore(db), quranStore)
	statsHandler := stats.NewHandler(statsService)

	quranHandler := quran.NewHandler(quran.NewService(quranStore, statsService))

	quizGenerator := quiz.NewGenerator(cfg.AnthropicModel, cfg.MockGenerator)
	quizHandler := quiz.NewHandler(quiz.NewStore(db), quizGenerator, statsService)

	authHandler := auth.NewHandler(db, secret)

	// Setup router
	r := mux.NewRouter()
	r.Use(metrics.Middleware)
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/prayer/times", prayerHandler.GetTimes).Methods("GET")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(secret))
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/quran/verses", quranHandler.ListVerses).Methods("GET")
	protected.HandleFunc("/quran/verses/{surah}/{verse}/read", quranHandler.MarkRead).Methods("POST")
	protected.HandleFunc("/quran/verses/{surah}/{verse}/memorize", quranHandler.MarkMemorized).Methods("POST")
	protected.HandleFunc("/quran/verses/{surah}/{verse}/favorite", quranHandler.ToggleFavorite).Methods("POST")
	protected.HandleFunc("/quran/verses/{surah}/{verse}/reset-memorization", quranHandler.ResetMemorization).Methods("POST")
	protected.HandleFunc("/quran/verses/{surah}/{verse}/pronunciation", quranHandler.AddPronunciation).Methods("POST")

	protected.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")
	protected.HandleFunc("/study/sessions", statsHandler.RecordSession).Methods("POST")

	protected.HandleFunc("/quiz", quizHandler.GetQuiz).Methods("GET")
	protected.HandleFunc("/quiz/submit", quizHandler.Submit).Methods("POST")
	protected.HandleFunc("/quiz/generate", quizHandler.Generate).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Prometheus scrape endpoint
	r.Handle("/metrics", metrics.Handler()).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	log.Printf("Server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
