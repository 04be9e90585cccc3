package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/engvoca/backend/internal/auth"
	"github.com/engvoca/backend/internal/commands"
	"github.com/engvoca/backend/internal/config"
	"github.com/engvoca/backend/internal/database"
	"github.com/engvoca/backend/internal/generator"
	"github.com/engvoca/backend/internal/middleware"
	"github.com/engvoca/backend/internal/vocabulary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	doc, err := commands.Load(cfg.Generator.CommandsPath)
	if err != nil {
		log.Fatalf("Failed to load commands document: %v", err)
	}

	llm, err := generator.NewTextGenerator(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize generator: %v", err)
	}

	genService := generator.NewService(llm, doc)
	vocabStore := vocabulary.NewStore(db)
	vocabService := vocabulary.NewService(vocabStore, genService)
	vocabHandler := vocabulary.NewHandler(vocabService)
	authHandler := auth.NewHandler(db, cfg.Auth)

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth([]byte(cfg.Auth.JWTSecret)))
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/words/generate-one", vocabHandler.GenerateWord).Methods("POST")
	protected.HandleFunc("/words/generate", vocabHandler.GenerateWords).Methods("POST")
	protected.HandleFunc("/vocabulary/generate", vocabHandler.GenerateVocabulary).Methods("POST")
	protected.HandleFunc("/vocabulary/generate-options", vocabHandler.GenerateOptions).Methods("POST")
	protected.HandleFunc("/vocabulary", vocabHandler.ListVocabulary).Methods("GET")
	protected.HandleFunc("/roulette/generate", vocabHandler.GenerateRoulette).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORS.AllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      c.Handler(r),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("Server starting on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
