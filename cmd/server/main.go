package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"constellation/internal/auth"
	"constellation/internal/config"
	"constellation/internal/genconfig"
	"constellation/internal/handler"
	"constellation/internal/llm"
	"constellation/internal/llm/anthropic"
	"constellation/internal/llm/gemini"
	"constellation/internal/llm/lorem"
	"constellation/internal/middleware"
	"constellation/internal/pipeline"
	"constellation/internal/retrieval"
	"constellation/internal/retrieval/memory"
	"constellation/internal/retrieval/postgres"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"provider", cfg.Provider,
	)

	ctx := context.Background()

	// Generation parameter profiles (embedded YAML)
	profiles, err := genconfig.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load generation profiles: %v", err)
	}

	// Provider builders are registered here so the llm package stays free of
	// provider imports.
	builders := map[string]llm.ProviderBuilder{
		"gemini": func(ctx context.Context) (llm.Generator, error) {
			return gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.Model)
		},
		"anthropic": func(ctx context.Context) (llm.Generator, error) {
			return anthropic.NewClient(cfg.AnthropicAPIKey, cfg.Model)
		},
		"lorem": func(ctx context.Context) (llm.Generator, error) {
			return lorem.NewProvider(cfg.Model), nil
		},
	}

	generator, err := llm.Setup(ctx, cfg.Provider, cfg.WorkerSlots, builders, logger)
	if err != nil {
		log.Fatalf("Failed to setup LLM provider: %v", err)
	}

	// Pick the document store: Postgres when a database is configured,
	// in-memory otherwise.
	var store retrieval.Store
	if cfg.DatabaseURL != "" {
		pgStore, err := postgres.Connect(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			log.Fatalf("Failed to connect retrieval store: %v", err)
		}
		defer pgStore.Close()
		store = pgStore
	} else {
		logger.Info("using in-memory document store")
		store = memory.NewStore()
	}

	retrievalService := retrieval.NewService(store, cfg.RetrievalEnabled, logger)
	pipelineService := pipeline.NewService(generator, retrievalService, profiles, logger)

	chatHandler := handler.NewChatHandler(pipelineService, logger)
	docHandler := handler.NewDocumentHandler(retrievalService, logger)

	logger.Info("services initialized")

	var verifier auth.Verifier
	if cfg.AuthJWKSURL != "" {
		verifier, err = auth.NewVerifier(cfg.AuthJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
	} else {
		logger.Warn("AUTH_JWKS_URL not set, document routes are unauthenticated")
	}

	mux := newRouter(chatHandler, docHandler, generator.Name(), verifier)

	// Build middleware chain, applied in reverse order (they wrap each other).
	// Order: CORS -> RequestID -> Recovery -> Routes (auth is per-route)
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestID(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "Last-Event-ID"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived SSE streams
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newRouter builds the route table (Go 1.22+ enhanced patterns). Bearer auth
// guards only the document-management routes: health must stay open for load
// balancer checks, and the chat surface is the public product endpoint.
func newRouter(chatHandler *handler.ChatHandler, docHandler *handler.DocumentHandler, providerName string, verifier auth.Verifier) *http.ServeMux {
	protect := func(h http.HandlerFunc) http.Handler {
		if verifier == nil {
			return h
		}
		return middleware.Auth(verifier)(h)
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.Health(providerName))

	// Chat routes
	mux.HandleFunc("POST /chat", chatHandler.Chat)
	mux.HandleFunc("POST /chat/stream", chatHandler.ChatStream)

	// Document routes
	mux.Handle("POST /api/documents", protect(docHandler.AddDocument))
	mux.Handle("GET /api/documents", protect(docHandler.ListDocuments))
	mux.Handle("DELETE /api/documents", protect(docHandler.DeleteAll))
	mux.Handle("DELETE /api/documents/{id}", protect(docHandler.DeleteDocument))

	// Retrieval control routes
	mux.Handle("GET /api/retrieval/stats", protect(docHandler.Stats))
	mux.Handle("POST /api/retrieval/toggle", protect(docHandler.Toggle))

	return mux
}
