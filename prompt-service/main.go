package main

import (
	"time"

	"file-aggregator/config"
	"file-aggregator/gemini"
	"file-aggregator/handlers"
	"file-aggregator/identity"
	"file-aggregator/logging"
	"file-aggregator/middleware"
	"file-aggregator/relay"
	"file-aggregator/server"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

const (
	ServiceName = "prompt-service"

	EndPointSummarize      = "/api/summarize"
	EndPointGeneratePrompt = "/api/generate-prompt"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	log.Info("Starting the prompt service...")

	var generator relay.Generator
	if cfg.GeminiAPIKey != "" {
		generator = gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
	} else {
		log.Warn("GEMINI_API_KEY is not set, prompt generation is unavailable")
	}

	verifier := identity.New(cfg)
	if !cfg.AuthEnabled() {
		log.Warn("No identity provider configured, authentication is disabled")
	}

	router, err := setupRouter(cfg, generator, verifier)
	if err != nil {
		log.Fatalf("Failed to set up router: %v", err)
	}

	log.Infof("Rate limit: %d requests per minute", cfg.RateLimitPerMinute)

	if err := server.Run(cfg.Addr(), router, cfg.ShutdownTimeout); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func setupRouter(cfg *config.Config, generator relay.Generator, verifier identity.Verifier) (*gin.Engine, error) {
	router, err := server.NewEngine(ServiceName, cfg)
	if err != nil {
		return nil, err
	}

	promptHandler := handlers.NewPromptHandler(relay.New(generator))

	api := router.Group("/")
	api.Use(middleware.RateLimitMiddleware(cfg.RateLimitPerMinute, time.Minute))
	api.Use(middleware.AuthMiddleware(verifier))
	{
		api.POST(EndPointSummarize, promptHandler.Summarize)
		api.POST(EndPointGeneratePrompt, promptHandler.GeneratePrompt)
	}

	return router, nil
}
