package main

import (
	"log"
	"net/http"
	"os"

	webAdapter "balance-insight/internal/adapters/web"
	"balance-insight/internal/ai"
	"balance-insight/internal/app"
	"balance-insight/internal/core"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := core.DefaultLoaderConfig()
	mode, err := core.ParseNumericMode(os.Getenv("NUMERIC_MODE"))
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	cfg.NumericMode = mode
	loader := core.NewLoader(cfg)

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set")
	}
	agent := ai.NewAgent(apiKey)

	svc := app.NewAppService(loader, agent, os.Getenv("PARENT_ACCOUNT_PREFIX"))

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
