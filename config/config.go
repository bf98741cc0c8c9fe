package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ProjectName = "NutriSense API"
	Version     = "1.0.0"
)

type AppConfig struct {
	Port        string
	DBPath      string
	LLMEndpoint string
	LLMAPIKey   string
	LLMModel    string
	MockAI      bool
	CORSOrigins []string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:        get("PORT", "8080"),
		DBPath:      get("DB_PATH", "soil_history.db"),
		LLMEndpoint: get("LLM_ENDPOINT", "https://api.groq.com/openai"),
		LLMAPIKey:   get("GROQ_API_KEY", ""),
		LLMModel:    get("LLM_MODEL", "llama-3.3-70b-versatile"),
		MockAI:      get("MOCK_AI", "false") == "true",
		CORSOrigins: splitOrigins(get("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),
	}
	log.Printf("[cfg] port=%s db=%s llm=%s model=%s mock=%v key_set=%v",
		cfg.Port, cfg.DBPath, cfg.LLMEndpoint, cfg.LLMModel, cfg.MockAI, cfg.LLMAPIKey != "")
	return cfg
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
