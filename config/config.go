package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read once at startup. Empty optional
// fields disable the integration they configure.
type Config struct {
	Port string

	// Base64-encoded Firebase service account JSON. Empty runs the server
	// against the in-memory store.
	FirebaseCredentials string

	// Redis address for change notifications, e.g. "localhost:6379".
	RedisAddr string

	// OpenAI key for LLM summaries. Empty uses the deterministic template.
	OpenAIAPIKey string

	// Google Maps key for geocoding reports that arrive without coordinates.
	MapsAPIKey string

	// Directory holding the canned mock report files.
	MockDataDir string
}

// Load reads .env if present, then the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment directly")
	}

	return Config{
		Port:                getEnv("PORT", "8080"),
		FirebaseCredentials: os.Getenv("FIREBASE_CREDENTIALS"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		MapsAPIKey:          os.Getenv("MAPS_API_KEY"),
		MockDataDir:         getEnv("MOCK_DATA_DIR", "./mock-data"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
