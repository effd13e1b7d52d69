package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	DataFile      string
	HealthAddr    string
	GithubToken   string // empty disables the remote backup push
	GithubRepo    string
}

// Load reads configuration from a .env file if present, then the
// environment. A missing bot token aborts startup entirely.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		TelegramToken: getBotToken(),
		DataFile:      getenv("DATA_FILE", "data.json"),
		HealthAddr:    getenv("HEALTH_ADDR", ":5000"),
		GithubToken:   strings.TrimSpace(os.Getenv("GITHUB_TOKEN")),
		GithubRepo:    getenv("GITHUB_REPO", "UbiwanKenobi/Stepper-bot"),
	}
}

func getBotToken() string {
	token := strings.TrimSpace(os.Getenv("TG_TOKEN"))
	if token == "" {
		log.Fatal("❌ Установите переменную окружения TG_TOKEN с токеном бота")
	}
	return token
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
