package config

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	Endpoint        string
}

// Enabled reports whether enough settings are present to talk to R2.
func (c R2Config) Enabled() bool {
	return c.BucketName != "" && c.AccessKeyID != "" && (c.AccountID != "" || c.Endpoint != "")
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

func (c GoogleConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

type Config struct {
	DB_URL           string
	Port             string
	SessionSecret    string
	SessionTTL       time.Duration
	SingleSession    bool
	Environment      string
	ChatHistoryLimit int
	StaticDir        string
	FrontendURL      string
	CorsConfig       cors.Options
	OpenAI           OpenAIConfig
	R2               R2Config
	Google           GoogleConfig
}

// IsProduction reports whether cookies must be Secure and cross-site.
func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads envFile (a missing file is not an error) and then the process
// environment. An empty envFile falls back to ENV_FILE, then ".env".
func Load(envFile string) Config {
	if envFile == "" {
		envFile = os.Getenv("ENV_FILE")
	}
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found")
	}

	port := getEnv("PORT", "5000")
	return Config{
		DB_URL:           getEnv("DB_URL", ""),
		Port:             port,
		SessionSecret:    getEnv("SESSION_SECRET", "goal-ai-secret-key-2024"),
		SessionTTL:       getDuration("SESSION_TTL", 24*time.Hour),
		SingleSession:    getBool("SINGLE_SESSION", false),
		Environment:      getEnv("ENV", "development"),
		ChatHistoryLimit: getInt("CHAT_HISTORY_LIMIT", 500),
		StaticDir:        getEnv("STATIC_DIR", ""),
		FrontendURL:      getEnv("FRONTEND_URL", "http://localhost:"+port),
		CorsConfig:       CorsConfig(getList("CORS_ORIGINS")),
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o"),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
			Timeout: getDuration("LLM_TIMEOUT", 30*time.Second),
		},
		R2: R2Config{
			AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			BucketName:      getEnv("R2_BUCKET_NAME", ""),
			Region:          getEnv("R2_REGION", "auto"),
			Endpoint:        getEnv("R2_ENDPOINT", ""),
		},
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:"+port+"/api/auth/google/callback"),
		},
	}
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getList(key string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, ""), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// CorsConfig allows credentialed requests from origins. With no origins it
// mirrors the request origin, which is what the dev front end relies on.
func CorsConfig(origins []string) cors.Options {
	opts := cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
	if len(origins) == 0 {
		opts.AllowOriginFunc = func(string) bool { return true }
	}
	return opts
}
