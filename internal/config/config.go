package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string
	Port   string

	// Public base URL used for recipe short links
	BaseURL string

	DatabaseURL string

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	CORSOrigins []string

	// Shopping list
	FontPath               string
	FontObjectKey          string
	FontSize               float64
	MaxShoppingListRecipes int

	// Cloudflare R2 (optional, needed for FontObjectKey and export uploads)
	R2Endpoint      string
	R2AccessKey     string
	R2SecretKey     string
	R2Bucket        string
	R2PublicBaseURL string
}

// LoadEnv reads a .env file outside production. A missing file is fine.
func LoadEnv() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}
}

func Load() Config {
	cfg := Config{
		AppEnv:  envOr("APP_ENV", "development"),
		Port:    envOr("PORT", "8000"),
		BaseURL: strings.TrimRight(envOr("BASE_URL", "http://localhost:8000"), "/"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  envDuration("TOKEN_TTL", 24*time.Hour),

		CORSOrigins: envList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),

		FontPath:               os.Getenv("SHOPPING_LIST_FONT_PATH"),
		FontObjectKey:          os.Getenv("SHOPPING_LIST_FONT_KEY"),
		FontSize:               envFloat("SHOPPING_LIST_FONT_SIZE", 12),
		MaxShoppingListRecipes: envInt("MAX_SHOPPING_LIST_RECIPES", 100),

		R2Endpoint:  os.Getenv("R2_ENDPOINT"),
		R2AccessKey: os.Getenv("R2_ACCESS_KEY"),
		R2SecretKey: os.Getenv("R2_SECRET_KEY"),
		R2Bucket:    os.Getenv("R2_BUCKET_NAME"),

		R2PublicBaseURL: strings.TrimRight(os.Getenv("R2_PUBLIC_BASE_URL"), "/"),
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.FontSize <= 0 {
		cfg.FontSize = 12
	}
	if cfg.MaxShoppingListRecipes <= 0 {
		cfg.MaxShoppingListRecipes = 100
	}

	return cfg
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.FontPath != "" && c.FontObjectKey != "" {
		return errors.New("set only one of SHOPPING_LIST_FONT_PATH and SHOPPING_LIST_FONT_KEY")
	}
	if c.FontObjectKey != "" && !c.R2Enabled() {
		return errors.New("SHOPPING_LIST_FONT_KEY requires R2_ENDPOINT, R2_ACCESS_KEY, R2_SECRET_KEY and R2_BUCKET_NAME")
	}
	return nil
}

func (c Config) R2Enabled() bool {
	return c.R2Endpoint != "" && c.R2AccessKey != "" && c.R2SecretKey != "" && c.R2Bucket != ""
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
