package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	Listing ListingConfig
	DevAPI  DevAPIConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Debug bool
}

// APIConfig describes how to reach the showroom sales backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig controls where the bearer token is persisted between runs.
type SessionConfig struct {
	FilePath string
}

// ListingConfig holds client-side listing behaviour.
type ListingConfig struct {
	PageSize       int
	SearchDebounce time.Duration
}

// DevAPIConfig configures the local stand-in for the showroom backend.
type DevAPIConfig struct {
	Port         string
	DatabasePath string
	JWTSecret    string
	JWTExpiry    time.Duration
	Email        string
	Password     string
	CORSOrigins  []string
	RateLimit    int
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	// Set defaults
	viper.SetDefault("APP_NAME", "proxima-sales")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_DEBUG", false)
	viper.SetDefault("API_BASE_URL", "http://127.0.0.1:8000/api")
	viper.SetDefault("API_TIMEOUT_SECONDS", 30)
	viper.SetDefault("SESSION_FILE", ".proxima-session.json")
	viper.SetDefault("LIST_PAGE_SIZE", 10)
	viper.SetDefault("SEARCH_DEBOUNCE_MS", 500)
	viper.SetDefault("DEVAPI_PORT", "8000")
	viper.SetDefault("DEVAPI_DB", "proxima-dev.db")
	viper.SetDefault("DEVAPI_JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("DEVAPI_JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("DEVAPI_EMAIL", "demo@proxima.local")
	viper.SetDefault("DEVAPI_PASSWORD", "proxima")
	viper.SetDefault("DEVAPI_CORS_ORIGINS", "http://localhost:3000")
	viper.SetDefault("DEVAPI_RATE_LIMIT", 100)

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		API: APIConfig{
			BaseURL: viper.GetString("API_BASE_URL"),
			Timeout: time.Duration(viper.GetInt("API_TIMEOUT_SECONDS")) * time.Second,
		},
		Session: SessionConfig{
			FilePath: viper.GetString("SESSION_FILE"),
		},
		Listing: ListingConfig{
			PageSize:       viper.GetInt("LIST_PAGE_SIZE"),
			SearchDebounce: time.Duration(viper.GetInt("SEARCH_DEBOUNCE_MS")) * time.Millisecond,
		},
		DevAPI: DevAPIConfig{
			Port:         viper.GetString("DEVAPI_PORT"),
			DatabasePath: viper.GetString("DEVAPI_DB"),
			JWTSecret:    viper.GetString("DEVAPI_JWT_SECRET"),
			JWTExpiry:    time.Duration(viper.GetInt("DEVAPI_JWT_EXPIRY_HOURS")) * time.Hour,
			Email:        viper.GetString("DEVAPI_EMAIL"),
			Password:     viper.GetString("DEVAPI_PASSWORD"),
			CORSOrigins:  viper.GetStringSlice("DEVAPI_CORS_ORIGINS"),
			RateLimit:    viper.GetInt("DEVAPI_RATE_LIMIT"),
		},
	}
}
