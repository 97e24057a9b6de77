package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration. Values come from UZAZI_* environment
// variables with development-friendly defaults. Kept comparable so callers can
// check against the zero value.
type Config struct {
	Environment string
	ServerPort  int
	CorsOrigins string

	DatabaseDbPath       string
	DatabaseCacheAddress string
	DatabaseCachePort    int

	AuthSecretKey          string
	AuthTokenExpiryMinutes int

	ModelPath    string
	BaselinePath string
}

func InitConfig() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("UZAZI")
	v.AutomaticEnv()

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("DATABASE_DB_PATH", "data/uzazisafe.db")
	v.SetDefault("DATABASE_CACHE_ADDRESS", "localhost")
	v.SetDefault("DATABASE_CACHE_PORT", 6379)
	v.SetDefault("AUTH_SECRET_KEY", "dev-only-secret")
	v.SetDefault("AUTH_TOKEN_EXPIRY_MINUTES", 60)
	v.SetDefault("MODEL_PATH", "data/ml/xgboost_model.json")
	v.SetDefault("BASELINE_PATH", "data/ml/feature_baseline.json")

	config := Config{
		Environment:            v.GetString("ENVIRONMENT"),
		ServerPort:             v.GetInt("SERVER_PORT"),
		CorsOrigins:            v.GetString("CORS_ORIGINS"),
		DatabaseDbPath:         v.GetString("DATABASE_DB_PATH"),
		DatabaseCacheAddress:   v.GetString("DATABASE_CACHE_ADDRESS"),
		DatabaseCachePort:      v.GetInt("DATABASE_CACHE_PORT"),
		AuthSecretKey:          v.GetString("AUTH_SECRET_KEY"),
		AuthTokenExpiryMinutes: v.GetInt("AUTH_TOKEN_EXPIRY_MINUTES"),
		ModelPath:              v.GetString("MODEL_PATH"),
		BaselinePath:           v.GetString("BASELINE_PATH"),
	}

	if config.AuthSecretKey == "" {
		return Config{}, fmt.Errorf("auth secret key is required")
	}

	if config.Environment == "production" && config.AuthSecretKey == "dev-only-secret" {
		return Config{}, fmt.Errorf("default auth secret key is not allowed in production")
	}

	return config, nil
}
