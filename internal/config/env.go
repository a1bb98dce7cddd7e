package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// parseEnv overlays configuration from environment variables. A .env.local
// file in the working directory is loaded first when present, so local
// development does not need exported variables.
func parseEnv(cfg *Config) {
	_ = godotenv.Load(".env.local")

	if v := os.Getenv("ENDPOINT_ADDR_HTTP"); v != "" {
		cfg.EndpointAddrHTTP = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.DatabaseDSN = v
	}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSAllowedOrigins = v
	}
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		if cost, err := strconv.Atoi(v); err == nil {
			cfg.BcryptCost = cost
		}
	}
	if v := os.Getenv("GIN_MODE"); v != "" {
		cfg.GinMode = v
	}
}
