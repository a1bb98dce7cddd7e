package config

import (
	"encoding/json"
	"os"

	"github.com/lenshive/backend/internal/flagx"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. After unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP   string `json:"endpoint_addr_http"`
	DatabaseDSN        string `json:"database_dsn"`
	CORSAllowedOrigins string `json:"cors_allowed_origins"`
	BcryptCost         int    `json:"bcrypt_cost"`
	GinMode            string `json:"gin_mode"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config. The file path comes from the -c or -config command-line flags; if
// neither is set, no JSON file is loaded. A missing or malformed file panics.
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	jc := &JsonConfig{}
	if err := json.Unmarshal(data, jc); err != nil {
		panic(err)
	}

	if jc.EndpointAddrHTTP != "" {
		cfg.EndpointAddrHTTP = jc.EndpointAddrHTTP
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.CORSAllowedOrigins != "" {
		cfg.CORSAllowedOrigins = jc.CORSAllowedOrigins
	}
	if jc.BcryptCost != 0 {
		cfg.BcryptCost = jc.BcryptCost
	}
	if jc.GinMode != "" {
		cfg.GinMode = jc.GinMode
	}
}
