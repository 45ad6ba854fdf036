/*
Package configs is responsible for loading and parsing the application's
configuration settings.

Settings come from environment variables: running environment, listen port,
CORS allowed origins, optional TLS key pair, and the static asset directory
served alongside the signaling API.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AppConfig contains all configuration parameters required for the server to run.
// All values are loaded from environment variables.
type AppConfig struct {
	// General Server Settings
	Environment string
	Port        int

	// Security Settings
	AllowedOrigins []string

	// TLS Settings. HTTPS is enabled when both paths are set; WebRTC-capable
	// browsers generally require a secure context even on a LAN.
	TLSCertFile string
	TLSKeyFile  string

	// StaticDir is the directory served on non-API routes (browser UI and
	// bootstrap scripts). Empty disables static serving.
	StaticDir string
}

// LoadConfig reads and parses the application configuration from environment
// variables, applying defaults and validating each item. It returns a pointer
// to the AppConfig struct and any error encountered.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Server Settings ---
	// Environment
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// Port
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	cfg.Port = port

	if cfg.Port < 1024 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.Port, 1024, 65535)
	}

	// --- Security Settings ---
	// AllowedOrigins
	originsStr := os.Getenv("ALLOWED_ORIGINS")
	if originsStr != "" {
		origins := strings.Split(originsStr, ",")
		for _, origin := range origins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{}
	}

	// --- TLS Settings ---
	cfg.TLSCertFile = os.Getenv("TLS_CERT_FILE")
	cfg.TLSKeyFile = os.Getenv("TLS_KEY_FILE")

	if (cfg.TLSCertFile == "") != (cfg.TLSKeyFile == "") {
		return nil, fmt.Errorf("TLS_CERT_FILE and TLS_KEY_FILE must be set together")
	}

	// --- Static Assets ---
	cfg.StaticDir = os.Getenv("STATIC_DIR")
	if cfg.StaticDir != "" {
		info, err := os.Stat(cfg.StaticDir)
		if err != nil {
			return nil, fmt.Errorf("STATIC_DIR %q is not accessible: %w", cfg.StaticDir, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("STATIC_DIR %q is not a directory", cfg.StaticDir)
		}
	}

	return cfg, nil
}

// TLSEnabled reports whether the server should listen with TLS.
func (c *AppConfig) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}
