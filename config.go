package credstore

import "os"

type Config struct {
	DatabaseFile string // Optional: path to SQLite database file (default: ./users.db)
	PepperFile   string // Optional: path to pepper file for password hashing; empty disables peppering
	Env          string // Environment (dev, staging, prod) (default: dev)
	LogLevel     string // Log level (debug, info, warn, error) (default: info)
	LogFormat    string // Log format (json, text) (default: json)
}

// LoadConfig reads the optional environment overrides. Embedders that do not
// want env-var coupling can build a Config directly instead.
func LoadConfig() Config {
	return Config{
		DatabaseFile: getEnvOrDefault("CREDSTORE_DATABASE_FILE", "users.db"),
		PepperFile:   os.Getenv("CREDSTORE_PEPPER_FILE"),
		Env:          getEnvOrDefault("ENV", "dev"),
		LogLevel:     getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:    getEnvOrDefault("LOG_FORMAT", "json"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
