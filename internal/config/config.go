package config

import "os"

type Config struct {
	Port string

	LogLevel string
	Env      string

	// DSN de Postgres. Vacío => repos in-memory (modo dev).
	DBDSN string

	// Secret HS256 para verificar tokens de sesión.
	// Vacío => modo dev (header X-Debug-Clinic-ID).
	JWTSecret string
}

func Load() Config {
	return Config{
		Port:      getEnv("PORT", "8080"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		Env:       getEnv("ENV", "development"),
		DBDSN:     getEnv("DB_DSN", ""),
		JWTSecret: getEnv("JWT_SECRET", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}
