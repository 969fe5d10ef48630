package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Environment struct {
	Environment    string
	ServerAddress  string
	SecretKey      string
	DatabaseURL    string
	MigrationsPath string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	PlatformBaseURL      string
	PlatformClientID     string
	PlatformClientSecret string

	SyncCadence   string
	MQTTBrokerURL string
}

// LoadEnvironment reads and validates env vars
func LoadEnvironment() Environment {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	env := Environment{
		Environment:   os.Getenv("APP_ENV"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		SecretKey:     os.Getenv("JWT_SECRET"),
		ServerAddress: os.Getenv("SERVER_ADDRESS"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),

		PlatformBaseURL:      os.Getenv("PLATFORM_BASE_URL"),
		PlatformClientID:     os.Getenv("PLATFORM_CLIENT_ID"),
		PlatformClientSecret: os.Getenv("PLATFORM_CLIENT_SECRET"),

		SyncCadence:   os.Getenv("SYNC_CADENCE"),
		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),
	}

	// Basic validation
	if env.DatabaseURL == "" || env.SecretKey == "" || env.ServerAddress == "" {
		log.Fatal().Msg("missing required environment variables (DATABASE_URL, JWT_SECRET, SERVER_ADDRESS)")
	}
	if env.PlatformBaseURL == "" || env.PlatformClientID == "" || env.PlatformClientSecret == "" {
		log.Fatal().Msg("missing platform credentials (PLATFORM_BASE_URL, PLATFORM_CLIENT_ID, PLATFORM_CLIENT_SECRET)")
	}

	if env.MigrationsPath == "" {
		env.MigrationsPath = "./migrations"
	}
	if env.SyncCadence == "" {
		env.SyncCadence = "@every 15m"
	}

	return env
}
