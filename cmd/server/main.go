package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Nimbus-Analytics/stratus/internal/db"
	"github.com/Nimbus-Analytics/stratus/internal/notify"
	"github.com/Nimbus-Analytics/stratus/internal/platform"
	"github.com/Nimbus-Analytics/stratus/internal/redis"
	stratussync "github.com/Nimbus-Analytics/stratus/internal/sync"
)

func main() {
	env := LoadEnvironment()

	if env.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}

	// run pending migrations
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	if env.RedisAddress != "" {
		redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	}

	store := db.NewStore()
	client := platform.NewClient(env.PlatformBaseURL, env.PlatformClientID, env.PlatformClientSecret)

	var publisher *notify.Publisher
	if env.MQTTBrokerURL != "" {
		var err error
		publisher, err = notify.NewPublisher(env.MQTTBrokerURL, "stratus-server")
		if err != nil {
			log.Error().Err(err).Msg("MQTT unavailable, schedule change events disabled")
			publisher = nil
		}
	}

	syncService := stratussync.New(client, store, publisher, env.SyncCadence)
	if err := syncService.Start(); err != nil {
		log.Fatal().Err(err).Msg("sync service")
	}
	defer syncService.Stop()
	defer publisher.Close()

	if env.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	RegisterRoutes(r, env, store, client)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
