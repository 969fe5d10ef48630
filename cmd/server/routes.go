package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nimbus-Analytics/stratus/internal/db"
	"github.com/Nimbus-Analytics/stratus/internal/http/api"
	adminapi "github.com/Nimbus-Analytics/stratus/internal/http/api/admin/endpoints"
	"github.com/Nimbus-Analytics/stratus/internal/platform"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, client *platform.Client) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		adminapi.AuthPublicModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: env.SecretKey,
	},
		adminapi.AuthSessionModule(env.SecretKey, store),
		adminapi.DatasetModule(store, client),
		adminapi.JobModule(store, client),
		adminapi.ScheduleModule(),
	)
}
