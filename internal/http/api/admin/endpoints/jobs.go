package endpoints

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nimbus-Analytics/stratus/internal/db"
	"github.com/Nimbus-Analytics/stratus/internal/http/api"
	"github.com/Nimbus-Analytics/stratus/internal/http/api/admin/packets"
	"github.com/Nimbus-Analytics/stratus/internal/model"
	"github.com/Nimbus-Analytics/stratus/internal/platform"
)

type JobFetcher interface {
	GetJob(ctx context.Context, id string) (*model.Job, error)
}

type JobController struct {
	store    db.Store
	platform JobFetcher
}

func NewJobController(store db.Store, fetcher JobFetcher) *JobController {
	return &JobController{store: store, platform: fetcher}
}

func JobModule(store db.Store, fetcher JobFetcher) api.Module {
	ctl := NewJobController(store, fetcher)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/jobs", ctl.listJobs)
		c.GET("/jobs/:id", ctl.getJob)
		c.POST("/jobs/:id/resync", ctl.resyncJob)
	})
}

func (j *JobController) listJobs(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := j.store.ListJobs()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list jobs"}
	}

	response := make([]packets.JobResponse, 0, len(list))
	for _, it := range list {
		response = append(response, packets.NewJobResponse(it))
	}
	return response, nil
}

func (j *JobController) getJob(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	job, err := j.store.GetJobByID(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "job not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load job"}
	}
	return packets.NewJobResponse(*job), nil
}

func (j *JobController) resyncJob(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id := ctx.Param("id")

	fresh, err := j.platform.GetJob(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "job not found on platform"}
		}
		log.Error().Err(err).Str("job_id", id).Msg("resync fetch failed")
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "platform request failed"}
	}

	if err := j.store.UpsertJob(*fresh); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not store job"}
	}
	return packets.NewJobResponse(*fresh), nil
}
