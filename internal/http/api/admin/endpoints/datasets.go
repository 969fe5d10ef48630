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

// DatasetFetcher is the slice of the platform client the resync endpoint
// needs; the concrete *platform.Client satisfies it.
type DatasetFetcher interface {
	GetDataset(ctx context.Context, id string) (*model.Dataset, error)
}

type DatasetController struct {
	store    db.Store
	platform DatasetFetcher
}

func NewDatasetController(store db.Store, fetcher DatasetFetcher) *DatasetController {
	return &DatasetController{store: store, platform: fetcher}
}

func DatasetModule(store db.Store, fetcher DatasetFetcher) api.Module {
	ctl := NewDatasetController(store, fetcher)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/datasets", ctl.listDatasets)
		c.GET("/datasets/:id", ctl.getDataset)
		c.POST("/datasets/:id/resync", ctl.resyncDataset)
	})
}

func (d *DatasetController) listDatasets(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	list, err := d.store.ListDatasets()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list datasets"}
	}

	response := make([]packets.DatasetResponse, 0, len(list))
	for _, it := range list {
		response = append(response, packets.NewDatasetResponse(it))
	}
	return response, nil
}

func (d *DatasetController) getDataset(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	ds, err := d.store.GetDatasetByID(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "dataset not found"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load dataset"}
	}
	return packets.NewDatasetResponse(*ds), nil
}

// resyncDataset refetches one dataset from the platform and replaces the
// stored mirror, re-normalizing the schedule from the fresh raw record.
func (d *DatasetController) resyncDataset(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id := ctx.Param("id")

	fresh, err := d.platform.GetDataset(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, platform.ErrNotFound) {
			return nil, &api.APIError{Code: http.StatusNotFound, Message: "dataset not found on platform"}
		}
		log.Error().Err(err).Str("dataset_id", id).Msg("resync fetch failed")
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "platform request failed"}
	}

	if err := d.store.UpsertDataset(*fresh); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not store dataset"}
	}
	return packets.NewDatasetResponse(*fresh), nil
}
