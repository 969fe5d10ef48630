package platform

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nimbus-Analytics/stratus/internal/model"
	"github.com/Nimbus-Analytics/stratus/internal/schedule"
)

type jobRecord struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	DatasetID *string `json:"datasetId"`
	Enabled   *bool   `json:"enabled"`
}

func (c *Client) ListJobs(ctx context.Context) ([]model.Job, error) {
	var raws []json.RawMessage
	if err := c.getJSON(ctx, "/v1/jobs", &raws); err != nil {
		return nil, err
	}

	out := make([]model.Job, 0, len(raws))
	for _, raw := range raws {
		j, err := hydrateJob(raw)
		if err != nil {
			log.Warn().Err(err).Msg("skipping undecodable job record")
			continue
		}
		out = append(out, j)
	}
	return out, nil
}

func (c *Client) GetJob(ctx context.Context, id string) (*model.Job, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "/v1/jobs/"+id, &raw); err != nil {
		return nil, err
	}
	j, err := hydrateJob(raw)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// hydrateJob builds the model from one raw record. Jobs always carry a
// schedule; a record with no schedule keys normalizes to simple/manual.
func hydrateJob(raw json.RawMessage) (model.Job, error) {
	var rec jobRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return model.Job{}, fmt.Errorf("decode job record: %w", err)
	}
	if rec.ID == "" {
		return model.Job{}, fmt.Errorf("job record missing id")
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return model.Job{}, fmt.Errorf("decode job record: %w", err)
	}

	s, issues := schedule.Parse(fields)
	for _, issue := range issues {
		log.Warn().Str("job_id", rec.ID).Str("issue", issue.String()).
			Msg("schedule normalized with issues")
	}

	j := model.Job{
		ID:        rec.ID,
		Name:      rec.Name,
		DatasetID: rec.DatasetID,
		Enabled:   true,
		Schedule:  s,
		Raw:       raw,
	}
	if rec.Enabled != nil {
		j.Enabled = *rec.Enabled
	}
	return j, nil
}
