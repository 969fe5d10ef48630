package platform

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nimbus-Analytics/stratus/internal/model"
	"github.com/Nimbus-Analytics/stratus/internal/schedule"
)

// datasetRecord is the subset of the platform's dataset shape we keep as
// typed fields. Schedule keys stay in the raw mapping and go through
// schedule.Parse instead.
type datasetRecord struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Owner       *struct {
		Name string `json:"name"`
	} `json:"owner"`
	Rows    int `json:"rows"`
	Columns int `json:"columns"`
}

func (c *Client) ListDatasets(ctx context.Context) ([]model.Dataset, error) {
	var raws []json.RawMessage
	if err := c.getJSON(ctx, "/v1/datasets", &raws); err != nil {
		return nil, err
	}

	out := make([]model.Dataset, 0, len(raws))
	for _, raw := range raws {
		d, err := hydrateDataset(raw)
		if err != nil {
			log.Warn().Err(err).Msg("skipping undecodable dataset record")
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (c *Client) GetDataset(ctx context.Context, id string) (*model.Dataset, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, "/v1/datasets/"+id, &raw); err != nil {
		return nil, err
	}
	d, err := hydrateDataset(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// hydrateDataset builds the model from one raw record, normalizing the
// schedule exactly once. A dataset whose record has none of the schedule
// keys gets a nil Schedule.
func hydrateDataset(raw json.RawMessage) (model.Dataset, error) {
	var rec datasetRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return model.Dataset{}, fmt.Errorf("decode dataset record: %w", err)
	}
	if rec.ID == "" {
		return model.Dataset{}, fmt.Errorf("dataset record missing id")
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return model.Dataset{}, fmt.Errorf("decode dataset record: %w", err)
	}

	d := model.Dataset{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		RowCount:    rec.Rows,
		ColumnCount: rec.Columns,
		Raw:         raw,
	}
	if rec.Owner != nil && rec.Owner.Name != "" {
		d.OwnerName = &rec.Owner.Name
	}

	if schedule.HasScheduleData(fields) {
		s, issues := schedule.Parse(fields)
		for _, issue := range issues {
			log.Warn().Str("dataset_id", rec.ID).Str("issue", issue.String()).
				Msg("schedule normalized with issues")
		}
		d.Schedule = &s
	}
	return d, nil
}
