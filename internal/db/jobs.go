package db

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nimbus-Analytics/stratus/internal/model"
	"github.com/Nimbus-Analytics/stratus/internal/schedule"
)

type jobRow struct {
	model.Job
	RawRecord []byte `db:"raw_record"`
}

func (r jobRow) toModel() model.Job {
	j := r.Job
	j.Raw = r.RawRecord

	var fields map[string]any
	if len(r.RawRecord) > 0 {
		if err := json.Unmarshal(r.RawRecord, &fields); err != nil {
			log.Warn().Str("job_id", j.ID).Msg("stored raw record is not valid JSON")
		}
	}
	// jobs always carry a schedule; an empty record parses to the manual default
	j.Schedule, _ = schedule.Parse(fields)
	return j
}

func UpsertJob(j model.Job) error {
	desc := schedule.Describe(j.Schedule)

	var raw any
	if len(j.Raw) > 0 {
		raw = string(j.Raw)
	}

	const q = `
	INSERT INTO jobs
	  (id, name, dataset_id, enabled,
	   schedule_type, schedule_frequency, schedule_description, raw_record,
	   last_synced_at, created_at, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,now(),now(),now())
	ON CONFLICT (id) DO UPDATE SET
	  name = EXCLUDED.name,
	  dataset_id = EXCLUDED.dataset_id,
	  enabled = EXCLUDED.enabled,
	  schedule_type = EXCLUDED.schedule_type,
	  schedule_frequency = EXCLUDED.schedule_frequency,
	  schedule_description = EXCLUDED.schedule_description,
	  raw_record = EXCLUDED.raw_record,
	  last_synced_at = now(),
	  updated_at = now();`
	if _, err := DB.Exec(q, j.ID, j.Name, j.DatasetID, j.Enabled,
		string(j.Schedule.Type), string(j.Schedule.Frequency), desc, raw); err != nil {
		log.Error().Err(err).Str("job_id", j.ID).Msg("UpsertJob failed")
		return err
	}
	return nil
}

func GetJobByID(id string) (*model.Job, error) {
	var row jobRow
	const q = `
	SELECT id, name, dataset_id, enabled, raw_record,
	       last_synced_at, created_at, updated_at
	  FROM jobs
	 WHERE id = $1;`
	if err := DB.Get(&row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Str("job_id", id).Msg("GetJobByID failed")
		return nil, err
	}
	j := row.toModel()
	return &j, nil
}

func ListJobs() ([]model.Job, error) {
	var rows []jobRow
	const q = `
	SELECT id, name, dataset_id, enabled, raw_record,
	       last_synced_at, created_at, updated_at
	  FROM jobs
	 ORDER BY name, id;`
	if err := DB.Select(&rows, q); err != nil {
		log.Error().Err(err).Msg("ListJobs failed")
		return nil, err
	}
	out := make([]model.Job, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}
