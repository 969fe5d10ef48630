package db

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Nimbus-Analytics/stratus/internal/model"
	"github.com/Nimbus-Analytics/stratus/internal/schedule"
)

// datasetRow adds the raw platform record to the model for scanning. The
// normalized schedule is rebuilt from raw_record on read, so the stored
// schedule_* columns exist only for SQL consumers.
type datasetRow struct {
	model.Dataset
	RawRecord []byte `db:"raw_record"`
}

func (r datasetRow) toModel() model.Dataset {
	d := r.Dataset
	if len(r.RawRecord) == 0 {
		return d
	}
	d.Raw = r.RawRecord

	var fields map[string]any
	if err := json.Unmarshal(r.RawRecord, &fields); err != nil {
		log.Warn().Str("dataset_id", d.ID).Msg("stored raw record is not valid JSON")
		return d
	}
	if schedule.HasScheduleData(fields) {
		s, _ := schedule.Parse(fields)
		d.Schedule = &s
	}
	return d
}

func UpsertDataset(d model.Dataset) error {
	var schedType, schedFreq, schedDesc *string
	if d.Schedule != nil {
		t := string(d.Schedule.Type)
		f := string(d.Schedule.Frequency)
		desc := schedule.Describe(*d.Schedule)
		schedType, schedFreq, schedDesc = &t, &f, &desc
	}

	var raw any
	if len(d.Raw) > 0 {
		raw = string(d.Raw)
	}

	const q = `
	INSERT INTO datasets
	  (id, name, description, owner_name, row_count, column_count,
	   schedule_type, schedule_frequency, schedule_description, raw_record,
	   last_synced_at, created_at, updated_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,now(),now(),now())
	ON CONFLICT (id) DO UPDATE SET
	  name = EXCLUDED.name,
	  description = EXCLUDED.description,
	  owner_name = EXCLUDED.owner_name,
	  row_count = EXCLUDED.row_count,
	  column_count = EXCLUDED.column_count,
	  schedule_type = EXCLUDED.schedule_type,
	  schedule_frequency = EXCLUDED.schedule_frequency,
	  schedule_description = EXCLUDED.schedule_description,
	  raw_record = EXCLUDED.raw_record,
	  last_synced_at = now(),
	  updated_at = now();`
	if _, err := DB.Exec(q, d.ID, d.Name, d.Description, d.OwnerName,
		d.RowCount, d.ColumnCount, schedType, schedFreq, schedDesc, raw); err != nil {
		log.Error().Err(err).Str("dataset_id", d.ID).Msg("UpsertDataset failed")
		return err
	}
	return nil
}

func GetDatasetByID(id string) (*model.Dataset, error) {
	var row datasetRow
	const q = `
	SELECT id, name, description, owner_name, row_count, column_count,
	       raw_record, last_synced_at, created_at, updated_at
	  FROM datasets
	 WHERE id = $1;`
	if err := DB.Get(&row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Str("dataset_id", id).Msg("GetDatasetByID failed")
		return nil, err
	}
	d := row.toModel()
	return &d, nil
}

func ListDatasets() ([]model.Dataset, error) {
	var rows []datasetRow
	const q = `
	SELECT id, name, description, owner_name, row_count, column_count,
	       raw_record, last_synced_at, created_at, updated_at
	  FROM datasets
	 ORDER BY name, id;`
	if err := DB.Select(&rows, q); err != nil {
		log.Error().Err(err).Msg("ListDatasets failed")
		return nil, err
	}
	out := make([]model.Dataset, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toModel())
	}
	return out, nil
}
