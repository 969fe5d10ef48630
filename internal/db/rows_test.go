package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nimbus-Analytics/stratus/internal/model"
	"github.com/Nimbus-Analytics/stratus/internal/schedule"
)

func TestDatasetRowRebuildsSchedule(t *testing.T) {
	row := datasetRow{
		Dataset:   model.Dataset{ID: "ds-1", Name: "Sales"},
		RawRecord: []byte(`{"id":"ds-1","scheduleExpression":"0 9 * * *"}`),
	}

	d := row.toModel()
	require.NotNil(t, d.Schedule)
	assert.Equal(t, schedule.TypeCron, d.Schedule.Type)
	assert.Equal(t, "0 9 * * *", d.Schedule.Cron.Expression)
}

func TestDatasetRowWithoutScheduleKeys(t *testing.T) {
	row := datasetRow{
		Dataset:   model.Dataset{ID: "ds-2"},
		RawRecord: []byte(`{"id":"ds-2","name":"Archive"}`),
	}
	assert.Nil(t, row.toModel().Schedule)
}

func TestDatasetRowCorruptRawRecord(t *testing.T) {
	row := datasetRow{
		Dataset:   model.Dataset{ID: "ds-3"},
		RawRecord: []byte(`{broken`),
	}
	// still returns the row's typed fields
	d := row.toModel()
	assert.Equal(t, "ds-3", d.ID)
	assert.Nil(t, d.Schedule)
}

func TestJobRowAlwaysHasSchedule(t *testing.T) {
	row := jobRow{Job: model.Job{ID: "job-1"}}

	j := row.toModel()
	assert.Equal(t, schedule.TypeSimple, j.Schedule.Type)
	assert.Equal(t, schedule.FreqManual, j.Schedule.Frequency)
}
