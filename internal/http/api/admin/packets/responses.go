package packets

import (
	"time"

	"github.com/Nimbus-Analytics/stratus/internal/model"
	"github.com/Nimbus-Analytics/stratus/internal/schedule"
)

type ProfileResponse struct {
	ID        int     `json:"id"`
	Email     string  `json:"email"`
	Name      *string `json:"name,omitempty"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// ScheduleResponse is the normalized schedule plus its rendered description.
type ScheduleResponse struct {
	schedule.Schedule
	Description string   `json:"description"`
	Issues      []string `json:"issues,omitempty"`
}

func NewScheduleResponse(s schedule.Schedule) ScheduleResponse {
	return ScheduleResponse{Schedule: s, Description: schedule.Describe(s)}
}

type DatasetResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  *string           `json:"description,omitempty"`
	OwnerName    *string           `json:"owner_name,omitempty"`
	RowCount     int               `json:"row_count"`
	ColumnCount  int               `json:"column_count"`
	LastSyncedAt *string           `json:"last_synced_at,omitempty"`
	Schedule     *ScheduleResponse `json:"schedule,omitempty"`
}

func NewDatasetResponse(d model.Dataset) DatasetResponse {
	resp := DatasetResponse{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		OwnerName:    d.OwnerName,
		RowCount:     d.RowCount,
		ColumnCount:  d.ColumnCount,
		LastSyncedAt: formatTime(d.LastSyncedAt),
	}
	if d.Schedule != nil {
		s := NewScheduleResponse(*d.Schedule)
		resp.Schedule = &s
	}
	return resp
}

type JobResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	DatasetID    *string          `json:"dataset_id,omitempty"`
	Enabled      bool             `json:"enabled"`
	LastSyncedAt *string          `json:"last_synced_at,omitempty"`
	Schedule     ScheduleResponse `json:"schedule"`
}

func NewJobResponse(j model.Job) JobResponse {
	return JobResponse{
		ID:           j.ID,
		Name:         j.Name,
		DatasetID:    j.DatasetID,
		Enabled:      j.Enabled,
		LastSyncedAt: formatTime(j.LastSyncedAt),
		Schedule:     NewScheduleResponse(j.Schedule),
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
