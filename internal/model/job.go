package model

import (
	"time"

	"github.com/Nimbus-Analytics/stratus/internal/schedule"
)

// Job mirrors an execution job record from the platform API. Unlike
// Dataset, a Job always carries a Schedule: a record with no schedule data
// normalizes to the simple/manual default rather than nil.
type Job struct {
	ID           string     `db:"id"             json:"id"`
	Name         string     `db:"name"           json:"name"`
	DatasetID    *string    `db:"dataset_id"     json:"dataset_id,omitempty"`
	Enabled      bool       `db:"enabled"        json:"enabled"`
	LastSyncedAt *time.Time `db:"last_synced_at" json:"last_synced_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at"     json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"     json:"updated_at"`

	Schedule schedule.Schedule `db:"-" json:"schedule"`

	// Raw is the verbatim platform record the job was hydrated from.
	Raw []byte `db:"-" json:"-"`
}
