package model

import (
	"time"

	"github.com/Nimbus-Analytics/stratus/internal/schedule"
)

// Dataset mirrors a dataset record from the platform API. The normalized
// Schedule is built once at hydration time and is nil when the raw record
// carries no schedule keys at all; it is never half-populated.
type Dataset struct {
	ID           string     `db:"id"             json:"id"`
	Name         string     `db:"name"           json:"name"`
	Description  *string    `db:"description"    json:"description,omitempty"`
	OwnerName    *string    `db:"owner_name"     json:"owner_name,omitempty"`
	RowCount     int        `db:"row_count"      json:"row_count"`
	ColumnCount  int        `db:"column_count"   json:"column_count"`
	LastSyncedAt *time.Time `db:"last_synced_at" json:"last_synced_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at"     json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"     json:"updated_at"`

	Schedule *schedule.Schedule `db:"-" json:"schedule,omitempty"`

	// Raw is the verbatim platform record the dataset was hydrated from,
	// kept so a stored dataset can be re-normalized without a refetch.
	Raw []byte `db:"-" json:"-"`
}
