// exposes a Store interface that is passed to API handlers and the sync
// service so both can be tested against fakes.
package db

import (
	"github.com/jmoiron/sqlx"

	"github.com/Nimbus-Analytics/stratus/internal/model"
)

type Store interface {
	// user functions
	CreateUser(email, hashedPassword string, name *string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	UpdateUserProfile(id int, email string, name *string) error

	// dataset functions
	UpsertDataset(d model.Dataset) error
	GetDatasetByID(id string) (*model.Dataset, error)
	ListDatasets() ([]model.Dataset, error)

	// job functions
	UpsertJob(j model.Job) error
	GetJobByID(id string) (*model.Job, error)
	ListJobs() ([]model.Job, error)
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore() Store {
	return &pgStore{db: DB}
}

func (s *pgStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	return CreateUser(email, hashedPassword, name)
}

func (s *pgStore) GetUserByEmail(email string) (*model.User, error) {
	return GetUserByEmail(email)
}

func (s *pgStore) GetUserByID(id int) (*model.User, error) {
	return GetUserByID(id)
}

func (s *pgStore) UpdateUserProfile(id int, email string, name *string) error {
	return UpdateUserProfile(id, email, name)
}

func (s *pgStore) UpsertDataset(d model.Dataset) error {
	return UpsertDataset(d)
}

func (s *pgStore) GetDatasetByID(id string) (*model.Dataset, error) {
	return GetDatasetByID(id)
}

func (s *pgStore) ListDatasets() ([]model.Dataset, error) {
	return ListDatasets()
}

func (s *pgStore) UpsertJob(j model.Job) error {
	return UpsertJob(j)
}

func (s *pgStore) GetJobByID(id string) (*model.Job, error) {
	return GetJobByID(id)
}

func (s *pgStore) ListJobs() ([]model.Job, error) {
	return ListJobs()
}
