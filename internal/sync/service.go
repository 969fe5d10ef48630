// Package sync keeps the local mirror of platform datasets and jobs fresh.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/Nimbus-Analytics/stratus/internal/db"
	"github.com/Nimbus-Analytics/stratus/internal/model"
	"github.com/Nimbus-Analytics/stratus/internal/notify"
	"github.com/Nimbus-Analytics/stratus/internal/redis"
	"github.com/Nimbus-Analytics/stratus/internal/schedule"
)

// rawRecordTTL bounds how long a cached platform record can serve a resync.
const rawRecordTTL = 24 * time.Hour

// Source is the slice of the platform client the sync service needs.
type Source interface {
	ListDatasets(ctx context.Context) ([]model.Dataset, error)
	ListJobs(ctx context.Context) ([]model.Job, error)
}

type Service struct {
	source    Source
	store     db.Store
	publisher *notify.Publisher
	cron      *cron.Cron
	spec      string
}

// New builds a sync service that refreshes on the given cron cadence.
// publisher may be nil when no broker is configured.
func New(source Source, store db.Store, publisher *notify.Publisher, spec string) *Service {
	return &Service{
		source:    source,
		store:     store,
		publisher: publisher,
		cron:      cron.New(),
		spec:      spec,
	}
}

func (s *Service) Start() error {
	_, err := s.cron.AddFunc(s.spec, func() {
		if err := s.RefreshAll(context.Background()); err != nil {
			log.Error().Err(err).Msg("scheduled refresh failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid sync cadence %q: %w", s.spec, err)
	}
	s.cron.Start()
	log.Info().Str("cadence", s.spec).Msg("sync service started")
	return nil
}

func (s *Service) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RefreshAll pulls every dataset and job from the platform, upserts the
// mirror, caches the raw records, and emits a change event whenever an
// entity's stored schedule description changed.
func (s *Service) RefreshAll(ctx context.Context) error {
	if err := s.refreshDatasets(ctx); err != nil {
		return err
	}
	return s.refreshJobs(ctx)
}

func (s *Service) refreshDatasets(ctx context.Context) error {
	datasets, err := s.source.ListDatasets(ctx)
	if err != nil {
		return fmt.Errorf("list datasets: %w", err)
	}

	for _, d := range datasets {
		prevDesc := ""
		if prev, err := s.store.GetDatasetByID(d.ID); err == nil && prev.Schedule != nil {
			prevDesc = schedule.Describe(*prev.Schedule)
		}

		if err := s.store.UpsertDataset(d); err != nil {
			log.Error().Err(err).Str("dataset_id", d.ID).Msg("failed to upsert dataset")
			continue
		}
		redis.CacheRawRecord(ctx, "dataset", d.ID, d.Raw, rawRecordTTL)

		if d.Schedule == nil {
			continue
		}
		for _, issue := range schedule.Validate(*d.Schedule) {
			log.Warn().Str("dataset_id", d.ID).Str("issue", issue.String()).
				Msg("dataset schedule failed strict validation")
		}
		if desc := schedule.Describe(*d.Schedule); desc != prevDesc {
			s.publisher.ScheduleChanged("dataset", d.ID, desc)
		}
	}

	log.Info().Int("count", len(datasets)).Msg("datasets refreshed")
	return nil
}

func (s *Service) refreshJobs(ctx context.Context) error {
	jobs, err := s.source.ListJobs(ctx)
	if err != nil {
		return fmt.Errorf("list jobs: %w", err)
	}

	for _, j := range jobs {
		prevDesc := ""
		if prev, err := s.store.GetJobByID(j.ID); err == nil {
			prevDesc = schedule.Describe(prev.Schedule)
		}

		if err := s.store.UpsertJob(j); err != nil {
			log.Error().Err(err).Str("job_id", j.ID).Msg("failed to upsert job")
			continue
		}
		redis.CacheRawRecord(ctx, "job", j.ID, j.Raw, rawRecordTTL)

		for _, issue := range schedule.Validate(j.Schedule) {
			log.Warn().Str("job_id", j.ID).Str("issue", issue.String()).
				Msg("job schedule failed strict validation")
		}
		if desc := schedule.Describe(j.Schedule); desc != prevDesc {
			s.publisher.ScheduleChanged("job", j.ID, desc)
		}
	}

	log.Info().Int("count", len(jobs)).Msg("jobs refreshed")
	return nil
}
