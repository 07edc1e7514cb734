package service

import (
	"fmt"

	"parkhub/internal/db"
	"parkhub/internal/logger"
	"parkhub/internal/repository"
)

// JobService runs the periodic maintenance jobs.
type JobService struct {
	Repo *repository.JobRepository
	Log  logger.Logger
}

func NewJobService(repo *repository.JobRepository, log logger.Logger) *JobService {
	return &JobService{Repo: repo, Log: log}
}

// SweepExpiredReservations reclassifies active reservations whose end time
// has passed. Until this runs, lapsed rows keep status=active; the consumer
// side derives their expiry locally and waits for this sweep to catch up.
func (s *JobService) SweepExpiredReservations() error {
	ids, err := s.Repo.GetActiveReservationIDsPastEndTime()
	if err != nil {
		return fmt.Errorf("expiry sweep: failed to find lapsed reservations: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	updated, err := s.Repo.UpdateReservationStatuses(ids, db.StatusExpired)
	if err != nil {
		return fmt.Errorf("expiry sweep: failed to update statuses: %w", err)
	}

	s.Log.Info("expiry sweep reclassified reservations",
		logger.Int64("updated", updated))
	return nil
}
