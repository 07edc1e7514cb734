package service

import (
	"fmt"
	"strconv"
	"time"

	"parkhub/internal/db"
	"parkhub/internal/entities"
	apperrors "parkhub/internal/errors"
	"parkhub/internal/logger"
	"parkhub/internal/repository"
)

type ReservationService struct {
	Repo   *repository.ReservationRepository
	Slots  *repository.SlotRepository
	Users  *repository.UserRepository
	Sender *SenderService
	Log    logger.Logger
}

func NewReservationService(
	repo *repository.ReservationRepository,
	slots *repository.SlotRepository,
	users *repository.UserRepository,
	sender *SenderService,
	log logger.Logger,
) *ReservationService {
	return &ReservationService{Repo: repo, Slots: slots, Users: users, Sender: sender, Log: log}
}

// CreateReservation books a slot for a user. The interval and overlap checks
// are authoritative here; clients only hint.
func (s *ReservationService) CreateReservation(userID int, req entities.CreateReservationRequest) (*entities.ReservationResponse, error) {
	if !req.EndTime.After(req.StartTime) {
		return nil, apperrors.ErrInvalidInterval
	}

	slotID, err := strconv.Atoi(req.SlotID)
	if err != nil {
		return nil, apperrors.ErrBadRequest(fmt.Sprintf("invalid slot id %q", req.SlotID))
	}

	slot, err := s.Slots.GetSlotByID(slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil || slot.Status != db.SlotActive {
		return nil, apperrors.ErrSlotUnavailable
	}

	overlap, err := s.Repo.HasOverlap(slotID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, apperrors.ErrSlotUnavailable
	}

	res := &db.Reservation{
		UserID:    userID,
		SlotID:    slotID,
		StartTime: req.StartTime.UTC(),
		EndTime:   req.EndTime.UTC(),
		Status:    db.StatusActive,
	}
	if err := s.Repo.CreateReservation(res); err != nil {
		s.Log.Error("error creating reservation", logger.Error(err))
		return nil, err
	}

	s.notify(userID, *slot, *res, "confirmed")

	slotResp := entities.NewSlotResponse(*slot)
	return &entities.ReservationResponse{
		ID:              strconv.Itoa(res.ID),
		Slot:            &slotResp,
		StartTime:       res.StartTime,
		EndTime:         res.EndTime,
		Status:          res.Status,
		DurationMinutes: int(res.EndTime.Sub(res.StartTime).Round(time.Minute).Minutes()),
		CreatedAt:       res.CreatedAt,
	}, nil
}

// ListReservations returns the user's reservations, optionally restricted by
// persisted status.
func (s *ReservationService) ListReservations(userID int, status string) ([]entities.ReservationResponse, error) {
	return s.Repo.ListByUser(userID, status)
}

// CancelReservation cancels the user's reservation. A reservation whose end
// time has passed is rejected even if the sweep has not reclassified it yet;
// the client-side expiry hint is never trusted for this.
func (s *ReservationService) CancelReservation(id, userID int) error {
	res, err := s.Repo.GetByID(id)
	if err != nil {
		return err
	}
	if res == nil {
		return apperrors.ErrNotFound
	}
	if res.UserID != userID {
		return apperrors.ErrForbidden
	}
	if res.EndTime.Before(time.Now().UTC()) {
		return apperrors.ErrReservationEnded
	}
	if res.Status != db.StatusActive {
		return apperrors.ErrNotFound
	}

	cancelled, err := s.Repo.CancelReservation(id)
	if err != nil {
		return err
	}
	if !cancelled {
		return apperrors.ErrNotFound
	}

	if slot, err := s.Slots.GetSlotByID(res.SlotID); err == nil && slot != nil {
		s.notify(userID, *slot, *res, "cancelled")
	}
	return nil
}

// notify fires the best-effort email and SMS for a status change. Failures
// are logged and dropped; the reservation itself is already committed.
func (s *ReservationService) notify(userID int, slot db.Slot, res db.Reservation, statusWord string) {
	if s.Sender == nil {
		return
	}
	user, err := s.Users.GetByID(userID)
	if err != nil || user == nil {
		return
	}
	s.Sender.SendReservationEmail(user.Email, slot, res, statusWord)
	if user.Phone != "" {
		s.Sender.SendReservationSMS(user.Phone, slot, res, statusWord)
	}
}
