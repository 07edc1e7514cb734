package service

import (
	"fmt"

	"parkhub/internal/db"
	"parkhub/internal/entities"
	apperrors "parkhub/internal/errors"
	"parkhub/internal/repository"
)

type SlotService struct {
	Repo *repository.SlotRepository
}

func NewSlotService(repo *repository.SlotRepository) *SlotService {
	return &SlotService{Repo: repo}
}

func (s *SlotService) ListSlots(zone, slotType, status string) ([]entities.SlotResponse, error) {
	if slotType != "" {
		norm, ok := db.NormalizeSlotType(slotType)
		if !ok {
			return nil, apperrors.ErrBadRequest(fmt.Sprintf("unknown slot type %q", slotType))
		}
		slotType = norm
	}

	slots, err := s.Repo.ListSlots(zone, slotType, status)
	if err != nil {
		return nil, err
	}

	out := make([]entities.SlotResponse, 0, len(slots))
	for _, slot := range slots {
		out = append(out, entities.NewSlotResponse(slot))
	}
	return out, nil
}

func (s *SlotService) CreateSlot(req entities.CreateSlotRequest) (*entities.SlotResponse, error) {
	if req.SlotCode == "" || req.Zone == "" {
		return nil, apperrors.ErrBadRequest("slotCode and zone are required")
	}
	slotType, ok := db.NormalizeSlotType(req.Type)
	if !ok {
		return nil, apperrors.ErrBadRequest(fmt.Sprintf("unknown slot type %q", req.Type))
	}

	slot := &db.Slot{
		SlotCode: req.SlotCode,
		Zone:     req.Zone,
		Type:     slotType,
		Status:   db.SlotActive,
	}
	if err := s.Repo.CreateSlot(slot); err != nil {
		return nil, fmt.Errorf("error creating slot: %w", err)
	}

	resp := entities.NewSlotResponse(*slot)
	return &resp, nil
}

func (s *SlotService) DeleteSlot(id int) error {
	deleted, err := s.Repo.DeleteSlot(id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.ErrNotFound
	}
	return nil
}
