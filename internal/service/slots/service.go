package slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chemlab-portal/booking-service/internal/domain"
	slotRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/slot"
	userRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/user"
	"github.com/chemlab-portal/booking-service/internal/service/slots/models"
	"github.com/chemlab-portal/booking-service/pkg/types"
)

// Service сервис для управления слотами лаборатории
type Service struct {
	slotRepo     SlotRepository
	userRepo     UserRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(slotRepo SlotRepository, userRepo UserRepository, logger Logger) *Service {
	return &Service{
		slotRepo:     slotRepo,
		userRepo:     userRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create создает новый слот (только администратор)
func (s *Service) Create(ctx context.Context, req *models.CreateSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("Create: creating slot %s %s-%s by user=%d", req.Date, req.StartTime, req.EndTime, req.ActorID)

	if err := s.checkAdminAccess(ctx, req.ActorID); err != nil {
		s.logger.Warn("Create: access denied for user=%d", req.ActorID)
		return nil, ErrAccessDenied
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		s.logger.Warn("Create: invalid date %q", req.Date)
		return nil, fmt.Errorf("%w: date must be in format %s", ErrInvalidInput, domain.DateFormat)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		s.logger.Warn("Create: invalid start time %q", req.StartTime)
		return nil, fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		s.logger.Warn("Create: invalid end time %q", req.EndTime)
		return nil, fmt.Errorf("%w: invalid end time: %v", ErrInvalidInput, err)
	}

	if !startTime.IsBefore(endTime) {
		s.logger.Warn("Create: start time %s is not before end time %s", req.StartTime, req.EndTime)
		return nil, fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	if req.Remarks != nil && len(*req.Remarks) > domain.MaxRemarksLength {
		return nil, fmt.Errorf("%w: remarks exceed %d characters", ErrInvalidInput, domain.MaxRemarksLength)
	}

	slot := models.ToDomainSlot(date, startTime, endTime, req.Remarks)
	if slot.IsPastDate(s.timeProvider.Now()) {
		s.logger.Warn("Create: slot date %s is in the past", req.Date)
		return nil, fmt.Errorf("%w: slot date is in the past", ErrInvalidInput)
	}

	created, err := s.slotRepo.Create(ctx, slot)
	if err != nil {
		s.logger.Error("Create: failed to create slot: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: slot id=%d created", created.ID)
	return models.FromDomainSlot(created), nil
}

// GetByID получает слот по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.SlotResponse, error) {
	slot, err := s.slotRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("GetByID: repository error for slot id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlot(slot), nil
}

// List возвращает список слотов по фильтру (публичная операция)
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) (*models.SlotListResponse, error) {
	filter, err := s.buildFilter(req)
	if err != nil {
		return nil, err
	}

	slots, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlotList(slots), nil
}

// Close закрывает свободный слот (только администратор)
// Занятый слот закрыть нельзя - сначала отменяется бронирование
func (s *Service) Close(ctx context.Context, slotID int64, actorID int64) error {
	s.logger.Info("Close: closing slot id=%d by user=%d", slotID, actorID)

	if err := s.checkAdminAccess(ctx, actorID); err != nil {
		s.logger.Warn("Close: access denied for user=%d", actorID)
		return ErrAccessDenied
	}

	if err := s.slotRepo.Close(ctx, slotID); err != nil {
		return s.translateTransitionError("Close", slotID, err)
	}

	s.logger.Info("Close: slot id=%d closed", slotID)
	return nil
}

// Reopen открывает закрытый слот обратно в available (только администратор)
func (s *Service) Reopen(ctx context.Context, slotID int64, actorID int64) error {
	s.logger.Info("Reopen: reopening slot id=%d by user=%d", slotID, actorID)

	if err := s.checkAdminAccess(ctx, actorID); err != nil {
		s.logger.Warn("Reopen: access denied for user=%d", actorID)
		return ErrAccessDenied
	}

	if err := s.slotRepo.Reopen(ctx, slotID); err != nil {
		return s.translateTransitionError("Reopen", slotID, err)
	}

	s.logger.Info("Reopen: slot id=%d reopened", slotID)
	return nil
}

// UpdateRemarks изменяет пометки слота (только администратор)
func (s *Service) UpdateRemarks(ctx context.Context, slotID int64, req *models.UpdateRemarksRequest) error {
	s.logger.Info("UpdateRemarks: updating remarks for slot id=%d by user=%d", slotID, req.ActorID)

	if err := s.checkAdminAccess(ctx, req.ActorID); err != nil {
		s.logger.Warn("UpdateRemarks: access denied for user=%d", req.ActorID)
		return ErrAccessDenied
	}

	if req.Remarks != nil && len(*req.Remarks) > domain.MaxRemarksLength {
		return fmt.Errorf("%w: remarks exceed %d characters", ErrInvalidInput, domain.MaxRemarksLength)
	}

	if err := s.slotRepo.UpdateRemarks(ctx, slotID, req.Remarks); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("UpdateRemarks: slot id=%d not found", slotID)
			return ErrSlotNotFound
		}
		s.logger.Error("UpdateRemarks: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: UpdateRemarks - repository error: %v", ErrInternal, err)
	}

	return nil
}

// Delete удаляет слот (только администратор)
// Занятый слот удалить нельзя
func (s *Service) Delete(ctx context.Context, slotID int64, actorID int64) error {
	s.logger.Info("Delete: deleting slot id=%d by user=%d", slotID, actorID)

	if err := s.checkAdminAccess(ctx, actorID); err != nil {
		s.logger.Warn("Delete: access denied for user=%d", actorID)
		return ErrAccessDenied
	}

	// Условный DELETE не различает "не найден" и "занят" - читаем слот заранее
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("Delete: slot id=%d not found", slotID)
			return ErrSlotNotFound
		}
		s.logger.Error("Delete: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if !slot.CanBeDeleted() {
		s.logger.Warn("Delete: slot id=%d is booked", slotID)
		return ErrSlotBooked
	}

	if err := s.slotRepo.Delete(ctx, slotID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			// Слот успели занять или удалить между чтением и удалением
			s.logger.Warn("Delete: slot id=%d changed concurrently", slotID)
			return ErrSlotBooked
		}
		s.logger.Error("Delete: repository error for slot id=%d: %v", slotID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: slot id=%d deleted", slotID)
	return nil
}

// Вспомогательные методы

func (s *Service) checkAdminAccess(ctx context.Context, userID int64) error {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: checkAdminAccess - failed to get user: %v", ErrInternal, err)
	}

	if !u.IsAdmin() {
		return ErrAccessDenied
	}

	return nil
}

func (s *Service) translateTransitionError(method string, slotID int64, err error) error {
	switch {
	case errors.Is(err, slotRepo.ErrSlotNotFound):
		s.logger.Warn("%s: slot id=%d not found", method, slotID)
		return ErrSlotNotFound
	case errors.Is(err, slotRepo.ErrInvalidTransition):
		s.logger.Warn("%s: invalid transition for slot id=%d", method, slotID)
		return ErrInvalidTransition
	default:
		s.logger.Error("%s: repository error for slot id=%d: %v", method, slotID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
}

func (s *Service) buildFilter(req *models.ListSlotsRequest) (domain.SlotsFilter, error) {
	var filter domain.SlotsFilter

	if req == nil {
		return filter, nil
	}

	if req.StartDate != nil {
		startDate, err := time.Parse(domain.DateFormat, *req.StartDate)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid start date", ErrInvalidInput)
		}
		filter.StartDate = &startDate
	}

	if req.EndDate != nil {
		endDate, err := time.Parse(domain.DateFormat, *req.EndDate)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid end date", ErrInvalidInput)
		}
		filter.EndDate = &endDate
	}

	if req.Status != nil {
		status := domain.SlotStatus(*req.Status)
		switch status {
		case domain.SlotAvailable, domain.SlotBooked, domain.SlotClosed:
			filter.Status = &status
		default:
			return filter, fmt.Errorf("%w: invalid slot status", ErrInvalidInput)
		}
	}

	return filter, nil
}
