package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chemlab-portal/booking-service/internal/domain"
	bookingRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/booking"
	userRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/user"
	"github.com/chemlab-portal/booking-service/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	userRepo     UserRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Студент видит только свои бронирования, администратор - любые
func (s *Service) GetByID(ctx context.Context, id int64, requestedBy int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, requestedBy)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != requestedBy {
		if err := s.checkAdminAccess(ctx, requestedBy); err != nil {
			s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", requestedBy, id)
			return nil, ErrAccessDenied
		}
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований студента
// Чужую историю может смотреть только администратор
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, requested by=%d, status=%v",
		req.UserID, req.RequestedBy, req.Status)

	if req.UserID != req.RequestedBy {
		if err := s.checkAdminAccess(ctx, req.RequestedBy); err != nil {
			s.logger.Warn("GetUserBookings: access denied for user=%d to history of user=%d",
				req.RequestedBy, req.UserID)
			return nil, ErrAccessDenied
		}
	}

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование и возвращает слот в available
//
// Студент может отменить своё бронирование не позднее чем за сутки до даты
// слота. Администратор отменяет любое бронирование в любой момент. Отмена
// всегда освобождает слот для повторной записи - слот не закрывается.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.ActorID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	// Определяем инициатора отмены
	var cancelledBy domain.CancelledBy

	if booking.UserID == req.ActorID {
		// Самостоятельная отмена: не позднее чем за сутки до даты слота
		if tooLateToCancel(booking.SlotDate, s.timeProvider.Now()) {
			s.logger.Warn("Cancel: too late for self-cancel of booking id=%d (slot date %s)",
				bookingID, booking.SlotDate.Format(domain.DateFormat))
			return ErrCancellationTooLate
		}
		cancelledBy = domain.CancelledBySelf
	} else {
		if err := s.checkAdminAccess(ctx, req.ActorID); err != nil {
			s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d",
				req.ActorID, bookingID)
			return ErrAccessDenied
		}
		cancelledBy = domain.CancelledByAdmin
	}

	// Отмена бронирования и освобождение слота - атомарно
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.Cancel(txCtx, bookingID, cancelledBy, req.Reason); err != nil {
			if errors.Is(err, bookingRepo.ErrCannotCancel) {
				return ErrCannotCancel
			}
			return fmt.Errorf("%w: Cancel - cancel booking: %v", ErrInternal, err)
		}

		if err := s.slotRepo.Release(txCtx, booking.SlotID); err != nil {
			return fmt.Errorf("%w: Cancel - release slot id=%d: %v", ErrInternal, booking.SlotID, err)
		}

		return nil
	})

	if err != nil {
		s.logger.Error("Cancel: failed to cancel booking id=%d: %v", bookingID, err)
		return err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d (by=%s), slot id=%d released",
		bookingID, cancelledBy, booking.SlotID)
	return nil
}

// MarkNoShow отмечает неявку студента (только администратор)
// Статус слота не меняется - это историческая отметка
func (s *Service) MarkNoShow(ctx context.Context, bookingID int64, actorID int64) error {
	s.logger.Info("MarkNoShow: booking id=%d by user=%d", bookingID, actorID)

	if err := s.checkAdminAccess(ctx, actorID); err != nil {
		s.logger.Warn("MarkNoShow: access denied for user=%d", actorID)
		return ErrAccessDenied
	}

	if _, err := s.bookingRepo.GetByID(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("MarkNoShow: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("MarkNoShow: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: MarkNoShow - repository error: %v", ErrInternal, err)
	}

	if err := s.bookingRepo.MarkNoShow(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrCannotCancel) {
			s.logger.Warn("MarkNoShow: booking id=%d is not active", bookingID)
			return ErrCannotMarkNoShow
		}
		s.logger.Error("MarkNoShow: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: MarkNoShow - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkNoShow: booking id=%d marked as no-show", bookingID)
	return nil
}

// Вспомогательные методы

// checkAdminAccess проверяет, что пользователь - администратор
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

// tooLateToCancel проверяет правило самостоятельной отмены:
// до полуночи даты слота должно оставаться не менее суток
func tooLateToCancel(slotDate time.Time, now time.Time) bool {
	slotDay := time.Date(slotDate.Year(), slotDate.Month(), slotDate.Day(), 0, 0, 0, 0, slotDate.Location())
	return slotDay.Sub(now) < domain.MinCancelNoticeHours*time.Hour
}
