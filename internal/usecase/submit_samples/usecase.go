package submit_samples

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chemlab-portal/booking-service/internal/domain"
	bookingRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/booking"
	slotRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/slot"
)

// Request модель запроса на сдачу образцов
type Request struct {
	UserID    int64 // ID студента (из токена аутентификации)
	BookingID int64 // ID бронирования
	Count     int   // Количество сданных образцов
}

// Response модель ответа с записанными данными
type Response struct {
	BookingID    int64
	SamplesCount int
	CheckinTime  time.Time
}

// UseCase use case сдачи образцов после лабораторной сессии
type UseCase struct {
	bookingRepo  BookingRepository
	slotRepo     SlotRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		slotRepo:     slotRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute записывает количество сданных образцов
//
// Запись one-shot: принимается один раз, только владельцем бронирования,
// только после окончания сессии (дата слота + время окончания). Повторная
// отправка отклоняется условным UPDATE на уровне репозитория, так что гонка
// двух отправок тоже разрешается в пользу первой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SubmitSamples: user=%d, booking=%d, count=%d", req.UserID, req.BookingID, req.Count)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitSamples: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("SubmitSamples: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("SubmitSamples: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}

	// 4. Бронирование должно принадлежать студенту
	if booking.UserID != req.UserID {
		uc.logger.Warn("SubmitSamples: access denied for user=%d to booking id=%d",
			req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	// 5. Бронирование должно быть активным
	if !booking.IsActive() {
		uc.logger.Warn("SubmitSamples: booking id=%d is not active, status=%s",
			req.BookingID, booking.Status)
		return nil, ErrBookingNotActive
	}

	// 6. Количество уже записано - повторная сдача не предусмотрена
	if booking.HasSamples() {
		uc.logger.Warn("SubmitSamples: booking id=%d already has samples submitted", req.BookingID)
		return nil, ErrAlreadySubmitted
	}

	// 7. Сессия должна закончиться (дата слота + время окончания)
	slot, err := uc.slotRepo.GetByID(ctx, booking.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Error("SubmitSamples: slot id=%d for booking id=%d not found",
				booking.SlotID, req.BookingID)
			return nil, fmt.Errorf("%w: slot not found for booking", ErrInternal)
		}
		uc.logger.Error("SubmitSamples: failed to get slot id=%d: %v", booking.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	sessionEnd, err := slot.EndsAt()
	if err != nil {
		uc.logger.Error("SubmitSamples: failed to compute session end for slot id=%d: %v", slot.ID, err)
		return nil, fmt.Errorf("%w: failed to compute session end: %v", ErrInternal, err)
	}

	if now.Before(sessionEnd) {
		uc.logger.Warn("SubmitSamples: too early for booking id=%d, session ends at %s",
			req.BookingID, sessionEnd.Format(time.RFC3339))
		return nil, ErrTooEarly
	}

	// 8. Одноразовая условная запись; гонку двух отправок выигрывает первая
	if err := uc.bookingRepo.SubmitSamples(ctx, req.BookingID, req.Count, now); err != nil {
		if errors.Is(err, bookingRepo.ErrSamplesAlreadySubmitted) {
			uc.logger.Warn("SubmitSamples: concurrent submission for booking id=%d", req.BookingID)
			return nil, ErrAlreadySubmitted
		}
		uc.logger.Error("SubmitSamples: failed to submit samples for booking id=%d: %v",
			req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to submit samples: %v", ErrInternal, err)
	}

	uc.logger.Info("SubmitSamples: recorded %d samples for booking id=%d", req.Count, req.BookingID)

	return &Response{
		BookingID:    req.BookingID,
		SamplesCount: req.Count,
		CheckinTime:  now,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.Count < 0 {
		return fmt.Errorf("%w: samples count must be non-negative", ErrInvalidInput)
	}

	if req.Count > domain.MaxSamplesCount {
		return fmt.Errorf("%w: samples count exceeds %d", ErrInvalidInput, domain.MaxSamplesCount)
	}

	return nil
}
