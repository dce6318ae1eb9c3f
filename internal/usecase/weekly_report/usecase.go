package weekly_report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chemlab-portal/booking-service/internal/domain"
	userRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/user"
)

// Request модель запроса недельного отчета
type Request struct {
	RequestedBy int64     // ID администратора
	From        time.Time // Начало периода (включительно)
	To          time.Time // Конец периода (включительно)
}

// Response модель ответа с отчетом по неделям
type Response struct {
	From  time.Time
	To    time.Time
	Weeks []WeekStats
}

// UseCase use case построения недельного отчета посещаемости
// Чистая производная выборка по историческим записям бронирований
type UseCase struct {
	bookingRepo BookingRepository
	userRepo    UserRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, userRepo UserRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Execute строит отчет посещаемости и сданных образцов по ISO-неделям
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("WeeklyReport: user=%d, from=%s, to=%s",
		req.RequestedBy, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.RequestedBy <= 0 {
		return nil, fmt.Errorf("%w: requestedBy must be positive", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("%w: period bounds are required", ErrInvalidPeriod)
	}
	if req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: 'to' is before 'from'", ErrInvalidPeriod)
	}

	// 2. Отчеты доступны только администраторам
	requester, err := uc.userRepo.GetByID(ctx, req.RequestedBy)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("WeeklyReport: requester id=%d not found", req.RequestedBy)
			return nil, ErrAccessDenied
		}
		uc.logger.Error("WeeklyReport: failed to get requester id=%d: %v", req.RequestedBy, err)
		return nil, fmt.Errorf("%w: failed to get requester: %v", ErrInternal, err)
	}
	if !requester.IsAdmin() {
		uc.logger.Warn("WeeklyReport: user id=%d is not an admin", req.RequestedBy)
		return nil, ErrAccessDenied
	}

	// 3. Выбираем все бронирования периода, включая отмененные и no-show
	bookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.BookingsFilter{
		StartDate:       &req.From,
		EndDate:         &req.To,
		IncludeInactive: true,
	})
	if err != nil {
		uc.logger.Error("WeeklyReport: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	weeks := aggregateByWeek(bookings)

	uc.logger.Info("WeeklyReport: aggregated %d bookings into %d weeks", len(bookings), len(weeks))

	return &Response{
		From:  req.From,
		To:    req.To,
		Weeks: weeks,
	}, nil
}
