package reserve_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/chemlab-portal/booking-service/internal/domain"
	bookingRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/booking"
	settingsRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/settings"
	slotRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/slot"
	"github.com/chemlab-portal/booking-service/internal/policy"
)

// UseCase use case бронирования слота лаборатории
type UseCase struct {
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет бронирование слота
//
// Предусловия проверяются по порядку, каждое - отдельный режим отказа:
// окно бронирования, существование слота, доступность, дата не в прошлом,
// дубликат по слоту, дубликат по дню. Переход слота available -> booked и
// создание записи бронирования выполняются в одной сериализуемой транзакции:
// либо фиксируются обе записи, либо ни одной. Проигрыш гонки за слот -
// жесткий отказ ErrSlotConflict, без автоматического повтора.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReserveSlot: user=%d, slot=%d", req.UserID, req.SlotID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ReserveSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Проверяем окно бронирования
	currentSettings, err := uc.settingsRepo.GetLatest(ctx)
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		uc.logger.Error("ReserveSlot: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	decision := policy.Evaluate(now, currentSettings)
	if !decision.Allowed {
		uc.logger.Warn("ReserveSlot: booking window closed for user=%d: %s", req.UserID, decision.Message)
		return nil, fmt.Errorf("%w: %s", ErrBookingWindowClosed, decision.Message)
	}

	// Переменная для хранения результата
	var result *domain.Booking
	var reservedSlot *domain.LabSlot

	// 4. Операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Получаем слот (с блокировкой строки)
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("ReserveSlot: slot id=%d not found", req.SlotID)
				return ErrSlotNotFound
			}
			uc.logger.Error("ReserveSlot: failed to get slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 4.2. Слот должен быть свободен (не занят и не закрыт)
		if !slot.IsAvailable() {
			uc.logger.Warn("ReserveSlot: slot id=%d not available, status=%s", req.SlotID, slot.Status)
			return ErrSlotUnavailable
		}

		// 4.3. Дата слота не должна быть в прошлом
		if slot.IsPastDate(now) {
			uc.logger.Warn("ReserveSlot: slot id=%d date %s is in the past",
				req.SlotID, slot.Date.Format(domain.DateFormat))
			return ErrPastSlot
		}

		// 4.4. У студента не должно быть активного бронирования этого слота
		if err := uc.checkNoDuplicate(txCtx, req.UserID, slot); err != nil {
			return err
		}

		// 4.5. Атомарный переход available -> booked (compare-and-set)
		if err := uc.slotRepo.Reserve(txCtx, req.SlotID, req.UserID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotConflict) {
				// Слот заняли между проверкой и записью - первый зафиксировавшийся победил
				uc.logger.Warn("ReserveSlot: lost reservation race for slot id=%d, user=%d",
					req.SlotID, req.UserID)
				return ErrSlotConflict
			}
			uc.logger.Error("ReserveSlot: failed to reserve slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}

		// 4.6. Создаем запись бронирования в той же транзакции
		// Ошибка вставки откатывает и переход слота - осиротевших booked-слотов не остаётся
		booking := &domain.Booking{
			Reference: uuid.NewString(),
			UserID:    req.UserID,
			SlotID:    slot.ID,
			SlotDate:  slot.Date,
			Status:    domain.BookingBooked,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateActiveBooking) {
				uc.logger.Warn("ReserveSlot: duplicate active booking for user=%d, slot=%d",
					req.UserID, req.SlotID)
				return ErrDuplicateDateBooking
			}
			uc.logger.Error("ReserveSlot: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		reservedSlot = slot
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ReserveSlot: successfully created booking id=%d (slot=%d, user=%d, window=%s)",
		result.ID, req.SlotID, req.UserID, decision.Window)

	return &Response{
		BookingID: result.ID,
		Reference: result.Reference,
		UserID:    result.UserID,
		SlotID:    result.SlotID,
		SlotDate:  result.SlotDate,
		StartTime: reservedSlot.StartTime,
		EndTime:   reservedSlot.EndTime,
		Status:    string(result.Status),
		Window:    string(decision.Window),
		CreatedAt: result.CreatedAt,
	}, nil
}

// checkNoDuplicate проверяет оба инварианта уникальности:
// не более одного активного бронирования на слот и на календарный день
func (uc *UseCase) checkNoDuplicate(ctx context.Context, userID int64, slot *domain.LabSlot) error {
	_, err := uc.bookingRepo.GetActiveByUserAndSlot(ctx, userID, slot.ID)
	if err == nil {
		uc.logger.Warn("ReserveSlot: user=%d already booked slot=%d", userID, slot.ID)
		return ErrDuplicateBooking
	}
	if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
		uc.logger.Error("ReserveSlot: duplicate check by slot failed: %v", err)
		return fmt.Errorf("%w: duplicate check by slot: %v", ErrInternal, err)
	}

	_, err = uc.bookingRepo.GetActiveByUserAndDate(ctx, userID, slot.Date)
	if err == nil {
		uc.logger.Warn("ReserveSlot: user=%d already has a booking on %s",
			userID, slot.Date.Format(domain.DateFormat))
		return ErrDuplicateDateBooking
	}
	if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
		uc.logger.Error("ReserveSlot: duplicate check by date failed: %v", err)
		return fmt.Errorf("%w: duplicate check by date: %v", ErrInternal, err)
	}

	return nil
}
