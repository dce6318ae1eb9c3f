package reserve_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemlab-portal/booking-service/internal/domain"
	bookingRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/booking"
	settingsRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/settings"
	slotRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/slot"
	"github.com/chemlab-portal/booking-service/pkg/types"
)

// Воскресенье, 19 октября 2025, 10:00 UTC - окно бронирования открыто
var sundayMorning = time.Date(2025, 10, 19, 10, 0, 0, 0, time.UTC)

// Слот на следующую среду
var slotDate = time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)

type fakeSlotRepo struct {
	slot       *domain.LabSlot
	getErr     error
	reserveErr error
	reserved   bool
}

func (f *fakeSlotRepo) GetByID(_ context.Context, _ int64) (*domain.LabSlot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.slot, nil
}

func (f *fakeSlotRepo) Reserve(_ context.Context, _, _ int64) error {
	if f.reserveErr != nil {
		return f.reserveErr
	}
	f.reserved = true
	return nil
}

type fakeBookingRepo struct {
	activeBySlot *domain.Booking
	activeByDate *domain.Booking
	createErr    error
	created      *domain.Booking
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *b
	created.ID = 101
	created.CreatedAt = sundayMorning
	f.created = &created
	return &created, nil
}

func (f *fakeBookingRepo) GetActiveByUserAndSlot(_ context.Context, _, _ int64) (*domain.Booking, error) {
	if f.activeBySlot == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.activeBySlot, nil
}

func (f *fakeBookingRepo) GetActiveByUserAndDate(_ context.Context, _ int64, _ time.Time) (*domain.Booking, error) {
	if f.activeByDate == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return f.activeByDate, nil
}

type fakeSettingsRepo struct {
	settings *domain.BookingWindowSettings
	err      error
}

func (f *fakeSettingsRepo) GetLatest(_ context.Context) (*domain.BookingWindowSettings, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.settings, nil
}

type inlineTxManager struct {
	calls int
}

func (m *inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func openSundaySettings() *domain.BookingWindowSettings {
	return &domain.BookingWindowSettings{
		IsRegularBookingEnabled: true,
		RegularAllowedDays:      []string{"sunday"},
	}
}

func availableSlot() *domain.LabSlot {
	start, _ := types.NewTimeStringFromString("10:00")
	end, _ := types.NewTimeStringFromString("12:00")

	return &domain.LabSlot{
		ID:        7,
		Date:      slotDate,
		StartTime: start,
		EndTime:   end,
		Status:    domain.SlotAvailable,
	}
}

func newTestUseCase(slots *fakeSlotRepo, bookings *fakeBookingRepo, settings *fakeSettingsRepo, tx *inlineTxManager) *UseCase {
	return &UseCase{
		slotRepo:     slots,
		bookingRepo:  bookings,
		settingsRepo: settings,
		txManager:    tx,
		timeProvider: fixedTime{now: sundayMorning},
		logger:       nopLogger{},
	}
}

func TestExecute_Success(t *testing.T) {
	slots := &fakeSlotRepo{slot: availableSlot()}
	bookings := &fakeBookingRepo{}
	tx := &inlineTxManager{}

	uc := newTestUseCase(slots, bookings, &fakeSettingsRepo{settings: openSundaySettings()}, tx)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 42, SlotID: 7})

	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.BookingID)
	assert.Equal(t, int64(42), resp.UserID)
	assert.Equal(t, int64(7), resp.SlotID)
	assert.Equal(t, "booked", resp.Status)
	assert.Equal(t, "regular", resp.Window)
	assert.Equal(t, "10:00", resp.StartTime.String())
	assert.NotEmpty(t, resp.Reference)
	assert.True(t, slots.reserved)
	assert.Equal(t, 1, tx.calls)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{}, &fakeBookingRepo{}, &fakeSettingsRepo{}, &inlineTxManager{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 0, SlotID: 7})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{UserID: 42, SlotID: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_WindowClosed(t *testing.T) {
	settings := &fakeSettingsRepo{settings: &domain.BookingWindowSettings{
		IsRegularBookingEnabled: true,
		RegularAllowedDays:      []string{"monday"},
		Message:                 "Запись открыта по понедельникам.",
	}}
	tx := &inlineTxManager{}

	uc := newTestUseCase(&fakeSlotRepo{slot: availableSlot()}, &fakeBookingRepo{}, settings, tx)

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, SlotID: 7})

	assert.ErrorIs(t, err, ErrBookingWindowClosed)
	assert.Contains(t, err.Error(), "по понедельникам")
	assert.Equal(t, 0, tx.calls, "transaction must not start when the window is closed")
}

func TestExecute_NoSettingsMeansClosed(t *testing.T) {
	settings := &fakeSettingsRepo{err: settingsRepo.ErrSettingsNotFound}

	uc := newTestUseCase(&fakeSlotRepo{slot: availableSlot()}, &fakeBookingRepo{}, settings, &inlineTxManager{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, SlotID: 7})

	assert.ErrorIs(t, err, ErrBookingWindowClosed)
}

func TestExecute_SlotNotFound(t *testing.T) {
	slots := &fakeSlotRepo{getErr: slotRepo.ErrSlotNotFound}

	uc := newTestUseCase(slots, &fakeBookingRepo{}, &fakeSettingsRepo{settings: openSundaySettings()}, &inlineTxManager{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, SlotID: 7})

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_SlotUnavailable(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(s *domain.LabSlot)
	}{
		{
			name: "closed slot",
			mutate: func(s *domain.LabSlot) {
				s.Status = domain.SlotClosed
			},
		},
		{
			name: "already booked slot",
			mutate: func(s *domain.LabSlot) {
				s.Status = domain.SlotBooked
				userID := int64(99)
				s.BookedBy = &userID
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := availableSlot()
			tt.mutate(slot)

			uc := newTestUseCase(&fakeSlotRepo{slot: slot}, &fakeBookingRepo{},
				&fakeSettingsRepo{settings: openSundaySettings()}, &inlineTxManager{})

			_, err := uc.Execute(context.Background(), &Request{UserID: 42, SlotID: 7})

			assert.ErrorIs(t, err, ErrSlotUnavailable)
		})
	}
}

func TestExecute_PastSlot(t *testing.T) {
	slot := availableSlot()
	slot.Date = time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC) // прошлое воскресенье

	uc := newTestUseCase(&fakeSlotRepo{slot: slot}, &fakeBookingRepo{},
		&fakeSettingsRepo{settings: openSundaySettings()}, &inlineTxManager{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, SlotID: 7})

	assert.ErrorIs(t, err, ErrPastSlot)
}

func TestExecute_DuplicateSlotBooking(t *testing.T) {
	bookings := &fakeBookingRepo{activeBySlot: &domain.Booking{ID: 5}}

	uc := newTestUseCase(&fakeSlotRepo{slot: availableSlot()}, bookings,
		&fakeSettingsRepo{settings: openSundaySettings()}, &inlineTxManager{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, SlotID: 7})

	assert.ErrorIs(t, err, ErrDuplicateBooking)
}

func TestExecute_DuplicateDateBooking(t *testing.T) {
	bookings := &fakeBookingRepo{activeByDate: &domain.Booking{ID: 5}}

	uc := newTestUseCase(&fakeSlotRepo{slot: availableSlot()}, bookings,
		&fakeSettingsRepo{settings: openSundaySettings()}, &inlineTxManager{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, SlotID: 7})

	assert.ErrorIs(t, err, ErrDuplicateDateBooking)
}

func TestExecute_LostReservationRace(t *testing.T) {
	// Между чтением слота и условным UPDATE слот занял другой студент
	slots := &fakeSlotRepo{slot: availableSlot(), reserveErr: slotRepo.ErrSlotConflict}
	bookings := &fakeBookingRepo{}

	uc := newTestUseCase(slots, bookings, &fakeSettingsRepo{settings: openSundaySettings()}, &inlineTxManager{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, SlotID: 7})

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, bookings.created, "no booking row may be created after a lost race")
}

func TestExecute_CreateFailureAbortsTransaction(t *testing.T) {
	// Вставка бронирования не удалась - транзакция возвращает ошибку,
	// фиксации перехода слота не происходит
	slots := &fakeSlotRepo{slot: availableSlot()}
	bookings := &fakeBookingRepo{createErr: bookingRepo.ErrDuplicateActiveBooking}

	uc := newTestUseCase(slots, bookings, &fakeSettingsRepo{settings: openSundaySettings()}, &inlineTxManager{})

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, SlotID: 7})

	assert.ErrorIs(t, err, ErrDuplicateDateBooking)
}
