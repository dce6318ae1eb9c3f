package submit_samples

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemlab-portal/booking-service/internal/domain"
	bookingRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/booking"
	"github.com/chemlab-portal/booking-service/pkg/ptr"
	"github.com/chemlab-portal/booking-service/pkg/types"
)

// Сессия 15 октября 2025, 10:00-12:00 UTC
var (
	sessionDate  = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	afterSession = time.Date(2025, 10, 15, 13, 0, 0, 0, time.UTC)
	midSession   = time.Date(2025, 10, 15, 11, 0, 0, 0, time.UTC)
)

type fakeBookingRepo struct {
	booking   *domain.Booking
	getErr    error
	submitErr error

	submittedCount int
	submittedAt    time.Time
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) SubmitSamples(_ context.Context, _ int64, count int, checkinTime time.Time) error {
	if f.submitErr != nil {
		return f.submitErr
	}
	f.submittedCount = count
	f.submittedAt = checkinTime
	return nil
}

type fakeSlotRepo struct {
	slot   *domain.LabSlot
	getErr error
}

func (f *fakeSlotRepo) GetByID(_ context.Context, _ int64) (*domain.LabSlot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.slot, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func activeBooking() *domain.Booking {
	return &domain.Booking{
		ID:       33,
		UserID:   42,
		SlotID:   7,
		SlotDate: sessionDate,
		Status:   domain.BookingBooked,
	}
}

func sessionSlot() *domain.LabSlot {
	start, _ := types.NewTimeStringFromString("10:00")
	end, _ := types.NewTimeStringFromString("12:00")

	return &domain.LabSlot{
		ID:        7,
		Date:      sessionDate,
		StartTime: start,
		EndTime:   end,
		Status:    domain.SlotBooked,
		BookedBy:  ptr.Ptr(int64(42)),
	}
}

func newTestUseCase(bookings *fakeBookingRepo, slots *fakeSlotRepo, now time.Time) *UseCase {
	return &UseCase{
		bookingRepo:  bookings,
		slotRepo:     slots,
		timeProvider: fixedTime{now: now},
		logger:       nopLogger{},
	}
}

func TestExecute_Success(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking()}
	uc := newTestUseCase(bookings, &fakeSlotRepo{slot: sessionSlot()}, afterSession)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 42, BookingID: 33, Count: 12})

	require.NoError(t, err)
	assert.Equal(t, int64(33), resp.BookingID)
	assert.Equal(t, 12, resp.SamplesCount)
	assert.Equal(t, afterSession, resp.CheckinTime)
	assert.Equal(t, 12, bookings.submittedCount)
	assert.Equal(t, afterSession, bookings.submittedAt)
}

func TestExecute_ZeroCountAllowed(t *testing.T) {
	// Ноль образцов - валидная запись: студент пришел, но ничего не сдал
	bookings := &fakeBookingRepo{booking: activeBooking()}
	uc := newTestUseCase(bookings, &fakeSlotRepo{slot: sessionSlot()}, afterSession)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 42, BookingID: 33, Count: 0})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.SamplesCount)
}

func TestExecute_InvalidCount(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeSlotRepo{}, afterSession)

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, BookingID: 33, Count: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(),
		&Request{UserID: 42, BookingID: 33, Count: domain.MaxSamplesCount + 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_BookingNotFound(t *testing.T) {
	bookings := &fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}
	uc := newTestUseCase(bookings, &fakeSlotRepo{}, afterSession)

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, BookingID: 33, Count: 1})

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_ForeignBooking(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking()}
	uc := newTestUseCase(bookings, &fakeSlotRepo{slot: sessionSlot()}, afterSession)

	_, err := uc.Execute(context.Background(), &Request{UserID: 99, BookingID: 33, Count: 1})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_InactiveBooking(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.BookingCancelled, domain.BookingNoShow} {
		t.Run(string(status), func(t *testing.T) {
			booking := activeBooking()
			booking.Status = status

			uc := newTestUseCase(&fakeBookingRepo{booking: booking}, &fakeSlotRepo{slot: sessionSlot()}, afterSession)

			_, err := uc.Execute(context.Background(), &Request{UserID: 42, BookingID: 33, Count: 1})

			assert.ErrorIs(t, err, ErrBookingNotActive)
		})
	}
}

func TestExecute_AlreadySubmitted(t *testing.T) {
	booking := activeBooking()
	booking.SamplesCount = ptr.Ptr(5)

	uc := newTestUseCase(&fakeBookingRepo{booking: booking}, &fakeSlotRepo{slot: sessionSlot()}, afterSession)

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, BookingID: 33, Count: 1})

	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestExecute_TooEarly(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{booking: activeBooking()}, &fakeSlotRepo{slot: sessionSlot()}, midSession)

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, BookingID: 33, Count: 1})

	assert.ErrorIs(t, err, ErrTooEarly)
}

func TestExecute_ConcurrentSubmissionLoses(t *testing.T) {
	// Условный UPDATE не изменил строку: параллельная отправка успела раньше
	bookings := &fakeBookingRepo{
		booking:   activeBooking(),
		submitErr: bookingRepo.ErrSamplesAlreadySubmitted,
	}
	uc := newTestUseCase(bookings, &fakeSlotRepo{slot: sessionSlot()}, afterSession)

	_, err := uc.Execute(context.Background(), &Request{UserID: 42, BookingID: 33, Count: 1})

	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}
