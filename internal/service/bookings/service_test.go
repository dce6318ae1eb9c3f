package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemlab-portal/booking-service/internal/domain"
	bookingRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/booking"
	userRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/user"
	"github.com/chemlab-portal/booking-service/internal/service/bookings/models"
)

// Понедельник, 13 октября 2025, 10:00 UTC
var monday = time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC)

type fakeBookingRepo struct {
	booking *domain.Booking
	getErr  error

	cancelErr error
	cancelled bool
	cancelBy  domain.CancelledBy
	reason    string

	noShowErr    error
	markedNoShow bool

	listed []*domain.Booking
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.booking, nil
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return f.listed, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, _ int64, cancelledBy domain.CancelledBy, reason string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled = true
	f.cancelBy = cancelledBy
	f.reason = reason
	return nil
}

func (f *fakeBookingRepo) MarkNoShow(_ context.Context, _ int64) error {
	if f.noShowErr != nil {
		return f.noShowErr
	}
	f.markedNoShow = true
	return nil
}

type fakeSlotRepo struct {
	releaseErr error
	released   bool
}

func (f *fakeSlotRepo) Release(_ context.Context, _ int64) error {
	if f.releaseErr != nil {
		return f.releaseErr
	}
	f.released = true
	return nil
}

type fakeUserRepo struct {
	users map[int64]*domain.LabUser
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.LabUser, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

type inlineTxManager struct{}

func (inlineTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func activeBooking(slotDate time.Time) *domain.Booking {
	return &domain.Booking{
		ID:       33,
		UserID:   42,
		SlotID:   7,
		SlotDate: slotDate,
		Status:   domain.BookingBooked,
	}
}

func usersWithAdmin() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.LabUser{
		1:  {ID: 1, Role: domain.RoleAdmin},
		42: {ID: 42, Role: domain.RoleStudent},
	}}
}

func newTestService(bookings *fakeBookingRepo, slots *fakeSlotRepo, users *fakeUserRepo) *Service {
	return &Service{
		bookingRepo:  bookings,
		slotRepo:     slots,
		userRepo:     users,
		txManager:    inlineTxManager{},
		timeProvider: fixedTime{now: monday},
		logger:       nopLogger{},
	}
}

func TestGetByID_OwnerSeesOwnBooking(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking(monday.AddDate(0, 0, 2))}
	svc := newTestService(bookings, &fakeSlotRepo{}, usersWithAdmin())

	resp, err := svc.GetByID(context.Background(), 33, 42)

	require.NoError(t, err)
	assert.Equal(t, int64(33), resp.ID)
}

func TestGetByID_AdminSeesAnyBooking(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking(monday.AddDate(0, 0, 2))}
	svc := newTestService(bookings, &fakeSlotRepo{}, usersWithAdmin())

	resp, err := svc.GetByID(context.Background(), 33, 1)

	require.NoError(t, err)
	assert.Equal(t, int64(33), resp.ID)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking(monday.AddDate(0, 0, 2))}
	users := usersWithAdmin()
	users.users[50] = &domain.LabUser{ID: 50, Role: domain.RoleStudent}
	svc := newTestService(bookings, &fakeSlotRepo{}, users)

	_, err := svc.GetByID(context.Background(), 33, 50)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	bookings := &fakeBookingRepo{getErr: bookingRepo.ErrBookingNotFound}
	svc := newTestService(bookings, &fakeSlotRepo{}, usersWithAdmin())

	_, err := svc.GetByID(context.Background(), 33, 42)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancel_SelfCancelRule(t *testing.T) {
	tests := []struct {
		name     string
		slotDate time.Time
		wantErr  error
	}{
		{
			name:     "two days ahead is allowed",
			slotDate: time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "next day is less than a full day ahead",
			slotDate: time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC),
			wantErr:  ErrCancellationTooLate,
		},
		{
			name:     "same day is too late",
			slotDate: time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
			wantErr:  ErrCancellationTooLate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bookings := &fakeBookingRepo{booking: activeBooking(tt.slotDate)}
			slots := &fakeSlotRepo{}
			svc := newTestService(bookings, slots, usersWithAdmin())

			err := svc.Cancel(context.Background(), 33, &models.CancelBookingRequest{ActorID: 42})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, bookings.cancelled)
				assert.False(t, slots.released)
				return
			}

			require.NoError(t, err)
			assert.True(t, bookings.cancelled)
			assert.Equal(t, domain.CancelledBySelf, bookings.cancelBy)
			assert.True(t, slots.released, "cancelled booking must release its slot")
		})
	}
}

func TestCancel_AdminCancelsAnytime(t *testing.T) {
	// Администратор отменяет даже в день сессии
	bookings := &fakeBookingRepo{booking: activeBooking(monday)}
	slots := &fakeSlotRepo{}
	svc := newTestService(bookings, slots, usersWithAdmin())

	err := svc.Cancel(context.Background(), 33,
		&models.CancelBookingRequest{ActorID: 1, Reason: "оборудование на ремонте"})

	require.NoError(t, err)
	assert.Equal(t, domain.CancelledByAdmin, bookings.cancelBy)
	assert.Equal(t, "оборудование на ремонте", bookings.reason)
	assert.True(t, slots.released)
}

func TestCancel_StrangerDenied(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking(monday.AddDate(0, 0, 5))}
	users := usersWithAdmin()
	users.users[50] = &domain.LabUser{ID: 50, Role: domain.RoleStudent}
	svc := newTestService(bookings, &fakeSlotRepo{}, users)

	err := svc.Cancel(context.Background(), 33, &models.CancelBookingRequest{ActorID: 50})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, bookings.cancelled)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	booking := activeBooking(monday.AddDate(0, 0, 5))
	booking.Status = domain.BookingCancelled
	svc := newTestService(&fakeBookingRepo{booking: booking}, &fakeSlotRepo{}, usersWithAdmin())

	err := svc.Cancel(context.Background(), 33, &models.CancelBookingRequest{ActorID: 42})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestMarkNoShow_AdminOnly(t *testing.T) {
	bookings := &fakeBookingRepo{booking: activeBooking(monday)}
	svc := newTestService(bookings, &fakeSlotRepo{}, usersWithAdmin())

	err := svc.MarkNoShow(context.Background(), 33, 42)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, bookings.markedNoShow)

	err = svc.MarkNoShow(context.Background(), 33, 1)
	require.NoError(t, err)
	assert.True(t, bookings.markedNoShow)
}

func TestMarkNoShow_NotActive(t *testing.T) {
	bookings := &fakeBookingRepo{
		booking:   activeBooking(monday),
		noShowErr: bookingRepo.ErrCannotCancel,
	}
	svc := newTestService(bookings, &fakeSlotRepo{}, usersWithAdmin())

	err := svc.MarkNoShow(context.Background(), 33, 1)

	assert.ErrorIs(t, err, ErrCannotMarkNoShow)
}
