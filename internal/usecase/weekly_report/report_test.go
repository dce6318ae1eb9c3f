package weekly_report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemlab-portal/booking-service/internal/domain"
	userRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/user"
	"github.com/chemlab-portal/booking-service/pkg/ptr"
)

// Недели ISO 42 (13-19 октября 2025) и 43 (20-26 октября 2025)
var (
	week42Wed = time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC)
	week42Fri = time.Date(2025, 10, 17, 0, 0, 0, 0, time.UTC)
	week43Mon = time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
)

func TestAggregateByWeek(t *testing.T) {
	cancelledBySelf := domain.CancelledBySelf
	cancelledByAdmin := domain.CancelledByAdmin

	bookings := []*domain.Booking{
		// Неделя 42: пришел и сдал 10 образцов
		{SlotDate: week42Wed, Status: domain.BookingBooked, SamplesCount: ptr.Ptr(10)},
		// Неделя 42: активная запись, образцы еще не сданы
		{SlotDate: week42Wed, Status: domain.BookingBooked},
		// Неделя 42: отменил сам
		{SlotDate: week42Fri, Status: domain.BookingCancelled, CancelledBy: &cancelledBySelf},
		// Неделя 42: отменил администратор
		{SlotDate: week42Fri, Status: domain.BookingCancelled, CancelledBy: &cancelledByAdmin},
		// Неделя 42: неявка
		{SlotDate: week42Fri, Status: domain.BookingNoShow},
		// Неделя 43: пришел и сдал 3 образца
		{SlotDate: week43Mon, Status: domain.BookingBooked, SamplesCount: ptr.Ptr(3)},
	}

	weeks := aggregateByWeek(bookings)

	require.Len(t, weeks, 2)

	w42 := weeks[0]
	assert.Equal(t, 2025, w42.Year)
	assert.Equal(t, 42, w42.Week)
	assert.Equal(t, 5, w42.TotalBookings)
	assert.Equal(t, 1, w42.Attended)
	assert.Equal(t, 1, w42.Pending)
	assert.Equal(t, 1, w42.CancelledBySelf)
	assert.Equal(t, 1, w42.CancelledByAdmin)
	assert.Equal(t, 1, w42.NoShows)
	assert.Equal(t, 10, w42.TotalSamples)

	w43 := weeks[1]
	assert.Equal(t, 43, w43.Week)
	assert.Equal(t, 1, w43.TotalBookings)
	assert.Equal(t, 1, w43.Attended)
	assert.Equal(t, 3, w43.TotalSamples)
}

func TestAggregateByWeek_Empty(t *testing.T) {
	assert.Empty(t, aggregateByWeek(nil))
}

func TestAggregateByWeek_YearBoundary(t *testing.T) {
	// 29 декабря 2025 - уже ISO-неделя 1 2026 года
	newYearWeek := time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)
	endOfYear := time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC)

	weeks := aggregateByWeek([]*domain.Booking{
		{SlotDate: endOfYear, Status: domain.BookingBooked},
		{SlotDate: newYearWeek, Status: domain.BookingBooked},
	})

	require.Len(t, weeks, 2)
	assert.Equal(t, 2025, weeks[0].Year)
	assert.Equal(t, 52, weeks[0].Week)
	assert.Equal(t, 2026, weeks[1].Year)
	assert.Equal(t, 1, weeks[1].Week)
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	filter   domain.BookingsFilter
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	f.filter = filter
	return f.bookings, nil
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestExecute_AdminOnly(t *testing.T) {
	users := &fakeUserRepo{users: map[int64]*domain.LabUser{
		1:  {ID: 1, Role: domain.RoleAdmin},
		42: {ID: 42, Role: domain.RoleStudent},
	}}
	uc := NewUseCase(&fakeBookingRepo{}, users, nopLogger{})

	req := &Request{RequestedBy: 42, From: week42Wed, To: week43Mon}
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)

	req.RequestedBy = 1
	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_IncludesInactiveBookings(t *testing.T) {
	users := &fakeUserRepo{users: map[int64]*domain.LabUser{1: {ID: 1, Role: domain.RoleAdmin}}}
	bookings := &fakeBookingRepo{}
	uc := NewUseCase(bookings, users, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{RequestedBy: 1, From: week42Wed, To: week43Mon})

	require.NoError(t, err)
	assert.True(t, bookings.filter.IncludeInactive,
		"report must count cancelled and no-show bookings")
}

func TestExecute_InvalidPeriod(t *testing.T) {
	users := &fakeUserRepo{users: map[int64]*domain.LabUser{1: {ID: 1, Role: domain.RoleAdmin}}}
	uc := NewUseCase(&fakeBookingRepo{}, users, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{RequestedBy: 1, From: week43Mon, To: week42Wed})

	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
