package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemlab-portal/booking-service/internal/domain"
	settingsRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/settings"
	userRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/user"
	"github.com/chemlab-portal/booking-service/internal/service/settings/models"
)

type fakeSettingsRepo struct {
	latest    *domain.BookingWindowSettings
	latestErr error

	saved *domain.BookingWindowSettings
}

func (f *fakeSettingsRepo) GetLatest(_ context.Context) (*domain.BookingWindowSettings, error) {
	if f.latestErr != nil {
		return nil, f.latestErr
	}
	return f.latest, nil
}

func (f *fakeSettingsRepo) Save(_ context.Context, s *domain.BookingWindowSettings) (*domain.BookingWindowSettings, error) {
	saved := *s
	saved.ID = 2
	saved.UpdatedAt = time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC)
	f.saved = &saved
	return &saved, nil
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

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func usersWithAdmin() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.LabUser{
		1:  {ID: 1, Role: domain.RoleAdmin},
		42: {ID: 42, Role: domain.RoleStudent},
	}}
}

func newTestService(repo *fakeSettingsRepo, users *fakeUserRepo, now time.Time) *Service {
	return &Service{
		settingsRepo: repo,
		userRepo:     users,
		timeProvider: fixedTime{now: now},
		logger:       nopLogger{},
	}
}

func TestUpdate_NormalizesWeekdays(t *testing.T) {
	repo := &fakeSettingsRepo{}
	svc := newTestService(repo, usersWithAdmin(), time.Now())

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		ActorID:                 1,
		IsRegularBookingEnabled: true,
		RegularAllowedDays:      []string{"Sunday", " monday "},
	})

	require.NoError(t, err)
	require.NotNil(t, repo.saved)
	assert.Equal(t, []string{"sunday", "monday"}, repo.saved.RegularAllowedDays)
	assert.Equal(t, int64(1), repo.saved.UpdatedBy)
	assert.Equal(t, []string{"sunday", "monday"}, resp.RegularAllowedDays)
}

func TestUpdate_UnknownWeekday(t *testing.T) {
	svc := newTestService(&fakeSettingsRepo{}, usersWithAdmin(), time.Now())

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		ActorID:            1,
		RegularAllowedDays: []string{"someday"},
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_EmergencyBounds(t *testing.T) {
	svc := newTestService(&fakeSettingsRepo{}, usersWithAdmin(), time.Now())

	start := "2025-10-20T00:00:00Z"
	end := "2025-10-18T00:00:00Z"

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		ActorID:                1,
		IsEmergencyBookingOpen: true,
		EmergencyBookingStart:  &start,
		EmergencyBookingEnd:    &end,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_StudentDenied(t *testing.T) {
	svc := newTestService(&fakeSettingsRepo{}, usersWithAdmin(), time.Now())

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{ActorID: 42})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGet_NotFound(t *testing.T) {
	repo := &fakeSettingsRepo{latestErr: settingsRepo.ErrSettingsNotFound}
	svc := newTestService(repo, usersWithAdmin(), time.Now())

	_, err := svc.Get(context.Background(), 1)

	assert.ErrorIs(t, err, ErrSettingsNotFound)
}

func TestCurrentWindow_NoSettingsMeansClosed(t *testing.T) {
	repo := &fakeSettingsRepo{latestErr: settingsRepo.ErrSettingsNotFound}
	svc := newTestService(repo, usersWithAdmin(), time.Now())

	resp, err := svc.CurrentWindow(context.Background())

	require.NoError(t, err)
	assert.False(t, resp.Allowed)
	assert.Equal(t, "none", resp.Window)
	assert.NotEmpty(t, resp.Message)
}

func TestCurrentWindow_RegularOpen(t *testing.T) {
	// Воскресенье, 19 октября 2025
	sunday := time.Date(2025, 10, 19, 10, 0, 0, 0, time.UTC)
	repo := &fakeSettingsRepo{latest: &domain.BookingWindowSettings{
		IsRegularBookingEnabled: true,
		RegularAllowedDays:      []string{"sunday"},
	}}
	svc := newTestService(repo, usersWithAdmin(), sunday)

	resp, err := svc.CurrentWindow(context.Background())

	require.NoError(t, err)
	assert.True(t, resp.Allowed)
	assert.Equal(t, "regular", resp.Window)
}
