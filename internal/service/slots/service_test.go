package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chemlab-portal/booking-service/internal/domain"
	slotRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/slot"
	userRepo "github.com/chemlab-portal/booking-service/internal/infra/storage/user"
	"github.com/chemlab-portal/booking-service/internal/service/slots/models"
	"github.com/chemlab-portal/booking-service/pkg/ptr"
)

// Понедельник, 13 октября 2025, 10:00 UTC
var monday = time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC)

type fakeSlotRepo struct {
	slot    *domain.LabSlot
	getErr  error
	listed  []*domain.LabSlot
	listErr error

	created *domain.LabSlot

	closeErr  error
	reopenErr error
	deleteErr error

	closed   bool
	reopened bool
	deleted  bool

	remarks    *string
	remarksSet bool
}

func (f *fakeSlotRepo) Create(_ context.Context, slot *domain.LabSlot) (*domain.LabSlot, error) {
	created := *slot
	created.ID = 7
	f.created = &created
	return &created, nil
}

func (f *fakeSlotRepo) GetByID(_ context.Context, _ int64) (*domain.LabSlot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.slot, nil
}

func (f *fakeSlotRepo) List(_ context.Context, _ domain.SlotsFilter) ([]*domain.LabSlot, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listed, nil
}

func (f *fakeSlotRepo) Close(_ context.Context, _ int64) error {
	if f.closeErr != nil {
		return f.closeErr
	}
	f.closed = true
	return nil
}

func (f *fakeSlotRepo) Reopen(_ context.Context, _ int64) error {
	if f.reopenErr != nil {
		return f.reopenErr
	}
	f.reopened = true
	return nil
}

func (f *fakeSlotRepo) UpdateRemarks(_ context.Context, _ int64, remarks *string) error {
	f.remarks = remarks
	f.remarksSet = true
	return nil
}

func (f *fakeSlotRepo) Delete(_ context.Context, _ int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = true
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

func newTestService(slots *fakeSlotRepo, users *fakeUserRepo) *Service {
	return &Service{
		slotRepo:     slots,
		userRepo:     users,
		timeProvider: fixedTime{now: monday},
		logger:       nopLogger{},
	}
}

func TestCreate_Success(t *testing.T) {
	slots := &fakeSlotRepo{}
	svc := newTestService(slots, usersWithAdmin())

	resp, err := svc.Create(context.Background(), &models.CreateSlotRequest{
		ActorID:   1,
		Date:      "2025-10-20",
		StartTime: "10:00",
		EndTime:   "12:00",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "available", resp.Status)
	assert.Equal(t, "2025-10-20", resp.Date)
	require.NotNil(t, slots.created)
	assert.Equal(t, domain.SlotAvailable, slots.created.Status)
}

func TestCreate_StudentDenied(t *testing.T) {
	svc := newTestService(&fakeSlotRepo{}, usersWithAdmin())

	_, err := svc.Create(context.Background(), &models.CreateSlotRequest{
		ActorID:   42,
		Date:      "2025-10-20",
		StartTime: "10:00",
		EndTime:   "12:00",
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.CreateSlotRequest
	}{
		{
			name: "bad date",
			req:  models.CreateSlotRequest{ActorID: 1, Date: "20.10.2025", StartTime: "10:00", EndTime: "12:00"},
		},
		{
			name: "bad start time",
			req:  models.CreateSlotRequest{ActorID: 1, Date: "2025-10-20", StartTime: "25:00", EndTime: "12:00"},
		},
		{
			name: "start not before end",
			req:  models.CreateSlotRequest{ActorID: 1, Date: "2025-10-20", StartTime: "12:00", EndTime: "10:00"},
		},
		{
			name: "past date",
			req:  models.CreateSlotRequest{ActorID: 1, Date: "2025-10-01", StartTime: "10:00", EndTime: "12:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeSlotRepo{}, usersWithAdmin())

			_, err := svc.Create(context.Background(), &tt.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestClose_And_Reopen(t *testing.T) {
	slots := &fakeSlotRepo{}
	svc := newTestService(slots, usersWithAdmin())

	require.NoError(t, svc.Close(context.Background(), 7, 1))
	assert.True(t, slots.closed)

	require.NoError(t, svc.Reopen(context.Background(), 7, 1))
	assert.True(t, slots.reopened)
}

func TestClose_InvalidTransition(t *testing.T) {
	// Занятый слот нельзя закрыть напрямую
	slots := &fakeSlotRepo{closeErr: slotRepo.ErrInvalidTransition}
	svc := newTestService(slots, usersWithAdmin())

	err := svc.Close(context.Background(), 7, 1)

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateRemarks_TooLong(t *testing.T) {
	svc := newTestService(&fakeSlotRepo{}, usersWithAdmin())

	long := make([]byte, domain.MaxRemarksLength+1)
	for i := range long {
		long[i] = 'x'
	}
	remarks := string(long)

	err := svc.UpdateRemarks(context.Background(), 7, &models.UpdateRemarksRequest{
		ActorID: 1,
		Remarks: &remarks,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete_BookedSlot(t *testing.T) {
	slots := &fakeSlotRepo{slot: &domain.LabSlot{
		ID:       7,
		Status:   domain.SlotBooked,
		BookedBy: ptr.Ptr(int64(42)),
	}}
	svc := newTestService(slots, usersWithAdmin())

	err := svc.Delete(context.Background(), 7, 1)

	assert.ErrorIs(t, err, ErrSlotBooked)
	assert.False(t, slots.deleted)
}

func TestDelete_Success(t *testing.T) {
	slots := &fakeSlotRepo{slot: &domain.LabSlot{ID: 7, Status: domain.SlotAvailable}}
	svc := newTestService(slots, usersWithAdmin())

	err := svc.Delete(context.Background(), 7, 1)

	require.NoError(t, err)
	assert.True(t, slots.deleted)
}

func TestList_InvalidStatus(t *testing.T) {
	svc := newTestService(&fakeSlotRepo{}, usersWithAdmin())

	status := "pending"
	_, err := svc.List(context.Background(), &models.ListSlotsRequest{Status: &status})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_Success(t *testing.T) {
	slots := &fakeSlotRepo{listed: []*domain.LabSlot{
		{ID: 1, Date: monday, Status: domain.SlotAvailable},
		{ID: 2, Date: monday, Status: domain.SlotClosed},
	}}
	svc := newTestService(slots, usersWithAdmin())

	resp, err := svc.List(context.Background(), &models.ListSlotsRequest{})

	require.NoError(t, err)
	assert.Len(t, resp.Slots, 2)
}
