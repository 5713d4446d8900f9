package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/internal/infra/mailer"
	eventRepo "github.com/mph199/eduvite-backend/internal/infra/storage/event"
	slotRepo "github.com/mph199/eduvite-backend/internal/infra/storage/slot"
	teacherRepo "github.com/mph199/eduvite-backend/internal/infra/storage/teacher"
	"github.com/mph199/eduvite-backend/pkg/ptr"
)

type fakeSlotRepo struct {
	slots          map[int64]*domain.Slot
	confirmedIDs   []int64
	releasedIDs    []int64
	confirmStamped []int64
	cancelStamped  []int64
}

func newFakeSlotRepo(slots ...*domain.Slot) *fakeSlotRepo {
	m := make(map[int64]*domain.Slot)
	for _, sl := range slots {
		m[sl.ID] = sl
	}
	return &fakeSlotRepo{slots: m}
}

func (f *fakeSlotRepo) Create(_ context.Context, s *domain.Slot) (*domain.Slot, error) {
	s.ID = int64(len(f.slots) + 1)
	f.slots[s.ID] = s
	return s, nil
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.Slot, error) {
	if sl, ok := f.slots[id]; ok {
		return sl, nil
	}
	return nil, slotRepo.ErrSlotNotFound
}

func (f *fakeSlotRepo) List(_ context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	var out []*domain.Slot
	for _, sl := range f.slots {
		if filter.TeacherID != nil && sl.TeacherID != *filter.TeacherID {
			continue
		}
		if filter.Booked != nil && sl.Booked != *filter.Booked {
			continue
		}
		out = append(out, sl)
	}
	return out, nil
}

func (f *fakeSlotRepo) Update(_ context.Context, s *domain.Slot) error {
	f.slots[s.ID] = s
	return nil
}

func (f *fakeSlotRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.slots[id]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	delete(f.slots, id)
	return nil
}

func (f *fakeSlotRepo) Confirm(_ context.Context, id int64) error {
	f.confirmedIDs = append(f.confirmedIDs, id)
	return nil
}

func (f *fakeSlotRepo) Release(_ context.Context, id int64) error {
	f.releasedIDs = append(f.releasedIDs, id)
	return nil
}

func (f *fakeSlotRepo) StampConfirmationSent(_ context.Context, id int64) error {
	f.confirmStamped = append(f.confirmStamped, id)
	return nil
}

func (f *fakeSlotRepo) StampCancellationSent(_ context.Context, id int64) error {
	f.cancelStamped = append(f.cancelStamped, id)
	return nil
}

type fakeTeacherRepo struct {
	teachers map[int64]*domain.Teacher
}

func newFakeTeacherRepo(teachers ...*domain.Teacher) *fakeTeacherRepo {
	m := make(map[int64]*domain.Teacher)
	for _, t := range teachers {
		m[t.ID] = t
	}
	return &fakeTeacherRepo{teachers: m}
}

func (f *fakeTeacherRepo) GetByID(_ context.Context, id int64) (*domain.Teacher, error) {
	if t, ok := f.teachers[id]; ok {
		return t, nil
	}
	return nil, teacherRepo.ErrTeacherNotFound
}

func (f *fakeTeacherRepo) List(_ context.Context) ([]*domain.Teacher, error) {
	var out []*domain.Teacher
	for _, t := range f.teachers {
		out = append(out, t)
	}
	return out, nil
}

type fakeEventRepo struct {
	events map[int64]*domain.Event
	active *domain.Event
}

func (f *fakeEventRepo) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	if ev, ok := f.events[id]; ok {
		return ev, nil
	}
	return nil, eventRepo.ErrEventNotFound
}

func (f *fakeEventRepo) GetActive(_ context.Context) (*domain.Event, error) {
	if f.active == nil {
		return nil, eventRepo.ErrNoActiveEvent
	}
	return f.active, nil
}

type fakeNotifier struct {
	configured    bool
	confirmations []string
	cancellations []string
}

func (f *fakeNotifier) IsConfigured() bool { return f.configured }

func (f *fakeNotifier) SendBookingConfirmed(to string, _ mailer.Details) error {
	f.confirmations = append(f.confirmations, to)
	return nil
}

func (f *fakeNotifier) SendCancellation(to string, _ mailer.Details) error {
	f.cancellations = append(f.cancellations, to)
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func dualTeacher() *domain.Teacher {
	return &domain.Teacher{ID: 5, Name: "Herr Weber", Subject: "Mathematik", System: domain.SystemDual}
}

func reservedSlot(id int64) *domain.Slot {
	status := domain.SlotReserved
	now := time.Now()
	return &domain.Slot{
		ID:        id,
		TeacherID: 5,
		Date:      "24.03.2026",
		Time:      "16:00 - 16:15",
		Booked:    true,
		Status:    &status,
		Visitor:   domain.VisitorInfo{Email: "anna@example.com"},
		Verification: domain.Verification{
			VerificationSentAt: &now,
			VerifiedAt:         &now,
		},
	}
}

func newTestService(slots *fakeSlotRepo, events *fakeEventRepo, notifier *fakeNotifier) *Service {
	return NewService(slots, newFakeTeacherRepo(dualTeacher()), events, notifier, noopLogger{})
}

func TestPublicForTeacher_BuildsRequestGrid(t *testing.T) {
	active := &domain.Event{ID: 1, StartsAt: time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC)}
	svc := newTestService(newFakeSlotRepo(), &fakeEventRepo{active: active}, &fakeNotifier{})

	public, err := svc.PublicForTeacher(context.Background(), 5, nil)

	require.NoError(t, err)
	require.Len(t, public, 4)
	assert.Equal(t, "16:00 - 16:30", public[0].Time)
	assert.Equal(t, "17:30 - 18:00", public[3].Time)
	for _, p := range public {
		assert.Equal(t, "24.03.2026", p.Date)
		require.NotNil(t, p.EventID)
		assert.Equal(t, int64(1), *p.EventID)
		assert.False(t, p.Booked)
	}
}

func TestPublicForTeacher_ExplicitEventOverridesActive(t *testing.T) {
	events := &fakeEventRepo{
		events: map[int64]*domain.Event{3: {ID: 3, StartsAt: time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC)}},
		active: &domain.Event{ID: 1, StartsAt: time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC)},
	}
	svc := newTestService(newFakeSlotRepo(), events, &fakeNotifier{})

	public, err := svc.PublicForTeacher(context.Background(), 5, ptr.Ptr(int64(3)))

	require.NoError(t, err)
	require.NotEmpty(t, public)
	assert.Equal(t, "12.05.2026", public[0].Date)
	assert.Equal(t, int64(3), *public[0].EventID)
}

func TestPublicForTeacher_UnknownTeacher(t *testing.T) {
	svc := newTestService(newFakeSlotRepo(), &fakeEventRepo{}, &fakeNotifier{})

	_, err := svc.PublicForTeacher(context.Background(), 404, nil)

	assert.ErrorIs(t, err, ErrTeacherNotFound)
}

func TestConfirm_ReservedSlotSendsConfirmation(t *testing.T) {
	repo := newFakeSlotRepo(reservedSlot(7))
	notifier := &fakeNotifier{configured: true}
	svc := newTestService(repo, &fakeEventRepo{}, notifier)

	sl, err := svc.Confirm(context.Background(), 5, 7)

	require.NoError(t, err)
	assert.Equal(t, []int64{7}, repo.confirmedIDs)
	require.NotNil(t, sl.Status)
	assert.Equal(t, domain.SlotConfirmed, *sl.Status)
	assert.Equal(t, []string{"anna@example.com"}, notifier.confirmations)
	assert.Equal(t, []int64{7}, repo.confirmStamped)
}

func TestConfirm_UnverifiedVisitorRefused(t *testing.T) {
	sl := reservedSlot(7)
	sl.Verification.VerifiedAt = nil
	repo := newFakeSlotRepo(sl)
	notifier := &fakeNotifier{configured: true}
	svc := newTestService(repo, &fakeEventRepo{}, notifier)

	_, err := svc.Confirm(context.Background(), 5, 7)

	// Бронь остается reserved, пока посетитель не подтвердит email
	assert.ErrorIs(t, err, ErrEmailNotVerified)
	assert.Empty(t, repo.confirmedIDs)
	assert.Empty(t, notifier.confirmations)
}

func TestConfirm_ForeignSlotDenied(t *testing.T) {
	repo := newFakeSlotRepo(reservedSlot(7))
	svc := newTestService(repo, &fakeEventRepo{}, &fakeNotifier{})

	_, err := svc.Confirm(context.Background(), 99, 7)

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.confirmedIDs)
}

func TestConfirm_FreeSlotRejected(t *testing.T) {
	sl := reservedSlot(7)
	sl.Booked = false
	svc := newTestService(newFakeSlotRepo(sl), &fakeEventRepo{}, &fakeNotifier{})

	_, err := svc.Confirm(context.Background(), 5, 7)

	assert.ErrorIs(t, err, ErrSlotNotBooked)
}

func TestCancelByTeacher_SendsCancellationMail(t *testing.T) {
	confirmed := domain.SlotConfirmed
	sl := reservedSlot(7)
	sl.Status = &confirmed
	repo := newFakeSlotRepo(sl)
	notifier := &fakeNotifier{configured: true}
	svc := newTestService(repo, &fakeEventRepo{}, notifier)

	err := svc.CancelByTeacher(context.Background(), 5, 7)

	require.NoError(t, err)
	assert.Equal(t, []int64{7}, repo.releasedIDs)
	assert.Equal(t, []string{"anna@example.com"}, notifier.cancellations)
	assert.Equal(t, []int64{7}, repo.cancelStamped)
}

func TestCancelByTeacher_UnverifiedVisitorGetsNoMail(t *testing.T) {
	sl := reservedSlot(7)
	sl.Verification.VerifiedAt = nil
	repo := newFakeSlotRepo(sl)
	notifier := &fakeNotifier{configured: true}
	svc := newTestService(repo, &fakeEventRepo{}, notifier)

	err := svc.CancelByTeacher(context.Background(), 5, 7)

	require.NoError(t, err)
	assert.Equal(t, []int64{7}, repo.releasedIDs)
	assert.Empty(t, notifier.cancellations)
}

func TestCreate_ValidatesInput(t *testing.T) {
	svc := newTestService(newFakeSlotRepo(), &fakeEventRepo{}, &fakeNotifier{})

	tests := []struct {
		name    string
		input   SlotInput
		wantErr error
	}{
		{"bad date", SlotInput{TeacherID: 5, Date: "2026-03-24", Time: "16:00 - 16:15"}, ErrInvalidInput},
		{"bad time", SlotInput{TeacherID: 5, Date: "24.03.2026", Time: "16 Uhr"}, ErrInvalidInput},
		{"unknown teacher", SlotInput{TeacherID: 404, Date: "24.03.2026", Time: "16:00 - 16:15"}, ErrTeacherNotFound},
		{"unknown event", SlotInput{TeacherID: 5, EventID: ptr.Ptr(int64(404)), Date: "24.03.2026", Time: "16:00 - 16:15"}, ErrEventNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreate_TrimsInput(t *testing.T) {
	svc := newTestService(newFakeSlotRepo(), &fakeEventRepo{}, &fakeNotifier{})

	created, err := svc.Create(context.Background(), SlotInput{
		TeacherID: 5,
		Date:      " 24.03.2026 ",
		Time:      " 16:00 - 16:15 ",
	})

	require.NoError(t, err)
	assert.Equal(t, "24.03.2026", created.Date)
	assert.Equal(t, "16:00 - 16:15", created.Time)
}
