package generate_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mph199/eduvite-backend/internal/domain"
	eventRepo "github.com/mph199/eduvite-backend/internal/infra/storage/event"
	teacherRepo "github.com/mph199/eduvite-backend/internal/infra/storage/teacher"
	"github.com/mph199/eduvite-backend/pkg/ptr"
)

type fakeSlotRepo struct {
	existing      []string
	legacyTimes   []string
	created       []*domain.Slot
	deleteCount   int
	deleteCalled  bool
	existingScope []*int64
}

func (f *fakeSlotRepo) ExistingTimes(_ context.Context, _ int64, _ string, eventID *int64) ([]string, error) {
	f.existingScope = append(f.existingScope, eventID)
	if eventID == nil {
		return f.legacyTimes, nil
	}
	return f.existing, nil
}

func (f *fakeSlotRepo) CreateBatch(_ context.Context, slots []*domain.Slot) (int, error) {
	f.created = append(f.created, slots...)
	return len(slots), nil
}

func (f *fakeSlotRepo) DeleteFree(_ context.Context, _ int64, _ *int64) (int, error) {
	f.deleteCalled = true
	return f.deleteCount, nil
}

type fakeTeacherRepo struct {
	teachers []*domain.Teacher
}

func (f *fakeTeacherRepo) GetByID(_ context.Context, id int64) (*domain.Teacher, error) {
	for _, t := range f.teachers {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, teacherRepo.ErrTeacherNotFound
}

func (f *fakeTeacherRepo) List(_ context.Context) ([]*domain.Teacher, error) {
	return f.teachers, nil
}

type fakeEventRepo struct {
	events []*domain.Event
	active *domain.Event
	latest *domain.Event
}

func (f *fakeEventRepo) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	for _, ev := range f.events {
		if ev.ID == id {
			return ev, nil
		}
	}
	return nil, eventRepo.ErrEventNotFound
}

func (f *fakeEventRepo) GetActive(_ context.Context) (*domain.Event, error) {
	if f.active == nil {
		return nil, eventRepo.ErrNoActiveEvent
	}
	return f.active, nil
}

func (f *fakeEventRepo) GetLatest(_ context.Context) (*domain.Event, error) {
	if f.latest == nil {
		return nil, eventRepo.ErrEventNotFound
	}
	return f.latest, nil
}

type fakeSettingsRepo struct {
	settings *domain.Settings
}

func (f *fakeSettingsRepo) Get(_ context.Context) (*domain.Settings, error) {
	return f.settings, nil
}

type passthroughTx struct{ calls int }

func (p *passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	p.calls++
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func dualTeacher(id int64, name string) *domain.Teacher {
	return &domain.Teacher{ID: id, Name: name, System: domain.SystemDual}
}

func conferenceEvent(id int64, date time.Time) *domain.Event {
	return &domain.Event{ID: id, StartsAt: date}
}

func newTestUseCase(slots *fakeSlotRepo, teachers *fakeTeacherRepo, events *fakeEventRepo, settings *domain.Settings) *UseCase {
	return NewUseCase(slots, teachers, events, &fakeSettingsRepo{settings: settings}, &passthroughTx{}, noopLogger{})
}

func TestExecuteForTeacher_CutsDailyWindow(t *testing.T) {
	eventDate := time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC)
	slots := &fakeSlotRepo{}
	teachers := &fakeTeacherRepo{teachers: []*domain.Teacher{dualTeacher(5, "Herr Weber")}}
	events := &fakeEventRepo{active: conferenceEvent(1, eventDate)}

	report, err := newTestUseCase(slots, teachers, events, &domain.Settings{SlotMinutes: 30}).
		ExecuteForTeacher(context.Background(), &TeacherRequest{TeacherID: 5})

	require.NoError(t, err)
	assert.Equal(t, 4, report.Created)
	assert.Equal(t, 0, report.Skipped)
	require.Len(t, slots.created, 4)
	assert.Equal(t, "16:00 - 16:30", slots.created[0].Time)
	assert.Equal(t, "17:30 - 18:00", slots.created[3].Time)
	for _, sl := range slots.created {
		require.NotNil(t, sl.EventID)
		assert.Equal(t, int64(1), *sl.EventID)
		assert.Equal(t, "24.03.2026", sl.Date)
	}
}

func TestExecuteForTeacher_SkipsExistingTimes(t *testing.T) {
	slots := &fakeSlotRepo{existing: []string{"16:00 - 16:30", "17:00 - 17:30"}}
	teachers := &fakeTeacherRepo{teachers: []*domain.Teacher{dualTeacher(5, "Herr Weber")}}
	events := &fakeEventRepo{active: conferenceEvent(1, time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC))}

	report, err := newTestUseCase(slots, teachers, events, &domain.Settings{SlotMinutes: 30}).
		ExecuteForTeacher(context.Background(), &TeacherRequest{TeacherID: 5})

	require.NoError(t, err)
	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 2, report.Skipped)
	assert.Len(t, slots.created, 2)
}

func TestExecuteForTeacher_DryRunWritesNothing(t *testing.T) {
	slots := &fakeSlotRepo{existing: []string{"16:00 - 16:30"}}
	teachers := &fakeTeacherRepo{teachers: []*domain.Teacher{dualTeacher(5, "Herr Weber")}}
	events := &fakeEventRepo{active: conferenceEvent(1, time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC))}

	report, err := newTestUseCase(slots, teachers, events, &domain.Settings{SlotMinutes: 30}).
		ExecuteForTeacher(context.Background(), &TeacherRequest{TeacherID: 5, DryRun: true})

	require.NoError(t, err)
	assert.Equal(t, 3, report.Created)
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, slots.created)
	assert.False(t, slots.deleteCalled)
}

func TestExecuteForTeacher_ReplaceDeletesFreeSlots(t *testing.T) {
	slots := &fakeSlotRepo{deleteCount: 6}
	teachers := &fakeTeacherRepo{teachers: []*domain.Teacher{dualTeacher(5, "Herr Weber")}}
	events := &fakeEventRepo{active: conferenceEvent(1, time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC))}

	report, err := newTestUseCase(slots, teachers, events, &domain.Settings{SlotMinutes: 30}).
		ExecuteForTeacher(context.Background(), &TeacherRequest{TeacherID: 5, ReplaceExisting: true})

	require.NoError(t, err)
	assert.True(t, slots.deleteCalled)
	assert.Equal(t, 6, report.Deleted)
	assert.Equal(t, 4, report.Created)
}

func TestExecuteForTeacher_InvalidSlotMinutes(t *testing.T) {
	teachers := &fakeTeacherRepo{teachers: []*domain.Teacher{dualTeacher(5, "Herr Weber")}}

	_, err := newTestUseCase(&fakeSlotRepo{}, teachers, &fakeEventRepo{}, &domain.Settings{}).
		ExecuteForTeacher(context.Background(), &TeacherRequest{TeacherID: 5, SlotMinutes: 7})

	assert.ErrorIs(t, err, ErrInvalidSlotMinutes)
}

func TestExecuteForTeacher_UnknownTeacher(t *testing.T) {
	_, err := newTestUseCase(&fakeSlotRepo{}, &fakeTeacherRepo{}, &fakeEventRepo{}, &domain.Settings{}).
		ExecuteForTeacher(context.Background(), &TeacherRequest{TeacherID: 404})

	assert.ErrorIs(t, err, ErrTeacherNotFound)
}

func TestExecuteForTeacher_ExplicitEventWins(t *testing.T) {
	slots := &fakeSlotRepo{}
	teachers := &fakeTeacherRepo{teachers: []*domain.Teacher{dualTeacher(5, "Herr Weber")}}
	events := &fakeEventRepo{
		events: []*domain.Event{conferenceEvent(3, time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC))},
		active: conferenceEvent(1, time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC)),
	}

	report, err := newTestUseCase(slots, teachers, events, &domain.Settings{SlotMinutes: 30}).
		ExecuteForTeacher(context.Background(), &TeacherRequest{TeacherID: 5, EventID: ptr.Ptr(int64(3))})

	require.NoError(t, err)
	assert.Equal(t, "12.05.2026", report.Date)
	require.NotEmpty(t, slots.created)
	assert.Equal(t, int64(3), *slots.created[0].EventID)
}

func TestExecuteForTeacher_FallsBackToLatestEvent(t *testing.T) {
	slots := &fakeSlotRepo{}
	teachers := &fakeTeacherRepo{teachers: []*domain.Teacher{dualTeacher(5, "Herr Weber")}}
	events := &fakeEventRepo{latest: conferenceEvent(2, time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC))}

	report, err := newTestUseCase(slots, teachers, events, &domain.Settings{SlotMinutes: 30}).
		ExecuteForTeacher(context.Background(), &TeacherRequest{TeacherID: 5})

	require.NoError(t, err)
	assert.Equal(t, "10.02.2026", report.Date)
}

func TestExecuteForTeacher_FallsBackToConferenceDate(t *testing.T) {
	slots := &fakeSlotRepo{}
	teachers := &fakeTeacherRepo{teachers: []*domain.Teacher{dualTeacher(5, "Herr Weber")}}
	settings := &domain.Settings{SlotMinutes: 30, ConferenceDate: ptr.Ptr("24.03.2026")}

	report, err := newTestUseCase(slots, teachers, &fakeEventRepo{}, settings).
		ExecuteForTeacher(context.Background(), &TeacherRequest{TeacherID: 5})

	require.NoError(t, err)
	assert.Equal(t, "24.03.2026", report.Date)
	require.NotEmpty(t, slots.created)
	assert.Nil(t, slots.created[0].EventID)
}

func TestExecuteForTeacher_FallsBackToToday(t *testing.T) {
	slots := &fakeSlotRepo{}
	teachers := &fakeTeacherRepo{teachers: []*domain.Teacher{dualTeacher(5, "Herr Weber")}}
	uc := newTestUseCase(slots, teachers, &fakeEventRepo{}, &domain.Settings{SlotMinutes: 30})
	uc.timeProvider = fixedTime{now: time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)}

	report, err := uc.ExecuteForTeacher(context.Background(), &TeacherRequest{TeacherID: 5})

	require.NoError(t, err)
	assert.Equal(t, "31.08.2026", report.Date)
}

func TestExecuteForTeacher_DedupeIsScopedToEvent(t *testing.T) {
	// Слоты без события на те же времена не мешают генерации под событие
	slots := &fakeSlotRepo{legacyTimes: []string{"16:00 - 16:30", "16:30 - 17:00"}}
	teachers := &fakeTeacherRepo{teachers: []*domain.Teacher{dualTeacher(5, "Herr Weber")}}
	events := &fakeEventRepo{active: conferenceEvent(1, time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC))}

	report, err := newTestUseCase(slots, teachers, events, &domain.Settings{SlotMinutes: 30}).
		ExecuteForTeacher(context.Background(), &TeacherRequest{TeacherID: 5})

	require.NoError(t, err)
	assert.Equal(t, 4, report.Created)
	assert.Equal(t, 0, report.Skipped)
	require.Len(t, slots.existingScope, 1)
	require.NotNil(t, slots.existingScope[0])
	assert.Equal(t, int64(1), *slots.existingScope[0])
}

func TestExecuteForEvent_CoversAllTeachers(t *testing.T) {
	slots := &fakeSlotRepo{}
	teachers := &fakeTeacherRepo{teachers: []*domain.Teacher{
		dualTeacher(5, "Herr Weber"),
		{ID: 6, Name: "Frau Koch", System: domain.SystemVollzeit},
	}}
	events := &fakeEventRepo{events: []*domain.Event{
		conferenceEvent(1, time.Date(2026, 3, 24, 0, 0, 0, 0, time.UTC)),
	}}

	report, err := newTestUseCase(slots, teachers, events, &domain.Settings{SlotMinutes: 30}).
		ExecuteForEvent(context.Background(), &EventRequest{EventID: 1})

	require.NoError(t, err)
	assert.Equal(t, int64(1), report.EventID)
	assert.Equal(t, 8, report.Created)
	require.Len(t, report.Teachers, 2)
	assert.Equal(t, "Frau Koch", report.Teachers[1].TeacherName)

	// Окно vollzeit смещено на час относительно dual
	var kochTimes []string
	for _, sl := range slots.created {
		if sl.TeacherID == 6 {
			kochTimes = append(kochTimes, sl.Time)
		}
	}
	assert.Equal(t, []string{"17:00 - 17:30", "17:30 - 18:00", "18:00 - 18:30", "18:30 - 19:00"}, kochTimes)
}

func TestExecuteForEvent_UnknownEvent(t *testing.T) {
	_, err := newTestUseCase(&fakeSlotRepo{}, &fakeTeacherRepo{}, &fakeEventRepo{}, &domain.Settings{}).
		ExecuteForEvent(context.Background(), &EventRequest{EventID: 404})

	assert.ErrorIs(t, err, ErrEventNotFound)
}
