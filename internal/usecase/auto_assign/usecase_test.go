package auto_assign

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/internal/usecase/accept_request"
)

type fakeRequestRepo struct {
	overdue    []*domain.BookingRequest
	listErr    error
	gotBefore  time.Time
	gotTeacher *int64
}

func (f *fakeRequestRepo) ListOverdue(_ context.Context, before time.Time, teacherID *int64) ([]*domain.BookingRequest, error) {
	f.gotBefore = before
	f.gotTeacher = teacherID
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.overdue, nil
}

type fakeAccepter struct {
	failIDs  map[int64]error
	executed []int64
}

func (f *fakeAccepter) Execute(_ context.Context, req *accept_request.Request) (*accept_request.Response, error) {
	f.executed = append(f.executed, req.RequestID)
	if err := f.failIDs[req.RequestID]; err != nil {
		return nil, err
	}
	return &accept_request.Response{RequestID: req.RequestID, AssignedSlotID: req.RequestID + 100}, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func overdueRequest(id, teacherID int64) *domain.BookingRequest {
	return &domain.BookingRequest{ID: id, TeacherID: teacherID, Status: domain.RequestRequested}
}

func TestExecute_AssignsAllOverdue(t *testing.T) {
	repo := &fakeRequestRepo{overdue: []*domain.BookingRequest{
		overdueRequest(1, 5),
		overdueRequest(2, 5),
		overdueRequest(3, 7),
	}}
	accepter := &fakeAccepter{}
	uc := NewUseCase(repo, accepter, 2*time.Hour, noopLogger{})

	report, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, &Report{Scanned: 3, Assigned: 3, Failed: 0}, report)
	assert.Equal(t, []int64{1, 2, 3}, accepter.executed)
	assert.Nil(t, repo.gotTeacher)
}

func TestExecute_CutoffUsesGracePeriod(t *testing.T) {
	now := time.Date(2026, 3, 24, 12, 0, 0, 0, time.UTC)
	repo := &fakeRequestRepo{}
	uc := NewUseCase(repo, &fakeAccepter{}, 3*time.Hour, noopLogger{})
	uc.timeProvider = fixedTime{now: now}

	_, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, now.Add(-3*time.Hour), repo.gotBefore)
}

func TestExecute_NonPositiveGraceFallsBackToDefault(t *testing.T) {
	now := time.Date(2026, 3, 24, 12, 0, 0, 0, time.UTC)
	repo := &fakeRequestRepo{}
	uc := NewUseCase(repo, &fakeAccepter{}, 0, noopLogger{})
	uc.timeProvider = fixedTime{now: now}

	_, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, now.Add(-domain.DefaultAutoAssignGraceHours*time.Hour), repo.gotBefore)
}

func TestExecute_FailureDoesNotStopSweep(t *testing.T) {
	repo := &fakeRequestRepo{overdue: []*domain.BookingRequest{
		overdueRequest(1, 5),
		overdueRequest(2, 5),
		overdueRequest(3, 5),
	}}
	accepter := &fakeAccepter{failIDs: map[int64]error{
		2: accept_request.ErrNoSlotAvailable,
	}}
	uc := NewUseCase(repo, accepter, time.Hour, noopLogger{})

	report, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, &Report{Scanned: 3, Assigned: 2, Failed: 1}, report)
	assert.Equal(t, []int64{1, 2, 3}, accepter.executed)
}

func TestExecuteForTeacher_FiltersByTeacher(t *testing.T) {
	repo := &fakeRequestRepo{overdue: []*domain.BookingRequest{overdueRequest(4, 9)}}
	accepter := &fakeAccepter{}
	uc := NewUseCase(repo, accepter, time.Hour, noopLogger{})

	report, err := uc.ExecuteForTeacher(context.Background(), 9)

	require.NoError(t, err)
	require.NotNil(t, repo.gotTeacher)
	assert.Equal(t, int64(9), *repo.gotTeacher)
	assert.Equal(t, 1, report.Assigned)
}

func TestExecute_ListErrorWrapped(t *testing.T) {
	repo := &fakeRequestRepo{listErr: errors.New("connection refused")}
	uc := NewUseCase(repo, &fakeAccepter{}, time.Hour, noopLogger{})

	_, err := uc.Execute(context.Background())

	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_NothingOverdue(t *testing.T) {
	repo := &fakeRequestRepo{}
	accepter := &fakeAccepter{}
	uc := NewUseCase(repo, accepter, time.Hour, noopLogger{})

	report, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, &Report{}, report)
	assert.Empty(t, accepter.executed)
}
