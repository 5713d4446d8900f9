package accept_request

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mph199/eduvite-backend/internal/domain"
	"github.com/mph199/eduvite-backend/internal/infra/mailer"
	requestRepo "github.com/mph199/eduvite-backend/internal/infra/storage/request"
	slotRepo "github.com/mph199/eduvite-backend/internal/infra/storage/slot"
	"github.com/mph199/eduvite-backend/pkg/ptr"
)

type fakeRequestRepo struct {
	request    *domain.BookingRequest
	getErr     error
	acceptErr  error
	acceptedID *int64
	slotID     *int64
	stamped    bool
}

func (f *fakeRequestRepo) GetByID(_ context.Context, id int64) (*domain.BookingRequest, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.request == nil || f.request.ID != id {
		return nil, requestRepo.ErrRequestNotFound
	}
	return f.request, nil
}

func (f *fakeRequestRepo) Accept(_ context.Context, id int64, assignedSlotID int64) error {
	if f.acceptErr != nil {
		return f.acceptErr
	}
	f.acceptedID = &id
	f.slotID = &assignedSlotID
	return nil
}

func (f *fakeRequestRepo) StampConfirmationSent(_ context.Context, _ int64) error {
	f.stamped = true
	return nil
}

type fakeSlotRepo struct {
	free          []*domain.Slot
	listTimes     [][]string
	byDateUsed    bool
	claimErrs     map[int64]error
	claimedIDs    []int64
	claimedEvents map[int64]*int64
}

func (f *fakeSlotRepo) ListFreeByTimes(_ context.Context, _ int64, _ string, times []string) ([]*domain.Slot, error) {
	f.listTimes = append(f.listTimes, times)
	var out []*domain.Slot
	for _, sl := range f.free {
		for _, t := range times {
			if sl.Time == t {
				out = append(out, sl)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) ListFreeByDate(_ context.Context, _ int64, _ string) ([]*domain.Slot, error) {
	f.byDateUsed = true
	return f.free, nil
}

func (f *fakeSlotRepo) Claim(_ context.Context, id int64, _ domain.SlotStatus, _ domain.VisitorInfo, _ domain.Verification, eventID *int64) error {
	if err := f.claimErrs[id]; err != nil {
		return err
	}
	if f.claimedEvents == nil {
		f.claimedEvents = make(map[int64]*int64)
	}
	f.claimedIDs = append(f.claimedIDs, id)
	f.claimedEvents[id] = eventID
	return nil
}

func (f *fakeSlotRepo) StampConfirmationSent(_ context.Context, _ int64) error {
	return nil
}

type fakeTeacherRepo struct {
	teacher *domain.Teacher
}

func (f *fakeTeacherRepo) GetByID(_ context.Context, _ int64) (*domain.Teacher, error) {
	return f.teacher, nil
}

type fakeSettingsRepo struct {
	settings *domain.Settings
}

func (f *fakeSettingsRepo) Get(_ context.Context) (*domain.Settings, error) {
	return f.settings, nil
}

type fakeNotifier struct {
	configured bool
	single     int
	multi      int
	lastTimes  []string
}

func (f *fakeNotifier) IsConfigured() bool { return f.configured }

func (f *fakeNotifier) SendRequestAccepted(_ string, d mailer.Details, _ string) error {
	f.single++
	f.lastTimes = []string{d.Time}
	return nil
}

func (f *fakeNotifier) SendMultiSlotAccepted(_, _ string, times []string, _, _, _ string) error {
	f.multi++
	f.lastTimes = times
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func verifiedRequest() *domain.BookingRequest {
	now := time.Now()
	return &domain.BookingRequest{
		ID:            10,
		EventID:       ptr.Ptr(int64(1)),
		TeacherID:     5,
		RequestedTime: "16:00 - 16:30",
		Date:          "24.03.2026",
		Status:        domain.RequestRequested,
		Visitor: domain.VisitorInfo{
			Type:       domain.VisitorParent,
			ParentName: ptr.Ptr("Anna Schmidt"),
			ClassName:  "7b",
			Email:      "anna@example.com",
		},
		Verification: domain.Verification{
			VerificationSentAt: &now,
			VerifiedAt:         &now,
		},
	}
}

func freeSlot(id int64, eventID *int64, timeStr string) *domain.Slot {
	return &domain.Slot{
		ID:        id,
		TeacherID: 5,
		EventID:   eventID,
		Date:      "24.03.2026",
		Time:      timeStr,
	}
}

func newTestUseCase(reqs *fakeRequestRepo, slots *fakeSlotRepo, notifier *fakeNotifier) *UseCase {
	return NewUseCase(
		reqs,
		slots,
		&fakeTeacherRepo{teacher: &domain.Teacher{ID: 5, Name: "Herr Weber", Room: ptr.Ptr("B204")}},
		&fakeSettingsRepo{settings: &domain.Settings{SlotMinutes: 15}},
		notifier,
		noopLogger{},
	)
}

func TestExecute_AssignsSlotFromRequestWindow(t *testing.T) {
	reqs := &fakeRequestRepo{request: verifiedRequest()}
	slots := &fakeSlotRepo{free: []*domain.Slot{
		freeSlot(101, ptr.Ptr(int64(1)), "16:00 - 16:15"),
		freeSlot(102, ptr.Ptr(int64(1)), "16:15 - 16:30"),
	}}
	notifier := &fakeNotifier{configured: true}

	resp, err := newTestUseCase(reqs, slots, notifier).Execute(context.Background(), &Request{
		RequestID:      10,
		ActorTeacherID: ptr.Ptr(int64(5)),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.AssignedSlotID)
	assert.Equal(t, []string{"16:00 - 16:15"}, resp.AssignedTimes)
	assert.True(t, resp.EmailSent)
	require.NotNil(t, reqs.acceptedID)
	assert.Equal(t, int64(10), *reqs.acceptedID)
	assert.Equal(t, int64(101), *reqs.slotID)
	assert.True(t, reqs.stamped)
	assert.Equal(t, 1, notifier.single)

	// Кандидаты строятся из окна заявки по гранулярности настроек
	require.Len(t, slots.listTimes, 1)
	assert.Equal(t, []string{"16:00 - 16:15", "16:15 - 16:30"}, slots.listTimes[0])
}

func TestExecute_TeacherChosenTimeWins(t *testing.T) {
	reqs := &fakeRequestRepo{request: verifiedRequest()}
	slots := &fakeSlotRepo{free: []*domain.Slot{
		freeSlot(101, ptr.Ptr(int64(1)), "16:00 - 16:15"),
		freeSlot(102, ptr.Ptr(int64(1)), "16:15 - 16:30"),
	}}

	resp, err := newTestUseCase(reqs, slots, &fakeNotifier{}).Execute(context.Background(), &Request{
		RequestID:      10,
		ActorTeacherID: ptr.Ptr(int64(5)),
		Times:          []string{"16:15 - 16:30"},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(102), resp.AssignedSlotID)
}

func TestExecute_EventSlotPreferredOverLegacy(t *testing.T) {
	reqs := &fakeRequestRepo{request: verifiedRequest()}
	slots := &fakeSlotRepo{free: []*domain.Slot{
		freeSlot(201, nil, "16:00 - 16:15"),
		freeSlot(202, ptr.Ptr(int64(1)), "16:00 - 16:15"),
	}}

	resp, err := newTestUseCase(reqs, slots, &fakeNotifier{}).Execute(context.Background(), &Request{
		RequestID:      10,
		ActorTeacherID: ptr.Ptr(int64(5)),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(202), resp.AssignedSlotID)
}

func TestExecute_LegacySlotInheritsRequestEvent(t *testing.T) {
	reqs := &fakeRequestRepo{request: verifiedRequest()}
	slots := &fakeSlotRepo{free: []*domain.Slot{
		freeSlot(201, nil, "16:00 - 16:15"),
	}}

	resp, err := newTestUseCase(reqs, slots, &fakeNotifier{}).Execute(context.Background(), &Request{
		RequestID:      10,
		ActorTeacherID: ptr.Ptr(int64(5)),
	})

	// Legacy-слот без события привязывается к событию заявки
	require.NoError(t, err)
	assert.Equal(t, int64(201), resp.AssignedSlotID)
	require.Contains(t, slots.claimedEvents, int64(201))
	require.NotNil(t, slots.claimedEvents[201])
	assert.Equal(t, int64(1), *slots.claimedEvents[201])
}

func TestExecute_ForeignEventSlotsAreIneligible(t *testing.T) {
	reqs := &fakeRequestRepo{request: verifiedRequest()}
	slots := &fakeSlotRepo{free: []*domain.Slot{
		freeSlot(301, ptr.Ptr(int64(2)), "16:00 - 16:15"),
		freeSlot(302, ptr.Ptr(int64(3)), "16:15 - 16:30"),
	}}

	_, err := newTestUseCase(reqs, slots, &fakeNotifier{}).Execute(context.Background(), &Request{
		RequestID:      10,
		ActorTeacherID: ptr.Ptr(int64(5)),
	})

	require.ErrorIs(t, err, ErrNoSlotAvailable)
	assert.Contains(t, err.Error(), "[2 3]")
	assert.Empty(t, slots.claimedIDs)
}

func TestExecute_AlreadyAcceptedIsNoOp(t *testing.T) {
	req := verifiedRequest()
	req.Status = domain.RequestAccepted
	req.AssignedSlotID = ptr.Ptr(int64(77))
	reqs := &fakeRequestRepo{request: req}
	slots := &fakeSlotRepo{}

	resp, err := newTestUseCase(reqs, slots, &fakeNotifier{}).Execute(context.Background(), &Request{
		RequestID:      10,
		ActorTeacherID: ptr.Ptr(int64(5)),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(77), resp.AssignedSlotID)
	assert.Nil(t, reqs.acceptedID)
	assert.Empty(t, slots.claimedIDs)
}

func TestExecute_DeclinedRequestIsNotPending(t *testing.T) {
	req := verifiedRequest()
	req.Status = domain.RequestDeclined
	reqs := &fakeRequestRepo{request: req}

	_, err := newTestUseCase(reqs, &fakeSlotRepo{}, &fakeNotifier{}).Execute(context.Background(), &Request{
		RequestID:      10,
		ActorTeacherID: ptr.Ptr(int64(5)),
	})

	assert.ErrorIs(t, err, ErrNotPending)
}

func TestExecute_UnverifiedEmailRejected(t *testing.T) {
	req := verifiedRequest()
	req.Verification.VerifiedAt = nil
	reqs := &fakeRequestRepo{request: req}

	_, err := newTestUseCase(reqs, &fakeSlotRepo{}, &fakeNotifier{}).Execute(context.Background(), &Request{
		RequestID:      10,
		ActorTeacherID: ptr.Ptr(int64(5)),
	})

	assert.ErrorIs(t, err, ErrNotVerified)
}

func TestExecute_ForeignTeacherDenied(t *testing.T) {
	reqs := &fakeRequestRepo{request: verifiedRequest()}

	_, err := newTestUseCase(reqs, &fakeSlotRepo{}, &fakeNotifier{}).Execute(context.Background(), &Request{
		RequestID:      10,
		ActorTeacherID: ptr.Ptr(int64(99)),
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_SweepSkipsOwnershipCheck(t *testing.T) {
	reqs := &fakeRequestRepo{request: verifiedRequest()}
	slots := &fakeSlotRepo{free: []*domain.Slot{
		freeSlot(101, ptr.Ptr(int64(1)), "16:00 - 16:15"),
	}}

	// ActorTeacherID nil означает вызов из фонового прохода
	resp, err := newTestUseCase(reqs, slots, &fakeNotifier{}).Execute(context.Background(), &Request{
		RequestID: 10,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.AssignedSlotID)
}

func TestExecute_LostRaceOnClaim(t *testing.T) {
	reqs := &fakeRequestRepo{request: verifiedRequest()}
	slots := &fakeSlotRepo{
		free:      []*domain.Slot{freeSlot(101, ptr.Ptr(int64(1)), "16:00 - 16:15")},
		claimErrs: map[int64]error{101: slotRepo.ErrSlotAlreadyBooked},
	}

	_, err := newTestUseCase(reqs, slots, &fakeNotifier{}).Execute(context.Background(), &Request{
		RequestID:      10,
		ActorTeacherID: ptr.Ptr(int64(5)),
	})

	assert.ErrorIs(t, err, ErrSlotRace)
	assert.Nil(t, reqs.acceptedID)
}

func TestExecute_ConcurrentResolveAfterClaim(t *testing.T) {
	reqs := &fakeRequestRepo{
		request:   verifiedRequest(),
		acceptErr: requestRepo.ErrRequestNotPending,
	}
	slots := &fakeSlotRepo{free: []*domain.Slot{
		freeSlot(101, ptr.Ptr(int64(1)), "16:00 - 16:15"),
	}}

	_, err := newTestUseCase(reqs, slots, &fakeNotifier{}).Execute(context.Background(), &Request{
		RequestID:      10,
		ActorTeacherID: ptr.Ptr(int64(5)),
	})

	// Слот остаётся занятым, заявку разрулил конкурентный вызов
	assert.ErrorIs(t, err, ErrNotPending)
	assert.Equal(t, []int64{101}, slots.claimedIDs)
}

func TestExecute_MultiSlotAcceptSkipsFailedExtras(t *testing.T) {
	reqs := &fakeRequestRepo{request: verifiedRequest()}
	slots := &fakeSlotRepo{
		free: []*domain.Slot{
			freeSlot(101, ptr.Ptr(int64(1)), "16:00 - 16:15"),
			freeSlot(102, ptr.Ptr(int64(1)), "16:15 - 16:30"),
			freeSlot(103, ptr.Ptr(int64(1)), "16:30 - 16:45"),
		},
		claimErrs: map[int64]error{102: slotRepo.ErrSlotAlreadyBooked},
	}
	notifier := &fakeNotifier{configured: true}

	resp, err := newTestUseCase(reqs, slots, notifier).Execute(context.Background(), &Request{
		RequestID:      10,
		ActorTeacherID: ptr.Ptr(int64(5)),
		Times:          []string{"16:00 - 16:15", "16:15 - 16:30", "16:30 - 16:45"},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.AssignedSlotID)
	assert.Equal(t, []string{"16:00 - 16:15", "16:30 - 16:45"}, resp.AssignedTimes)
	assert.Equal(t, 1, notifier.multi)
	assert.Equal(t, 0, notifier.single)
}

func TestExecute_MalformedWindowFallsBackToWholeDay(t *testing.T) {
	req := verifiedRequest()
	req.RequestedTime = "nachmittags"
	reqs := &fakeRequestRepo{request: req}
	slots := &fakeSlotRepo{free: []*domain.Slot{
		freeSlot(401, ptr.Ptr(int64(1)), "09:00 - 09:15"),
	}}

	resp, err := newTestUseCase(reqs, slots, &fakeNotifier{}).Execute(context.Background(), &Request{
		RequestID:      10,
		ActorTeacherID: ptr.Ptr(int64(5)),
	})

	require.NoError(t, err)
	assert.True(t, slots.byDateUsed)
	assert.Equal(t, int64(401), resp.AssignedSlotID)
}

func TestExecute_InvalidTimeRejected(t *testing.T) {
	reqs := &fakeRequestRepo{request: verifiedRequest()}

	_, err := newTestUseCase(reqs, &fakeSlotRepo{}, &fakeNotifier{}).Execute(context.Background(), &Request{
		RequestID:      10,
		ActorTeacherID: ptr.Ptr(int64(5)),
		Times:          []string{"sechzehn Uhr"},
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_RequestNotFound(t *testing.T) {
	reqs := &fakeRequestRepo{}

	_, err := newTestUseCase(reqs, &fakeSlotRepo{}, &fakeNotifier{}).Execute(context.Background(), &Request{
		RequestID:      404,
		ActorTeacherID: ptr.Ptr(int64(5)),
	})

	assert.ErrorIs(t, err, ErrRequestNotFound)
}
