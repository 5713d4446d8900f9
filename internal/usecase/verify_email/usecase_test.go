package verify_email

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

type fakeSlotRepo struct {
	byToken  *domain.Slot
	byID     *domain.Slot
	verified []int64
	stamped  []int64
}

func (f *fakeSlotRepo) GetByID(_ context.Context, _ int64) (*domain.Slot, error) {
	if f.byID == nil {
		return nil, slotRepo.ErrSlotNotFound
	}
	return f.byID, nil
}

func (f *fakeSlotRepo) FindByTokenHash(_ context.Context, tokenHash string) (*domain.Slot, error) {
	if f.byToken == nil || f.byToken.Verification.TokenHash == nil || *f.byToken.Verification.TokenHash != tokenHash {
		return nil, slotRepo.ErrSlotNotFound
	}
	return f.byToken, nil
}

func (f *fakeSlotRepo) MarkVerified(_ context.Context, id int64) error {
	f.verified = append(f.verified, id)
	return nil
}

func (f *fakeSlotRepo) StampConfirmationSent(_ context.Context, id int64) error {
	f.stamped = append(f.stamped, id)
	return nil
}

type fakeRequestRepo struct {
	byToken  *domain.BookingRequest
	verified []int64
	stamped  []int64
}

func (f *fakeRequestRepo) FindByTokenHash(_ context.Context, tokenHash string) (*domain.BookingRequest, error) {
	if f.byToken == nil || f.byToken.Verification.TokenHash == nil || *f.byToken.Verification.TokenHash != tokenHash {
		return nil, requestRepo.ErrRequestNotFound
	}
	return f.byToken, nil
}

func (f *fakeRequestRepo) MarkVerified(_ context.Context, id int64) error {
	f.verified = append(f.verified, id)
	return nil
}

func (f *fakeRequestRepo) StampConfirmationSent(_ context.Context, id int64) error {
	f.stamped = append(f.stamped, id)
	return nil
}

type fakeTeacherRepo struct{}

func (fakeTeacherRepo) GetByID(_ context.Context, _ int64) (*domain.Teacher, error) {
	return &domain.Teacher{ID: 5, Name: "Herr Weber", Room: ptr.Ptr("B204")}, nil
}

type fakeNotifier struct {
	configured bool
	confirmed  []mailer.Details
	accepted   []mailer.Details
}

func (f *fakeNotifier) IsConfigured() bool { return f.configured }

func (f *fakeNotifier) SendBookingConfirmed(_ string, d mailer.Details) error {
	f.confirmed = append(f.confirmed, d)
	return nil
}

func (f *fakeNotifier) SendRequestAccepted(_ string, d mailer.Details, _ string) error {
	f.accepted = append(f.accepted, d)
	return nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

const testToken = "abc123"

func pendingSlot(sentAt time.Time) *domain.Slot {
	status := domain.SlotReserved
	return &domain.Slot{
		ID:        7,
		TeacherID: 5,
		Date:      "24.03.2026",
		Time:      "16:00 - 16:15",
		Booked:    true,
		Status:    &status,
		Visitor:   domain.VisitorInfo{Email: "anna@example.com"},
		Verification: domain.Verification{
			TokenHash:          ptr.Ptr(domain.HashToken(testToken)),
			VerificationSentAt: &sentAt,
		},
	}
}

func newTestUseCase(slots *fakeSlotRepo, reqs *fakeRequestRepo, notifier *fakeNotifier, now time.Time) *UseCase {
	uc := NewUseCase(slots, reqs, fakeTeacherRepo{}, notifier, 72*time.Hour, noopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_VerifiesReservedSlot(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	slots := &fakeSlotRepo{byToken: pendingSlot(now.Add(-time.Hour))}

	resp, err := newTestUseCase(slots, &fakeRequestRepo{}, &fakeNotifier{}, now).
		Execute(context.Background(), testToken)

	require.NoError(t, err)
	assert.Equal(t, KindSlot, resp.Kind)
	assert.Contains(t, resp.Message, "bestätigt")
	assert.Equal(t, []int64{7}, slots.verified)
}

func TestExecute_SlotVerificationIsIdempotent(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	sl := pendingSlot(now.Add(-100 * time.Hour))
	verifiedAt := now.Add(-99 * time.Hour)
	sl.Verification.VerifiedAt = &verifiedAt
	slots := &fakeSlotRepo{byToken: sl}

	resp, err := newTestUseCase(slots, &fakeRequestRepo{}, &fakeNotifier{}, now).
		Execute(context.Background(), testToken)

	// Погашенный токен не истекает и не помечается повторно
	require.NoError(t, err)
	assert.Equal(t, KindSlot, resp.Kind)
	assert.Empty(t, slots.verified)
}

func TestExecute_ExpiredTokenRejected(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	slots := &fakeSlotRepo{byToken: pendingSlot(now.Add(-73 * time.Hour))}

	_, err := newTestUseCase(slots, &fakeRequestRepo{}, &fakeNotifier{}, now).
		Execute(context.Background(), testToken)

	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Empty(t, slots.verified)
}

func TestExecute_TokenAtTTLBoundaryStillValid(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	slots := &fakeSlotRepo{byToken: pendingSlot(now.Add(-72 * time.Hour))}

	_, err := newTestUseCase(slots, &fakeRequestRepo{}, &fakeNotifier{}, now).
		Execute(context.Background(), testToken)

	assert.NoError(t, err)
}

func TestExecute_LateConfirmationEmailForConfirmedSlot(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	sl := pendingSlot(now.Add(-time.Hour))
	confirmed := domain.SlotConfirmed
	sl.Status = &confirmed
	slots := &fakeSlotRepo{byToken: sl}
	notifier := &fakeNotifier{configured: true}

	_, err := newTestUseCase(slots, &fakeRequestRepo{}, notifier, now).
		Execute(context.Background(), testToken)

	require.NoError(t, err)
	require.Len(t, notifier.confirmed, 1)
	assert.Equal(t, "Herr Weber", notifier.confirmed[0].TeacherName)
	assert.Equal(t, "B204", notifier.confirmed[0].Room)
	assert.Equal(t, []int64{7}, slots.stamped)
}

func TestExecute_VerifiesBookingRequest(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	sentAt := now.Add(-time.Hour)
	reqs := &fakeRequestRepo{byToken: &domain.BookingRequest{
		ID:        11,
		TeacherID: 5,
		Status:    domain.RequestRequested,
		Visitor:   domain.VisitorInfo{Email: "anna@example.com"},
		Verification: domain.Verification{
			TokenHash:          ptr.Ptr(domain.HashToken(testToken)),
			VerificationSentAt: &sentAt,
		},
	}}

	resp, err := newTestUseCase(&fakeSlotRepo{}, reqs, &fakeNotifier{}, now).
		Execute(context.Background(), testToken)

	require.NoError(t, err)
	assert.Equal(t, KindRequest, resp.Kind)
	assert.Equal(t, []int64{11}, reqs.verified)
}

func TestExecute_AcceptedRequestGetsDeferredEmail(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	sentAt := now.Add(-time.Hour)
	reqs := &fakeRequestRepo{byToken: &domain.BookingRequest{
		ID:             11,
		TeacherID:      5,
		Status:         domain.RequestAccepted,
		AssignedSlotID: ptr.Ptr(int64(7)),
		Date:           "24.03.2026",
		RequestedTime:  "16:00 - 16:30",
		Visitor:        domain.VisitorInfo{Email: "anna@example.com"},
		Verification: domain.Verification{
			TokenHash:          ptr.Ptr(domain.HashToken(testToken)),
			VerificationSentAt: &sentAt,
		},
	}}
	slots := &fakeSlotRepo{byID: &domain.Slot{ID: 7, Date: "24.03.2026", Time: "16:15 - 16:30"}}
	notifier := &fakeNotifier{configured: true}

	_, err := newTestUseCase(slots, reqs, notifier, now).Execute(context.Background(), testToken)

	require.NoError(t, err)
	require.Len(t, notifier.accepted, 1)
	// Время берется из назначенного слота, а не из окна заявки
	assert.Equal(t, "16:15 - 16:30", notifier.accepted[0].Time)
	assert.Equal(t, []int64{11}, reqs.stamped)
}

func TestExecute_UnknownToken(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	_, err := newTestUseCase(&fakeSlotRepo{}, &fakeRequestRepo{}, &fakeNotifier{}, now).
		Execute(context.Background(), "nope")

	assert.ErrorIs(t, err, ErrTokenNotFound)
}

func TestExecute_EmptyToken(t *testing.T) {
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	_, err := newTestUseCase(&fakeSlotRepo{}, &fakeRequestRepo{}, &fakeNotifier{}, now).
		Execute(context.Background(), "")

	assert.ErrorIs(t, err, ErrTokenNotFound)
}
