package saga_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/intern-hub/intern-placement-hub/internal/application/command"
	"github.com/intern-hub/intern-placement-hub/internal/application/saga"
	"github.com/intern-hub/intern-placement-hub/internal/domain/candidate"
	"github.com/intern-hub/intern-placement-hub/internal/domain/shared"
	"github.com/intern-hub/intern-placement-hub/internal/testutils"
)

var adminActor = shared.Actor{ID: "admin-1", Role: shared.RoleAdmin}

func seedAwaitingCandidate(t *testing.T, f *testutils.FakeUoWFactory, email string) *candidate.Candidate {
	t.Helper()
	c, err := candidate.NewCandidate(candidate.NewCandidateParams{
		ID:            "cand-1",
		ApplicationID: "app-1",
		FullName:      "Aliya Bekova",
		StudentID:     "STU-001",
		FieldOfStudy:  "Computer Science",
		Email:         email,
	})
	require.NoError(t, err)
	require.NoError(t, c.Review(candidate.DecisionAccept, ""))
	f.CandidateRepo.Seed(c)
	return c
}

func TestPromotionSaga_WithEmail(t *testing.T) {
	f := testutils.NewFakeUoWFactory()
	seedAwaitingCandidate(t, f, "aliya@example.edu")

	issuer := &testutils.MockAccountIssuer{}
	issuer.On("CreateAccount", mock.Anything, "aliya@example.edu", string(shared.RoleIntern)).
		Return(&command.IssuedAccount{AccountID: "acc-1", TemporaryCredential: "tmp-secret"}, nil)

	notifier := &testutils.RecordingNotifier{}
	events := &testutils.RecordingPublisher{}
	s := saga.NewPromotionSaga(f, issuer, notifier, events, &testutils.SeqIDGenerator{Prefix: "intern"})

	res, err := s.Execute(context.Background(), saga.PromotionInput{
		Actor:         adminActor,
		CandidateID:   "cand-1",
		StartDate:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		CorrelationID: "corr-42",
	})
	require.NoError(t, err)
	issuer.AssertExpectations(t)

	assert.Equal(t, candidate.StatusAccountCreated, res.Candidate.Status)
	assert.True(t, res.AccountCreated)
	assert.Equal(t, "INT-2026-INTERN", res.Intern.InternID)
	assert.Equal(t, "acc-1", res.Intern.AccountID)
	assert.True(t, f.LastUnit().Committed)

	// The candidate and intern persist exactly as returned.
	storedIntern, err := f.InternRepo.GetByCandidateID(context.Background(), "cand-1")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", storedIntern.AccountID)

	assert.Equal(t, []shared.EventType{
		shared.EventCandidateArrived,
		shared.EventInternPromoted,
		shared.EventInternAccountCreated,
	}, events.Types())
	for _, e := range events.Events {
		be, ok := e.(shared.BaseEvent)
		require.True(t, ok)
		assert.Equal(t, "corr-42", be.CorrelationID)
	}

	// The temporary credential rides exactly once, in the account notification.
	promoted := notifier.ByEvent(string(shared.EventInternPromoted))
	require.Len(t, promoted, 1)
	assert.NotContains(t, promoted[0].Payload, "temporary_credential")

	accountNote := notifier.ByEvent(string(shared.EventInternAccountCreated))
	require.Len(t, accountNote, 1)
	assert.Equal(t, "aliya@example.edu", accountNote[0].Recipient)
	assert.Equal(t, "tmp-secret", accountNote[0].Payload["temporary_credential"])
}

func TestPromotionSaga_WithoutEmail(t *testing.T) {
	f := testutils.NewFakeUoWFactory()
	seedAwaitingCandidate(t, f, "")

	issuer := &testutils.MockAccountIssuer{}
	notifier := &testutils.RecordingNotifier{}
	s := saga.NewPromotionSaga(f, issuer, notifier, nil, &testutils.SeqIDGenerator{Prefix: "intern"})

	res, err := s.Execute(context.Background(), saga.PromotionInput{
		Actor:       adminActor,
		CandidateID: "cand-1",
	})
	require.NoError(t, err)

	assert.Equal(t, candidate.StatusArrived, res.Candidate.Status)
	assert.False(t, res.AccountCreated)
	assert.Empty(t, res.Intern.AccountID)
	issuer.AssertNotCalled(t, "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, notifier.ByEvent(string(shared.EventInternAccountCreated)))
}

func TestPromotionSaga_RepeatedArrival(t *testing.T) {
	f := testutils.NewFakeUoWFactory()
	seedAwaitingCandidate(t, f, "")

	s := saga.NewPromotionSaga(f, &testutils.MockAccountIssuer{}, nil, nil, &testutils.SeqIDGenerator{Prefix: "intern"})

	_, err := s.Execute(context.Background(), saga.PromotionInput{Actor: adminActor, CandidateID: "cand-1"})
	require.NoError(t, err)

	_, err = s.Execute(context.Background(), saga.PromotionInput{Actor: adminActor, CandidateID: "cand-1"})
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestPromotionSaga_IssuerFailureAborts(t *testing.T) {
	f := testutils.NewFakeUoWFactory()
	seedAwaitingCandidate(t, f, "aliya@example.edu")

	issuer := &testutils.MockAccountIssuer{}
	issuer.On("CreateAccount", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("identity provider unavailable"))

	notifier := &testutils.RecordingNotifier{}
	s := saga.NewPromotionSaga(f, issuer, notifier, nil, &testutils.SeqIDGenerator{Prefix: "intern"})

	_, err := s.Execute(context.Background(), saga.PromotionInput{Actor: adminActor, CandidateID: "cand-1"})
	require.Error(t, err)

	var pErr *saga.PromotionError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, saga.StepIssueAccount, pErr.Step)

	assert.False(t, f.LastUnit().Committed)
	assert.True(t, f.LastUnit().RolledBack)
	assert.Empty(t, notifier.Sent)
}

func TestPromotionSaga_Authorization(t *testing.T) {
	f := testutils.NewFakeUoWFactory()
	seedAwaitingCandidate(t, f, "")

	s := saga.NewPromotionSaga(f, &testutils.MockAccountIssuer{}, nil, nil, &testutils.SeqIDGenerator{})

	_, err := s.Execute(context.Background(), saga.PromotionInput{
		Actor:       shared.Actor{ID: "sup-1", Role: shared.RoleSupervisor},
		CandidateID: "cand-1",
	})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	// A missing candidate id is a validation failure, not an internal error.
	_, err = s.Execute(context.Background(), saga.PromotionInput{Actor: adminActor})
	assert.ErrorIs(t, err, shared.ErrValidation)
}
