package checkout

import (
	"context"
	"errors"
	"testing"

	"homely/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit_DirectMethodConfirmsImmediately(t *testing.T) {
	svc, deps := setupTestService(t)
	ctx := context.Background()

	session := completeToReview(t, svc, MethodCash)
	sid := session.SessionID

	outcome, err := svc.Submit(ctx, sid, "ring the bell twice")
	require.NoError(t, err)
	assert.Equal(t, OutcomeConfirmed, outcome.Status)
	assert.Empty(t, outcome.PaymentURL)

	require.Len(t, deps.appointments.created, 1)
	appt := deps.appointments.created[0]
	assert.Equal(t, models.AppointmentConfirmed, appt.Status)
	assert.Equal(t, "user-1", appt.Request.UserID)
	assert.Equal(t, "Cash on delivery", appt.Request.PaymentMethod)
	assert.Equal(t, "ring the bell twice", appt.Request.Notes)
	// 100 subtotal + 15 slot fee + 5 cash fee, then 5% VAT.
	assert.Equal(t, 126.0, appt.Request.Breakdown.TotalToPay)

	session, err = svc.GetSession(ctx, sid, "user-1")
	require.NoError(t, err)
	assert.True(t, session.Cart.IsEmpty())
	assert.Nil(t, session.Offer)
	assert.Equal(t, models.SubmissionDone, session.Submission)
	assert.Equal(t, outcome.AppointmentID, session.AppointmentID)
	assert.False(t, deps.mr.Exists("checkout:snap:"+sid))

	_, err = svc.Submit(ctx, sid, "")
	require.ErrorIs(t, err, ErrAlreadySubmitted)
}

func TestSubmit_RedirectMethodLocksAndHandsOff(t *testing.T) {
	svc, deps := setupTestService(t)
	ctx := context.Background()

	session := completeToReview(t, svc, MethodCard)
	sid := session.SessionID

	outcome, err := svc.Submit(ctx, sid, "")
	require.NoError(t, err)
	assert.Equal(t, OutcomeRedirectPending, outcome.Status)
	assert.Equal(t, deps.gateway.url, outcome.PaymentURL)

	require.Len(t, deps.appointments.created, 1)
	assert.Equal(t, models.AppointmentPending, deps.appointments.created[0].Status)

	require.Len(t, deps.gateway.requests, 1)
	gwReq := deps.gateway.requests[0]
	assert.Equal(t, outcome.AppointmentID, gwReq.OrderID)
	// 100 subtotal + 15 slot fee, then 5% VAT; card carries no fee.
	assert.Equal(t, 120.75, gwReq.Amount)
	assert.Equal(t, "AED", gwReq.Currency)

	// Persisted state is purged before control leaves for the gateway.
	assert.False(t, deps.mr.Exists("checkout:snap:"+sid))

	session, err = svc.GetSession(ctx, sid, "user-1")
	require.NoError(t, err)
	assert.True(t, session.Locked)

	_, err = svc.AddItem(ctx, sid, "svc-sofa")
	require.ErrorIs(t, err, ErrSessionLocked)
	_, err = svc.Submit(ctx, sid, "")
	require.ErrorIs(t, err, ErrSessionLocked)
}

func TestSubmit_GatewayFailureKeepsCartAndPendingAppointment(t *testing.T) {
	svc, deps := setupTestService(t)
	ctx := context.Background()

	session := completeToReview(t, svc, MethodCard)
	sid := session.SessionID

	deps.gateway.err = errors.New("gateway timeout")

	_, err := svc.Submit(ctx, sid, "")
	var gatewayErr *PaymentGatewayError
	require.ErrorAs(t, err, &gatewayErr)
	assert.NotEmpty(t, gatewayErr.AppointmentID)

	// The pending appointment stays for reconciliation to pick up.
	require.Len(t, deps.appointments.created, 1)
	assert.Equal(t, models.AppointmentPending, deps.appointments.created[0].Status)

	session, err = svc.GetSession(ctx, sid, "user-1")
	require.NoError(t, err)
	assert.False(t, session.Cart.IsEmpty())
	assert.False(t, session.Locked)
	assert.Equal(t, models.SubmissionFailed, session.Submission)

	// The lock was released, so a retry goes through once the gateway
	// recovers.
	deps.gateway.err = nil
	outcome, err := svc.Submit(ctx, sid, "")
	require.NoError(t, err)
	assert.Equal(t, OutcomeRedirectPending, outcome.Status)
}

func TestSubmit_AppointmentCreationFailureKeepsCart(t *testing.T) {
	svc, deps := setupTestService(t)
	ctx := context.Background()

	session := completeToReview(t, svc, MethodCash)
	sid := session.SessionID

	deps.appointments.createErr = errors.New("datastore unavailable")

	_, err := svc.Submit(ctx, sid, "")
	var submissionErr *SubmissionError
	require.ErrorAs(t, err, &submissionErr)

	session, err = svc.GetSession(ctx, sid, "user-1")
	require.NoError(t, err)
	assert.False(t, session.Cart.IsEmpty())
	assert.Equal(t, models.SubmissionFailed, session.Submission)
}

func TestSubmit_AtMostOnce(t *testing.T) {
	svc, deps := setupTestService(t)
	ctx := context.Background()

	session := completeToReview(t, svc, MethodCard)
	sid := session.SessionID

	// A second submit racing the first hits the lock while the gateway
	// call is still in flight.
	var racingErr error
	deps.gateway.onCreate = func() {
		_, racingErr = svc.Submit(ctx, sid, "")
	}

	outcome, err := svc.Submit(ctx, sid, "")
	require.NoError(t, err)
	assert.Equal(t, OutcomeRedirectPending, outcome.Status)

	require.ErrorIs(t, racingErr, ErrSubmissionInProgress)
	assert.Len(t, deps.appointments.created, 1)
	assert.Len(t, deps.gateway.requests, 1)
}

func TestSubmit_RequiresCompletedReview(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	session := completeToReview(t, svc, "")
	_, err := svc.Submit(ctx, session.SessionID, "")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestQuote_InstallmentMethodDerivesMonthlyAmount(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	session := completeToReview(t, svc, MethodInstallment)

	breakdown, err := svc.Quote(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, 120.75, breakdown.TotalToPay)
	assert.Equal(t, 30.19, breakdown.MonthlyInstallment)
}
