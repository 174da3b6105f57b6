package checkout

import (
	"context"
	"testing"

	"homely/models"
	"homely/services/offers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWithSofaTwice(t *testing.T, svc *DefaultCheckoutService) string {
	t.Helper()
	ctx := context.Background()

	session, err := svc.StartSession(ctx, "user-1")
	require.NoError(t, err)
	sid := session.SessionID

	_, err = svc.AddItem(ctx, sid, "svc-sofa")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, sid, "svc-sofa")
	require.NoError(t, err)
	return sid
}

func TestApplyOffer_PercentageDiscount(t *testing.T) {
	svc, deps := setupTestService(t)
	ctx := context.Background()
	sid := startWithSofaTwice(t, svc)

	deps.rules.result = &offers.RuleResult{
		Name:          "Save 10%",
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 10,
	}

	session, err := svc.ApplyOffer(ctx, sid, "  save10 ")
	require.NoError(t, err)
	require.NotNil(t, session.Offer)
	assert.Equal(t, "SAVE10", session.Offer.Code)
	assert.Equal(t, 20.0, session.Offer.DiscountAmount)
	assert.Equal(t, 200.0, session.Offer.AppliedSubtotal)

	breakdown, err := svc.Quote(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, 200.0, breakdown.Subtotal)
	assert.Equal(t, 20.0, breakdown.DiscountAmount)
	assert.Equal(t, 180.0, breakdown.FinalAmount)
	assert.Equal(t, 9.0, breakdown.VAT)
	assert.Equal(t, 189.0, breakdown.TotalToPay)
	assert.Equal(t, "AED", breakdown.Currency)
}

func TestApplyOffer_ServerAmountClampedToSubtotal(t *testing.T) {
	svc, deps := setupTestService(t)
	ctx := context.Background()
	sid := startWithSofaTwice(t, svc)

	deps.rules.result = &offers.RuleResult{
		DiscountType:   models.DiscountFixed,
		DiscountValue:  500,
		DiscountAmount: 500,
	}

	session, err := svc.ApplyOffer(ctx, sid, "BIG")
	require.NoError(t, err)
	assert.Equal(t, 200.0, session.Offer.DiscountAmount)

	breakdown, err := svc.Quote(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, 0.0, breakdown.TotalToPay)
}

func TestApplyOffer_EmptyCodeRejectedLocally(t *testing.T) {
	svc, deps := setupTestService(t)
	ctx := context.Background()
	sid := startWithSofaTwice(t, svc)

	_, err := svc.ApplyOffer(ctx, sid, "   ")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Zero(t, deps.rules.calls)
}

func TestApplyOffer_FailureLeavesPriorOfferUntouched(t *testing.T) {
	svc, deps := setupTestService(t)
	ctx := context.Background()
	sid := startWithSofaTwice(t, svc)

	deps.rules.result = &offers.RuleResult{
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 10,
	}
	_, err := svc.ApplyOffer(ctx, sid, "SAVE10")
	require.NoError(t, err)

	deps.rules.result = nil
	deps.rules.err = offers.NewOfferError(offers.ReasonExpired, "offer expired")
	_, err = svc.ApplyOffer(ctx, sid, "OLDCODE")
	var offerErr *offers.OfferError
	require.ErrorAs(t, err, &offerErr)
	assert.Equal(t, offers.ReasonExpired, offerErr.Reason)

	session, err := svc.GetSession(ctx, sid, "user-1")
	require.NoError(t, err)
	require.NotNil(t, session.Offer)
	assert.Equal(t, "SAVE10", session.Offer.Code)
	assert.Equal(t, 20.0, session.Offer.DiscountAmount)
}

func TestApplyOffer_StaleResultDiscarded(t *testing.T) {
	svc, deps := setupTestService(t)
	ctx := context.Background()
	sid := startWithSofaTwice(t, svc)

	deps.rules.result = &offers.RuleResult{
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 10,
	}
	// The cart mutates while the validation round trip is in flight.
	deps.rules.onValidate = func() {
		_, err := svc.AddItem(ctx, sid, "svc-deep")
		require.NoError(t, err)
	}

	_, err := svc.ApplyOffer(ctx, sid, "SAVE10")
	var offerErr *offers.OfferError
	require.ErrorAs(t, err, &offerErr)
	assert.Equal(t, offers.ReasonStale, offerErr.Reason)

	session, err := svc.GetSession(ctx, sid, "user-1")
	require.NoError(t, err)
	assert.Nil(t, session.Offer)
}

func TestCartMutationRevokesAppliedOffer(t *testing.T) {
	svc, deps := setupTestService(t)
	ctx := context.Background()
	sid := startWithSofaTwice(t, svc)

	deps.rules.result = &offers.RuleResult{
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 10,
	}
	_, err := svc.ApplyOffer(ctx, sid, "SAVE10")
	require.NoError(t, err)

	session, err := svc.AddItem(ctx, sid, "svc-deep")
	require.NoError(t, err)
	assert.Nil(t, session.Offer)

	breakdown, err := svc.Quote(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, 0.0, breakdown.DiscountAmount)
}

func TestRevokeOffer_Unconditional(t *testing.T) {
	svc, deps := setupTestService(t)
	ctx := context.Background()
	sid := startWithSofaTwice(t, svc)

	deps.rules.result = &offers.RuleResult{
		DiscountType:  models.DiscountPercentage,
		DiscountValue: 10,
	}
	_, err := svc.ApplyOffer(ctx, sid, "SAVE10")
	require.NoError(t, err)

	session, err := svc.RevokeOffer(ctx, sid)
	require.NoError(t, err)
	assert.Nil(t, session.Offer)
}
