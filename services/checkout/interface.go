package checkout

import (
	"context"

	catalogRepo "homely/database/repository/catalog"
	"homely/models"
	"homely/services/offers"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CheckoutService drives the four-step checkout wizard from cart assembly
// to booking submission.
type CheckoutService interface {
	StartSession(ctx context.Context, userID string) (*models.CheckoutSession, error)
	GetSession(ctx context.Context, sessionID, userID string) (*models.CheckoutSession, error)
	AbandonSession(ctx context.Context, sessionID string) error

	AddItem(ctx context.Context, sessionID, serviceID string) (*models.CheckoutSession, error)
	RemoveOneUnit(ctx context.Context, sessionID, serviceID string) (*models.CheckoutSession, error)
	RemoveItem(ctx context.Context, sessionID, serviceID string) (*models.CheckoutSession, error)

	ApplyOffer(ctx context.Context, sessionID, code string) (*models.CheckoutSession, error)
	RevokeOffer(ctx context.Context, sessionID string) (*models.CheckoutSession, error)

	SetAddress(ctx context.Context, sessionID string, addr models.Address) (*models.CheckoutSession, error)
	SetSchedule(ctx context.Context, sessionID, date, timeOfDay string, extraFee float64) (*models.CheckoutSession, error)
	SetPaymentMethod(ctx context.Context, sessionID, methodCode string) (*models.CheckoutSession, error)

	Next(ctx context.Context, sessionID string, authenticated bool, userID string) (*models.CheckoutSession, error)
	Prev(ctx context.Context, sessionID string) (*models.CheckoutSession, bool, error)
	GoTo(ctx context.Context, sessionID string, step models.CheckoutStep) (*models.CheckoutSession, error)

	Quote(ctx context.Context, sessionID string) (*models.PriceBreakdown, error)
	Submit(ctx context.Context, sessionID, notes string) (*FinalizeOutcome, error)
}

// DefaultCheckoutService implements CheckoutService.
type DefaultCheckoutService struct {
	Cache      *redis.Client
	Guard      *ContinuityGuard
	Catalog    catalogRepo.CatalogRepository
	Rules      offers.RulesClient
	Dispatcher *PaymentDispatcher
	Logger     *zap.Logger
}
