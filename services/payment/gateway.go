package payment

import (
	"context"

	"homely/models"
)

// Gateway creates external payment sessions for redirect methods. The
// returned URL is where the customer completes payment; the gateway
// redirects back to the configured return or cancel endpoint afterwards.
type Gateway interface {
	CreateSession(ctx context.Context, req models.PaymentSessionRequest) (string, error)
}
