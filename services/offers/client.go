package offers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"homely/models"

	"go.uber.org/zap"
)

// RuleResult is a resolved discount returned by the rules service. The
// discount amount is bound to the order amount submitted with the request.
type RuleResult struct {
	Name           string
	DiscountType   models.DiscountType
	DiscountValue  float64
	DiscountAmount float64
}

// RulesClient validates an offer code against the external pricing-rules
// service for a given order amount and set of services.
type RulesClient interface {
	Validate(ctx context.Context, code string, orderAmount float64, serviceIDs []string) (*RuleResult, error)
}

// HTTPRulesClient implements RulesClient over JSON/HTTP.
type HTTPRulesClient struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewHTTPRulesClient creates a rules client with a bounded request timeout.
func NewHTTPRulesClient(url string, logger *zap.Logger) *HTTPRulesClient {
	return &HTTPRulesClient{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

type validateRequest struct {
	Code        string   `json:"code"`
	OrderAmount float64  `json:"orderAmount"`
	ServiceIDs  []string `json:"serviceIds"`
}

type validateResponse struct {
	Success bool `json:"success"`
	Offer   struct {
		Name          string  `json:"name"`
		DiscountType  string  `json:"discountType"`
		DiscountValue float64 `json:"discountValue"`
	} `json:"offer"`
	DiscountAmount float64 `json:"discountAmount"`
	Reason         string  `json:"reason"`
	Message        string  `json:"message"`
}

// Validate submits the code to the rules service. Any transport failure is
// returned as an OfferError with ReasonNetwork; a rejection is mapped onto
// its typed reason.
func (c *HTTPRulesClient) Validate(ctx context.Context, code string, orderAmount float64, serviceIDs []string) (*RuleResult, error) {
	payload, err := json.Marshal(validateRequest{
		Code:        code,
		OrderAmount: orderAmount,
		ServiceIDs:  serviceIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal validate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build validate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("offer rules service unreachable", zap.Error(err))
		return nil, NewOfferError(ReasonNetwork, "offer service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, NewOfferError(ReasonNetwork, fmt.Sprintf("offer service returned %d", resp.StatusCode))
	}

	var body validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, NewOfferError(ReasonNetwork, "malformed offer service response")
	}

	if !body.Success {
		return nil, NewOfferError(rejectionReason(body.Reason), body.Message)
	}

	return &RuleResult{
		Name:           body.Offer.Name,
		DiscountType:   models.DiscountType(body.Offer.DiscountType),
		DiscountValue:  body.Offer.DiscountValue,
		DiscountAmount: body.DiscountAmount,
	}, nil
}

func rejectionReason(reason string) Reason {
	switch Reason(reason) {
	case ReasonExpired:
		return ReasonExpired
	case ReasonNotApplicable:
		return ReasonNotApplicable
	default:
		return ReasonInvalidCode
	}
}
