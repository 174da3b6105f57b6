package checkout

import (
	"context"
	"testing"
	"time"

	"homely/config"
	"homely/models"
	"homely/services/offers"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// mockCatalog implements catalogRepo.CatalogRepository for testing.
type mockCatalog struct {
	items map[string]models.ServiceItem
}

func (m *mockCatalog) GetByServiceID(_ context.Context, serviceID string) (*models.ServiceItem, error) {
	item, ok := m.items[serviceID]
	if !ok {
		return nil, context.Canceled
	}
	return &item, nil
}

func (m *mockCatalog) ListByCategory(_ context.Context, category string) ([]models.ServiceItem, error) {
	var out []models.ServiceItem
	for _, item := range m.items {
		if item.CategorySlug == category {
			out = append(out, item)
		}
	}
	return out, nil
}

// mockRules implements offers.RulesClient for testing.
type mockRules struct {
	result     *offers.RuleResult
	err        error
	onValidate func()
	calls      int
}

func (m *mockRules) Validate(_ context.Context, code string, orderAmount float64, serviceIDs []string) (*offers.RuleResult, error) {
	m.calls++
	if m.onValidate != nil {
		m.onValidate()
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// mockAppointments implements appointmentRepo.AppointmentRepository for testing.
type mockAppointments struct {
	created   []models.Appointment
	createErr error
	statuses  map[string]string
}

func (m *mockAppointments) Create(_ context.Context, req models.AppointmentRequest, status string) (*models.Appointment, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	appt := models.Appointment{
		ID:        "appt-" + time.Now().Format("150405.000000000"),
		Status:    status,
		Request:   req,
		CreatedAt: time.Now(),
	}
	m.created = append(m.created, appt)
	if m.statuses == nil {
		m.statuses = make(map[string]string)
	}
	m.statuses[appt.ID] = status
	return &appt, nil
}

func (m *mockAppointments) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	for _, appt := range m.created {
		if appt.ID == id {
			appt.Status = m.statuses[id]
			return &appt, nil
		}
	}
	return nil, context.Canceled
}

func (m *mockAppointments) UpdateStatus(_ context.Context, id, status string) error {
	m.statuses[id] = status
	return nil
}

func (m *mockAppointments) ListStalePending(_ context.Context, cutoff time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, appt := range m.created {
		if m.statuses[appt.ID] == models.AppointmentPending && appt.CreatedAt.Before(cutoff) {
			out = append(out, appt)
		}
	}
	return out, nil
}

// mockGateway implements payment.Gateway for testing.
type mockGateway struct {
	url      string
	err      error
	onCreate func()
	requests []models.PaymentSessionRequest
}

func (m *mockGateway) CreateSession(_ context.Context, req models.PaymentSessionRequest) (string, error) {
	if m.onCreate != nil {
		m.onCreate()
	}
	m.requests = append(m.requests, req)
	if m.err != nil {
		return "", m.err
	}
	return m.url, nil
}

type testDeps struct {
	mr           *miniredis.Miniredis
	catalog      *mockCatalog
	rules        *mockRules
	appointments *mockAppointments
	gateway      *mockGateway
}

// setupTestService wires a checkout service onto an in-memory Redis with
// mocked collaborators.
func setupTestService(t *testing.T) (*DefaultCheckoutService, *testDeps) {
	t.Helper()

	config.AppConfig = config.Config{
		VATRate:                 0.05,
		CashHandlingFee:         5.0,
		Currency:                "AED",
		InstallmentsN:           4,
		SessionTTLMinutes:       30,
		PendingReconcileMinutes: 30,
		PaymentReturnURL:        "https://example.test/return",
		PaymentCancelURL:        "https://example.test/cancel",
	}

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := zap.NewNop()

	deps := &testDeps{
		mr: mr,
		catalog: &mockCatalog{items: map[string]models.ServiceItem{
			"svc-sofa": {
				ServiceID:    "svc-sofa",
				DisplayName:  "Sofa Cleaning",
				UnitPrice:    100,
				CategorySlug: "cleaning",
				Active:       true,
			},
			"svc-deep": {
				ServiceID:    "svc-deep",
				DisplayName:  "Deep Cleaning",
				UnitPrice:    50,
				CategorySlug: "cleaning",
				MaxQuantity:  2,
				Active:       true,
			},
		}},
		rules:        &mockRules{},
		appointments: &mockAppointments{},
		gateway:      &mockGateway{url: "https://pay.example.test/session/abc"},
	}

	svc := &DefaultCheckoutService{
		Cache:   client,
		Guard:   NewContinuityGuard(client, time.Hour, logger),
		Catalog: deps.catalog,
		Rules:   deps.rules,
		Dispatcher: &PaymentDispatcher{
			Appointments: deps.appointments,
			Gateway:      deps.gateway,
			Logger:       logger,
		},
		Logger: logger,
	}
	return svc, deps
}

// completeToReview walks a session to step 4 with everything selected.
func completeToReview(t *testing.T, svc *DefaultCheckoutService, method string) *models.CheckoutSession {
	t.Helper()
	ctx := context.Background()

	session, err := svc.StartSession(ctx, "user-1")
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	sid := session.SessionID

	if _, err := svc.AddItem(ctx, sid, "svc-sofa"); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := svc.Next(ctx, sid, true, "user-1"); err != nil {
		t.Fatalf("Next to address: %v", err)
	}
	if _, err := svc.SetAddress(ctx, sid, models.Address{ID: "addr-1", Label: "Home", City: "Dubai"}); err != nil {
		t.Fatalf("SetAddress: %v", err)
	}
	if _, err := svc.Next(ctx, sid, true, "user-1"); err != nil {
		t.Fatalf("Next to schedule: %v", err)
	}
	if _, err := svc.SetSchedule(ctx, sid, "2026-09-10", "10:00", 15); err != nil {
		t.Fatalf("SetSchedule: %v", err)
	}
	if _, err := svc.Next(ctx, sid, true, "user-1"); err != nil {
		t.Fatalf("Next to review: %v", err)
	}
	if method != "" {
		if _, err := svc.SetPaymentMethod(ctx, sid, method); err != nil {
			t.Fatalf("SetPaymentMethod: %v", err)
		}
	}

	session, err = svc.GetSession(ctx, sid, "user-1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	return session
}
