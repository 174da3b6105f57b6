package appointmentRepo

import (
	"context"
	"time"

	"homely/models"
)

// AppointmentRepository is the appointment-service collaborator: it owns
// creation and status transitions of committed bookings.
type AppointmentRepository interface {
	// Create inserts a new appointment in the given status and returns it.
	Create(ctx context.Context, req models.AppointmentRequest, status string) (*models.Appointment, error)
	// GetByID retrieves an appointment by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// UpdateStatus transitions an appointment to the given status.
	UpdateStatus(ctx context.Context, id, status string) error
	// ListStalePending returns pending appointments created before the cutoff.
	ListStalePending(ctx context.Context, cutoff time.Time) ([]models.Appointment, error)
}
