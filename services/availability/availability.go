package availability

import (
	"context"
	"time"

	"homely/models"
)

// SlotService supplies the selectable date/time slots for scheduling.
// The checkout engine treats its output as opaque selectable values.
type SlotService interface {
	AvailableSlots(ctx context.Context, days int) ([]models.AvailableSlot, error)
}

// DefaultSlotService offers fixed working-hour slots for the next days.
type DefaultSlotService struct {
	OpeningHour int // first bookable hour, 24h clock
	ClosingHour int // last bookable hour (exclusive)
}

// NewDefaultSlotService returns a slot service with standard working hours.
func NewDefaultSlotService() *DefaultSlotService {
	return &DefaultSlotService{OpeningHour: 9, ClosingHour: 18}
}

// AvailableSlots lists bookable slots starting tomorrow. Same-day booking
// is not offered; crews are dispatched the evening before.
func (s *DefaultSlotService) AvailableSlots(ctx context.Context, days int) ([]models.AvailableSlot, error) {
	if days <= 0 {
		days = 7
	}
	now := time.Now()
	slots := make([]models.AvailableSlot, 0, days)
	for d := 1; d <= days; d++ {
		day := now.AddDate(0, 0, d)
		times := make([]string, 0, s.ClosingHour-s.OpeningHour)
		for h := s.OpeningHour; h < s.ClosingHour; h++ {
			times = append(times, time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, day.Location()).Format("15:04"))
		}
		slots = append(slots, models.AvailableSlot{
			Date:  day.Format("2006-01-02"),
			Times: times,
		})
	}
	return slots, nil
}
