package order

import (
	"time"

	"foodexpress/internal/domain"
)

var courierSteps = []struct {
	name   string
	offset time.Duration
}{
	{"order accepted", 0},
	{"preparing", 5 * time.Minute},
	{"handed to courier", 15 * time.Minute},
	{"courier en route", 20 * time.Minute},
	{"arrived", 35 * time.Minute},
}

// CourierSchedule returns the simulated delivery timeline starting at paidAt.
func CourierSchedule(paidAt time.Time) []domain.CourierStep {
	paidAt = paidAt.UTC()
	path := make([]domain.CourierStep, len(courierSteps))
	for i, s := range courierSteps {
		path[i] = domain.CourierStep{Step: s.name, Timestamp: paidAt.Add(s.offset)}
	}
	return path
}
