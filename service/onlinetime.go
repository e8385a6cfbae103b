package service

import (
	"math"
	"time"

	"delivery-management-api/models"
)

// ReconcileOnlineTime folds the driver's active period into OnlineTime.
//
// An active driver gains the whole minutes elapsed since LastActiveAt, which
// is left untouched. An inactive driver with a pending LastActiveAt gains the
// minutes between UpdatedAt and LastActiveAt, and LastActiveAt is cleared. An
// active driver without LastActiveAt starts a new period at now.
func ReconcileOnlineTime(d *models.Driver, now time.Time) {
	switch {
	case d.Status == models.DriverActive && d.LastActiveAt != nil:
		d.OnlineTime += wholeMinutes(now.Sub(*d.LastActiveAt))
	case d.Status == models.DriverInactive && d.LastActiveAt != nil:
		// measured against UpdatedAt, not now
		d.OnlineTime += wholeMinutes(d.LastActiveAt.Sub(d.UpdatedAt))
		d.LastActiveAt = nil
	case d.Status == models.DriverActive && d.LastActiveAt == nil:
		started := now
		d.LastActiveAt = &started
	}
}

func wholeMinutes(d time.Duration) int {
	return int(math.Floor(d.Minutes()))
}
