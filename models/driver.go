package models

import "time"

// DriverStatus is the availability of a driver
type DriverStatus string

const (
	DriverActive   DriverStatus = "active"
	DriverInactive DriverStatus = "inactive"
)

func (s DriverStatus) Valid() bool {
	return s == DriverActive || s == DriverInactive
}

type Driver struct {
	DriverID         string       `json:"driverId" gorm:"primaryKey" bson:"driverId"`
	Name             string       `json:"name" gorm:"not null" bson:"name"`
	Email            string       `json:"email" gorm:"uniqueIndex;not null" bson:"email"`
	Phone            string       `json:"phone" gorm:"not null" bson:"phone"`
	VehicleType      string       `json:"vehicleType" gorm:"not null" bson:"vehicleType"`
	Status           DriverStatus `json:"status" gorm:"not null;default:'inactive'" bson:"status"`
	CompletedOrders  int          `json:"completedOrders" gorm:"not null;default:0" bson:"completedOrders"`
	OnlineTime       int          `json:"onlineTime" gorm:"not null;default:0" bson:"onlineTime"` // minutes
	LastActiveAt     *time.Time   `json:"lastActiveAt" bson:"lastActiveAt"`
	DistanceTraveled float64      `json:"distanceTraveled" gorm:"not null;default:0" bson:"distanceTraveled"` // km
	CreatedAt        time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt" bson:"updatedAt"`
}
