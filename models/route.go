package models

import (
	"time"

	"gorm.io/datatypes"
)

// RouteStatus represents the lifecycle of a delivery route
type RouteStatus string

const (
	RoutePending    RouteStatus = "pending"
	RouteInProgress RouteStatus = "in-progress"
	RouteCompleted  RouteStatus = "completed"
)

func (s RouteStatus) Valid() bool {
	switch s {
	case RoutePending, RouteInProgress, RouteCompleted:
		return true
	}
	return false
}

type Step struct {
	Location  string    `json:"location" bson:"location"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
}

// Steps is a JSON column for SQL stores and an embedded array for Mongo
type Steps = datatypes.JSONSlice[Step]

type Route struct {
	RouteID   string      `json:"routeId" gorm:"primaryKey" bson:"routeId"`
	OrderID   string      `json:"orderId" gorm:"not null;index" bson:"orderId"`
	DriverID  string      `json:"driverId" gorm:"not null;index" bson:"driverId"`
	Steps     Steps       `json:"steps" bson:"steps"`
	Status    RouteStatus `json:"status" gorm:"not null;default:'pending'" bson:"status"`
	CreatedAt time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt" bson:"updatedAt"`
}
