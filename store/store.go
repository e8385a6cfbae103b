// Package store declares the persistence contracts shared by the SQL and Mongo
// backends.
package store

import (
	"context"
	"errors"

	"delivery-management-api/models"
)

var (
	// ErrNotFound is returned when no record matches the lookup key.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key is already taken.
	ErrDuplicate = errors.New("duplicate key")
	// ErrStale is returned when a conditional write found the record in a
	// different state than expected.
	ErrStale = errors.New("stale record")
)

type Users interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type Drivers interface {
	Create(ctx context.Context, d *models.Driver) error
	List(ctx context.Context) ([]models.Driver, error)
	FindByID(ctx context.Context, driverID string) (*models.Driver, error)
	FindByEmail(ctx context.Context, email string) (*models.Driver, error)
	// Save persists every field of d and refreshes d.UpdatedAt.
	Save(ctx context.Context, d *models.Driver) error
	IncrementCompletedOrders(ctx context.Context, driverID string) error
	Delete(ctx context.Context, driverID string) error
}

type Orders interface {
	Create(ctx context.Context, o *models.Order) error
	List(ctx context.Context) ([]models.Order, error)
	FindByID(ctx context.Context, orderID string) (*models.Order, error)
	Update(ctx context.Context, orderID string, ch models.OrderChanges) (*models.Order, error)
	SetStatus(ctx context.Context, orderID string, status models.OrderStatus) error
	Delete(ctx context.Context, orderID string) error
}

type Routes interface {
	Create(ctx context.Context, r *models.Route) error
	List(ctx context.Context) ([]models.Route, error)
	FindByID(ctx context.Context, routeID string) (*models.Route, error)
	ExistsForOrder(ctx context.Context, orderID string) (bool, error)
	ExistsForDriver(ctx context.Context, driverID string) (bool, error)
	// ReplaceIfStatus overwrites the route stored under routeID with r, but
	// only while its status still equals prev. It returns ErrStale when the
	// route exists with another status.
	ReplaceIfStatus(ctx context.Context, routeID string, prev models.RouteStatus, r *models.Route) error
	AppendStep(ctx context.Context, routeID string, step models.Step) (*models.Route, error)
	Delete(ctx context.Context, routeID string) error
}

// Store groups the entity repositories and the transactional boundary used
// by multi-entity operations.
type Store interface {
	Users() Users
	Drivers() Drivers
	Orders() Orders
	Routes() Routes
	// WithinTx runs fn against a Store whose writes commit or roll back
	// together, when the backend supports it.
	WithinTx(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
