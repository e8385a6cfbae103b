package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"delivery-management-api/apperr"
	"delivery-management-api/models"
	"delivery-management-api/store"
	"delivery-management-api/testutil"

	"github.com/stretchr/testify/require"
)

// clock is a settable time source for services that read the time
type clock struct{ t time.Time }

func newClock() *clock { return &clock{t: testNow} }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T) store.Store { return testutil.NewStore(t) }

func requireKind(t *testing.T, err error, kind error, msg string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, errors.Is(err, kind), "want %v, got %v", kind, err)
	if msg != "" {
		require.Equal(t, msg, apperr.Message(err, ""))
	}
}

func validDriver(id, email string) CreateDriverInput {
	return CreateDriverInput{
		DriverID:    id,
		Name:        "Driver " + id,
		Email:       email,
		Phone:       "5551234567",
		VehicleType: "bike",
		Status:      models.DriverActive,
	}
}

func seedDriver(t *testing.T, st store.Store, id string, status models.DriverStatus) *models.Driver {
	t.Helper()
	d := &models.Driver{
		DriverID:    id,
		Name:        "Driver " + id,
		Email:       id + "@fleet.io",
		Phone:       "5551234567",
		VehicleType: "van",
		Status:      status,
	}
	require.NoError(t, st.Drivers().Create(context.Background(), d))
	return d
}

func seedOrder(t *testing.T, st store.Store, id string) *models.Order {
	t.Helper()
	o := &models.Order{
		OrderID:         id,
		CustomerName:    "Alice",
		DeliveryAddress: "1 Main St",
		OrderStatus:     models.OrderPending,
		TotalAmount:     25.5,
	}
	require.NoError(t, st.Orders().Create(context.Background(), o))
	return o
}
