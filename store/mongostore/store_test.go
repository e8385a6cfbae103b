package mongostore_test

import (
	"context"
	"os"
	"testing"
	"time"

	"delivery-management-api/models"
	"delivery-management-api/store"
	"delivery-management-api/store/mongostore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStore connects to MONGO_TEST_URI and uses a throwaway database that is
// dropped when the test ends.
func newStore(t *testing.T) *mongostore.Store {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx := context.Background()
	client, err := mongostore.Connect(ctx, uri)
	require.NoError(t, err)

	name := "delivery_test_" + uuid.NewString()[:8]
	st := mongostore.New(client, name, false)
	require.NoError(t, st.EnsureIndexes(ctx))
	t.Cleanup(func() {
		_ = client.Database(name).Drop(ctx)
		_ = st.Close(ctx)
	})
	return st
}

func TestMongoStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	require.NoError(t, st.Ping(ctx))

	require.NoError(t, st.Orders().Create(ctx, &models.Order{
		OrderID:         "ord001",
		CustomerName:    "Alice",
		DeliveryAddress: "1 Main St",
		OrderStatus:     models.OrderPending,
		TotalAmount:     12,
	}))
	require.NoError(t, st.Drivers().Create(ctx, &models.Driver{
		DriverID: "drv001",
		Name:     "Bob",
		Email:    "bob@fleet.io",
		Status:   models.DriverActive,
	}))
	err := st.Drivers().Create(ctx, &models.Driver{DriverID: "drv002", Email: "bob@fleet.io"})
	assert.ErrorIs(t, err, store.ErrDuplicate)

	require.NoError(t, st.Routes().Create(ctx, &models.Route{
		RouteID:  "rt001",
		OrderID:  "ord001",
		DriverID: "drv001",
		Steps:    models.Steps{{Location: "Depot", Timestamp: time.Now().UTC()}},
		Status:   models.RoutePending,
	}))

	routed, err := st.Routes().ExistsForOrder(ctx, "ord001")
	require.NoError(t, err)
	assert.True(t, routed)

	next := &models.Route{RouteID: "rt001", OrderID: "ord001", DriverID: "drv001", Status: models.RouteInProgress}
	require.NoError(t, st.Routes().ReplaceIfStatus(ctx, "rt001", models.RoutePending, next))
	err = st.Routes().ReplaceIfStatus(ctx, "rt001", models.RoutePending, next)
	assert.ErrorIs(t, err, store.ErrStale)

	r, err := st.Routes().AppendStep(ctx, "rt001", models.Step{Location: "Door", Timestamp: time.Now().UTC()})
	require.NoError(t, err)
	assert.Len(t, r.Steps, 1)

	require.NoError(t, st.Drivers().IncrementCompletedOrders(ctx, "drv001"))
	d, err := st.Drivers().FindByID(ctx, "drv001")
	require.NoError(t, err)
	assert.Equal(t, 1, d.CompletedOrders)

	_, err = st.Orders().FindByID(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
