package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"delivery-management-api/apperr"
	"delivery-management-api/metrics"
	"delivery-management-api/models"
	"delivery-management-api/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func routeInput(routeID, orderID, driverID string, status models.RouteStatus) RouteInput {
	return RouteInput{
		RouteID:  routeID,
		OrderID:  orderID,
		DriverID: driverID,
		Steps:    []StepInput{{Location: "Warehouse", Timestamp: testNow}},
		Status:   status,
	}
}

func newRouteFixture(t *testing.T) (*RouteService, store.Store) {
	st := newTestStore(t)
	seedOrder(t, st, "ord001")
	seedDriver(t, st, "drv001", models.DriverActive)
	return NewRouteService(st, nil, nil), st
}

func orderStatus(t *testing.T, st store.Store, id string) models.OrderStatus {
	t.Helper()
	o, err := st.Orders().FindByID(context.Background(), id)
	require.NoError(t, err)
	return o.OrderStatus
}

func completedOrders(t *testing.T, st store.Store, id string) int {
	t.Helper()
	d, err := st.Drivers().FindByID(context.Background(), id)
	require.NoError(t, err)
	return d.CompletedOrders
}

func TestRouteServiceCreateInProgressDispatchesOrder(t *testing.T) {
	ctx := context.Background()
	svc, st := newRouteFixture(t)
	m := metrics.New(prometheus.NewRegistry())
	svc.metrics = m

	r, err := svc.Create(ctx, routeInput("rt001", "ord001", "drv001", models.RouteInProgress))
	require.NoError(t, err)
	assert.Equal(t, models.RouteInProgress, r.Status)
	require.Len(t, r.Steps, 1)
	assert.Equal(t, "Warehouse", r.Steps[0].Location)

	assert.Equal(t, models.OrderDispatched, orderStatus(t, st, "ord001"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RouteTransitions.WithLabelValues("in-progress")))
}

func TestRouteServiceCreatePendingLeavesOrder(t *testing.T) {
	svc, st := newRouteFixture(t)

	_, err := svc.Create(context.Background(), routeInput("rt001", "ord001", "drv001", models.RoutePending))
	require.NoError(t, err)
	assert.Equal(t, models.OrderPending, orderStatus(t, st, "ord001"))
}

func TestRouteServiceCreateRejects(t *testing.T) {
	ctx := context.Background()
	svc, st := newRouteFixture(t)
	seedOrder(t, st, "ord002")
	seedOrder(t, st, "ord003")
	seedDriver(t, st, "drv002", models.DriverActive)
	seedDriver(t, st, "drv003", models.DriverActive)
	seedDriver(t, st, "idle01", models.DriverInactive)
	_, err := svc.Create(ctx, routeInput("rt001", "ord001", "drv001", models.RoutePending))
	require.NoError(t, err)

	tests := []struct {
		name string
		in   RouteInput
		kind error
		msg  string
	}{
		{"missing fields", RouteInput{RouteID: "rt009"}, apperr.Validation, "All fields are required"},
		{"missing steps", RouteInput{RouteID: "rt009", OrderID: "ord002", DriverID: "drv002", Status: models.RoutePending}, apperr.Validation, "All fields are required"},
		{"unknown order", routeInput("rt009", "nope01", "drv002", models.RoutePending), apperr.NotFound, "Order not found"},
		{"unknown driver", routeInput("rt009", "ord002", "nope01", models.RoutePending), apperr.NotFound, "Driver not found"},
		{"order already routed", routeInput("rt009", "ord001", "drv002", models.RoutePending), apperr.Conflict, "Order ord001 is already assigned to a Driver"},
		{"inactive driver", routeInput("rt009", "ord002", "idle01", models.RoutePending), apperr.Conflict, "Driver must be active to create a route"},
		{"taken route id", routeInput("rt001", "ord002", "drv002", models.RoutePending), apperr.Conflict, "this routeId already exists"},
		{"busy driver", routeInput("rt009", "ord002", "drv001", models.RoutePending), apperr.Conflict, "Driver already has a route assigned"},
		{"created completed", routeInput("rt009", "ord002", "drv002", models.RouteCompleted), apperr.Validation, ""},
		{"unknown status", routeInput("rt009", "ord003", "drv003", "parked"), apperr.Validation, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in)
			requireKind(t, err, tt.kind, tt.msg)
		})
	}

	assert.Equal(t, models.OrderPending, orderStatus(t, st, "ord002"))
	routes, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, routes, 1)
}

func TestRouteServiceCreateRejectsRoutedOrderEvenAfterCompletion(t *testing.T) {
	ctx := context.Background()
	svc, st := newRouteFixture(t)
	seedDriver(t, st, "drv002", models.DriverActive)
	_, err := svc.Create(ctx, routeInput("rt001", "ord001", "drv001", models.RouteInProgress))
	require.NoError(t, err)
	_, err = svc.Update(ctx, "rt001", routeInput("rt001", "ord001", "drv001", models.RouteCompleted))
	require.NoError(t, err)

	_, err = svc.Create(ctx, routeInput("rt002", "ord001", "drv002", models.RoutePending))
	requireKind(t, err, apperr.Conflict, "Order ord001 is already assigned to a Driver")
}

func TestRouteServiceCompletionIsOneShot(t *testing.T) {
	ctx := context.Background()
	svc, st := newRouteFixture(t)
	_, err := svc.Create(ctx, routeInput("rt001", "ord001", "drv001", models.RouteInProgress))
	require.NoError(t, err)

	r, err := svc.Update(ctx, "rt001", routeInput("rt001", "ord001", "drv001", models.RouteCompleted))
	require.NoError(t, err)
	assert.Equal(t, models.RouteCompleted, r.Status)
	assert.Equal(t, 1, completedOrders(t, st, "drv001"))
	assert.Equal(t, models.OrderDelivered, orderStatus(t, st, "ord001"))

	_, err = svc.Update(ctx, "rt001", routeInput("rt001", "ord001", "drv001", models.RouteCompleted))
	require.NoError(t, err)
	assert.Equal(t, 1, completedOrders(t, st, "drv001"))
}

func TestRouteServiceUpdateToInProgressDispatches(t *testing.T) {
	ctx := context.Background()
	svc, st := newRouteFixture(t)
	_, err := svc.Create(ctx, routeInput("rt001", "ord001", "drv001", models.RoutePending))
	require.NoError(t, err)

	in := routeInput("rt001", "ord001", "drv001", models.RouteInProgress)
	in.Steps = append(in.Steps, StepInput{Location: "Depot", Timestamp: testNow.Add(time.Hour)})
	r, err := svc.Update(ctx, "rt001", in)
	require.NoError(t, err)
	assert.Len(t, r.Steps, 2)
	assert.Equal(t, models.OrderDispatched, orderStatus(t, st, "ord001"))
	assert.Equal(t, 0, completedOrders(t, st, "drv001"))
}

func TestRouteServiceUpdateRejects(t *testing.T) {
	ctx := context.Background()
	svc, st := newRouteFixture(t)
	seedDriver(t, st, "idle01", models.DriverInactive)
	_, err := svc.Create(ctx, routeInput("rt001", "ord001", "drv001", models.RouteInProgress))
	require.NoError(t, err)

	_, err = svc.Update(ctx, "rt001", routeInput("rt001", "ord001", "drv001", models.RoutePending))
	requireKind(t, err, apperr.Conflict, "")

	_, err = svc.Update(ctx, "rt404", routeInput("rt404", "ord001", "drv001", models.RouteInProgress))
	requireKind(t, err, apperr.NotFound, "Route not found")

	_, err = svc.Update(ctx, "rt001", routeInput("rt001", "ord001", "idle01", models.RouteInProgress))
	requireKind(t, err, apperr.Conflict, "Driver must be active to update the route")

	_, err = svc.Update(ctx, "rt001", routeInput("rt001", "ord001", "nope01", models.RouteInProgress))
	requireKind(t, err, apperr.NotFound, "Driver not found")

	_, err = svc.Update(ctx, "rt001", routeInput("rt001", "nope01", "drv001", models.RouteInProgress))
	requireKind(t, err, apperr.NotFound, "Order not found")

	_, err = svc.Update(ctx, "rt001", routeInput("rt001", "ord001", "drv001", "parked"))
	requireKind(t, err, apperr.Validation, "")

	seedOrder(t, st, "ord002")
	seedDriver(t, st, "drv002", models.DriverActive)
	_, err = svc.Create(ctx, routeInput("rt002", "ord002", "drv002", models.RoutePending))
	require.NoError(t, err)
	_, err = svc.Update(ctx, "rt001", routeInput("rt002", "ord001", "drv001", models.RouteInProgress))
	requireKind(t, err, apperr.Conflict, "this routeId already exists")

	racing := NewRouteService(racingStore{Store: st}, nil, nil)
	_, err = racing.Update(ctx, "rt001", routeInput("rt001", "ord001", "drv001", models.RouteCompleted))
	requireKind(t, err, apperr.Conflict, "Route was modified by another request, retry the update")
	r, err := svc.Get(ctx, "rt001")
	require.NoError(t, err)
	assert.Equal(t, models.RouteInProgress, r.Status)
	assert.Equal(t, 0, completedOrders(t, st, "drv001"))

	_, err = svc.Update(ctx, "rt001", routeInput("rt001", "ord001", "drv001", models.RouteCompleted))
	require.NoError(t, err)
	_, err = svc.Update(ctx, "rt001", routeInput("rt001", "ord001", "drv001", models.RouteInProgress))
	requireKind(t, err, apperr.Conflict, "")
	assert.Equal(t, models.OrderDelivered, orderStatus(t, st, "ord001"))
}

func TestRouteServiceUpdateRenames(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRouteFixture(t)
	_, err := svc.Create(ctx, routeInput("rt001", "ord001", "drv001", models.RoutePending))
	require.NoError(t, err)

	r, err := svc.Update(ctx, "rt001", routeInput("rt003", "ord001", "drv001", models.RoutePending))
	require.NoError(t, err)
	assert.Equal(t, "rt003", r.RouteID)

	_, err = svc.Get(ctx, "rt001")
	requireKind(t, err, apperr.NotFound, "Route not found")
	_, err = svc.Get(ctx, "rt003")
	require.NoError(t, err)
}

func TestRouteServiceConcurrentCompletion(t *testing.T) {
	ctx := context.Background()
	svc, st := newRouteFixture(t)
	_, err := svc.Create(ctx, routeInput("rt001", "ord001", "drv001", models.RouteInProgress))
	require.NoError(t, err)

	const workers = 20
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Update(ctx, "rt001", routeInput("rt001", "ord001", "drv001", models.RouteCompleted))
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, 1, completedOrders(t, st, "drv001"))
	assert.Equal(t, models.OrderDelivered, orderStatus(t, st, "ord001"))
}

// racingStore completes a route inside the caller's transaction right before
// its conditional replace runs, as a concurrent writer would
type racingStore struct {
	store.Store
}

func (s racingStore) Routes() store.Routes { return racingRoutes{Routes: s.Store.Routes()} }

func (s racingStore) WithinTx(ctx context.Context, fn func(tx store.Store) error) error {
	return s.Store.WithinTx(ctx, func(tx store.Store) error {
		return fn(racingStore{Store: tx})
	})
}

type racingRoutes struct {
	store.Routes
}

func (r racingRoutes) ReplaceIfStatus(ctx context.Context, routeID string, prev models.RouteStatus, route *models.Route) error {
	current, err := r.Routes.FindByID(ctx, routeID)
	if err != nil {
		return err
	}
	current.Status = models.RouteCompleted
	if err := r.Routes.ReplaceIfStatus(ctx, routeID, prev, current); err != nil {
		return err
	}
	return r.Routes.ReplaceIfStatus(ctx, routeID, prev, route)
}

func TestRouteServiceAddStep(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRouteFixture(t)
	_, err := svc.Create(ctx, routeInput("rt001", "ord001", "drv001", models.RoutePending))
	require.NoError(t, err)

	r, err := svc.AddStep(ctx, "rt001", StepInput{Location: "Bridge", Timestamp: testNow.Add(time.Minute)})
	require.NoError(t, err)
	require.Len(t, r.Steps, 2)
	assert.Equal(t, "Warehouse", r.Steps[0].Location)
	assert.Equal(t, "Bridge", r.Steps[1].Location)

	_, err = svc.AddStep(ctx, "rt404", StepInput{Location: "Bridge", Timestamp: testNow})
	requireKind(t, err, apperr.NotFound, "Route not found")

	_, err = svc.AddStep(ctx, "rt001", StepInput{Location: "Bridge"})
	requireKind(t, err, apperr.Validation, "Each step requires a timestamp")
}

func TestRouteServiceGetAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newRouteFixture(t)
	_, err := svc.Create(ctx, routeInput("rt001", "ord001", "drv001", models.RoutePending))
	require.NoError(t, err)

	r, err := svc.Get(ctx, "rt001")
	require.NoError(t, err)
	assert.Equal(t, "ord001", r.OrderID)

	require.NoError(t, svc.Delete(ctx, "rt001"))
	_, err = svc.Get(ctx, "rt001")
	requireKind(t, err, apperr.NotFound, "Route not found")
	requireKind(t, svc.Delete(ctx, "rt001"), apperr.NotFound, "Route not found")
}
