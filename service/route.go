package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"delivery-management-api/apperr"
	"delivery-management-api/metrics"
	"delivery-management-api/models"
	"delivery-management-api/statemachine"
	"delivery-management-api/store"

	"go.uber.org/zap"
)

type StepInput struct {
	Location  string    `json:"location" validate:"notblank"`
	Timestamp time.Time `json:"timestamp" validate:"required"`
}

// RouteInput is the full body of a route create or replace
type RouteInput struct {
	RouteID  string             `json:"routeId" validate:"notblank"`
	OrderID  string             `json:"orderId" validate:"notblank"`
	DriverID string             `json:"driverId" validate:"notblank"`
	Steps    []StepInput        `json:"steps" validate:"required,dive"`
	Status   models.RouteStatus `json:"status" validate:"required"`
}

const allFieldsRequired = "All fields are required"

var routeMessages = map[string]string{
	"routeId":   allFieldsRequired,
	"orderId":   allFieldsRequired,
	"driverId":  allFieldsRequired,
	"steps":     allFieldsRequired,
	"status":    allFieldsRequired,
	"location":  "Each step requires a location",
	"timestamp": "Each step requires a timestamp",
}

func (in RouteInput) toRoute() *models.Route {
	steps := make(models.Steps, len(in.Steps))
	for i, s := range in.Steps {
		steps[i] = models.Step{Location: s.Location, Timestamp: s.Timestamp}
	}
	return &models.Route{
		RouteID:  in.RouteID,
		OrderID:  in.OrderID,
		DriverID: in.DriverID,
		Steps:    steps,
		Status:   in.Status,
	}
}

// RouteService owns the route lifecycle and its effects on drivers and
// orders
type RouteService struct {
	store   store.Store
	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewRouteService(st store.Store, m *metrics.Metrics, log *zap.Logger) *RouteService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RouteService{store: st, metrics: m, log: log}
}

// Create assigns an unrouted order to an active, unassigned driver
func (s *RouteService) Create(ctx context.Context, in RouteInput) (*models.Route, error) {
	if err := validateInput(in, routeMessages); err != nil {
		return nil, err
	}
	route := in.toRoute()

	err := s.store.WithinTx(ctx, func(tx store.Store) error {
		if _, err := tx.Orders().FindByID(ctx, in.OrderID); err != nil {
			return notFound(err, "Order not found")
		}
		driver, err := tx.Drivers().FindByID(ctx, in.DriverID)
		if err != nil {
			return notFound(err, "Driver not found")
		}

		routed, err := tx.Routes().ExistsForOrder(ctx, in.OrderID)
		if err != nil {
			return fmt.Errorf("find route by order: %w", err)
		}
		if routed {
			return apperr.New(apperr.Conflict, "Order %s is already assigned to a Driver", in.OrderID)
		}

		if driver.Status != models.DriverActive {
			return apperr.New(apperr.Conflict, "Driver must be active to create a route")
		}

		if _, err := tx.Routes().FindByID(ctx, in.RouteID); err == nil {
			return apperr.New(apperr.Conflict, "this routeId already exists")
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("find route: %w", err)
		}

		busy, err := tx.Routes().ExistsForDriver(ctx, in.DriverID)
		if err != nil {
			return fmt.Errorf("find route by driver: %w", err)
		}
		if busy {
			return apperr.New(apperr.Conflict, "Driver already has a route assigned")
		}

		if !statemachine.CanCreateWith(in.Status) {
			return apperr.New(apperr.Validation, `Invalid routeStatus. It must be one of "pending", "in-progress".`)
		}

		if in.Status == models.RouteInProgress {
			if err := tx.Orders().SetStatus(ctx, in.OrderID, models.OrderDispatched); err != nil {
				return notFound(err, "Order not found")
			}
		}

		if err := tx.Routes().Create(ctx, route); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return apperr.New(apperr.Conflict, "this routeId already exists")
			}
			return fmt.Errorf("create route: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RouteTransition(string(route.Status))
	s.log.Info("route created",
		zap.String("route_id", route.RouteID),
		zap.String("order_id", route.OrderID),
		zap.String("driver_id", route.DriverID),
		zap.String("status", string(route.Status)),
	)
	return route, nil
}

// Update replaces the route stored under routeID. Moving the route to
// completed for the first time credits the driver and delivers the order.
func (s *RouteService) Update(ctx context.Context, routeID string, in RouteInput) (*models.Route, error) {
	if err := validateInput(in, routeMessages); err != nil {
		return nil, err
	}
	if !in.Status.Valid() {
		return nil, apperr.New(apperr.Validation, `Invalid routeStatus. It must be one of "pending", "in-progress", "completed".`)
	}
	route := in.toRoute()

	var prev models.RouteStatus
	err := s.store.WithinTx(ctx, func(tx store.Store) error {
		driver, err := tx.Drivers().FindByID(ctx, in.DriverID)
		if err != nil {
			return notFound(err, "Driver not found")
		}
		if driver.Status != models.DriverActive {
			return apperr.New(apperr.Conflict, "Driver must be active to update the route")
		}

		existing, err := tx.Routes().FindByID(ctx, routeID)
		if err != nil {
			return notFound(err, "Route not found")
		}
		prev = existing.Status

		if _, err := tx.Orders().FindByID(ctx, in.OrderID); err != nil {
			return notFound(err, "Order not found")
		}

		if err := statemachine.CanTransition(prev, in.Status); err != nil {
			return apperr.New(apperr.Conflict, "%s", err.Error())
		}

		if in.RouteID != routeID {
			if _, err := tx.Routes().FindByID(ctx, in.RouteID); err == nil {
				return apperr.New(apperr.Conflict, "this routeId already exists")
			} else if !errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("find route: %w", err)
			}
		}

		if err := tx.Routes().ReplaceIfStatus(ctx, routeID, prev, route); err != nil {
			switch {
			case errors.Is(err, store.ErrStale):
				return apperr.New(apperr.Conflict, "Route was modified by another request, retry the update")
			case errors.Is(err, store.ErrDuplicate):
				return apperr.New(apperr.Conflict, "this routeId already exists")
			}
			return notFound(err, "Route not found")
		}

		switch {
		case in.Status == models.RouteInProgress:
			if err := tx.Orders().SetStatus(ctx, in.OrderID, models.OrderDispatched); err != nil {
				return notFound(err, "Order not found")
			}
		case in.Status == models.RouteCompleted && prev != models.RouteCompleted:
			if err := tx.Drivers().IncrementCompletedOrders(ctx, in.DriverID); err != nil {
				return notFound(err, "Driver not found")
			}
			if err := tx.Orders().SetStatus(ctx, in.OrderID, models.OrderDelivered); err != nil {
				return notFound(err, "Order not found")
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if prev != route.Status {
		s.metrics.RouteTransition(string(route.Status))
		s.log.Info("route status changed",
			zap.String("route_id", route.RouteID),
			zap.String("from", string(prev)),
			zap.String("to", string(route.Status)),
		)
	}
	return route, nil
}

// AddStep appends a step to the route regardless of its status
func (s *RouteService) AddStep(ctx context.Context, routeID string, in StepInput) (*models.Route, error) {
	if err := validateInput(in, routeMessages); err != nil {
		return nil, err
	}
	route, err := s.store.Routes().AppendStep(ctx, routeID, models.Step{
		Location:  in.Location,
		Timestamp: in.Timestamp,
	})
	if err != nil {
		return nil, notFound(err, "Route not found")
	}
	return route, nil
}

func (s *RouteService) List(ctx context.Context) ([]models.Route, error) {
	return s.store.Routes().List(ctx)
}

func (s *RouteService) Get(ctx context.Context, routeID string) (*models.Route, error) {
	route, err := s.store.Routes().FindByID(ctx, routeID)
	if err != nil {
		return nil, notFound(err, "Route not found")
	}
	return route, nil
}

func (s *RouteService) Delete(ctx context.Context, routeID string) error {
	if err := s.store.Routes().Delete(ctx, routeID); err != nil {
		return notFound(err, "Route not found")
	}
	return nil
}
