package service

import (
	"context"
	"errors"
	"fmt"

	"delivery-management-api/metrics"
	"delivery-management-api/models"
	"delivery-management-api/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	orderIDLength   = 6
	orderIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	orderIDAttempts = 5
)

type CreateOrderInput struct {
	CustomerName    string             `json:"customerName" validate:"notblank"`
	DeliveryAddress string             `json:"deliveryAddress" validate:"notblank"`
	OrderStatus     models.OrderStatus `json:"orderStatus" validate:"omitempty,enum"`
	TotalAmount     float64            `json:"totalAmount" validate:"gt=0"`
}

type UpdateOrderInput struct {
	CustomerName    *string             `json:"customerName" validate:"omitempty,notblank"`
	DeliveryAddress *string             `json:"deliveryAddress" validate:"omitempty,notblank"`
	OrderStatus     *models.OrderStatus `json:"orderStatus" validate:"omitempty,enum"`
	TotalAmount     *float64            `json:"totalAmount" validate:"omitempty,gt=0"`
}

var orderMessages = map[string]string{
	"customerName":    "Invalid customerName. It must be a non-empty string.",
	"deliveryAddress": "Invalid deliveryAddress. It must be a non-empty string.",
	"orderStatus":     `Invalid orderStatus. It must be one of "pending", "dispatched", "delivered", or "canceled".`,
	"totalAmount":     "Invalid totalAmount. It must be a positive number.",
}

type OrderService struct {
	store   store.Store
	metrics *metrics.Metrics
	newID   func() string
	log     *zap.Logger
}

func NewOrderService(st store.Store, m *metrics.Metrics, log *zap.Logger) *OrderService {
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderService{store: st, metrics: m, newID: newOrderID, log: log}
}

// newOrderID returns a short lowercase base36 code
func newOrderID() string {
	u := uuid.New()
	b := make([]byte, orderIDLength)
	for i := range b {
		b[i] = orderIDAlphabet[int(u[i])%len(orderIDAlphabet)]
	}
	return string(b)
}

// Create stores a new order under a generated orderId, drawing a new code
// when the previous one is taken
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if err := validateInput(in, orderMessages); err != nil {
		return nil, err
	}
	status := in.OrderStatus
	if status == "" {
		status = models.OrderPending
	}

	for attempt := 0; attempt < orderIDAttempts; attempt++ {
		order := &models.Order{
			OrderID:         s.newID(),
			CustomerName:    in.CustomerName,
			DeliveryAddress: in.DeliveryAddress,
			OrderStatus:     status,
			TotalAmount:     in.TotalAmount,
		}
		err := s.store.Orders().Create(ctx, order)
		if err == nil {
			s.metrics.OrderCreated()
			s.log.Info("order created", zap.String("order_id", order.OrderID))
			return order, nil
		}
		if !errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("create order: %w", err)
		}
		s.log.Warn("order id collision", zap.String("order_id", order.OrderID), zap.Int("attempt", attempt+1))
	}
	return nil, fmt.Errorf("create order: no free order id after %d attempts", orderIDAttempts)
}

func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.store.Orders().List(ctx)
}

func (s *OrderService) Get(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := s.store.Orders().FindByID(ctx, orderID)
	if err != nil {
		return nil, notFound(err, "Order not found")
	}
	return order, nil
}

// Update applies the provided fields only
func (s *OrderService) Update(ctx context.Context, orderID string, in UpdateOrderInput) (*models.Order, error) {
	if err := validateInput(in, orderMessages); err != nil {
		return nil, err
	}
	order, err := s.store.Orders().Update(ctx, orderID, models.OrderChanges{
		CustomerName:    in.CustomerName,
		DeliveryAddress: in.DeliveryAddress,
		OrderStatus:     in.OrderStatus,
		TotalAmount:     in.TotalAmount,
	})
	if err != nil {
		return nil, notFound(err, "Order not found")
	}
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, orderID string) error {
	if err := s.store.Orders().Delete(ctx, orderID); err != nil {
		return notFound(err, "Order not found")
	}
	return nil
}
