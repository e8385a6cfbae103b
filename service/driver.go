package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"delivery-management-api/apperr"
	"delivery-management-api/models"
	"delivery-management-api/store"

	"go.uber.org/zap"
)

type CreateDriverInput struct {
	DriverID         string              `json:"driverId" validate:"driver_id"`
	Name             string              `json:"name" validate:"notblank"`
	Email            string              `json:"email" validate:"driver_email"`
	Phone            string              `json:"phone" validate:"phone10"`
	VehicleType      string              `json:"vehicleType" validate:"notblank"`
	Status           models.DriverStatus `json:"status" validate:"enum"`
	DistanceTraveled float64             `json:"distanceTraveled" validate:"gte=0"`
}

type UpdateDriverInput struct {
	Name        string              `json:"name" validate:"notblank"`
	Email       string              `json:"email" validate:"driver_email"`
	Phone       string              `json:"phone" validate:"phone10"`
	VehicleType string              `json:"vehicleType" validate:"notblank"`
	Status      models.DriverStatus `json:"status" validate:"enum"`
}

var driverMessages = map[string]string{
	"driverId":         "Invalid driverId. It must be alphanumeric and between 5 to 10 characters long.",
	"name":             "Invalid name. It must be a non-empty string.",
	"email":            "Please enter a valid email",
	"phone":            "Invalid phone number. It must be exactly 10 digits long.",
	"vehicleType":      "Invalid vehicleType. It must be a non-empty string.",
	"status":           `Invalid status. It must be either "active" or "inactive".`,
	"distanceTraveled": "Invalid distanceTraveled. It must not be negative.",
}

// DriverService manages drivers, their online time and their payment
type DriverService struct {
	store store.Store
	rates PaymentRates
	now   func() time.Time
	log   *zap.Logger
}

func NewDriverService(st store.Store, rates PaymentRates, log *zap.Logger) *DriverService {
	if log == nil {
		log = zap.NewNop()
	}
	return &DriverService{store: st, rates: rates, now: time.Now, log: log}
}

func (s *DriverService) Create(ctx context.Context, in CreateDriverInput) (*models.Driver, error) {
	if err := validateInput(in, driverMessages); err != nil {
		return nil, err
	}

	taken, err := s.driverExists(ctx, in.DriverID, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.New(apperr.Conflict, "Driver with this email or driverId already exists")
	}

	driver := &models.Driver{
		DriverID:         in.DriverID,
		Name:             in.Name,
		Email:            in.Email,
		Phone:            in.Phone,
		VehicleType:      in.VehicleType,
		Status:           in.Status,
		DistanceTraveled: in.DistanceTraveled,
	}
	if in.Status == models.DriverActive {
		now := s.now()
		driver.LastActiveAt = &now
	}

	if err := s.store.Drivers().Create(ctx, driver); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.New(apperr.Conflict, "Driver with this email or driverId already exists")
		}
		return nil, fmt.Errorf("create driver: %w", err)
	}
	return driver, nil
}

func (s *DriverService) driverExists(ctx context.Context, driverID, email string) (bool, error) {
	if _, err := s.store.Drivers().FindByID(ctx, driverID); err == nil {
		return true, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return false, fmt.Errorf("find driver: %w", err)
	}
	if _, err := s.store.Drivers().FindByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, store.ErrNotFound) {
		return false, fmt.Errorf("find driver: %w", err)
	}
	return false, nil
}

func (s *DriverService) List(ctx context.Context) ([]models.Driver, error) {
	return s.store.Drivers().List(ctx)
}

// Get returns the driver after reconciling its online time
func (s *DriverService) Get(ctx context.Context, driverID string) (*models.Driver, error) {
	driver, err := s.store.Drivers().FindByID(ctx, driverID)
	if err != nil {
		return nil, notFound(err, "Driver not found")
	}
	if err := s.reconcile(ctx, s.store.Drivers(), driver); err != nil {
		return nil, err
	}
	return driver, nil
}

// Update reconciles the driver's online time and then overwrites its
// profile and status
func (s *DriverService) Update(ctx context.Context, driverID string, in UpdateDriverInput) (*models.Driver, error) {
	var driver *models.Driver
	err := s.store.WithinTx(ctx, func(tx store.Store) error {
		var err error
		driver, err = tx.Drivers().FindByID(ctx, driverID)
		if err != nil {
			return notFound(err, "Driver not found")
		}

		if err := validateInput(in, driverMessages); err != nil {
			return err
		}

		if in.Email != driver.Email {
			other, err := tx.Drivers().FindByEmail(ctx, in.Email)
			if err == nil && other.DriverID != driver.DriverID {
				return apperr.New(apperr.Conflict, "Driver with this email already exists")
			}
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("find driver: %w", err)
			}
		}

		if err := s.reconcile(ctx, tx.Drivers(), driver); err != nil {
			return err
		}

		driver.Status = in.Status
		driver.Name = in.Name
		driver.Email = in.Email
		driver.Phone = in.Phone
		driver.VehicleType = in.VehicleType
		if err := tx.Drivers().Save(ctx, driver); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return apperr.New(apperr.Conflict, "Driver with this email already exists")
			}
			return fmt.Errorf("save driver: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return driver, nil
}

func (s *DriverService) Delete(ctx context.Context, driverID string) error {
	if err := s.store.Drivers().Delete(ctx, driverID); err != nil {
		return notFound(err, "Driver not found")
	}
	return nil
}

// Payment reconciles the driver's online time and prices its counters
func (s *DriverService) Payment(ctx context.Context, driverID string) (*PaymentSummary, error) {
	driver, err := s.Get(ctx, driverID)
	if err != nil {
		return nil, err
	}
	return &PaymentSummary{
		DriverID:       driver.DriverID,
		Name:           driver.Name,
		PaymentDetails: CalculatePayment(*driver, s.rates),
	}, nil
}

// reconcile applies ReconcileOnlineTime and always persists the driver
func (s *DriverService) reconcile(ctx context.Context, drivers store.Drivers, d *models.Driver) error {
	before := d.OnlineTime
	ReconcileOnlineTime(d, s.now())
	if err := drivers.Save(ctx, d); err != nil {
		return fmt.Errorf("save driver online time: %w", err)
	}
	if d.OnlineTime != before {
		s.log.Debug("driver online time reconciled",
			zap.String("driver_id", d.DriverID),
			zap.Int("online_time", d.OnlineTime),
		)
	}
	return nil
}
