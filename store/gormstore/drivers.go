package gormstore

import (
	"context"

	"delivery-management-api/models"
	"delivery-management-api/store"

	"gorm.io/gorm"
)

type driverRepo struct {
	db *gorm.DB
}

func (r *driverRepo) Create(ctx context.Context, d *models.Driver) error {
	return translate(r.db.WithContext(ctx).Create(d).Error)
}

func (r *driverRepo) List(ctx context.Context) ([]models.Driver, error) {
	drivers := []models.Driver{}
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

func (r *driverRepo) FindByID(ctx context.Context, driverID string) (*models.Driver, error) {
	var d models.Driver
	if err := r.db.WithContext(ctx).Where("driver_id = ?", driverID).First(&d).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (r *driverRepo) FindByEmail(ctx context.Context, email string) (*models.Driver, error) {
	var d models.Driver
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&d).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (r *driverRepo) Save(ctx context.Context, d *models.Driver) error {
	return translate(r.db.WithContext(ctx).Save(d).Error)
}

func (r *driverRepo) IncrementCompletedOrders(ctx context.Context, driverID string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Driver{}).
		Where("driver_id = ?", driverID).
		Update("completed_orders", gorm.Expr("completed_orders + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *driverRepo) Delete(ctx context.Context, driverID string) error {
	res := r.db.WithContext(ctx).Where("driver_id = ?", driverID).Delete(&models.Driver{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
