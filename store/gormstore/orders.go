package gormstore

import (
	"context"
	"time"

	"delivery-management-api/models"
	"delivery-management-api/store"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	return translate(r.db.WithContext(ctx).Create(o).Error)
}

func (r *orderRepo) List(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	var o models.Order
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&o).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *orderRepo) Update(ctx context.Context, orderID string, ch models.OrderChanges) (*models.Order, error) {
	update := map[string]interface{}{"updated_at": time.Now()}
	if ch.CustomerName != nil {
		update["customer_name"] = *ch.CustomerName
	}
	if ch.DeliveryAddress != nil {
		update["delivery_address"] = *ch.DeliveryAddress
	}
	if ch.OrderStatus != nil {
		update["order_status"] = *ch.OrderStatus
	}
	if ch.TotalAmount != nil {
		update["total_amount"] = *ch.TotalAmount
	}

	res := r.db.WithContext(ctx).Model(&models.Order{}).Where("order_id = ?", orderID).Updates(update)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, store.ErrNotFound
	}
	return r.FindByID(ctx, orderID)
}

func (r *orderRepo) SetStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("order_id = ?", orderID).
		Update("order_status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *orderRepo) Delete(ctx context.Context, orderID string) error {
	res := r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&models.Order{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
