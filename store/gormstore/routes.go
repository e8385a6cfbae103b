package gormstore

import (
	"context"
	"errors"
	"time"

	"delivery-management-api/models"
	"delivery-management-api/store"

	"gorm.io/gorm"
)

type routeRepo struct {
	db *gorm.DB
}

func (r *routeRepo) Create(ctx context.Context, route *models.Route) error {
	if route.Steps == nil {
		route.Steps = models.Steps{}
	}
	return translate(r.db.WithContext(ctx).Create(route).Error)
}

func (r *routeRepo) List(ctx context.Context) ([]models.Route, error) {
	routes := []models.Route{}
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *routeRepo) FindByID(ctx context.Context, routeID string) (*models.Route, error) {
	var route models.Route
	if err := r.db.WithContext(ctx).Where("route_id = ?", routeID).First(&route).Error; err != nil {
		return nil, translate(err)
	}
	return &route, nil
}

func (r *routeRepo) ExistsForOrder(ctx context.Context, orderID string) (bool, error) {
	return r.exists(ctx, "order_id = ?", orderID)
}

func (r *routeRepo) ExistsForDriver(ctx context.Context, driverID string) (bool, error) {
	return r.exists(ctx, "driver_id = ?", driverID)
}

func (r *routeRepo) exists(ctx context.Context, query string, arg string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Route{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *routeRepo) ReplaceIfStatus(ctx context.Context, routeID string, prev models.RouteStatus, route *models.Route) error {
	if route.Steps == nil {
		route.Steps = models.Steps{}
	}
	res := r.db.WithContext(ctx).
		Model(&models.Route{}).
		Where("route_id = ? AND status = ?", routeID, prev).
		Updates(map[string]interface{}{
			"route_id":   route.RouteID,
			"order_id":   route.OrderID,
			"driver_id":  route.DriverID,
			"steps":      route.Steps,
			"status":     route.Status,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, routeID); err != nil {
			return err
		}
		return store.ErrStale
	}

	saved, err := r.FindByID(ctx, route.RouteID)
	if err != nil {
		return err
	}
	*route = *saved
	return nil
}

func (r *routeRepo) AppendStep(ctx context.Context, routeID string, step models.Step) (*models.Route, error) {
	var route models.Route
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("route_id = ?", routeID).First(&route).Error; err != nil {
			return err
		}
		route.Steps = append(route.Steps, step)
		return tx.Model(&models.Route{}).
			Where("route_id = ?", routeID).
			Updates(map[string]interface{}{"steps": route.Steps, "updated_at": time.Now()}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return r.FindByID(ctx, routeID)
}

func (r *routeRepo) Delete(ctx context.Context, routeID string) error {
	res := r.db.WithContext(ctx).Where("route_id = ?", routeID).Delete(&models.Route{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
