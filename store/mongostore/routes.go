package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"delivery-management-api/models"
	"delivery-management-api/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type routeRepo struct {
	coll *mongo.Collection
	sc   mongo.SessionContext
}

func (r *routeRepo) Create(ctx context.Context, route *models.Route) error {
	ctx, cancel := opContext(ctx, r.sc)
	defer cancel()

	if route.Steps == nil {
		route.Steps = models.Steps{}
	}
	now := time.Now().UTC()
	route.CreatedAt, route.UpdatedAt = now, now
	_, err := r.coll.InsertOne(ctx, route)
	return translate(err)
}

func (r *routeRepo) List(ctx context.Context) ([]models.Route, error) {
	ctx, cancel := opContext(ctx, r.sc)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find routes: %w", err)
	}
	defer cursor.Close(ctx)

	routes := []models.Route{}
	if err := cursor.All(ctx, &routes); err != nil {
		return nil, fmt.Errorf("failed to decode routes: %w", err)
	}
	return routes, nil
}

func (r *routeRepo) FindByID(ctx context.Context, routeID string) (*models.Route, error) {
	ctx, cancel := opContext(ctx, r.sc)
	defer cancel()

	var route models.Route
	if err := r.coll.FindOne(ctx, bson.M{"routeId": routeID}).Decode(&route); err != nil {
		return nil, translate(err)
	}
	return &route, nil
}

func (r *routeRepo) ExistsForOrder(ctx context.Context, orderID string) (bool, error) {
	return r.exists(ctx, bson.M{"orderId": orderID})
}

func (r *routeRepo) ExistsForDriver(ctx context.Context, driverID string) (bool, error) {
	return r.exists(ctx, bson.M{"driverId": driverID})
}

func (r *routeRepo) exists(ctx context.Context, filter bson.M) (bool, error) {
	ctx, cancel := opContext(ctx, r.sc)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *routeRepo) ReplaceIfStatus(ctx context.Context, routeID string, prev models.RouteStatus, route *models.Route) error {
	opCtx, cancel := opContext(ctx, r.sc)
	defer cancel()

	if route.Steps == nil {
		route.Steps = models.Steps{}
	}
	var saved models.Route
	err := r.coll.FindOneAndUpdate(opCtx,
		bson.M{"routeId": routeID, "status": prev},
		bson.M{"$set": bson.M{
			"routeId":   route.RouteID,
			"orderId":   route.OrderID,
			"driverId":  route.DriverID,
			"steps":     route.Steps,
			"status":    route.Status,
			"updatedAt": time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&saved)
	if errors.Is(err, mongo.ErrNoDocuments) {
		if _, err := r.FindByID(ctx, routeID); err != nil {
			return err
		}
		return store.ErrStale
	}
	if err != nil {
		return translate(err)
	}
	*route = saved
	return nil
}

func (r *routeRepo) AppendStep(ctx context.Context, routeID string, step models.Step) (*models.Route, error) {
	ctx, cancel := opContext(ctx, r.sc)
	defer cancel()

	var route models.Route
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"routeId": routeID},
		bson.M{
			"$push": bson.M{"steps": step},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&route)
	if err != nil {
		return nil, translate(err)
	}
	return &route, nil
}

func (r *routeRepo) Delete(ctx context.Context, routeID string) error {
	ctx, cancel := opContext(ctx, r.sc)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"routeId": routeID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
