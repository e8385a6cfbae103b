package mongostore

import (
	"context"
	"fmt"
	"time"

	"delivery-management-api/models"
	"delivery-management-api/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type driverRepo struct {
	coll *mongo.Collection
	sc   mongo.SessionContext
}

func (r *driverRepo) Create(ctx context.Context, d *models.Driver) error {
	ctx, cancel := opContext(ctx, r.sc)
	defer cancel()

	now := time.Now().UTC()
	d.CreatedAt, d.UpdatedAt = now, now
	_, err := r.coll.InsertOne(ctx, d)
	return translate(err)
}

func (r *driverRepo) List(ctx context.Context) ([]models.Driver, error) {
	ctx, cancel := opContext(ctx, r.sc)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find drivers: %w", err)
	}
	defer cursor.Close(ctx)

	drivers := []models.Driver{}
	if err := cursor.All(ctx, &drivers); err != nil {
		return nil, fmt.Errorf("failed to decode drivers: %w", err)
	}
	return drivers, nil
}

func (r *driverRepo) FindByID(ctx context.Context, driverID string) (*models.Driver, error) {
	return r.findOne(ctx, bson.M{"driverId": driverID})
}

func (r *driverRepo) FindByEmail(ctx context.Context, email string) (*models.Driver, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *driverRepo) findOne(ctx context.Context, filter bson.M) (*models.Driver, error) {
	ctx, cancel := opContext(ctx, r.sc)
	defer cancel()

	var d models.Driver
	if err := r.coll.FindOne(ctx, filter).Decode(&d); err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (r *driverRepo) Save(ctx context.Context, d *models.Driver) error {
	ctx, cancel := opContext(ctx, r.sc)
	defer cancel()

	d.UpdatedAt = time.Now().UTC()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"driverId": d.DriverID}, d)
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *driverRepo) IncrementCompletedOrders(ctx context.Context, driverID string) error {
	ctx, cancel := opContext(ctx, r.sc)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"driverId": driverID},
		bson.M{
			"$inc": bson.M{"completedOrders": 1},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *driverRepo) Delete(ctx context.Context, driverID string) error {
	ctx, cancel := opContext(ctx, r.sc)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"driverId": driverID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
