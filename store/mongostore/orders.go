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

type orderRepo struct {
	coll *mongo.Collection
	sc   mongo.SessionContext
}

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	ctx, cancel := opContext(ctx, r.sc)
	defer cancel()

	now := time.Now().UTC()
	o.CreatedAt, o.UpdatedAt = now, now
	_, err := r.coll.InsertOne(ctx, o)
	return translate(err)
}

func (r *orderRepo) List(ctx context.Context) ([]models.Order, error) {
	ctx, cancel := opContext(ctx, r.sc)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	return orders, nil
}

func (r *orderRepo) FindByID(ctx context.Context, orderID string) (*models.Order, error) {
	ctx, cancel := opContext(ctx, r.sc)
	defer cancel()

	var o models.Order
	if err := r.coll.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&o); err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *orderRepo) Update(ctx context.Context, orderID string, ch models.OrderChanges) (*models.Order, error) {
	ctx, cancel := opContext(ctx, r.sc)
	defer cancel()

	set := bson.M{"updatedAt": time.Now().UTC()}
	if ch.CustomerName != nil {
		set["customerName"] = *ch.CustomerName
	}
	if ch.DeliveryAddress != nil {
		set["deliveryAddress"] = *ch.DeliveryAddress
	}
	if ch.OrderStatus != nil {
		set["orderStatus"] = *ch.OrderStatus
	}
	if ch.TotalAmount != nil {
		set["totalAmount"] = *ch.TotalAmount
	}

	var o models.Order
	err := r.coll.FindOneAndUpdate(ctx,
		bson.M{"orderId": orderID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&o)
	if err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *orderRepo) SetStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	ctx, cancel := opContext(ctx, r.sc)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"orderId": orderID},
		bson.M{"$set": bson.M{"orderStatus": status, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *orderRepo) Delete(ctx context.Context, orderID string) error {
	ctx, cancel := opContext(ctx, r.sc)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"orderId": orderID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
