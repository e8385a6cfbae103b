package mongostore

import (
	"context"
	"time"

	"delivery-management-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepo struct {
	coll *mongo.Collection
	sc   mongo.SessionContext
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	ctx, cancel := opContext(ctx, r.sc)
	defer cancel()

	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	_, err := r.coll.InsertOne(ctx, u)
	return translate(err)
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := opContext(ctx, r.sc)
	defer cancel()

	var u models.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		return nil, translate(err)
	}
	return &u, nil
}
