// Package mongostore implements the store contracts on MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"delivery-management-api/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	dbTimeout = time.Second * 3

	usersCollection   = "users"
	driversCollection = "drivers"
	ordersCollection  = "orders"
	routesCollection  = "routes"
)

type Store struct {
	client       *mongo.Client
	db           *mongo.Database
	transactions bool
}

var _ store.Store = (*Store)(nil)

// New wraps an already connected client. When transactions is true,
// WithinTx runs inside a Mongo session transaction, which needs a replica
// set; otherwise the writes of WithinTx are applied one after another.
func New(client *mongo.Client, database string, transactions bool) *Store {
	return &Store{
		client:       client,
		db:           client.Database(database),
		transactions: transactions,
	}
}

// Connect dials uri and checks the connection with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the unique indexes the services rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	unique := func(keys ...string) []mongo.IndexModel {
		out := make([]mongo.IndexModel, 0, len(keys))
		for _, k := range keys {
			out = append(out, mongo.IndexModel{
				Keys:    bson.D{{Key: k, Value: 1}},
				Options: options.Index().SetUnique(true),
			})
		}
		return out
	}

	specs := map[string][]mongo.IndexModel{
		usersCollection:   unique("email"),
		driversCollection: unique("driverId", "email"),
		ordersCollection:  unique("orderId"),
		routesCollection: append(unique("routeId"),
			mongo.IndexModel{Keys: bson.D{{Key: "orderId", Value: 1}}},
			mongo.IndexModel{Keys: bson.D{{Key: "driverId", Value: 1}}},
		),
	}
	for coll, idx := range specs {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

func (s *Store) Users() store.Users {
	return &userRepo{coll: s.db.Collection(usersCollection)}
}

func (s *Store) Drivers() store.Drivers {
	return &driverRepo{coll: s.db.Collection(driversCollection)}
}

func (s *Store) Orders() store.Orders {
	return &orderRepo{coll: s.db.Collection(ordersCollection)}
}

func (s *Store) Routes() store.Routes {
	return &routeRepo{coll: s.db.Collection(routesCollection)}
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx store.Store) error) error {
	if !s.transactions {
		return fn(s)
	}
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(&sessionStore{Store: s, sc: sc})
	})
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// sessionStore pins every repository call to a transaction's session
// context; the ctx passed by callers is replaced by sc.
type sessionStore struct {
	*Store
	sc mongo.SessionContext
}

func (s *sessionStore) Users() store.Users {
	return &userRepo{coll: s.db.Collection(usersCollection), sc: s.sc}
}

func (s *sessionStore) Drivers() store.Drivers {
	return &driverRepo{coll: s.db.Collection(driversCollection), sc: s.sc}
}

func (s *sessionStore) Orders() store.Orders {
	return &orderRepo{coll: s.db.Collection(ordersCollection), sc: s.sc}
}

func (s *sessionStore) Routes() store.Routes {
	return &routeRepo{coll: s.db.Collection(routesCollection), sc: s.sc}
}

func (s *sessionStore) WithinTx(_ context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// opContext returns the context a repository operation should run under.
func opContext(ctx context.Context, sc mongo.SessionContext) (context.Context, context.CancelFunc) {
	if sc != nil {
		return sc, func() {}
	}
	return context.WithTimeout(ctx, dbTimeout)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return store.ErrDuplicate
	}
	return err
}
