package db

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const CONNECT_TIMEOUT = time.Second * 10
const MAX_CONNECT_ELAPSED = time.Minute

var ErrNoConnection = errors.New("the database connection string is empty")

type MongoConnection struct {
	client *mongo.Client
	db     *mongo.Database
}

func (m *MongoConnection) GetCollection(collection string) *mongo.Collection {
	return m.db.Collection(collection)
}

func (m *MongoConnection) GetCollections(ctx context.Context) ([]string, error) {
	return m.db.ListCollectionNames(ctx, bson.D{})
}

func (m *MongoConnection) CreateCollection(
	ctx context.Context,
	collection string,
	opts *options.CreateCollectionOptions,
) error {
	return m.db.CreateCollection(ctx, collection, opts)
}

func (m *MongoConnection) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// Connects and pings the server, retrying with exponential backoff
func NewConnection(ctx context.Context, uri, dbName string) (*MongoConnection, error) {
	if uri == "" {
		return nil, ErrNoConnection
	}
	var client *mongo.Client
	retryBackoff := backoff.NewExponentialBackOff()
	retryBackoff.MaxElapsedTime = MAX_CONNECT_ELAPSED

	connect := func() error {
		ctxTimeout, cancel := context.WithTimeout(ctx, CONNECT_TIMEOUT)
		defer cancel()

		c, err := mongo.Connect(ctxTimeout, options.Client().ApplyURI(uri))
		if err != nil {
			return err
		}
		if err := c.Ping(ctxTimeout, readpref.Primary()); err != nil {
			_ = c.Disconnect(context.Background())
			return err
		}
		client = c
		return nil
	}
	notify := func(err error, next time.Duration) {
		zap.L().Warn("mongo connection failed, retrying",
			zap.Error(err),
			zap.Duration("next", next),
		)
	}
	if err := backoff.RetryNotify(
		connect,
		backoff.WithContext(retryBackoff, ctx),
		notify,
	); err != nil {
		return nil, err
	}

	return &MongoConnection{
		client: client,
		db:     client.Database(dbName),
	}, nil
}
