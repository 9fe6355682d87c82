package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/AlibekovAA/event-registration/internal/common/constants"
	"github.com/AlibekovAA/event-registration/internal/common/logger"
)

const DefaultDatabase = "event_registration"

// Connect dials MongoDB and returns the database named in the URI path, or
// DefaultDatabase when the path is empty.
func Connect(ctx context.Context, log *logger.Logger, uri string) (*mongo.Client, *mongo.Database, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse mongodb url: %w", err)
	}

	dbName := cs.Database
	if dbName == "" {
		dbName = DefaultDatabase
	}

	connectCtx, cancel := context.WithTimeout(ctx, constants.StoreConnectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetAppName("event-registration").
		SetConnectTimeout(constants.DBPoolConnectTimeout).
		SetMaxPoolSize(uint64(constants.DBPoolMaxConns))

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	log.Infof("mongodb connection initialized: database=%s", dbName)
	return client, client.Database(dbName), nil
}
