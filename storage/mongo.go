package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoDB holds the single client shared by every store. Stores are handed
// the database handle explicitly; nothing reads it from a package global.
type MongoDB struct {
	client *mongo.Client
	db     *mongo.Database
	log    *zap.Logger
}

func Connect(ctx context.Context, uri, databaseName string, log *zap.Logger) (*MongoDB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Info("connected to MongoDB", zap.String("database", databaseName))
	return &MongoDB{
		client: client,
		db:     client.Database(databaseName),
		log:    log,
	}, nil
}

func (m *MongoDB) Database() *mongo.Database {
	return m.db
}

func (m *MongoDB) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	if err := m.client.Disconnect(ctx); err != nil {
		return err
	}
	m.log.Info("disconnected from MongoDB")
	return nil
}
