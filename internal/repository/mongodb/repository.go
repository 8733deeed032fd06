package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client is an explicitly constructed, explicitly lifetimed handle to the
// MongoDB deployment. It is created once in main and injected into the
// repositories; there is no process-wide cached connection.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials the deployment and verifies it is reachable.
func Connect(ctx context.Context, uri string, dbName string) (*Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Client{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// Database exposes the selected database for repository construction.
func (c *Client) Database() *mongo.Database {
	return c.db
}

// Close closes the MongoDB connection.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
