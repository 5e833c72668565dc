// Package inttest starts the containers integration tests run against. Every setup function waits
// until its container is ready and registers cleanup with t.Cleanup.
package inttest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoImage = "mongo:7.0"

// SetupMongo starts a single node replica set, so change streams are available, and returns a connected client.
func SetupMongo(t *testing.T) *mongo.Client {
	t.Helper()
	ctx := context.Background()

	container, err := mongodb.Run(ctx, mongoImage, mongodb.WithReplicaSet("rs0"))
	require.NoError(t, err, "failed to start MongoDB")
	t.Cleanup(func() {
		require.NoError(t, container.Terminate(context.Background()), "failed to terminate MongoDB")
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err, "failed to get MongoDB connection string")

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri).SetDirect(true))
	require.NoError(t, err, "failed to connect to MongoDB")
	require.NoError(t, client.Ping(connectCtx, nil), "failed to ping MongoDB")
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	return client
}
