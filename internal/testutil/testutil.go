// internal/testutil/testutil.go
package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupTestDB connects to the MongoDB instance named by
// HALLBOOK_TEST_MONGO_URI and returns a uniquely named database that is
// dropped when the test finishes. Tests that need a real database are
// skipped when the variable is unset, so the pure-core suites still run
// everywhere.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("HALLBOOK_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("HALLBOOK_TEST_MONGO_URI not set; skipping MongoDB-backed test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("mongo connect failed: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("mongo ping failed: %v", err)
	}

	db := client.Database(fmt.Sprintf("hallbook_test_%d", time.Now().UnixNano()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("test db drop failed: %v", err)
		}
		_ = client.Disconnect(ctx)
	})
	return db
}

// TestContext returns a context with a generous timeout for test
// database calls.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}
