package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sendpin/sendpin/internal/pkg/goerror"
	"github.com/sendpin/sendpin/internal/pkg/instrument"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func newTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	ctr, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("start redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("terminate redis container: %v", err)
		}
	})

	uri, err := ctr.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	opt, err := goredis.ParseURL(uri)
	if err != nil {
		t.Fatalf("parse redis url: %v", err)
	}

	client := goredis.NewClient(opt)
	t.Cleanup(func() { client.Close() })

	return NewCache(client, ttl, instrument.NewNoop())
}

func TestCacheRoundTrip(t *testing.T) {

	// Arrange
	cache := newTestCache(t, time.Minute)
	ctx := context.Background()

	// Act
	if err := cache.SetCustomerID(ctx, "+628123456789", 42); err != nil {
		t.Fatalf("SetCustomerID() error = %v", err)
	}
	id, err := cache.GetCustomerID(ctx, "+628123456789")

	// Assert
	if err != nil {
		t.Fatalf("GetCustomerID() error = %v", err)
	}
	if id != 42 {
		t.Fatalf("GetCustomerID() = %d, want 42", id)
	}
}

func TestCacheMiss(t *testing.T) {

	// Arrange
	cache := newTestCache(t, time.Minute)

	// Act
	_, err := cache.GetCustomerID(context.Background(), "+620000000000")

	// Assert
	if !errors.Is(err, goerror.ErrNotFound) {
		t.Fatalf("GetCustomerID() error = %v, want ErrNotFound", err)
	}
}
