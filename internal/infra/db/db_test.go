package db

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/elliotJHarding/transactions/config"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	"github.com/elliotJHarding/transactions/internal/integration/persistence"
)

func TestNewConnection_SQLiteMigrateIsIdempotent(t *testing.T) {
	cfg := &config.DatabaseConfig{URL: "sqlite://" + t.TempDir() + "/test.db"}

	database, err := NewConnection(cfg)
	if err != nil {
		t.Fatalf("NewConnection() error = %v", err)
	}
	defer database.Close()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := database.Migrate(ctx); err != nil {
			t.Fatalf("Migrate() run %d error = %v", i+1, err)
		}
	}

	categories, err := persistence.NewCategoryRepository(database.DB()).FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(categories) != len(entity.DefaultCategories()) {
		t.Errorf("seeded %d categories, want %d", len(categories), len(entity.DefaultCategories()))
	}
	if !database.HealthCheck() {
		t.Error("HealthCheck() = false, want true")
	}
}

func TestNewRedisClient(t *testing.T) {
	t.Run("empty url disables redis", func(t *testing.T) {
		client, err := NewRedisClient(&config.RedisConfig{})
		if err != nil || client != nil {
			t.Errorf("NewRedisClient() = %v, %v, want nil, nil", client, err)
		}
	})

	t.Run("connects and reports healthy", func(t *testing.T) {
		mr := miniredis.RunT(t)

		client, err := NewRedisClient(&config.RedisConfig{URL: "redis://" + mr.Addr()})
		if err != nil {
			t.Fatalf("NewRedisClient() error = %v", err)
		}
		defer client.Close()

		if !RedisHealthCheck(client)() {
			t.Error("RedisHealthCheck() = false, want true")
		}
		mr.Close()
		if RedisHealthCheck(client)() {
			t.Error("RedisHealthCheck() after close = true, want false")
		}
	})

	t.Run("bad url", func(t *testing.T) {
		if _, err := NewRedisClient(&config.RedisConfig{URL: "not a url"}); err == nil {
			t.Error("NewRedisClient() error = nil, want error")
		}
	})
}
