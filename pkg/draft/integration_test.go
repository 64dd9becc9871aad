package draft

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestRedisStoreIntegration(t *testing.T) {
	addr := os.Getenv("UMLPAD_REDIS_ADDR")
	if addr == "" {
		t.Skip("UMLPAD_REDIS_ADDR not set")
	}
	s, err := NewRedisStore(context.Background(), RedisConfig{
		Addr:   addr,
		Prefix: "umlpad:test:draft:",
		TTL:    time.Minute,
	})
	if err != nil {
		t.Fatalf("NewRedisStore error: %v", err)
	}
	defer s.Close()
	testStore(t, s)
}

func TestMongoStoreIntegration(t *testing.T) {
	uri := os.Getenv("UMLPAD_MONGO_URI")
	if uri == "" {
		t.Skip("UMLPAD_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s, err := NewMongoStore(ctx, MongoConfig{URI: uri, Database: "umlpad_test"})
	if err != nil {
		t.Fatalf("NewMongoStore error: %v", err)
	}
	defer s.Close()
	testStore(t, s)
}

func TestNewRedisStoreUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := NewRedisStore(ctx, RedisConfig{Addr: "127.0.0.1:1"}); err == nil {
		t.Error("NewRedisStore should fail for an unreachable server")
	}
}
