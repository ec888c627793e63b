package cache

import (
	"bytes"
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"firebreak-route-service/internal/adapters/repositories"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := repositories.InitSchema(db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func TestSqliteTileCacheRoundTrip(t *testing.T) {
	cache := NewSqliteTileCache(newTestDB(t))
	ctx := context.Background()

	data := []byte{0x89, 0x50, 0x4E, 0x47}
	if err := cache.PutTile(ctx, "14/100/200", data); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := cache.GetTile(ctx, "14/100/200")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("data = %v, want %v", got, data)
	}
}

func TestSqliteTileCacheMiss(t *testing.T) {
	cache := NewSqliteTileCache(newTestDB(t))

	_, ok, err := cache.GetTile(context.Background(), "14/0/0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss")
	}
}

func TestSqliteTileCacheReplacesExisting(t *testing.T) {
	cache := NewSqliteTileCache(newTestDB(t))
	ctx := context.Background()

	if err := cache.PutTile(ctx, "14/1/1", []byte{1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cache.PutTile(ctx, "14/1/1", []byte{2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok, err := cache.GetTile(ctx, "14/1/1")
	if err != nil || !ok {
		t.Fatalf("get after replace: ok=%v err=%v", ok, err)
	}
	if !bytes.Equal(got, []byte{2}) {
		t.Fatalf("data = %v, want [2]", got)
	}
}

func TestSqliteTileCacheValidatesInput(t *testing.T) {
	cache := NewSqliteTileCache(newTestDB(t))
	ctx := context.Background()

	if err := cache.PutTile(ctx, "", []byte{1}); err == nil {
		t.Error("expected error for empty key")
	}
	if err := cache.PutTile(ctx, "14/1/1", nil); err == nil {
		t.Error("expected error for empty data")
	}

	nilCache := NewSqliteTileCache(nil)
	if _, _, err := nilCache.GetTile(ctx, "14/1/1"); err == nil {
		t.Error("expected error for nil db")
	}
}
