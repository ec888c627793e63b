package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLite backed cache for raw raster tile bytes, keyed by "z/x/y".
type SqliteTileCache struct {
	DB *sql.DB
}

func NewSqliteTileCache(db *sql.DB) *SqliteTileCache {
	return &SqliteTileCache{DB: db}
}

// GetTile returns the cached tile bytes and whether the key was present.
func (s *SqliteTileCache) GetTile(ctx context.Context, key string) ([]byte, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("tile cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get tile cache: key must not be empty")
	}

	query := `
	SELECT data
	FROM tile_cache
	WHERE tile_key = ?;
	`

	var data []byte
	err := s.DB.QueryRowContext(ctx, query, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get tile cache: query tile_cache table: %w", err)
	}

	return data, true, nil
}

// PutTile stores tile bytes under the key, replacing any previous value.
func (s *SqliteTileCache) PutTile(ctx context.Context, key string, data []byte) error {
	if s.DB == nil {
		return errors.New("tile cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert tile cache: key must not be empty")
	}
	if len(data) == 0 {
		return errors.New("insert tile cache: data must not be empty")
	}

	query := `
	INSERT OR REPLACE INTO tile_cache (tile_key, data, fetched_at)
	VALUES (?, ?, CURRENT_TIMESTAMP);
	`

	if _, err := s.DB.ExecContext(ctx, query, key, data); err != nil {
		return fmt.Errorf("insert tile cache key=%q: %w", key, err)
	}

	return nil
}
