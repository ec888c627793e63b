package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"firebreak-route-service/internal/adapters/cache"
	"firebreak-route-service/internal/adapters/repositories"
	"firebreak-route-service/internal/adapters/terrain"
	"firebreak-route-service/internal/api"
	"firebreak-route-service/internal/config"
	"firebreak-route-service/internal/platform/db"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, tile servers, Redis) behind ports
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/equipment.json")
	port := config.Get("PORT", "8080")

	terrainURL := os.Getenv("TERRAIN_TILE_URL")
	if strings.TrimSpace(terrainURL) == "" {
		log.Fatal("TERRAIN_TILE_URL is required")
	}
	landcoverURL := os.Getenv("LANDCOVER_TILE_URL")
	if strings.TrimSpace(landcoverURL) == "" {
		log.Fatal("LANDCOVER_TILE_URL is required")
	}
	apiKey := os.Getenv("TILE_API_KEY")

	zoom, err := strconv.Atoi(config.Get("TILE_ZOOM", "14"))
	if err != nil {
		log.Fatalf("TILE_ZOOM must be an integer: %v", err)
	}

	sqlDB, err := db.OpenSqlite(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	// Initialize schema and seed the catalog on startup for local runs.
	if err := initAndSeed(sqlDB, seedPath); err != nil {
		log.Fatal(err)
	}

	// Tile fetches go through a persistent cache: Redis when configured,
	// otherwise the local SQLite database.
	tileCache := newTileCache(sqlDB)

	elevation, err := terrain.NewTerrainRGBProvider(terrainURL, apiKey, zoom, tileCache)
	if err != nil {
		log.Fatal(err)
	}
	landcover, err := terrain.NewLandcoverTileProvider(landcoverURL, apiKey, zoom, tileCache, nil)
	if err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewSqliteEquipmentRepository(sqlDB)
	router := api.NewRouter(repo, elevation, landcover)

	// Timeouts are tuned for cold-cache analyses (tile server latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func newTileCache(sqlDB *sql.DB) terrain.TileCache {
	redisAddr := os.Getenv("REDIS_ADDR")
	if strings.TrimSpace(redisAddr) == "" {
		return cache.NewSqliteTileCache(sqlDB)
	}

	client := redis.NewClient(&redis.Options{Addr: redisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable, falling back to sqlite tile cache: addr=%s err=%v", redisAddr, err)
		return cache.NewSqliteTileCache(sqlDB)
	}

	log.Printf("Using redis tile cache addr=%s", redisAddr)
	return cache.NewRedisTileCache(client, 0)
}

func initAndSeed(sqlDB *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(sqlDB); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(sqlDB, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
