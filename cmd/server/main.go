package main

import (
	"collector-route-service/internal/adapters/location"
	"collector-route-service/internal/adapters/repositories"
	"collector-route-service/internal/adapters/tiles"
	"collector-route-service/internal/api"
	"collector-route-service/internal/config"
	"collector-route-service/internal/domain"
	"collector-route-service/internal/platform/db"
	"collector-route-service/internal/ports"
	"collector-route-service/internal/services"
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, tile/geolocation HTTP
// endpoints) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	port := config.Get("PORT", "8080")

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Get("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       config.GetInt("REDIS_DB", 0),
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("redis connection failed: %v", err)
	}
	defer rdb.Close()

	tileSource, err := tiles.NewHTTPTileSource(
		config.Get("TILE_URL_TEMPLATE", "https://tile.openstreetmap.org/{z}/{x}/{y}.png"),
		config.Get("TILE_USER_AGENT", "collector-route-service"),
	)
	if err != nil {
		log.Fatal(err)
	}

	tileManager := services.NewTileManager(
		tiles.NewRedisTileStore(rdb),
		tileSource,
		config.GetInt("TILE_WORKERS", 4),
	)

	// Fallback position for when live location fails; defaults to the
	// service region's city center.
	fallback := domain.GeoPoint{
		Lat: config.GetFloat("FALLBACK_LAT", 5.6037),
		Lng: config.GetFloat("FALLBACK_LNG", -0.1870),
	}

	var inner ports.LocationProvider
	if endpoint := os.Getenv("GEOLOCATE_URL"); endpoint != "" {
		inner, err = location.NewHTTPLocator(endpoint)
		if err != nil {
			log.Fatal(err)
		}
	}
	locator := location.NewFallbackLocator(
		inner,
		config.GetDurationMs("LOCATE_TIMEOUT_MS", 8*time.Second),
		fallback,
	)

	repo := repositories.NewPostgresStopRepository(pg)

	planCfg := api.PlanConfig{
		Estimate: services.EstimateOptions{
			AverageSpeedKmh: config.GetFloat("AVG_SPEED_KMH", 30),
			PerStopMinutes:  config.GetFloat("PER_STOP_MINUTES", 5),
		},
		MaxRouteKm: config.GetFloat("MAX_ROUTE_KM", 200),
	}

	router := api.NewRouter(repo, locator, tileManager, planCfg)

	// Write timeout covers tile save batches, which fetch over the network.
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
