// main.go
package main

import (
	"context"
	"log"

	"cinema-tickets/cmd"
	"cinema-tickets/internal/data/cache"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/events"
	"cinema-tickets/internal/wire"
	"cinema-tickets/pkg/database"
	"cinema-tickets/pkg/metrics"
	"cinema-tickets/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	ctx := context.Background()

	// Ensure schema exists before serving traffic
	if err := database.Bootstrap(ctx, db); err != nil {
		logger.Fatal("Failed to bootstrap schema", zap.Error(err))
	}

	if config.App.SeedData {
		if err := database.Seed(ctx, db, logger); err != nil {
			logger.Fatal("Failed to seed data", zap.Error(err))
		}
	}

	// Room state cache; the service degrades to direct reads when Redis
	// is unreachable
	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.Redis.Addr,
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable, room state caching disabled", zap.Error(err))
		redisClient = nil
	}
	roomCache := cache.NewRoomStateCache(redisClient, config.Redis.RoomStateTTL, logger)

	// Event publisher
	var publisher events.Publisher
	if config.Queue.URL != "" {
		publisher = events.NewRabbitPublisher(config.Queue.URL, logger)
	}

	// Metrics collectors
	m := metrics.New()

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, logger, roomCache, publisher, m)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
