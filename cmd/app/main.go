package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zvrva/farewatch/api"
	"github.com/zvrva/farewatch/config"
	"github.com/zvrva/farewatch/internal/bootstrap"
	"github.com/zvrva/farewatch/internal/cache"
	"github.com/zvrva/farewatch/internal/kafka"
	"github.com/zvrva/farewatch/internal/repository"
	"github.com/zvrva/farewatch/internal/service/flights"
	"github.com/zvrva/farewatch/internal/service/tracker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatalf("connect mongo: %v", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Printf("disconnect mongo: %v", err)
		}
	}()

	coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
	flightRepo := repository.NewFlightRepository(coll)
	if err := flightRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("ensure indexes: %v", err)
	}

	flightsTTL := time.Duration(cfg.Cache.FlightsTTLSeconds) * time.Second
	redisCache := cache.NewRedisCache(cfg.Redis, flightsTTL)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightSvc := flights.NewFlightService(flightRepo, redisCache)
	trackerSvc := tracker.NewTrackerService(flightRepo, redisCache, producer, cfg.Kafka.PriceEventsTopic)

	router := api.NewRouter(flightSvc, trackerSvc)

	if err := bootstrap.Run(ctx, cfg, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
