package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zvrva/farewatch/config"
	"github.com/zvrva/farewatch/internal/cache"
	"github.com/zvrva/farewatch/internal/kafka"
	"github.com/zvrva/farewatch/internal/notify"
	"github.com/zvrva/farewatch/internal/repository"
	"github.com/zvrva/farewatch/internal/scheduler"
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

	flightsTTL := time.Duration(cfg.Cache.FlightsTTLSeconds) * time.Second
	redisCache := cache.NewRedisCache(cfg.Redis, flightsTTL)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	trackerSvc := tracker.NewTrackerService(flightRepo, redisCache, producer, cfg.Kafka.PriceEventsTopic)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.PriceEventsTopic)
	defer consumer.Close()

	notifier := notify.NewLogger()

	go func() {
		if err := consumer.Consume(ctx, notifier.Notify); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	refresh := func(ctx context.Context) error {
		refreshed, err := trackerSvc.Refresh(ctx)
		if err != nil {
			return err
		}
		if refreshed > 0 {
			log.Printf("refreshed %d routes", refreshed)
		}
		return nil
	}

	sched := scheduler.New()
	jobs := []scheduler.Job{
		{Name: "refresh-quarter-hourly", Cadence: cfg.Scheduler.QuarterHourly, Run: refresh},
		{Name: "refresh-weekly", Cadence: cfg.Scheduler.Weekly, Run: refresh},
		{Name: "refresh-semi-monthly", Cadence: cfg.Scheduler.SemiMonthly, Run: refresh},
	}
	for _, job := range jobs {
		if err := sched.Register(job); err != nil {
			log.Fatalf("register job: %v", err)
		}
	}

	sched.Start()
	log.Printf("worker started, %d refresh jobs scheduled", len(jobs))

	<-ctx.Done()
	log.Println("shutting down")
	sched.Stop()
}
