package tracker

import (
	"context"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/zvrva/farewatch/internal/domain"
	"github.com/zvrva/farewatch/internal/kafka"
	"github.com/zvrva/farewatch/internal/repository"
)

type TrackerUseCase interface {
	Seed(ctx context.Context) (int, error)
	Refresh(ctx context.Context) (int, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Cache interface {
	InvalidateFlights(ctx context.Context) error
}

type TrackerService struct {
	repo     repository.FlightRepository
	cache    Cache
	producer Producer
	topic    string
	jitter   func() float64
}

type TrackerServiceOption func(*TrackerService)

// WithJitter replaces the price jitter source; tests use it to make
// refresh deterministic.
func WithJitter(jitter func() float64) TrackerServiceOption {
	return func(s *TrackerService) {
		s.jitter = jitter
	}
}

func NewTrackerService(repo repository.FlightRepository, cache Cache, producer Producer, topic string, opts ...TrackerServiceOption) *TrackerService {
	service := &TrackerService{
		repo:     repo,
		cache:    cache,
		producer: producer,
		topic:    topic,
		jitter: func() float64 {
			return float64(rand.Intn(21) - 10)
		},
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Seed inserts the embedded sample batch as-is. There is no dedup: every
// call grows the collection by the full batch size.
func (s *TrackerService) Seed(ctx context.Context) (int, error) {
	batch, err := SampleFlights()
	if err != nil {
		return 0, err
	}

	inserted, err := s.repo.InsertMany(ctx, batch)
	if err != nil {
		return 0, err
	}

	s.invalidate(ctx)
	s.publish(ctx, kafka.PriceEvent{
		Type:       kafka.EventSeedCompleted,
		ObservedAt: time.Now().UTC(),
		Count:      inserted,
	})
	return inserted, nil
}

// Refresh appends one fresh observation per tracked route, priced near
// the route's latest record. An empty store is a no-op, not an error.
func (s *TrackerService) Refresh(ctx context.Context) (int, error) {
	routes, err := s.repo.Routes(ctx)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for _, route := range routes {
		latest, err := s.repo.LatestByRoute(ctx, route)
		if err != nil {
			log.Printf("refresh %s: read latest price: %v", route, err)
			continue
		}

		price := math.Round(latest.Price + s.jitter())
		if price < 1 {
			price = 1
		}

		observation := &domain.Flight{
			Route:     route,
			Airline:   latest.Airline,
			Price:     price,
			Timestamp: time.Now().UTC(),
		}
		if err := s.repo.Create(ctx, observation); err != nil {
			log.Printf("refresh %s: insert observation: %v", route, err)
			continue
		}
		refreshed++

		s.publish(ctx, kafka.PriceEvent{
			Type:       kafka.EventPriceRefreshed,
			Route:      route,
			Airline:    observation.Airline,
			Price:      observation.Price,
			ObservedAt: observation.Timestamp,
		})
	}

	if refreshed > 0 {
		s.invalidate(ctx)
	}
	return refreshed, nil
}

func (s *TrackerService) publish(ctx context.Context, event kafka.PriceEvent) {
	if s.producer == nil || s.topic == "" {
		return
	}
	key := event.Route
	if key == "" {
		key = event.Type
	}
	if err := s.producer.Publish(ctx, s.topic, key, event); err != nil {
		log.Printf("WARNING: failed to publish %s event: %v", event.Type, err)
	}
}

func (s *TrackerService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
}

var _ TrackerUseCase = (*TrackerService)(nil)
