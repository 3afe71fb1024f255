package flights

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zvrva/farewatch/internal/domain"
	"github.com/zvrva/farewatch/internal/repository"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error)
	Update(ctx context.Context, id string, patch domain.PatchFlight) (*domain.Flight, error)
	Delete(ctx context.Context, id string) error
	TimeSeries(ctx context.Context, route string) ([]domain.Flight, error)
	Search(ctx context.Context, q string, maxPrice *float64) ([]domain.Flight, error)
}

type Cache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

type CreateFlightInput struct {
	Route     string
	Airline   string
	Price     float64
	Timestamp *time.Time
}

type FlightService struct {
	repo  repository.FlightRepository
	cache Cache
}

func NewFlightService(repo repository.FlightRepository, cache Cache) *FlightService {
	return &FlightService{repo: repo, cache: cache}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, input CreateFlightInput) (*domain.Flight, error) {
	if strings.TrimSpace(input.Route) == "" {
		return nil, fmt.Errorf("%w: route is required", domain.ErrValidation)
	}
	if input.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", domain.ErrValidation)
	}

	ts := time.Now().UTC()
	if input.Timestamp != nil {
		ts = *input.Timestamp
	}

	flight := &domain.Flight{
		Route:     input.Route,
		Airline:   input.Airline,
		Price:     input.Price,
		Timestamp: ts,
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return flight, nil
}

func (s *FlightService) Update(ctx context.Context, id string, patch domain.PatchFlight) (*domain.Flight, error) {
	if patch.Route != nil && strings.TrimSpace(*patch.Route) == "" {
		return nil, fmt.Errorf("%w: route must not be empty", domain.ErrValidation)
	}
	if patch.Price != nil && *patch.Price <= 0 {
		return nil, fmt.Errorf("%w: price must be positive", domain.ErrValidation)
	}
	if patch.Empty() {
		return nil, fmt.Errorf("%w: no fields to update", domain.ErrValidation)
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *FlightService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *FlightService) TimeSeries(ctx context.Context, route string) ([]domain.Flight, error) {
	return s.repo.TimeSeries(ctx, route)
}

func (s *FlightService) Search(ctx context.Context, q string, maxPrice *float64) ([]domain.Flight, error) {
	return s.repo.Search(ctx, q, maxPrice)
}

func (s *FlightService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateFlights(ctx)
	}
}

var _ FlightUseCase = (*FlightService)(nil)
