package flights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/zvrva/farewatch/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Update(ctx context.Context, id string, patch domain.PatchFlight) (*domain.Flight, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFlightRepository) TimeSeries(ctx context.Context, route string) ([]domain.Flight, error) {
	args := m.Called(ctx, route)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Search(ctx context.Context, q string, maxPrice *float64) ([]domain.Flight, error) {
	args := m.Called(ctx, q, maxPrice)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) InsertMany(ctx context.Context, flights []domain.Flight) (int, error) {
	args := m.Called(ctx, flights)
	return args.Int(0), args.Error(1)
}

func (m *MockFlightRepository) Routes(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFlightRepository) LatestByRoute(ctx context.Context, route string) (*domain.Flight, error) {
	args := m.Called(ctx, route)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func testFlight() domain.Flight {
	return domain.Flight{
		ID:        primitive.NewObjectID(),
		Route:     "LHE-BKK",
		Airline:   "Thai Airways",
		Price:     450,
		Timestamp: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestFlightService_List_CacheMiss(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	list := []domain.Flight{testFlight()}

	mockCache.On("GetFlights", ctx).Return(([]domain.Flight)(nil), nil).Once()
	mockRepo.On("List", ctx).Return(list, nil).Once()
	mockCache.On("SetFlights", ctx, list).Return(nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, list, result)

	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_List_CacheHit(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	list := []domain.Flight{testFlight()}

	mockCache.On("GetFlights", ctx).Return(list, nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, list, result)

	mockCache.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "List")
	mockCache.AssertNotCalled(t, "SetFlights")
}

func TestFlightService_List_CacheError(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	list := []domain.Flight{testFlight()}

	mockCache.On("GetFlights", ctx).Return(([]domain.Flight)(nil), errors.New("cache error")).Once()
	mockRepo.On("List", ctx).Return(list, nil).Once()
	mockCache.On("SetFlights", ctx, list).Return(nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, list, result)

	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_List_RepositoryError(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()

	mockCache.On("GetFlights", ctx).Return(([]domain.Flight)(nil), nil).Once()
	mockRepo.On("List", ctx).Return(([]domain.Flight)(nil), errors.New("connection refused")).Once()

	result, err := service.List(ctx)

	assert.Error(t, err)
	assert.Nil(t, result)

	mockCache.AssertNotCalled(t, "SetFlights")
}

func TestFlightService_Create(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()

	mockRepo.On("Create", ctx, mock.MatchedBy(func(f *domain.Flight) bool {
		return f.Route == "LHE-BKK" && f.Price == 450 && !f.Timestamp.IsZero()
	})).Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	flight, err := service.Create(ctx, CreateFlightInput{Route: "LHE-BKK", Airline: "Thai Airways", Price: 450})

	assert.NoError(t, err)
	assert.Equal(t, "LHE-BKK", flight.Route)

	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_Create_MissingRoute(t *testing.T) {
	mockRepo := &MockFlightRepository{}

	service := NewFlightService(mockRepo, nil)

	_, err := service.Create(context.Background(), CreateFlightInput{Price: 450})

	assert.ErrorIs(t, err, domain.ErrValidation)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestFlightService_Create_NonPositivePrice(t *testing.T) {
	mockRepo := &MockFlightRepository{}

	service := NewFlightService(mockRepo, nil)

	_, err := service.Create(context.Background(), CreateFlightInput{Route: "LHE-BKK", Price: 0})

	assert.ErrorIs(t, err, domain.ErrValidation)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestFlightService_Create_KeepsSuppliedTimestamp(t *testing.T) {
	mockRepo := &MockFlightRepository{}

	service := NewFlightService(mockRepo, nil)

	ctx := context.Background()
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mockRepo.On("Create", ctx, mock.MatchedBy(func(f *domain.Flight) bool {
		return f.Timestamp.Equal(ts)
	})).Return(nil).Once()

	_, err := service.Create(ctx, CreateFlightInput{Route: "LHE-BKK", Price: 450, Timestamp: &ts})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestFlightService_Update(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	flight := testFlight()
	flight.Price = 500
	price := 500.0
	patch := domain.PatchFlight{Price: &price}

	mockRepo.On("Update", ctx, flight.ID.Hex(), patch).Return(&flight, nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	updated, err := service.Update(ctx, flight.ID.Hex(), patch)

	assert.NoError(t, err)
	assert.Equal(t, 500.0, updated.Price)

	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_Update_EmptyPatch(t *testing.T) {
	mockRepo := &MockFlightRepository{}

	service := NewFlightService(mockRepo, nil)

	_, err := service.Update(context.Background(), "659f1b2e8c3d4e5f6a7b8c9d", domain.PatchFlight{})

	assert.ErrorIs(t, err, domain.ErrValidation)
	mockRepo.AssertNotCalled(t, "Update")
}

func TestFlightService_Update_NotFound(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()
	price := 500.0
	patch := domain.PatchFlight{Price: &price}

	mockRepo.On("Update", ctx, "659f1b2e8c3d4e5f6a7b8c9d", patch).Return(nil, domain.ErrNotFound).Once()

	_, err := service.Update(ctx, "659f1b2e8c3d4e5f6a7b8c9d", patch)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	mockCache.AssertNotCalled(t, "InvalidateFlights")
}

func TestFlightService_Delete(t *testing.T) {
	mockRepo := &MockFlightRepository{}
	mockCache := &MockCache{}

	service := NewFlightService(mockRepo, mockCache)

	ctx := context.Background()

	mockRepo.On("Delete", ctx, "659f1b2e8c3d4e5f6a7b8c9d").Return(nil).Once()
	mockCache.On("InvalidateFlights", ctx).Return(nil).Once()

	assert.NoError(t, service.Delete(ctx, "659f1b2e8c3d4e5f6a7b8c9d"))

	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestFlightService_TimeSeries(t *testing.T) {
	mockRepo := &MockFlightRepository{}

	service := NewFlightService(mockRepo, nil)

	ctx := context.Background()
	list := []domain.Flight{testFlight()}

	mockRepo.On("TimeSeries", ctx, "LHE-BKK").Return(list, nil).Once()

	result, err := service.TimeSeries(ctx, "LHE-BKK")

	assert.NoError(t, err)
	assert.Equal(t, list, result)

	mockRepo.AssertExpectations(t)
}

func TestFlightService_Search(t *testing.T) {
	mockRepo := &MockFlightRepository{}

	service := NewFlightService(mockRepo, nil)

	ctx := context.Background()
	maxPrice := 600.0
	list := []domain.Flight{testFlight()}

	mockRepo.On("Search", ctx, "LHE", &maxPrice).Return(list, nil).Once()

	result, err := service.Search(ctx, "LHE", &maxPrice)

	assert.NoError(t, err)
	assert.Equal(t, list, result)

	mockRepo.AssertExpectations(t)
}
