package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/zvrva/farewatch/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FlightRepository interface {
	Create(ctx context.Context, flight *domain.Flight) error
	List(ctx context.Context) ([]domain.Flight, error)
	GetByID(ctx context.Context, id string) (*domain.Flight, error)
	Update(ctx context.Context, id string, patch domain.PatchFlight) (*domain.Flight, error)
	Delete(ctx context.Context, id string) error
	TimeSeries(ctx context.Context, route string) ([]domain.Flight, error)
	Search(ctx context.Context, q string, maxPrice *float64) ([]domain.Flight, error)
	InsertMany(ctx context.Context, flights []domain.Flight) (int, error)
	Routes(ctx context.Context) ([]string, error)
	LatestByRoute(ctx context.Context, route string) (*domain.Flight, error)
	EnsureIndexes(ctx context.Context) error
}

type MongoFlightRepository struct {
	coll *mongo.Collection
}

func NewFlightRepository(coll *mongo.Collection) FlightRepository {
	return &MongoFlightRepository{coll: coll}
}

func (r *MongoFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	now := time.Now().UTC()
	flight.ID = primitive.NilObjectID
	flight.CreatedAt = now
	flight.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, flight)
	if err != nil {
		return err
	}
	flight.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *MongoFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	return r.find(ctx, bson.M{}, nil)
}

func (r *MongoFlightRepository) GetByID(ctx context.Context, id string) (*domain.Flight, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var f domain.Flight
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *MongoFlightRepository) Update(ctx context.Context, id string, patch domain.PatchFlight) (*domain.Flight, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Route != nil {
		set["route"] = *patch.Route
	}
	if patch.Airline != nil {
		set["airline"] = *patch.Airline
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.Timestamp != nil {
		set["timestamp"] = *patch.Timestamp
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var f domain.Flight
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *MongoFlightRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MongoFlightRepository) TimeSeries(ctx context.Context, route string) ([]domain.Flight, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	return r.find(ctx, bson.M{"route": route}, opts)
}

// Search matches the route against q as a case-insensitive literal
// substring and, when maxPrice is non-nil, keeps records priced at or
// below it. Both filters vacuous means the full collection.
func (r *MongoFlightRepository) Search(ctx context.Context, q string, maxPrice *float64) ([]domain.Flight, error) {
	filter := bson.M{}
	if q != "" {
		filter["route"] = bson.M{"$regex": primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}}
	}
	if maxPrice != nil {
		filter["price"] = bson.M{"$lte": *maxPrice}
	}
	return r.find(ctx, filter, nil)
}

func (r *MongoFlightRepository) InsertMany(ctx context.Context, flights []domain.Flight) (int, error) {
	if len(flights) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(flights))
	for i := range flights {
		flights[i].ID = primitive.NilObjectID
		flights[i].CreatedAt = now
		flights[i].UpdatedAt = now
		if flights[i].Timestamp.IsZero() {
			flights[i].Timestamp = now
		}
		docs = append(docs, flights[i])
	}

	res, err := r.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

func (r *MongoFlightRepository) Routes(ctx context.Context) ([]string, error) {
	values, err := r.coll.Distinct(ctx, "route", bson.M{})
	if err != nil {
		return nil, err
	}

	routes := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			routes = append(routes, s)
		}
	}
	return routes, nil
}

func (r *MongoFlightRepository) LatestByRoute(ctx context.Context, route string) (*domain.Flight, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	var f domain.Flight
	if err := r.coll.FindOne(ctx, bson.M{"route": route}, opts).Decode(&f); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *MongoFlightRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "route", Value: 1}, {Key: "timestamp", Value: 1}},
	})
	return err
}

func (r *MongoFlightRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]domain.Flight, error) {
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.coll.Find(ctx, filter, opts)
	} else {
		cursor, err = r.coll.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	flights := make([]domain.Flight, 0)
	if err := cursor.All(ctx, &flights); err != nil {
		return nil, err
	}
	return flights, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", domain.ErrInvalidID, id)
	}
	return oid, nil
}

var _ FlightRepository = (*MongoFlightRepository)(nil)
