package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Flight is a single price observation for a route at one point in time.
// The price history of a route is the set of its Flight records, not an
// embedded log.
type Flight struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Route     string             `bson:"route" json:"route"`
	Airline   string             `bson:"airline,omitempty" json:"airline,omitempty"`
	Price     float64            `bson:"price" json:"price"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// PatchFlight carries the fields of a partial update. Nil means
// "leave the stored value alone".
type PatchFlight struct {
	Route     *string
	Airline   *string
	Price     *float64
	Timestamp *time.Time
}

func (p PatchFlight) Empty() bool {
	return p.Route == nil && p.Airline == nil && p.Price == nil && p.Timestamp == nil
}
