// internal/app/store/bookings/bookingstore.go
package bookingstore

import (
	"context"

	"github.com/dalemusser/hallbook/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists accepted bookings in the "bookings" collection, one
// document per booking keyed by the booking's UUID.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("bookings")}
}

// All returns every booking, ordered by date then start time.
func (s *Store) All(ctx context.Context) ([]models.Booking, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_min", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var bookings []models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// Upsert writes one booking. Replacing by _id keeps the write idempotent
// under save retries.
func (s *Store) Upsert(ctx context.Context, b models.Booking) error {
	_, err := s.c.ReplaceOne(ctx, bson.M{"_id": b.ID}, b, options.Replace().SetUpsert(true))
	return err
}

// Delete removes a booking by ID. Deleting an already-deleted booking is
// not an error.
func (s *Store) Delete(ctx context.Context, bookingID string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": bookingID})
	return err
}
