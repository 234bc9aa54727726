// internal/app/store/roles/rolestore.go
package rolestore

import (
	"context"
	"time"

	"github.com/dalemusser/hallbook/internal/app/scheduler"
	"github.com/dalemusser/hallbook/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists user role memberships in the "users" collection, one
// document per user keyed by the transport-assigned numeric user ID.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// All returns every known user, ordered by user ID.
func (s *Store) All(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "user_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByUsername looks up a user by case-insensitive username. Returns
// mongo.ErrNoDocuments if not found.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"username_ci": text.Fold(username)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpsertRole writes one role entry, creating the user document on first
// sight. Username is refreshed only when the entry carries one, so a
// flag-only change cannot erase a previously recorded name.
func (s *Store) UpsertRole(ctx context.Context, e scheduler.RoleEntry) error {
	now := time.Now().UTC()
	set := bson.M{
		"is_admin":       e.IsAdmin,
		"is_whitelisted": e.IsWhitelisted,
		"updated_at":     now,
	}
	if e.Username != "" {
		set["username"] = e.Username
		set["username_ci"] = text.Fold(e.Username)
	}

	_, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": e.UserID},
		bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"user_id": e.UserID, "created_at": now},
		},
		options.Update().SetUpsert(true))
	return err
}

// UpsertRoles writes a batch of role entries in one unordered bulk write.
func (s *Store) UpsertRoles(ctx context.Context, entries []scheduler.RoleEntry) error {
	if len(entries) == 0 {
		return nil
	}

	now := time.Now().UTC()
	writes := make([]mongo.WriteModel, 0, len(entries))
	for _, e := range entries {
		set := bson.M{
			"is_admin":       e.IsAdmin,
			"is_whitelisted": e.IsWhitelisted,
			"updated_at":     now,
		}
		if e.Username != "" {
			set["username"] = e.Username
			set["username_ci"] = text.Fold(e.Username)
		}
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"user_id": e.UserID}).
			SetUpdate(bson.M{
				"$set":         set,
				"$setOnInsert": bson.M{"user_id": e.UserID, "created_at": now},
			}).
			SetUpsert(true))
	}

	_, err := s.c.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	return err
}
