package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fashionstore/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TokenBlacklist records revoked bearer tokens. Entries expire together with
// the token through the TTL index on expiresAt.
type TokenBlacklist struct {
	coll *mongo.Collection
}

func NewTokenBlacklist(db *mongo.Database) *TokenBlacklist {
	return &TokenBlacklist{coll: db.Collection(database.BlacklistCollection)}
}

// Revoke is idempotent: revoking the same token twice is not an error.
func (b *TokenBlacklist) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	_, err := b.coll.InsertOne(ctx, bson.M{"token": token, "expiresAt": expiresAt})
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("blacklist token: %w", err)
	}
	return nil
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := b.coll.FindOne(ctx, bson.M{"token": token}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup token: %w", err)
	}
	return true, nil
}
