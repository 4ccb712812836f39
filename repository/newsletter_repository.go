package repository

import (
	"context"
	"fmt"

	"fashionstore/database"
	"fashionstore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SubscriberRepository struct {
	coll *mongo.Collection
}

func NewSubscriberRepository(db *mongo.Database) *SubscriberRepository {
	return &SubscriberRepository{coll: db.Collection(database.SubscribersCollection)}
}

func (r *SubscriberRepository) Add(ctx context.Context, sub *models.Subscriber) error {
	sub.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, sub); err != nil {
		sub.ID = primitive.NilObjectID
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert subscriber: %w", err)
	}
	return nil
}

func (r *SubscriberRepository) List(ctx context.Context) ([]models.Subscriber, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find subscribers: %w", err)
	}
	defer cursor.Close(ctx)

	subs := []models.Subscriber{}
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, fmt.Errorf("decode subscribers: %w", err)
	}
	return subs, nil
}
