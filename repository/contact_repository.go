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

type ContactRepository struct {
	coll *mongo.Collection
}

func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{coll: db.Collection(database.ContactCollection)}
}

func (r *ContactRepository) Insert(ctx context.Context, msg *models.ContactMessage) error {
	msg.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, msg); err != nil {
		msg.ID = primitive.NilObjectID
		return fmt.Errorf("insert contact message: %w", err)
	}
	return nil
}

func (r *ContactRepository) List(ctx context.Context) ([]models.ContactMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find contact messages: %w", err)
	}
	defer cursor.Close(ctx)

	msgs := []models.ContactMessage{}
	if err := cursor.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("decode contact messages: %w", err)
	}
	return msgs, nil
}
