// Package repository holds the MongoDB-backed stores.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fashionstore/database"
	"fashionstore/models"
	"fashionstore/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository struct {
	coll *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{coll: db.Collection(database.OrdersCollection)}
}

// Insert stores a new order and assigns its id. The document is validated
// first so malformed orders never reach the collection.
func (r *OrderRepository) Insert(ctx context.Context, order *models.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}
	order.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		order.ID = primitive.NilObjectID
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, services.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

// UpdateStatus sets the status only while the stored status is one of from.
// The guard and the write happen in a single FindOneAndUpdate, so two
// concurrent transitions cannot both succeed from the same source state.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, from []models.OrderStatus, to models.OrderStatus, at time.Time) (*models.Order, error) {
	filter := bson.M{"_id": id, "status": bson.M{"$in": from}}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": at}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Order
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	if err == nil {
		return &updated, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return current, services.ErrStatusMismatch
}
