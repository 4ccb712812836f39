package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fashionstore/database"
	"fashionstore/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{coll: db.Collection(database.ProductsCollection)}
}

// List returns products newest first, optionally restricted to one category.
func (r *ProductRepository) List(ctx context.Context, category string) ([]models.Product, error) {
	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &product, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	now := time.Now().UTC()
	product.ID = primitive.NewObjectID()
	product.CreatedAt = now
	product.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, product); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// Update replaces the editable fields of a product and returns the stored
// document.
func (r *ProductRepository) Update(ctx context.Context, id primitive.ObjectID, product *models.Product) (*models.Product, error) {
	update := bson.M{"$set": bson.M{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"category":    product.Category,
		"sizes":       product.Sizes,
		"colors":      product.Colors,
		"images":      product.Images,
		"stock":       product.Stock,
		"updatedAt":   time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Product
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &updated, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
