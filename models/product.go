package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Description string             `bson:"description" json:"description" validate:"required"`
	Price       float64            `bson:"price" json:"price" validate:"gte=0"`
	Category    string             `bson:"category" json:"category" validate:"required"`
	Sizes       []string           `bson:"sizes" json:"sizes"`
	Colors      []string           `bson:"colors" json:"colors"`
	Images      []string           `bson:"images" json:"images"`
	Stock       int                `bson:"stock" json:"stock" validate:"gte=0"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
