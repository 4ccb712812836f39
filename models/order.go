package models

import (
	"time"

	"fashionstore/validation"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PaymentCashOnDelivery = "Cash on Delivery"
	DefaultCountry        = "Tunisia"
)

type ShippingAddress struct {
	Street     string `bson:"street" json:"street" validate:"required"`
	City       string `bson:"city" json:"city" validate:"required"`
	PostalCode string `bson:"postalCode" json:"postalCode" validate:"required"`
	Country    string `bson:"country" json:"country"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerName    string             `bson:"customerName" json:"customerName" validate:"required"`
	CustomerEmail   string             `bson:"customerEmail" json:"customerEmail" validate:"required,email"`
	CustomerPhone   string             `bson:"customerPhone" json:"customerPhone" validate:"required"`
	ShippingAddress ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	OrderItems      []OrderItem        `bson:"orderItems" json:"orderItems" validate:"required,min=1,dive"`
	TotalPrice      float64            `bson:"totalPrice" json:"totalPrice" validate:"gte=0"`
	Status          OrderStatus        `bson:"status" json:"status" validate:"required,oneof=Pending Confirmed Shipped Delivered Cancelled"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type OrderItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product" validate:"required"`
	Name     string             `bson:"name" json:"name"`
	Price    float64            `bson:"price" json:"price" validate:"gte=0"`
	Quantity int                `bson:"quantity" json:"quantity" validate:"min=1"`
	Image    string             `bson:"image,omitempty" json:"image,omitempty"`
	Size     string             `bson:"size,omitempty" json:"size,omitempty"`
	Color    string             `bson:"color,omitempty" json:"color,omitempty"`
}

// Validate checks the persisted shape of an order and reports every
// violation in a single error.
func (o *Order) Validate() error {
	return validation.Struct(o)
}
