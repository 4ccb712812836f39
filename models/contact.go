package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContactMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name" validate:"required,max=120"`
	Email     string             `bson:"email" json:"email" validate:"required,email"`
	Subject   string             `bson:"subject,omitempty" json:"subject,omitempty" validate:"max=200"`
	Message   string             `bson:"message" json:"message" validate:"required,max=5000"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
