package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Wishlist is a per-user set of product references. One document per user.
type Wishlist struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	User      primitive.ObjectID   `json:"user" bson:"user"`
	Products  []primitive.ObjectID `json:"products" bson:"products"`
	CreatedAt time.Time            `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time            `json:"updatedAt" bson:"updated_at"`
}
