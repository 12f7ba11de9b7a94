package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is one user's verdict on one product. The (product, user) pair is
// unique, enforced both by an explicit pre-check and by a compound unique
// index on the collection. Reviews are write-once.
type Review struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User      primitive.ObjectID `json:"user" bson:"user"`
	UserName  string             `json:"userName" bson:"user_name"`
	Product   primitive.ObjectID `json:"product" bson:"product"`
	Rating    int                `json:"rating" bson:"rating"`
	Comment   string             `json:"comment" bson:"comment"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}
