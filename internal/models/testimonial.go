package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Testimonial struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Quote     string             `json:"quote" bson:"quote"`
	Author    string             `json:"author" bson:"author"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}

type TestimonialUpdate struct {
	Quote  *string `json:"quote,omitempty"`
	Author *string `json:"author,omitempty"`
}
