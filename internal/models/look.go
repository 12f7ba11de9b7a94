package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Look is an admin-curated shoppable bundle ("shop the look").
type Look struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Title       string               `json:"title" bson:"title"`
	Description string               `json:"description" bson:"description"`
	MainImage   string               `json:"mainImage" bson:"main_image"`
	Products    []primitive.ObjectID `json:"products" bson:"products"`
	CreatedAt   time.Time            `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time            `json:"updatedAt" bson:"updated_at"`
}

type LookUpdate struct {
	Title       *string              `json:"title,omitempty"`
	Description *string              `json:"description,omitempty"`
	MainImage   *string              `json:"mainImage,omitempty"`
	Products    []primitive.ObjectID `json:"products,omitempty"`
}
