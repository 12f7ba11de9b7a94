package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductDetail is a single key/value line on the product detail page
// ("Material: oak", "Capacity: 1.5L", ...). Order is significant.
type ProductDetail struct {
	Key   string `json:"key" bson:"key" binding:"required"`
	Value string `json:"value" bson:"value" binding:"required"`
}

// Product is a catalog entry. Rating and NumReviews are derived from the
// review ledger and must never be written from request payloads.
type Product struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Price       float64            `json:"price" bson:"price"`
	Images      []string           `json:"images" bson:"images"`
	LegacyImage string             `json:"-" bson:"image,omitempty"`
	Category    string             `json:"category" bson:"category"`
	Featured    bool               `json:"featured" bson:"featured"`
	Description string             `json:"description" bson:"description"`
	Details     []ProductDetail    `json:"details,omitempty" bson:"details,omitempty"`
	Rating      float64            `json:"rating" bson:"rating"`
	NumReviews  int                `json:"numReviews" bson:"num_reviews"`
	CreatedAt   time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updated_at"`
}

// ProductUpdate carries the admin-updatable fields. Rating and NumReviews are
// deliberately absent: the aggregator is the only writer of those.
type ProductUpdate struct {
	Name        *string         `json:"name,omitempty"`
	Price       *float64        `json:"price,omitempty" binding:"omitempty,gte=0"`
	Images      []string        `json:"images,omitempty"`
	Category    *string         `json:"category,omitempty"`
	Featured    *bool           `json:"featured,omitempty"`
	Description *string         `json:"description,omitempty"`
	Details     []ProductDetail `json:"details,omitempty"`
}

// NormalizeImages folds the legacy single-image document shape into the
// ordered image list. Called at the data-access boundary so the rest of the
// code only ever sees Images.
func (p *Product) NormalizeImages() {
	if len(p.Images) == 0 && p.LegacyImage != "" {
		p.Images = []string{p.LegacyImage}
	}
	p.LegacyImage = ""
}

// PrimaryImage is the image used on cards and order snapshots.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
