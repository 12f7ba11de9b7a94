package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func floatPtr(f float64) *float64 { return &f }

func TestBuildProductFilterEmpty(t *testing.T) {
	filter := buildProductFilter(ProductFilter{})
	assert.Empty(t, filter)
}

func TestBuildProductFilterCategory(t *testing.T) {
	filter := buildProductFilter(ProductFilter{Category: "Kitchen"})
	assert.Equal(t, bson.M{"category": "Kitchen"}, filter)
}

func TestBuildProductFilterPriceBounds(t *testing.T) {
	filter := buildProductFilter(ProductFilter{
		MinPrice: floatPtr(10),
		MaxPrice: floatPtr(50),
	})
	assert.Equal(t, bson.M{"price": bson.M{"$gte": 10.0, "$lte": 50.0}}, filter)
}

func TestBuildProductFilterMinPriceOnly(t *testing.T) {
	filter := buildProductFilter(ProductFilter{MinPrice: floatPtr(25)})
	assert.Equal(t, bson.M{"price": bson.M{"$gte": 25.0}}, filter)
}

func TestBuildProductFilterMinRating(t *testing.T) {
	filter := buildProductFilter(ProductFilter{MinRating: floatPtr(4)})
	assert.Equal(t, bson.M{"rating": bson.M{"$gte": 4.0}}, filter)
}

func TestBuildProductFilterSearch(t *testing.T) {
	filter := buildProductFilter(ProductFilter{Search: "oak board"})

	or, ok := filter["$or"].([]bson.M)
	assert.True(t, ok)
	assert.Len(t, or, 2)
	assert.Equal(t, primitive.Regex{Pattern: "oak board", Options: "i"}, or[0]["name"])
	assert.Equal(t, primitive.Regex{Pattern: "oak board", Options: "i"}, or[1]["description"])
}

func TestBuildProductFilterSearchEscapesMetaCharacters(t *testing.T) {
	filter := buildProductFilter(ProductFilter{Search: "1.5L (set)"})

	or := filter["$or"].([]bson.M)
	re := or[0]["name"].(primitive.Regex)
	assert.Equal(t, `1\.5L \(set\)`, re.Pattern)
}

func TestBuildProductFilterCombined(t *testing.T) {
	filter := buildProductFilter(ProductFilter{
		Category:  "Decor",
		MinPrice:  floatPtr(5),
		MinRating: floatPtr(3),
		Search:    "vase",
	})

	assert.Equal(t, "Decor", filter["category"])
	assert.Equal(t, bson.M{"$gte": 5.0}, filter["price"])
	assert.Equal(t, bson.M{"$gte": 3.0}, filter["rating"])
	assert.Contains(t, filter, "$or")
}

func TestBuildSortOptions(t *testing.T) {
	tests := []struct {
		sort string
		want bson.D
	}{
		{"price-asc", bson.D{{Key: "price", Value: 1}}},
		{"price-desc", bson.D{{Key: "price", Value: -1}}},
		{"", bson.D{{Key: "created_at", Value: -1}}},
		{"garbage", bson.D{{Key: "created_at", Value: -1}}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, buildSortOptions(tt.sort), "sort=%q", tt.sort)
	}
}
