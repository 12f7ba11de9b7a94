package repository

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// buildProductFilter translates a ProductFilter into a bson predicate. All
// clauses AND together; price bounds are inclusive.
func buildProductFilter(f ProductFilter) bson.M {
	filter := bson.M{}

	if f.Category != "" {
		filter["category"] = f.Category
	}

	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	if f.MinRating != nil {
		filter["rating"] = bson.M{"$gte": *f.MinRating}
	}

	if f.Search != "" {
		// Plain substring match, not tokenized search. QuoteMeta keeps user
		// input from being interpreted as a pattern.
		re := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		filter["$or"] = []bson.M{
			{"name": re},
			{"description": re},
		}
	}

	return filter
}

// buildSortOptions maps the public sort names onto a bson sort document.
// Exactly one key is ever active; anything unrecognized falls back to
// newest-first.
func buildSortOptions(sort string) bson.D {
	switch sort {
	case "price-asc":
		return bson.D{{Key: "price", Value: 1}}
	case "price-desc":
		return bson.D{{Key: "price", Value: -1}}
	default:
		return bson.D{{Key: "created_at", Value: -1}}
	}
}
