package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"urbanpantry/internal/models"
)

func reviewsWithRatings(ratings ...int) []models.Review {
	reviews := make([]models.Review, len(ratings))
	for i, r := range ratings {
		reviews[i].Rating = r
	}
	return reviews
}

func TestAggregateRatingEmpty(t *testing.T) {
	rating, count := aggregateRating(nil)
	assert.Zero(t, rating)
	assert.Zero(t, count)
}

func TestAggregateRatingSingle(t *testing.T) {
	rating, count := aggregateRating(reviewsWithRatings(5))
	assert.Equal(t, 5.0, rating)
	assert.Equal(t, 1, count)
}

func TestAggregateRatingMean(t *testing.T) {
	rating, count := aggregateRating(reviewsWithRatings(5, 3, 4))
	assert.Equal(t, 4.0, rating)
	assert.Equal(t, 3, count)
}

func TestAggregateRatingFractional(t *testing.T) {
	rating, count := aggregateRating(reviewsWithRatings(5, 4))
	assert.InDelta(t, 4.5, rating, 1e-9)
	assert.Equal(t, 2, count)
}
