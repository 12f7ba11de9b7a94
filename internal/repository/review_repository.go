package repository

import (
	"context"
	"errors"
	"time"

	"github.com/montanaflynn/stats"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"urbanpantry/internal/models"
)

// ReviewRepository owns the review ledger and, because review writes drive the
// product aggregate, also writes rating/num_reviews into the products
// collection.
type ReviewRepository struct {
	reviews  *mongo.Collection
	products *mongo.Collection
}

var _ ReviewStore = (*ReviewRepository)(nil)

func NewReviewRepository(reviews, products *mongo.Collection) *ReviewRepository {
	return &ReviewRepository{reviews: reviews, products: products}
}

func (r *ReviewRepository) FindByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrInvalidID
	}

	cursor, err := r.reviews.Find(ctx, bson.M{"product": objID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := make([]models.Review, 0)
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// HasReviewed is the application-level duplicate pre-check. It is an
// optimization for a clean error path, not the guard itself: the unique
// (product, user) index closes the check-then-insert race.
func (r *ReviewRepository) HasReviewed(ctx context.Context, productID, userID primitive.ObjectID) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	err := r.reviews.FindOne(ctx, bson.M{"product": productID, "user": userID}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Create inserts a review. A duplicate-key violation from the unique index is
// remapped to ErrDuplicateReview so concurrent submissions from the same user
// surface as a domain error, exactly one of them succeeding.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	review.ID = primitive.NewObjectID()
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now

	if _, err := r.reviews.InsertOne(ctx, review); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateReview
		}
		return err
	}
	return nil
}

// RecomputeRating rereads the complete review set for the product and writes
// the derived mean and count back to the catalog. Always a full recompute,
// never an incremental update, so the aggregate stays reproducible from the
// ledger no matter how writes interleave.
func (r *ReviewRepository) RecomputeRating(ctx context.Context, productID primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.reviews.Find(ctx, bson.M{"product": productID})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	reviews := make([]models.Review, 0)
	if err := cursor.All(ctx, &reviews); err != nil {
		return err
	}

	rating, numReviews := aggregateRating(reviews)

	_, err = r.products.UpdateOne(ctx, bson.M{"_id": productID}, bson.M{
		"$set": bson.M{
			"rating":      rating,
			"num_reviews": numReviews,
			"updated_at":  time.Now(),
		},
	})
	return err
}

// aggregateRating derives {mean rating, count} from a full review set. An
// empty set yields 0/0, the state a product is born with.
func aggregateRating(reviews []models.Review) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}

	ratings := make([]float64, len(reviews))
	for i, review := range reviews {
		ratings[i] = float64(review.Rating)
	}

	mean, err := stats.Mean(ratings)
	if err != nil {
		return 0, 0
	}
	return mean, len(reviews)
}
