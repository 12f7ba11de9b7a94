package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"urbanpantry/internal/models"
)

type TestimonialRepository struct {
	collection *mongo.Collection
}

var _ TestimonialStore = (*TestimonialRepository)(nil)

func NewTestimonialRepository(collection *mongo.Collection) *TestimonialRepository {
	return &TestimonialRepository{collection: collection}
}

func (r *TestimonialRepository) FindAll(ctx context.Context) ([]models.Testimonial, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	testimonials := make([]models.Testimonial, 0)
	if err := cursor.All(ctx, &testimonials); err != nil {
		return nil, err
	}
	return testimonials, nil
}

func (r *TestimonialRepository) Create(ctx context.Context, testimonial *models.Testimonial) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	testimonial.ID = primitive.NewObjectID()
	now := time.Now()
	testimonial.CreatedAt = now
	testimonial.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, testimonial)
	return err
}

func (r *TestimonialRepository) Update(ctx context.Context, id string, update models.TestimonialUpdate) (*models.Testimonial, error) {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	set := bson.M{"updated_at": time.Now()}
	if update.Quote != nil {
		set["quote"] = *update.Quote
	}
	if update.Author != nil {
		set["author"] = *update.Author
	}

	var testimonial models.Testimonial
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&testimonial)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTestimonialNotFound
		}
		return nil, err
	}
	return &testimonial, nil
}

func (r *TestimonialRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrTestimonialNotFound
	}
	return nil
}
