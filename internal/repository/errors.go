package repository

import "errors"

// Sentinel errors surfaced to handlers. Handlers match with errors.Is and map
// them to HTTP statuses; anything else is treated as a storage failure and
// hidden behind a generic message.
var (
	ErrInvalidID           = errors.New("invalid id")
	ErrProductNotFound     = errors.New("product not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrLookNotFound        = errors.New("look not found")
	ErrTestimonialNotFound = errors.New("testimonial not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user with that email or username already exists")

	// ErrDuplicateReview covers both the explicit pre-check and the unique
	// index violation, so a lost race still comes back as a domain error.
	ErrDuplicateReview = errors.New("you have already reviewed this product")
)
