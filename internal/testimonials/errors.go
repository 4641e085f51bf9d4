package testimonials

import "errors"

var (
	// ErrInvalidRating is returned when the rating is outside 1 to 5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")

	// ErrMissingContent is returned when the review text is empty.
	ErrMissingContent = errors.New("content is required")

	// ErrNotFound is returned when a testimonial does not exist.
	ErrNotFound = errors.New("testimonial not found")
)
