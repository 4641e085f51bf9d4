package testimonials

import (
	"strings"
	"time"
)

const defaultPatientName = "Patient anonyme"

// Testimonial is a patient review. Public submissions start unapproved and
// only become visible once a staff member approves them.
type Testimonial struct {
	ID          string    `json:"id"`
	PatientName string    `json:"patient_name"`
	Rating      int       `json:"rating"`
	Content     string    `json:"content"`
	Service     string    `json:"service,omitempty"`
	IsApproved  bool      `json:"is_approved"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateTestimonialRequest is the public submission body.
type CreateTestimonialRequest struct {
	PatientName string `json:"patient_name"`
	Rating      int    `json:"rating"`
	Content     string `json:"content"`
	Service     string `json:"service"`
}

// Validate checks the submission and normalizes the patient name.
func (r *CreateTestimonialRequest) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	if strings.TrimSpace(r.Content) == "" {
		return ErrMissingContent
	}
	if strings.TrimSpace(r.PatientName) == "" {
		r.PatientName = defaultPatientName
	}
	return nil
}
