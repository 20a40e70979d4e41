package entities

import "time"

// TestimonialContent holds the editable fields of a testimonial
type TestimonialContent struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	Company  string `json:"company,omitempty"`
	Content  string `json:"content"`
	Image    string `json:"image"`
	Featured bool   `json:"featured"`
}

// Testimonial is a quote from a colleague or client
type Testimonial struct {
	ID int `json:"id"`
	TestimonialContent
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewTestimonial creates a testimonial with both timestamps set to now
func NewTestimonial(id int, content TestimonialContent, now time.Time) Testimonial {
	return Testimonial{
		ID:                 id,
		TestimonialContent: content,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// WithContent replaces the editable fields keeping id and createdAt
func (t Testimonial) WithContent(content TestimonialContent, now time.Time) Testimonial {
	t.TestimonialContent = content
	t.UpdatedAt = now
	if t.UpdatedAt.Before(t.CreatedAt) {
		t.UpdatedAt = t.CreatedAt
	}
	return t
}

// Normalize is a no-op; testimonials have no list fields
func (t Testimonial) Normalize() Testimonial { return t }

func (t Testimonial) RecordID() int          { return t.ID }
func (t Testimonial) CreatedTime() time.Time { return t.CreatedAt }
func (t Testimonial) IsFeatured() bool       { return t.Featured }
