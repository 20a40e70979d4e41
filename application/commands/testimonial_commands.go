package commands

import (
	"portfolio/domain/entities"
	pkgerrors "portfolio/pkg/errors"
	"portfolio/pkg/utils"
)

// CreateTestimonialCommand carries the fields accepted by POST and PUT
type CreateTestimonialCommand struct {
	Name     string `json:"name" yaml:"name" validate:"required,min=2"`
	Role     string `json:"role" yaml:"role" validate:"required,min=2"`
	Company  string `json:"company" yaml:"company"`
	Content  string `json:"content" yaml:"content" validate:"required,min=10"`
	Image    string `json:"image" yaml:"image" validate:"required"`
	Featured bool   `json:"featured" yaml:"featured"`
}

// Validate checks the command against the testimonial rules
func (c CreateTestimonialCommand) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// Fields converts the command to entity fields
func (c CreateTestimonialCommand) Fields() entities.TestimonialContent {
	return entities.TestimonialContent{
		Name:     c.Name,
		Role:     c.Role,
		Company:  c.Company,
		Content:  c.Content,
		Image:    c.Image,
		Featured: c.Featured,
	}
}

// ValidatePresence only checks that every required field is set
func (c CreateTestimonialCommand) ValidatePresence() error {
	if err := utils.ValidateRequired(c); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// PatchTestimonialCommand carries only the fields present in a PATCH body
type PatchTestimonialCommand struct {
	Name     *string `json:"name" validate:"omitnil,required,min=2"`
	Role     *string `json:"role" validate:"omitnil,required,min=2"`
	Company  *string `json:"company"`
	Content  *string `json:"content" validate:"omitnil,required,min=10"`
	Image    *string `json:"image" validate:"omitnil,required"`
	Featured *bool   `json:"featured"`
}

// Validate checks the supplied fields
func (c PatchTestimonialCommand) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// TestimonialCommandFromContent is the inverse of Fields
func TestimonialCommandFromContent(t entities.TestimonialContent) CreateTestimonialCommand {
	return CreateTestimonialCommand{
		Name:     t.Name,
		Role:     t.Role,
		Company:  t.Company,
		Content:  t.Content,
		Image:    t.Image,
		Featured: t.Featured,
	}
}

// Apply merges the supplied fields over current
func (c PatchTestimonialCommand) Apply(current entities.TestimonialContent) CreateTestimonialCommand {
	merged := TestimonialCommandFromContent(current)
	setString(&merged.Name, c.Name)
	setString(&merged.Role, c.Role)
	setString(&merged.Company, c.Company)
	setString(&merged.Content, c.Content)
	setString(&merged.Image, c.Image)
	if c.Featured != nil {
		merged.Featured = *c.Featured
	}
	return merged
}
