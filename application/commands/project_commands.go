package commands

import (
	"portfolio/domain/entities"
	pkgerrors "portfolio/pkg/errors"
	"portfolio/pkg/utils"
)

// CreateProjectCommand carries the fields accepted by POST and PUT.
// Any id or createdAt in the request body is ignored.
type CreateProjectCommand struct {
	Title           string   `json:"title" yaml:"title" validate:"required"`
	Description     string   `json:"description" yaml:"description" validate:"required"`
	LongDescription string   `json:"longDescription" yaml:"longDescription" validate:"required"`
	Technologies    []string `json:"technologies" yaml:"technologies" validate:"required,min=1,dive,required"`
	Image           string   `json:"image" yaml:"image" validate:"required"`
	ProjectURL      string   `json:"projectUrl" yaml:"projectUrl" validate:"omitempty,url"`
	GithubURL       string   `json:"githubUrl" yaml:"githubUrl" validate:"required,url"`
	Challenges      []string `json:"challenges" yaml:"challenges" validate:"omitempty,dive,required"`
	Solutions       []string `json:"solutions" yaml:"solutions" validate:"omitempty,dive,required"`
	Featured        bool     `json:"featured" yaml:"featured"`
}

// Validate checks the command against the project rules
func (c CreateProjectCommand) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// Fields converts the command to entity fields
func (c CreateProjectCommand) Fields() entities.ProjectContent {
	return entities.ProjectContent{
		Title:           c.Title,
		Description:     c.Description,
		LongDescription: c.LongDescription,
		Technologies:    c.Technologies,
		Image:           c.Image,
		ProjectURL:      c.ProjectURL,
		GithubURL:       c.GithubURL,
		Challenges:      c.Challenges,
		Solutions:       c.Solutions,
		Featured:        c.Featured,
	}
}

// ProjectCommandFromContent builds a command from stored fields
func ProjectCommandFromContent(p entities.ProjectContent) CreateProjectCommand {
	return CreateProjectCommand{
		Title:           p.Title,
		Description:     p.Description,
		LongDescription: p.LongDescription,
		Technologies:    p.Technologies,
		Image:           p.Image,
		ProjectURL:      p.ProjectURL,
		GithubURL:       p.GithubURL,
		Challenges:      p.Challenges,
		Solutions:       p.Solutions,
		Featured:        p.Featured,
	}
}

// ValidatePresence only checks that every required field is set. It is
// applied to merged PATCH results, where untouched fields come from the
// stored record and are not re-judged.
func (c CreateProjectCommand) ValidatePresence() error {
	if err := utils.ValidateRequired(c); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// PatchProjectCommand carries only the fields present in a PATCH body.
// Supplied fields follow the same rules as CreateProjectCommand.
type PatchProjectCommand struct {
	Title           *string   `json:"title" validate:"omitnil,required"`
	Description     *string   `json:"description" validate:"omitnil,required"`
	LongDescription *string   `json:"longDescription" validate:"omitnil,required"`
	Technologies    *[]string `json:"technologies" validate:"omitnil,min=1,dive,required"`
	Image           *string   `json:"image" validate:"omitnil,required"`
	ProjectURL      *string   `json:"projectUrl" validate:"omitempty,url"`
	GithubURL       *string   `json:"githubUrl" validate:"omitnil,required,url"`
	Challenges      *[]string `json:"challenges" validate:"omitnil,dive,required"`
	Solutions       *[]string `json:"solutions" validate:"omitnil,dive,required"`
	Featured        *bool     `json:"featured"`
}

// Validate checks the supplied fields
func (c PatchProjectCommand) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}
	return nil
}

// Apply merges the supplied fields over current
func (c PatchProjectCommand) Apply(current entities.ProjectContent) CreateProjectCommand {
	merged := ProjectCommandFromContent(current)
	setString(&merged.Title, c.Title)
	setString(&merged.Description, c.Description)
	setString(&merged.LongDescription, c.LongDescription)
	setStrings(&merged.Technologies, c.Technologies)
	setString(&merged.Image, c.Image)
	setString(&merged.ProjectURL, c.ProjectURL)
	setString(&merged.GithubURL, c.GithubURL)
	setStrings(&merged.Challenges, c.Challenges)
	setStrings(&merged.Solutions, c.Solutions)
	if c.Featured != nil {
		merged.Featured = *c.Featured
	}
	return merged
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setStrings(dst *[]string, v *[]string) {
	if v != nil {
		*dst = append([]string(nil), (*v)...)
	}
}
