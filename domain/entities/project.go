package entities

import "time"

// ProjectContent holds the editable fields of a project
type ProjectContent struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription"`
	Technologies    []string `json:"technologies"`
	Image           string   `json:"image"`
	ProjectURL      string   `json:"projectUrl,omitempty"`
	GithubURL       string   `json:"githubUrl"`
	Challenges      []string `json:"challenges"`
	Solutions       []string `json:"solutions"`
	Featured        bool     `json:"featured"`
}

// Project is a portfolio showcase item
type Project struct {
	ID int `json:"id"`
	ProjectContent
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewProject creates a project with both timestamps set to now
func NewProject(id int, content ProjectContent, now time.Time) Project {
	p := Project{
		ID:             id,
		ProjectContent: content,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return p.Normalize()
}

// WithContent replaces the editable fields keeping id and createdAt
func (p Project) WithContent(content ProjectContent, now time.Time) Project {
	p.ProjectContent = content
	p.UpdatedAt = now
	if p.UpdatedAt.Before(p.CreatedAt) {
		p.UpdatedAt = p.CreatedAt
	}
	return p.Normalize()
}

// Normalize makes sure list fields serialize as [] rather than null
func (p Project) Normalize() Project {
	p.Technologies = nonNil(p.Technologies)
	p.Challenges = nonNil(p.Challenges)
	p.Solutions = nonNil(p.Solutions)
	return p
}

func (p Project) RecordID() int          { return p.ID }
func (p Project) CreatedTime() time.Time { return p.CreatedAt }
func (p Project) IsFeatured() bool       { return p.Featured }
