package commands

import (
	"testing"

	"portfolio/domain/entities"
	pkgerrors "portfolio/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProject() CreateProjectCommand {
	return CreateProjectCommand{
		Title:           "Portfolio",
		Description:     "Personal site",
		LongDescription: "A longer description",
		Technologies:    []string{"Go", "React"},
		Image:           "/img/p.png",
		GithubURL:       "https://github.com/me/portfolio",
	}
}

func TestCreateProjectCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *CreateProjectCommand)
		wantMsg string
	}{
		{"valid", func(c *CreateProjectCommand) {}, ""},
		{"missing title", func(c *CreateProjectCommand) { c.Title = "" }, "title is required"},
		{"no technologies", func(c *CreateProjectCommand) { c.Technologies = []string{} }, "technologies must contain at least 1 item(s)"},
		{"nil technologies", func(c *CreateProjectCommand) { c.Technologies = nil }, "technologies is required"},
		{"empty technology", func(c *CreateProjectCommand) { c.Technologies = []string{"Go", ""} }, "is required"},
		{"bad github url", func(c *CreateProjectCommand) { c.GithubURL = "not a url" }, "githubUrl must be a valid URL"},
		{"bad project url", func(c *CreateProjectCommand) { c.ProjectURL = "nope" }, "projectUrl must be a valid URL"},
		{"optional project url", func(c *CreateProjectCommand) { c.ProjectURL = "" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := validProject()
			tt.mutate(&cmd)

			err := cmd.Validate()

			if tt.wantMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, pkgerrors.IsValidation(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCreateTestimonialCommand_Validate(t *testing.T) {
	valid := CreateTestimonialCommand{
		Name:    "Ada",
		Role:    "CTO",
		Content: "Great engineer to work with",
		Image:   "/img/ada.png",
	}
	assert.NoError(t, valid.Validate())

	short := valid
	short.Content = "too short"
	err := short.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "content must be at least 10 characters")

	noImage := valid
	noImage.Image = ""
	assert.Error(t, noImage.Validate())

	oneChar := valid
	oneChar.Name = "A"
	assert.Error(t, oneChar.Validate())
}

func TestPatchProjectCommand_Apply(t *testing.T) {
	// Arrange
	current := validProject().Fields()
	featured := true
	patch := PatchProjectCommand{Featured: &featured}

	// Act
	merged := patch.Apply(current)

	// Assert
	want := validProject()
	want.Featured = true
	assert.Equal(t, want, merged)
}

func TestPatchProjectCommand_ApplyCopiesSlices(t *testing.T) {
	techs := []string{"Rust"}
	patch := PatchProjectCommand{Technologies: &techs}

	merged := patch.Apply(entities.ProjectContent{})
	techs[0] = "changed"

	assert.Equal(t, []string{"Rust"}, merged.Technologies)
}

func TestPatchTestimonialCommand_Apply(t *testing.T) {
	current := entities.TestimonialContent{Name: "Ada", Role: "CTO", Content: "0123456789", Image: "x"}
	company := "Acme"

	merged := PatchTestimonialCommand{Company: &company}.Apply(current)

	assert.Equal(t, "Acme", merged.Company)
	assert.Equal(t, "Ada", merged.Name)
	assert.False(t, merged.Featured)
}

func TestPatchProjectCommand_Validate(t *testing.T) {
	empty, badURL, okURL := "", "nope", "https://example.com"
	none := []string{}

	tests := []struct {
		name    string
		patch   PatchProjectCommand
		wantErr string
	}{
		{name: "nothing supplied", patch: PatchProjectCommand{}},
		{name: "project url may be cleared", patch: PatchProjectCommand{ProjectURL: &empty}},
		{name: "valid github url", patch: PatchProjectCommand{GithubURL: &okURL}},
		{name: "blank title", patch: PatchProjectCommand{Title: &empty}, wantErr: "title is required"},
		{name: "bad github url", patch: PatchProjectCommand{GithubURL: &badURL}, wantErr: "githubUrl must be a valid URL"},
		{name: "bad project url", patch: PatchProjectCommand{ProjectURL: &badURL}, wantErr: "projectUrl must be a valid URL"},
		{name: "no technologies", patch: PatchProjectCommand{Technologies: &none}, wantErr: "technologies must"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, pkgerrors.IsValidation(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateProjectCommand_ValidatePresence(t *testing.T) {
	cmd := validProject()
	cmd.GithubURL = "not a url"
	assert.NoError(t, cmd.ValidatePresence(), "format rules are not applied")

	cmd.Image = ""
	err := cmd.ValidatePresence()
	require.Error(t, err)
	assert.Equal(t, "image is required", pkgerrors.GetAppError(err).Message)
}

func TestPatchTestimonialCommand_Validate(t *testing.T) {
	short, long := "x", "Long enough content"
	assert.NoError(t, PatchTestimonialCommand{Content: &long}.Validate())
	assert.Error(t, PatchTestimonialCommand{Content: &short}.Validate())
	assert.Error(t, PatchTestimonialCommand{Role: &short}.Validate())
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	id, err = ParseID("007")
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	for _, raw := range []string{"abc", "1.5", "", "12abc", " 42", "42 ", "+42", "-1", "0x10", "99999999999999999999"} {
		_, err := ParseID(raw)
		require.Error(t, err, raw)
		assert.True(t, pkgerrors.IsValidation(err))
		assert.Equal(t, "Invalid ID format", pkgerrors.GetAppError(err).Message)
	}
}
