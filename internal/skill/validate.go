package skill

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// maxDescription is the longest description assistants accept in a skill header.
const maxDescription = 1024

// namePattern matches lowercase alphanumeric with single hyphens between words
var namePattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidationError represents a single validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// ValidationResult holds validation errors.
type ValidationResult struct {
	Errors []ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Error implements the error interface.
func (r *ValidationResult) Error() string {
	if len(r.Errors) == 0 {
		return ""
	}

	var messages []string
	for _, err := range r.Errors {
		messages = append(messages, err.Error())
	}

	return fmt.Sprintf("validation failed with %d error(s):\n  - %s",
		len(r.Errors), strings.Join(messages, "\n  - "))
}

// Add appends a validation error.
func (r *ValidationResult) Add(field, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// Validate checks the bundle for problems an author should fix before
// shipping it. Installing does not require a valid bundle.
func (b *Bundle) Validate() *ValidationResult {
	result := &ValidationResult{}

	validateContent(b, result)
	validateMeta(b, result)
	validateFiles(b, result)

	return result
}

// Version parses the manifest version. A bundle without one reports nil.
func (b *Bundle) Version() (*semver.Version, error) {
	if b.Manifest.Skill.Version == "" {
		return nil, nil
	}
	return semver.StrictNewVersion(b.Manifest.Skill.Version)
}

func validateContent(b *Bundle, result *ValidationResult) {
	if b.Fallback {
		result.Add(ContentName, "not found; the built-in fallback would be installed")
		return
	}
	if b.headerErr != nil {
		result.Add(ContentName, fmt.Sprintf("has a malformed frontmatter header: %v", b.headerErr))
	} else if !b.hasHeader {
		result.Add(ContentName, "must start with YAML frontmatter")
	} else {
		if b.Frontmatter.Name == "" {
			result.Add("frontmatter.name", "is required")
		}
		if b.Frontmatter.Description == "" {
			result.Add("frontmatter.description", "is required")
		}
	}
	if !ContainsMarker(b.Content) {
		result.Add(ContentName, fmt.Sprintf("must contain %q so reinstalls are detected", Marker))
	}
}

func validateMeta(b *Bundle, result *ValidationResult) {
	meta := b.Manifest.Skill

	if !namePattern.MatchString(meta.Name) {
		result.Add("skill.name", "must be lowercase alphanumeric with hyphens")
	}
	if b.hasManifest && b.hasHeader && b.Frontmatter.Name != "" && meta.Name != b.Frontmatter.Name {
		result.Add("skill.name", fmt.Sprintf("must match frontmatter name (got %q, frontmatter has %q)", meta.Name, b.Frontmatter.Name))
	}

	if meta.Description == "" {
		result.Add("skill.description", "is required")
	} else if len(meta.Description) > maxDescription {
		result.Add("skill.description", fmt.Sprintf("must be %d characters or less", maxDescription))
	}
	if len(b.Frontmatter.Description) > maxDescription {
		result.Add("frontmatter.description", fmt.Sprintf("must be %d characters or less", maxDescription))
	}

	// Version is optional, but must be strict semver if provided
	if _, err := b.Version(); err != nil {
		result.Add("skill.version", "must be semver format (X.Y.Z)")
	}
}

func validateFiles(b *Bundle, result *ValidationResult) {
	for _, pattern := range b.unmatched {
		result.Add("skill.files", fmt.Sprintf("pattern %q matches no files", pattern))
	}
}
