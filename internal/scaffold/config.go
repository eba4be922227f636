// Package scaffold turns a validated project configuration into a fully
// populated project directory: the selected base template copied
// verbatim, a synthesized package manifest and README, and the fixed
// auxiliary config files every scaffold carries.
package scaffold

import (
	"strings"
)

// maxSlugLen caps derived slugs so they stay usable as file and archive
// names on every filesystem we care about.
const maxSlugLen = 64

// RawConfig is a project configuration as submitted by a caller, before
// validation and normalization.
type RawConfig struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Template    string   `json:"template"`
}

// ProjectConfig is a validated, normalized project configuration.
// Slug is derived from Name and is safe for filesystem and archive
// naming. Feature order is preserved for README listing.
type ProjectConfig struct {
	Name        string
	Description string
	Features    []string
	Template    string
	Slug        string
}

// Normalize validates a raw configuration and returns its normalized
// form. Name is required; description and features are optional. An
// unrecognized template is accepted here and falls back to the default
// at build time. Two distinct names may normalize to the same slug;
// uniqueness of on-disk paths is the lifecycle manager's concern.
//
// Normalize is pure: it never touches the filesystem.
func Normalize(raw RawConfig) (ProjectConfig, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return ProjectConfig{}, &ValidationError{Field: "name", Reason: "is required"}
	}

	return ProjectConfig{
		Name:        name,
		Description: strings.TrimSpace(raw.Description),
		Features:    raw.Features,
		Template:    raw.Template,
		Slug:        Slugify(name),
	}, nil
}

// Slugify converts a project name into a filesystem- and archive-safe
// identifier: lowercase, with runs of non-alphanumeric characters
// collapsed to single hyphens, leading/trailing hyphens stripped, and
// length capped.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	slug := strings.TrimRight(b.String(), "-")
	if len(slug) > maxSlugLen {
		slug = strings.TrimRight(slug[:maxSlugLen], "-")
	}
	if slug == "" {
		// Names made entirely of symbols are valid; fall back to a
		// neutral identifier rather than producing empty paths.
		return "project"
	}
	return slug
}
