package scaffold

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeValid(t *testing.T) {
	cfg, err := Normalize(RawConfig{
		Name:        "  Demo Api  ",
		Description: "A demo",
		Features:    []string{"user-management", "csv-upload"},
		Template:    "nextjs",
	})

	require.NoError(t, err)
	assert.Equal(t, "Demo Api", cfg.Name)
	assert.Equal(t, "A demo", cfg.Description)
	assert.Equal(t, []string{"user-management", "csv-upload"}, cfg.Features)
	assert.Equal(t, "nextjs", cfg.Template)
	assert.Equal(t, "demo-api", cfg.Slug)
}

func TestNormalizeNameRequired(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := Normalize(RawConfig{Name: name})
		require.Error(t, err)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "name", vErr.Field)
		assert.Equal(t, "name is required", vErr.Error())
	}
}

func TestNormalizeDefaults(t *testing.T) {
	cfg, err := Normalize(RawConfig{Name: "X"})

	require.NoError(t, err)
	assert.Equal(t, "X", cfg.Name)
	assert.Empty(t, cfg.Description)
	assert.Empty(t, cfg.Features)
	assert.Empty(t, cfg.Template)
	assert.Equal(t, "x", cfg.Slug)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Demo Api", "demo-api"},
		{"My  Cool   App!!", "my-cool-app"},
		{"already-slugged", "already-slugged"},
		{"CamelCase123", "camelcase123"},
		{"--leading & trailing--", "leading-trailing"},
		{"dots.and/slashes\\too", "dots-and-slashes-too"},
		{"!!!", "project"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), "Slugify(%q)", tt.in)
	}
}

func TestSlugifyCapsLength(t *testing.T) {
	long := strings.Repeat("a", 200)
	slug := Slugify(long)

	assert.Len(t, slug, 64)
	assert.False(t, strings.HasSuffix(slug, "-"))
}

func TestNormalizeDistinctNamesSameSlug(t *testing.T) {
	// Collisions are allowed here; unique on-disk paths are the
	// lifecycle manager's job.
	a, err := Normalize(RawConfig{Name: "Demo Api"})
	require.NoError(t, err)
	b, err := Normalize(RawConfig{Name: "demo api!"})
	require.NoError(t, err)

	assert.Equal(t, a.Slug, b.Slug)
}
