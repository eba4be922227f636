// Package templates provides the read-only template store: versioned base
// file trees copied verbatim into every generated project, plus feature
// file modules. Templates ship embedded in the binary; an on-disk root
// can be configured to override them for operators who maintain their
// own template sets.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

//go:embed all:templates
var embedded embed.FS

// DefaultName is the template selected when a config names an
// unrecognized template. Template choice is non-critical, so unknown
// values fall back instead of failing.
const DefaultName = "nextjs"

// ManifestFile is the per-template metadata file. It describes the
// template and carries the dependency and script sets used when
// synthesizing the package manifest. It is never copied into scaffolds.
const ManifestFile = "template.yml"

// featuresDir holds feature file modules, keyed by feature identifier.
// It is not a selectable template.
const featuresDir = "features"

// Manifest is the parsed template.yml for one template.
type Manifest struct {
	Name            string            `yaml:"name"`
	DisplayName     string            `yaml:"display_name"`
	Scripts         map[string]string `yaml:"scripts"`
	Dependencies    map[string]string `yaml:"dependencies"`
	DevDependencies map[string]string `yaml:"devDependencies"`
}

// Template is one resolved base tree plus its manifest.
type Template struct {
	Name     string
	Manifest Manifest

	files fs.FS
}

// Files returns the template's base file tree, rooted at the template
// directory. The tree includes template.yml; callers copying the tree
// into a scaffold must skip it.
func (t *Template) Files() fs.FS { return t.files }

// Store is a read-only collection of templates.
type Store struct {
	root fs.FS
}

// Embedded returns the store backed by the templates compiled into the
// binary.
func Embedded() *Store {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		// The embed path is fixed at compile time; this cannot fail
		// on a correctly built binary.
		panic(err)
	}
	return &Store{root: sub}
}

// Open returns a store backed by an on-disk template root laid out the
// same way as the embedded tree (one directory per template).
func Open(dir string) *Store {
	return &Store{root: os.DirFS(dir)}
}

// Resolve looks up a template by name, falling back to DefaultName when
// the name is empty or unknown. It fails only when the template tree
// itself is broken (missing default template, unreadable manifest).
func (s *Store) Resolve(name string) (*Template, error) {
	if name == "" || name == featuresDir || !s.exists(name) {
		name = DefaultName
	}

	sub, err := fs.Sub(s.root, name)
	if err != nil {
		return nil, fmt.Errorf("opening template %q: %w", name, err)
	}

	data, err := fs.ReadFile(sub, ManifestFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s for template %q: %w", ManifestFile, name, err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing %s for template %q: %w", ManifestFile, name, err)
	}

	return &Template{Name: name, Manifest: manifest, files: sub}, nil
}

// FeatureFiles returns the file module for a feature identifier, if one
// exists. Unknown identifiers are not an error; features without file
// modules only contribute README bullets.
func (s *Store) FeatureFiles(id string) (fs.FS, bool) {
	p := path.Join(featuresDir, id)
	info, err := fs.Stat(s.root, p)
	if err != nil || !info.IsDir() {
		return nil, false
	}
	sub, err := fs.Sub(s.root, p)
	if err != nil {
		return nil, false
	}
	return sub, true
}

// Names lists the selectable template names in the store.
func (s *Store) Names() ([]string, error) {
	entries, err := fs.ReadDir(s.root, ".")
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && e.Name() != featuresDir {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (s *Store) exists(name string) bool {
	info, err := fs.Stat(s.root, name)
	return err == nil && info.IsDir()
}
