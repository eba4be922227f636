package scaffold

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/Hermes08/FastMVP-Core/internal/generator"
	"github.com/Hermes08/FastMVP-Core/internal/templates"
)

// standardDirs are the subdirectories every scaffold carries, created
// even when empty so downstream tooling finds the expected layout.
var standardDirs = []string{
	filepath.Join("src", "app"),
	filepath.Join("src", "components"),
	"public",
}

// Builder materializes scaffold trees into freshly allocated work
// directories. It is stateless across builds; all per-request state is
// passed in, so one Builder can serve concurrent requests.
type Builder struct {
	store    *templates.Store
	renderer *generator.Renderer
	progress io.Writer
}

// NewBuilder creates a Builder over a template store. Progress output
// (one line per created file) goes to progress; pass nil to discard it.
func NewBuilder(store *templates.Store, progress io.Writer) *Builder {
	if progress == nil {
		progress = io.Discard
	}
	return &Builder{
		store:    store,
		renderer: generator.NewRenderer(),
		progress: progress,
	}
}

// Build populates dir with a complete scaffold for cfg: the base
// template copied byte-for-byte, the synthesized package.json and
// README.md, the fixed auxiliary config files, the standard empty
// subdirectories, and any feature file modules.
//
// Any I/O failure aborts the whole build with a *WriteError carrying
// the failing path. Build performs no cleanup; the partial tree is the
// caller's to remove.
func (b *Builder) Build(ctx context.Context, cfg ProjectConfig, dir string) error {
	tpl, err := b.store.Resolve(cfg.Template)
	if err != nil {
		return &WriteError{Path: dir, Err: err}
	}

	var ops []generator.Operation

	copyOps, err := b.templateOps(tpl, dir)
	if err != nil {
		return &WriteError{Path: dir, Err: err}
	}
	ops = append(ops, copyOps...)

	manifest, err := b.packageManifest(cfg, tpl.Manifest)
	if err != nil {
		return &WriteError{Path: filepath.Join(dir, "package.json"), Err: err}
	}
	ops = append(ops, &generator.WriteFileOp{
		Path:    filepath.Join(dir, "package.json"),
		Content: manifest,
		Mode:    0644,
	})

	readme, err := b.renderer.RenderString("readme", readmeTemplate, readmeData{
		Name:        cfg.Name,
		Description: cfg.Description,
		Features:    cfg.Features,
	})
	if err != nil {
		return &WriteError{Path: filepath.Join(dir, "README.md"), Err: err}
	}
	ops = append(ops,
		&generator.WriteFileOp{
			Path:    filepath.Join(dir, "README.md"),
			Content: readme,
			Mode:    0644,
		},
		&generator.WriteFileOp{
			Path:    filepath.Join(dir, ".gitignore"),
			Content: []byte(gitignoreContent),
			Mode:    0644,
		},
		&generator.WriteFileOp{
			Path:    filepath.Join(dir, "tsconfig.json"),
			Content: []byte(tsconfigContent),
			Mode:    0644,
		},
	)

	for _, sub := range standardDirs {
		ops = append(ops, &generator.MkdirOp{
			Path: filepath.Join(dir, sub),
			Mode: 0755,
		})
	}

	featureOps, err := b.featureOps(cfg, dir)
	if err != nil {
		return &WriteError{Path: dir, Err: err}
	}
	ops = append(ops, featureOps...)

	if err := generator.Execute(ctx, ops, generator.ExecuteOptions{Writer: b.progress}); err != nil {
		var opErr *generator.OpError
		if errors.As(err, &opErr) {
			return &WriteError{Path: opErr.Path, Err: opErr.Err}
		}
		return &WriteError{Path: dir, Err: err}
	}

	return nil
}

// templateOps stages byte-for-byte copies of the base template tree.
// The template manifest is store metadata, not scaffold content.
func (b *Builder) templateOps(tpl *templates.Template, dir string) ([]generator.Operation, error) {
	var ops []generator.Operation
	err := fs.WalkDir(tpl.Files(), ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == "." || p == templates.ManifestFile {
			return nil
		}
		dest := filepath.Join(dir, filepath.FromSlash(p))
		if d.IsDir() {
			ops = append(ops, &generator.MkdirOp{Path: dest, Mode: 0755})
			return nil
		}
		content, err := fs.ReadFile(tpl.Files(), p)
		if err != nil {
			return fmt.Errorf("reading template file %s: %w", p, err)
		}
		ops = append(ops, &generator.WriteFileOp{Path: dest, Content: content, Mode: 0644})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ops, nil
}

// featureOps stages file modules for features that have them. Features
// without a file module are README-only and stage nothing; unknown
// identifiers are a deliberate no-op so older configs keep working
// against newer feature catalogs.
func (b *Builder) featureOps(cfg ProjectConfig, dir string) ([]generator.Operation, error) {
	var ops []generator.Operation
	for _, id := range cfg.Features {
		module, ok := b.store.FeatureFiles(id)
		if !ok {
			continue
		}
		base := filepath.Join(dir, "src", "components", id)
		err := fs.WalkDir(module, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if p == "." {
				return nil
			}
			dest := filepath.Join(base, filepath.FromSlash(p))
			if d.IsDir() {
				ops = append(ops, &generator.MkdirOp{Path: dest, Mode: 0755})
				return nil
			}
			content, err := fs.ReadFile(module, p)
			if err != nil {
				return fmt.Errorf("reading feature file %s/%s: %w", id, p, err)
			}
			ops = append(ops, &generator.WriteFileOp{Path: dest, Content: content, Mode: 0644})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return ops, nil
}

// packageJSON mirrors the npm manifest shape. Maps marshal with sorted
// keys, so output is deterministic for identical input.
type packageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description"`
	Private         bool              `json:"private"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
}

func (b *Builder) packageManifest(cfg ProjectConfig, m templates.Manifest) ([]byte, error) {
	pkg := packageJSON{
		Name:            cfg.Name,
		Version:         "0.1.0",
		Description:     cfg.Description,
		Private:         true,
		Scripts:         m.Scripts,
		Dependencies:    m.Dependencies,
		DevDependencies: m.DevDependencies,
	}
	data, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling package.json: %w", err)
	}
	return append(data, '\n'), nil
}

type readmeData struct {
	Name        string
	Description string
	Features    []string
}

const readmeTemplate = `# {{ .Name }}

{{ default "No description provided yet." .Description }}

## Features
{{ if .Features }}{{ range .Features }}- {{ . }}
{{ end }}{{ else }}_No features selected._
{{ end }}
## Getting Started

First, install dependencies:

` + "```bash\nnpm install\n```" + `

Then, run the development server:

` + "```bash\nnpm run dev\n```" + `

Open [http://localhost:3000](http://localhost:3000) with your browser to see the result.
`

const gitignoreContent = `node_modules/
.next/
out/
build/
.DS_Store
*.log
.env*.local
`

const tsconfigContent = `{
  "compilerOptions": {
    "target": "ES2020",
    "lib": ["dom", "dom.iterable", "esnext"],
    "allowJs": true,
    "skipLibCheck": true,
    "strict": true,
    "noEmit": true,
    "esModuleInterop": true,
    "module": "esnext",
    "moduleResolution": "bundler",
    "resolveJsonModule": true,
    "isolatedModules": true,
    "jsx": "preserve",
    "incremental": true,
    "paths": { "@/*": ["./src/*"] }
  },
  "include": ["**/*.ts", "**/*.tsx"],
  "exclude": ["node_modules"]
}
`
