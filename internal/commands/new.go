package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Hermes08/FastMVP-Core/internal/input"
	"github.com/Hermes08/FastMVP-Core/internal/lifecycle"
	"github.com/Hermes08/FastMVP-Core/internal/output"
	"github.com/Hermes08/FastMVP-Core/internal/scaffold"
	"github.com/Hermes08/FastMVP-Core/internal/templates"
)

// NewCmd creates and returns the 'new' command for generating scaffold
// archives locally.
func NewCmd() *cobra.Command {
	var (
		description string
		features    []string
		template    string
		outputDir   string
		templateDir string
	)

	cmd := &cobra.Command{
		Use:   "new [project-name]",
		Short: "Generate a project scaffold archive",
		Long: `Generates a complete project scaffold and writes it as <slug>.zip.

The scaffold contains the selected base template, a package.json and
README synthesized from your configuration, and standard config files.

Example:
  fastmvp new "Demo Api" --description "A demo" --features user-management,csv-upload --template nextjs`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			if name == "" {
				name = input.Prompt("Project name", "")
			}

			cfg, err := scaffold.Normalize(scaffold.RawConfig{
				Name:        name,
				Description: description,
				Features:    features,
				Template:    template,
			})
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			store := templates.Embedded()
			if templateDir != "" {
				store = templates.Open(templateDir)
			}

			var progress io.Writer = io.Discard
			if output.Verbose() {
				progress = cmd.OutOrStdout()
			}
			builder := scaffold.NewBuilder(store, progress)
			manager := lifecycle.NewDefault(os.TempDir(), builder, nil)

			dest := filepath.Join(outputDir, cfg.Slug+".zip")
			err = manager.Generate(context.Background(), cfg, func(ctx context.Context, archivePath string) error {
				return copyFile(archivePath, dest)
			})
			if err != nil {
				output.Error(err.Error())
				os.Exit(1)
			}

			output.Success(fmt.Sprintf("Created %s", dest))
			output.Info("Next steps:")
			output.Step(fmt.Sprintf("unzip %s -d %s", dest, cfg.Slug))
			output.Step(fmt.Sprintf("cd %s", cfg.Slug))
			output.Step("npm install")
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Project description")
	cmd.Flags().StringSliceVarP(&features, "features", "f", nil, "Feature identifiers (comma-separated)")
	cmd.Flags().StringVarP(&template, "template", "t", "", "Template name (nextjs, react, node)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Directory to write the archive into")
	cmd.Flags().StringVar(&templateDir, "template-dir", "", "On-disk template root overriding the built-in templates")

	return cmd
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
