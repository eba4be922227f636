// Package config loads FastMVP server configuration from fastmvp.yml
// with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds server and generator settings.
type Config struct {
	Server struct {
		Addr string // Listen address, e.g. ":8080"
	}
	Generator struct {
		WorkDir     string // Root for ephemeral work dirs and archives
		TemplateDir string // Optional on-disk template root; empty = embedded templates
	}
}

// Load reads fastmvp.yml from dir (or the current directory when dir is
// empty). A missing config file is not an error; defaults apply.
// Environment variables prefixed FASTMVP_ override file values, e.g.
// FASTMVP_SERVER_ADDR.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("fastmvp")
	v.SetConfigType("yaml")
	if dir == "" {
		dir = "."
	}
	v.AddConfigPath(dir)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("generator.work_dir", filepath.Join(os.TempDir(), "fastmvp"))
	v.SetDefault("generator.template_dir", "")

	v.AutomaticEnv()
	v.SetEnvPrefix("FASTMVP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading fastmvp.yml: %w", err)
		}
	}

	cfg := &Config{}
	cfg.Server.Addr = v.GetString("server.addr")
	cfg.Generator.WorkDir = v.GetString("generator.work_dir")
	cfg.Generator.TemplateDir = v.GetString("generator.template_dir")

	if cfg.Generator.WorkDir == "" {
		return nil, fmt.Errorf("generator.work_dir must not be empty")
	}

	return cfg, nil
}
