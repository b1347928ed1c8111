// Package buildconfig loads web.yaml, the build and dev-server settings of the
// front-end bundle, and resolves its paths and import aliases against a project root.
package buildconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	z "github.com/Oudwins/zog"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid build config")

type Config struct {
	Root      string            `yaml:"root" json:"root"`
	PublicDir string            `yaml:"public_dir" json:"public_dir"`
	Aliases   map[string]string `yaml:"aliases" json:"aliases"`
	Build     Build             `yaml:"build" json:"build"`
	Server    Server            `yaml:"server" json:"server"`
}

type Build struct {
	OutDir      string `yaml:"out_dir" json:"out_dir"`
	EmptyOutDir bool   `yaml:"empty_out_dir" json:"empty_out_dir"`
}

type Server struct {
	Host       string `yaml:"host" json:"host"`
	Port       int    `yaml:"port" json:"port"`
	StrictPort bool   `yaml:"strict_port" json:"strict_port"`
	FS         FS     `yaml:"fs" json:"fs"`
}

type FS struct {
	Strict bool     `yaml:"strict" json:"strict"`
	Allow  []string `yaml:"allow" json:"allow"`
}

// Default mirrors the shipped web.yaml, keys missing from a file keep these values.
func Default() *Config {
	return &Config{
		Root:      "client",
		PublicDir: "client/public",
		Aliases: map[string]string{
			"@":       "client/src",
			"@shared": "shared",
			"@assets": "attached_assets",
		},
		Build: Build{
			OutDir:      "dist/public",
			EmptyOutDir: true,
		},
		Server: Server{
			Host:       "0.0.0.0",
			Port:       5173,
			StrictPort: false,
			FS: FS{
				Strict: true,
				Allow:  []string{"."},
			},
		},
	}
}

var configSchema = z.Struct(z.Shape{
	"Root":      z.String().Required(),
	"PublicDir": z.String().Required(),
	"Build": z.Struct(z.Shape{
		"OutDir": z.String().Required(),
	}),
	"Server": z.Struct(z.Shape{
		"Host": z.String().Required(),
		"Port": z.Int().Required().GT(0).LTE(65535),
	}),
})

func (c *Config) Validate() error {
	if issues := configSchema.Validate(c); len(issues) > 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, issues)
	}
	for alias, target := range c.Aliases {
		if !strings.HasPrefix(alias, "@") {
			return fmt.Errorf("%w: alias %q must start with @", ErrInvalidConfig, alias)
		}
		if strings.TrimSpace(target) == "" {
			return fmt.Errorf("%w: alias %q has no target", ErrInvalidConfig, alias)
		}
	}
	return nil
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	defaultAliases := cfg.Aliases
	// an aliases block replaces the default table instead of merging into it
	cfg.Aliases = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if cfg.Aliases == nil {
		cfg.Aliases = defaultAliases
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read build config: %w", err)
	}
	return Parse(data)
}

// Resolve returns a copy with every path made absolute against projectRoot.
func (c *Config) Resolve(projectRoot string) (*Config, error) {
	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}

	abs := func(p string) string {
		if filepath.IsAbs(p) {
			return filepath.Clean(p)
		}
		return filepath.Join(root, p)
	}

	resolved := *c
	resolved.Root = abs(c.Root)
	resolved.PublicDir = abs(c.PublicDir)
	resolved.Build.OutDir = abs(c.Build.OutDir)

	resolved.Aliases = make(map[string]string, len(c.Aliases))
	for alias, target := range c.Aliases {
		resolved.Aliases[alias] = abs(target)
	}

	resolved.Server.FS.Allow = make([]string, len(c.Server.FS.Allow))
	for i, p := range c.Server.FS.Allow {
		resolved.Server.FS.Allow[i] = abs(p)
	}

	return &resolved, nil
}

// ResolveImport maps an aliased import such as "@/lib/utils" or "@shared/types" to a path
// under the alias target. The longest matching alias wins. ok is false for bare imports.
func (c *Config) ResolveImport(spec string) (path string, ok bool) {
	aliases := make([]string, 0, len(c.Aliases))
	for alias := range c.Aliases {
		aliases = append(aliases, alias)
	}
	sort.Slice(aliases, func(i, j int) bool { return len(aliases[i]) > len(aliases[j]) })

	for _, alias := range aliases {
		if spec == alias {
			return c.Aliases[alias], true
		}
		if rest, found := strings.CutPrefix(spec, alias+"/"); found {
			return filepath.Join(c.Aliases[alias], filepath.FromSlash(rest)), true
		}
	}
	return "", false
}

// IndexFile is the SPA entry point inside the build output.
func (c *Config) IndexFile() string {
	return filepath.Join(c.Build.OutDir, "index.html")
}
