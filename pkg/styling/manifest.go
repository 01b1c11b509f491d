package styling

import (
	"fmt"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"
)

type manifestFile struct {
	Name      string                 `yaml:"name"`
	Version   string                 `yaml:"version"`
	Tokens    map[string]string      `yaml:"tokens"`
	Templates map[string]string      `yaml:"templates"`
	Assets    assetsFile             `yaml:"assets"`
	Variants  map[string]variantFile `yaml:"variants"`
}

type variantFile struct {
	Tokens    map[string]string `yaml:"tokens"`
	Templates map[string]string `yaml:"templates"`
	Assets    assetsFile        `yaml:"assets"`
}

type assetsFile struct {
	Prefix string            `yaml:"prefix"`
	Files  map[string]string `yaml:"files"`
}

// ParseManifest decodes a theme manifest from YAML or JSON.
func ParseManifest(data []byte) (*theme.Manifest, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("styling: manifest is empty")
	}
	var raw manifestFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("styling: decode manifest: %w", err)
	}
	if strings.TrimSpace(raw.Name) == "" {
		return nil, fmt.Errorf("styling: manifest name is empty")
	}

	manifest := &theme.Manifest{
		Name:      strings.TrimSpace(raw.Name),
		Version:   raw.Version,
		Tokens:    raw.Tokens,
		Templates: raw.Templates,
		Assets:    theme.Assets{Prefix: raw.Assets.Prefix, Files: raw.Assets.Files},
	}
	if len(raw.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(raw.Variants))
		for name, variant := range raw.Variants {
			manifest.Variants[name] = theme.Variant{
				Tokens:    variant.Tokens,
				Templates: variant.Templates,
				Assets:    theme.Assets{Prefix: variant.Assets.Prefix, Files: variant.Assets.Files},
			}
		}
	}
	return manifest, nil
}

// LoadFile parses the manifest at path and registers it.
func (c *Catalog) LoadFile(path string) (*theme.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("styling: read manifest %s: %w", path, err)
	}
	manifest, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	if err := c.Register(manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}
