// Package profile loads YAML generation profiles: a target model plus the
// sampling parameters a session should run with.
package profile

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tailwrite/tailwrite"
)

// fileProfile is the YAML profile shape bound directly to domain types.
type fileProfile struct {
	Model       string         `yaml:"model"`
	Description string         `yaml:"description"`
	Parameters  map[string]any `yaml:"parameters"`
}

// Profile names a model and the sampling parameters to run it with. A zero
// Model means the transport's default; Parameters override the session
// defaults name by name.
type Profile struct {
	Model       string
	Description string
	Parameters  map[string]any
}

// ParseBytes parses a YAML profile. Parameter names starting with "_" are
// reserved and make the profile invalid.
func ParseBytes(data []byte) (*Profile, error) {
	var f fileProfile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", tailwrite.ErrInvalidProfile, err)
	}
	for name := range f.Parameters {
		if strings.HasPrefix(name, "_") {
			return nil, fmt.Errorf("%w: reserved parameter name %q", tailwrite.ErrInvalidProfile, name)
		}
	}
	return &Profile{
		Model:       f.Model,
		Description: f.Description,
		Parameters:  f.Parameters,
	}, nil
}

// ParseFile reads and parses a profile file.
func ParseFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is validated by caller
	if err != nil {
		return nil, fmt.Errorf("profile: read file: %w", err)
	}
	return ParseBytes(data)
}

// ParseFS reads and parses a profile from fs.FS (e.g. embed.FS).
func ParseFS(fsys fs.FS, name string) (*Profile, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("profile: read fs: %w", err)
	}
	return ParseBytes(data)
}

// Options converts the profile's parameters into session options.
func (p *Profile) Options() []tailwrite.Option {
	if len(p.Parameters) == 0 {
		return nil
	}
	return []tailwrite.Option{tailwrite.WithParams(p.Parameters)}
}
