// Package genconfig loads per-role generation settings from an embedded YAML
// file. The drafter runs warm for natural answers; reviewers run cool for
// consistent verdicts.
package genconfig

import (
	"embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/profiles.yaml
var configFiles embed.FS

// Profile holds the generation settings for one pipeline role.
type Profile struct {
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

// Role names a pipeline role with its own generation profile.
type Role string

const (
	RoleDrafter   Role = "drafter"
	RoleReviewer  Role = "reviewer"
	RoleCorrector Role = "corrector"
)

type profilesFile struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// Registry resolves generation profiles by role.
type Registry struct {
	profiles map[string]Profile
	mu       sync.RWMutex
}

// NewRegistry creates a registry from the embedded profiles file.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/profiles.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded profiles: %w", err)
	}

	var file profilesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profiles: %w", err)
	}

	for _, role := range []Role{RoleDrafter, RoleReviewer, RoleCorrector} {
		if _, ok := file.Profiles[string(role)]; !ok {
			return nil, fmt.Errorf("profiles.yaml missing role %q", role)
		}
	}

	return &Registry{profiles: file.Profiles}, nil
}

// Get returns the profile for a role.
func (r *Registry) Get(role Role) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[string(role)]
	if !ok {
		return Profile{}, fmt.Errorf("unknown generation role: %s", role)
	}
	return p, nil
}
