package genconfig

import "testing"

func TestRegistryLoadsEmbeddedProfiles(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}

	tests := []struct {
		role        Role
		temperature float64
		maxTokens   int
	}{
		{RoleDrafter, 0.7, 2048},
		{RoleReviewer, 0.3, 1024},
		{RoleCorrector, 0.7, 2048},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			profile, err := reg.Get(tt.role)
			if err != nil {
				t.Fatalf("Get(%s) error: %v", tt.role, err)
			}
			if profile.Temperature != tt.temperature {
				t.Errorf("Temperature = %v, want %v", profile.Temperature, tt.temperature)
			}
			if profile.MaxTokens != tt.maxTokens {
				t.Errorf("MaxTokens = %d, want %d", profile.MaxTokens, tt.maxTokens)
			}
		})
	}
}

func TestRegistryRejectsUnknownRole(t *testing.T) {
	reg, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error: %v", err)
	}
	if _, err := reg.Get(Role("narrator")); err == nil {
		t.Error("expected an error for an unknown role")
	}
}
