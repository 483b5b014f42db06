package ident

import "testing"

func TestNext(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want string
	}{
		{"empty collection", nil, "BD-1"},
		{"sequential", []string{"BD-1", "BD-2", "BD-3"}, "BD-4"},
		{"mixed prefixes use global max", []string{"test-1", "test-2", "BD-10", "test-5"}, "BD-11"},
		{"timestamp ids dominate", []string{"BD-1760553600806", "BD-1760553775496", "BD-5"}, "BD-1760553775497"},
		{"no digit suffix contributes nothing", []string{"alpha", "beta-", "BD-2x"}, "BD-1"},
		{"leading zeros", []string{"BD-007"}, "BD-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Next(DefaultPrefix, tt.ids); got != tt.want {
				t.Errorf("Next() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNextCustomPrefix(t *testing.T) {
	if got := Next("WEB-", []string{"WEB-3"}); got != "WEB-4" {
		t.Errorf("Next() = %q, want WEB-4", got)
	}
}
