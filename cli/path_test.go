package cli

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestUserDir(t *testing.T) {
	base := t.TempDir()

	got := userDir(func() (string, error) { return base, nil }, ".cache")
	if want := filepath.Join(base, basePrefix()); got != want {
		t.Errorf("userDir() = %q, want %q", got, want)
	}

	got = userDir(func() (string, error) { return "", errors.New("no dir") }, ".cache")
	if !strings.HasSuffix(got, filepath.Join(".cache", basePrefix())) &&
		!strings.HasSuffix(got, basePrefix()) {
		t.Errorf("userDir() fallback = %q", got)
	}
}

func TestConfigPath(t *testing.T) {
	if got, want := configPath(baseConfigFile), filepath.Join(configDir(), "config.yaml"); got != want {
		t.Errorf("configPath() = %q, want %q", got, want)
	}

	if basePrefix() == "" {
		t.Error("basePrefix() is empty")
	}
}
