package paths

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestExecutableDir(t *testing.T) {
	dir, err := ExecutableDir()
	if err != nil {
		t.Fatalf("ExecutableDir: %v", err)
	}
	if dir == "" {
		t.Error("ExecutableDir returned an empty path")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ExecutableDir returned a relative path: %q", dir)
	}
}

func TestUserConfigDir(t *testing.T) {
	dir, err := UserConfigDir()
	if err != nil {
		t.Skipf("no user config dir on this system: %v", err)
	}
	if filepath.Base(dir) != appDirName {
		t.Errorf("UserConfigDir = %q, want a %q leaf", dir, appDirName)
	}
}

func TestConfigCandidates(t *testing.T) {
	candidates := ConfigCandidates("config.yaml")

	if len(candidates) == 0 {
		t.Fatal("no candidates returned")
	}
	if candidates[0] != "config.yaml" {
		t.Errorf("first candidate = %q, want the working-directory name", candidates[0])
	}
	for _, c := range candidates {
		if !strings.HasSuffix(c, "config.yaml") {
			t.Errorf("candidate %q does not end with the requested filename", c)
		}
	}
}

func TestRuntimeDir(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", "/run/user/1000")
	if got := RuntimeDir(); got != "/run/user/1000" {
		t.Errorf("RuntimeDir = %q, want /run/user/1000", got)
	}

	t.Setenv("XDG_RUNTIME_DIR", "")
	if got := RuntimeDir(); got == "" {
		t.Error("RuntimeDir returned empty without XDG_RUNTIME_DIR")
	}
}
