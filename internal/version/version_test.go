package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	info := Current()
	if info.Version != Version {
		t.Errorf("Current().Version = %q", info.Version)
	}
}

func TestColoredWithoutColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	orig := Version
	defer func() { Version = orig }()

	Version = "1.2.3-rc1"
	if got := Colored(); got != "1.2.3-rc1" {
		t.Errorf("Colored() = %q", got)
	}
	Version = "weird"
	if got := Colored(); got != "weird" {
		t.Errorf("Colored() = %q for malformed version", got)
	}
}

func TestCanBeOverridden(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit = "abc123def456"
	BuildDate = "2024-01-15T10:30:00Z"
	info := Current()
	if info.GitCommit != "abc123def456" || info.BuildDate != "2024-01-15T10:30:00Z" {
		t.Errorf("Current() = %+v", info)
	}
}
