package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestString(t *testing.T) {
	saved := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = saved })

	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate })

	Version, GitCommit, BuildDate = "1.2.3", "", ""
	if got := String(); got != "hkanno 1.2.3" {
		t.Fatalf("String() = %q", got)
	}
	Version, GitCommit, BuildDate = "1.2.3-rc1", "abc123", "2024-01-15"
	if got := String(); got != "hkanno 1.2.3-rc1 (abc123) built 2024-01-15" {
		t.Fatalf("String() = %q", got)
	}
}

func TestColoredFallsBackOnOddVersions(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })
	Version = "dev"
	if got := Colored(); got != "dev" {
		t.Fatalf("Colored() = %q", got)
	}
}
