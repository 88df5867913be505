package buildinfo

import (
	"runtime/debug"
	"testing"
)

func stubBuildInfo(t *testing.T, settings ...debug.BuildSetting) {
	t.Helper()
	prev := readBuildInfo
	v, c := Version, Commit
	t.Cleanup(func() {
		readBuildInfo = prev
		Version, Commit = v, c
	})
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: settings}, len(settings) > 0
	}
}

func TestShort(t *testing.T) {
	stubBuildInfo(t)

	Version, Commit = "dev", "unknown"
	if got := Short(); got != "dev" {
		t.Fatalf("Short() = %q", got)
	}
	Commit = "abc123"
	if got := Short(); got != "abc123" {
		t.Fatalf("Short() = %q", got)
	}
	Version = "v1.2.0"
	if got := Short(); got != "v1.2.0" {
		t.Fatalf("Short() = %q", got)
	}
}

func TestRevisionFromVCS(t *testing.T) {
	stubBuildInfo(t,
		debug.BuildSetting{Key: "vcs", Value: "git"},
		debug.BuildSetting{Key: "vcs.revision", Value: "0123456789abcdef0123"},
	)
	Version, Commit = "dev", "unknown"
	if got := Revision(); got != "0123456789ab" {
		t.Fatalf("Revision() = %q", got)
	}
	if got := Short(); got != "0123456789ab" {
		t.Fatalf("Short() = %q", got)
	}

	Commit = "feedbeef"
	if got := Revision(); got != "feedbeef" {
		t.Fatalf("ldflags commit ignored: %q", got)
	}
}
