// Package buildinfo identifies a flightglobe binary in the window title and
// the startup log.
package buildinfo

import "runtime/debug"

// Version and Commit are set at build time:
//
//	go build -ldflags "-X flightglobe/internal/buildinfo.Version=v1.0.0"
var (
	Version = "dev"
	Commit  = "unknown"
)

var readBuildInfo = debug.ReadBuildInfo

// Revision returns Commit, or the VCS revision the Go toolchain stamped into
// the binary (first 12 characters), or "" when neither is known.
func Revision() string {
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	bi, ok := readBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return s.Value[:min(len(s.Value), 12)]
		}
	}
	return ""
}

// Short returns the release version, else the revision, else "dev".
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if r := Revision(); r != "" {
		return r
	}
	return "dev"
}
