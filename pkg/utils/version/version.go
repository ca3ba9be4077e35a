// Package version provides build information for the greeter binary.
// Values are injected at build time with -ldflags "-X".
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

var (
	// Version is the release version, e.g. 1.2.0
	Version = "dev"
	// GitCommit is the git commit hash
	GitCommit = "unknown"
	// BuildDate is when the binary was built (RFC3339)
	BuildDate = "unknown"
	// GoVersion is the Go version used to build the binary
	GoVersion = runtime.Version()
	// Platform is the target platform
	Platform = fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
)

const releaseURL = "https://github.com/yeisme/greeter/releases/tag/"

// Info contains version information
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetVersion returns the version information.
// When no version was injected, the module version from the build info is used.
func GetVersion() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
		Platform:  Platform,
	}
	if info.Version == "dev" {
		if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = strings.TrimPrefix(bi.Main.Version, "v")
		}
	}
	return info
}

// GetVersionString returns a detailed one-line version string
func GetVersionString() string {
	info := GetVersion()
	return fmt.Sprintf("greeter has version %s built with %s from %s (%s) on %s",
		info.Version,
		info.GoVersion,
		info.GitCommit,
		info.Platform,
		info.BuildDate,
	)
}

// GetShortVersionString returns "greeter version X (date)" and, for
// semver releases, the release URL on a second line.
func GetShortVersionString() string {
	info := GetVersion()
	return shortVersion(info)
}

func shortVersion(info Info) string {
	dateStr := info.BuildDate
	if buildTime, err := time.Parse(time.RFC3339, info.BuildDate); err == nil {
		dateStr = buildTime.Format("2006-01-02")
	}

	s := fmt.Sprintf("greeter version %s (%s)", info.Version, dateStr)
	if tag := "v" + strings.TrimPrefix(info.Version, "v"); semver.IsValid(tag) {
		s += "\n" + releaseURL + semver.Canonical(tag)
	}
	return s
}
