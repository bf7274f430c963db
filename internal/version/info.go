// Package version provides build information for the lendfund CLI.
package version

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build-time variables injected via ldflags:
//
//	-X github.com/lendfriend/lendfund/internal/version.Version={{.Version}}
//	-X github.com/lendfriend/lendfund/internal/version.GitCommit={{.FullCommit}}
//	-X github.com/lendfriend/lendfund/internal/version.BuildDate={{.Date}}
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info contains version and build information.
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GitCommit string `json:"commit"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go"`
}

// NewInfo creates version info for the given binary name.
func NewInfo(name string) Info {
	info := Info{
		Name:      name,
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
	}
	// Prefer VCS info embedded by the toolchain when ldflags are absent.
	if info.GitCommit == "unknown" {
		if bi, ok := debug.ReadBuildInfo(); ok {
			for _, setting := range bi.Settings {
				if setting.Key == "vcs.revision" {
					info.GitCommit = setting.Value
				}
			}
		}
	}
	return info
}

// String renders the info as a human-readable block.
func (i Info) String() string {
	return fmt.Sprintf("%s %s\ncommit: %s\nbuilt: %s\ngo: %s",
		i.Name, i.Version, i.GitCommit, i.BuildDate, i.GoVersion)
}

// JSON renders the info as indented JSON.
func (i Info) JSON() (string, error) {
	data, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
