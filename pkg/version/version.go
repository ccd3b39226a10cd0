package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Build-time variables (set via ldflags)
var (
	Version   = "dev"
	BuildTime = ""
	Commit    = ""
)

// Info contains version information
type Info struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time,omitempty"`
	Commit    string `json:"commit,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the current version info. Values missing from ldflags are
// filled from the module build info when the binary was built with go install.
func Get() Info {
	info := Info{
		Version:   Version,
		BuildTime: BuildTime,
		Commit:    Commit,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		fillFromBuildInfo(&info, bi)
	}
	return info
}

func fillFromBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		}
	}
}

// String returns a formatted version string
func (i Info) String() string {
	var details []string
	if i.Commit != "" {
		details = append(details, "commit: "+shortCommit(i.Commit))
	}
	if i.BuildTime != "" {
		details = append(details, "built: "+i.BuildTime)
	}
	details = append(details, i.GoVersion+" "+i.Platform)

	return fmt.Sprintf("packager %s (%s)", i.Version, strings.Join(details, ", "))
}

func shortCommit(commit string) string {
	if len(commit) > 12 {
		return commit[:12]
	}
	return commit
}

// Short returns a short version string
func Short() string {
	return Get().Version
}

// Full returns a full version string
func Full() string {
	return Get().String()
}
