package version

import "runtime/debug"

// Set via -ldflags "-X github.com/samcharles93/pngme/internal/version.Version=...".
var (
	Version   = ""
	Commit    = ""
	BuildTime = ""
)

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
}

// Resolve fills in anything ldflags left empty from the embedded build info.
func Resolve() Info {
	info := Info{Version: Version, Commit: Commit, BuildTime: BuildTime}

	if bi, ok := debug.ReadBuildInfo(); ok {
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
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
	if info.Version == "" {
		info.Version = "dev"
	}
	return info
}

func String() string {
	info := Resolve()
	if info.Commit == "" {
		return info.Version
	}
	return info.Version + " (" + shortCommit(info.Commit) + ")"
}

func shortCommit(commit string) string {
	if len(commit) <= 12 {
		return commit
	}
	return commit[:12]
}
