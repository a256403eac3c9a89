// Package version reports the pinboard build version.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Effective returns v, falling back to Go build info when v is empty.
func Effective(v string) string {
	if v != "" {
		return v
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	return fromBuildInfo(info)
}

func fromBuildInfo(info *debug.BuildInfo) string {
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if revision == "" {
		return "devel"
	}
	ver := "devel+" + shortRevision(revision)
	if dirty {
		ver += "+dirty"
	}
	return ver
}

// shortRevision returns the first 12 chars of a revision.
func shortRevision(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

// String formats the version line printed by `pinboard version`.
func String(v string) string {
	return fmt.Sprintf("pinboard %s (%s, %s/%s, %s install)",
		Effective(v), runtime.Version(), runtime.GOOS, runtime.GOARCH, DetectInstallMethod())
}
