// Package misc keeps program identity in a single place.
package misc

import (
	"runtime/debug"
	"sync"
)

const appName = "varcss"

// version is normally set by the linker: -ldflags "-X varcss/misc.version=..."
var version = "dev"

var (
	hashOnce sync.Once
	gitHash  = "unknown"
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns VCS revision recorded by the go tool when program was built.
func GetGitHash() string {
	hashOnce.Do(func() {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			return
		}
		var modified bool
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				gitHash = s.Value
			case "vcs.modified":
				modified = s.Value == "true"
			}
		}
		if modified && gitHash != "unknown" {
			gitHash += "+"
		}
	})
	return gitHash
}
