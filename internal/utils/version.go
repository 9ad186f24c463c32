package utils

import (
	"runtime/debug"
	"strings"
)

// version is injected at release time via -ldflags.
var version string

// GetVersion reports the build's version without a leading "v". When no
// ldflags value was injected it falls back to the module version recorded in
// build info, then to "unknown".
func GetVersion() string {
	v := version
	if v == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			v = info.Main.Version
		} else {
			v = "unknown"
		}
	}
	return strings.TrimPrefix(v, "v")
}
