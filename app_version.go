package main

import (
	"runtime/debug"
)

// set with -ldflags "-X main.appVer=..."
var appVer = ""

// appVersion prefers the ldflags value, then the module version recorded by
// go install.
func appVersion() string {
	if appVer != "" {
		return appVer
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return "(devel)"
}
