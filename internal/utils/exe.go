package utils

import (
	"runtime"
	"strings"
)

// ExeSuffix is the platform executable suffix
func ExeSuffix(goos string) string {
	if goos == "windows" {
		return ".exe"
	}

	return ""
}

// ExecutableName appends the executable suffix of the running platform to name
func ExecutableName(name string) string {
	return executableName(name, runtime.GOOS)
}

func executableName(name, goos string) string {
	suffix := ExeSuffix(goos)
	if suffix == "" || strings.HasSuffix(strings.ToLower(name), suffix) {
		return name
	}

	return name + suffix
}
