package journal

import "time"

// Entry records the last successful build of a script
type Entry struct {
	// Name of the script
	Name string `json:"name"`

	// Hash is the source digest the artifact was built from
	Hash string `json:"hash"`

	// BuildKind is the build-type used
	BuildKind string `json:"build_kind"`

	// Timestamp when the build finished
	Timestamp time.Time `json:"timestamp"`

	// Duration of the build tool invocation
	Duration time.Duration `json:"duration"`

	// Forced is set when the build was requested with -f
	Forced bool `json:"forced"`
}
