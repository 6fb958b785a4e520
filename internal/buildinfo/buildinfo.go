// Package buildinfo holds version data set with -ldflags -X for release
// builds. The values are empty for local builds.
package buildinfo

var (
	Version = ""
	Commit  = ""
	Date    = ""
)
