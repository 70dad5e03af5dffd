// Package version holds the build-time version stamp, set via
// -ldflags "-X github.com/flashcatcloud/thriftmux/pkg/version.Version=...".
package version

var Version = "not specified"
