// Package version exposes build metadata (semantic version, commit, build
// time) injected via ldflags, and a cobra subcommand to print it.
// The packager also stamps the version into the build manifest it records
// after a successful run.
package version
