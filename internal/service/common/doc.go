// Package common holds helpers shared by several pipeline stages.
//
// It provides a CommandRunner abstraction over external tool invocation,
// file checksum utilities, and detection of the current system actor
// (hostname/username) recorded in the build manifest.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
