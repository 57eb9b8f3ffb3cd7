// Package manifest persists a YAML record of the last successful build:
// artifact name, checksum, packager version and provenance. The record is
// informational; the pipeline never reads it to make decisions.
package manifest
