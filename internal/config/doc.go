// Package config defines the packaging settings used by the pipeline and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the application name, the input paths, the cached
// packaging tool location and the output artifact name. Validate fills
// defaults so a zero configuration with only an application name is usable.
package config
