// Package appdir assembles the canonical AppDir layout consumed by the
// packaging tool: the optimized binary under usr/bin, a desktop entry, an
// icon that is guaranteed to exist, and an executable AppRun launcher.
//
// Assembly always starts from a clean slate: any stale layout or output
// artifact from a previous run is removed first.
package appdir
