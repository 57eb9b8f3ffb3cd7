// Package packager runs the provisioned packaging tool against an
// assembled AppDir to emit the final single-file artifact.
//
// On success the intermediate layout is discarded; on failure it is kept
// so the operator can inspect what the tool rejected.
package packager
