// Package provisioner fetches the external packaging tool on first use and
// caches it in the work directory for later runs.
//
// An already-present tool is trusted without content re-validation, so
// repeated runs never touch the network.
package provisioner
