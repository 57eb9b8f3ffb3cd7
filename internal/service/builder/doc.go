// Package builder orchestrates the packaging pipeline: tool provisioning,
// AppDir assembly with binary optimization, artifact generation, and the
// build manifest record. The pipeline is single-threaded and fail-fast;
// the only retry anywhere is the optimizer's compression fallback chain.
package builder
