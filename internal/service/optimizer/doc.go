// Package optimizer reduces the on-disk size of the packaged binary.
//
// It strips symbol/debug information and then compresses the executable,
// trying an ordered chain of compression strategies until one succeeds.
// Failure of the whole chain aborts the pipeline; optimization is never
// silently skipped.
package optimizer
