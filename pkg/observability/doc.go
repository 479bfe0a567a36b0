/*
Package observability provides tools for monitoring simulation runs.

Everything here plugs into a machine through domain.LifecycleHooks: Metrics
exports Prometheus counters for executed steps and halted runs, and Recorder
keeps the step trace of a run for later inspection.
*/
package observability
