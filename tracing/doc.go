// Package tracing is a thin wrapper around OpenTelemetry so the rest of the
// code base can emit spans without importing the upstream packages directly.
// Applications that do not initialise a provider get no-op spans at
// negligible cost.
package tracing
