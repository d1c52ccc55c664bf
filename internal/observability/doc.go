// Package observability centralizes logging and metrics infrastructure.
//
// Subpackages:
//   - logging: structured logging with slog
//   - metrics: Prometheus counters and gauges for the publishing pipeline
package observability
