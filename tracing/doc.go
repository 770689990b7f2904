// Package tracing wraps OpenTelemetry so that the kernel can emit one span
// per system call without importing the upstream packages everywhere.
// Without Init the global no-op provider is used and spans cost nothing.
package tracing
