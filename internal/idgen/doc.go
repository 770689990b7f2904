// Package idgen produces opaque identifiers for kernel boots and event
// messages. Tests may replace NewFunc to get stable ids.
package idgen
