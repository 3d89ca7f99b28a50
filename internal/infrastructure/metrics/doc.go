// Package metrics publishes process-wide engine counters via expvar.
package metrics
