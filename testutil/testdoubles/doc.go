// Package testdoubles provides spies and fakes for testing the record store, the lending
// handlers, and their observability instrumentation without a database or telemetry backend.
package testdoubles
