// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: a guarded,
// validated command object and a handler that loads aggregates from the
// repositories, drives domain transitions, persists, and publishes domain
// events.
package commands
