// Package security implements persistence for the security system state:
// the current arming and alarm statuses plus the sensor roster.
//
// The Repository interface is what the engine depends on. Two implementations
// are provided: MemoryRepository for tests and ephemeral runs, and
// SQLiteRepository for durable storage shared between the panel commands and
// the monitor process.
package security
