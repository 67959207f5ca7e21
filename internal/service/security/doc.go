// Package security implements the alarm decision engine of the controller.
//
// The engine owns no state. It reads and writes the arming status, alarm
// status and sensor roster through a repository, asks a vision classifier
// about camera images, and broadcasts every observable change to registered
// status listeners. Each operation resolves the resulting alarm status fully
// before returning, with at most one alarm transition per call.
package security
