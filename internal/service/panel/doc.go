// Package panel is the non-graphical control panel behind the catpoint CLI.
//
// It owns the shared lifecycle of every command: load configuration, open the
// SQLite-backed repository, construct the decision engine with the configured
// classifier and attach the logging listener. The operation methods are thin
// wrappers that resolve user input (sensor names, image files) and hand off
// to the engine.
package panel
