// Package config defines runtime settings used by the catpoint commands and
// provides helpers to load, validate and save them in YAML format.
//
// The Config type holds the SQLite database path, logging level, classifier
// confidence threshold and monitor tuning.
package config
