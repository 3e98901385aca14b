// Package config loads, normalizes, and validates mkvrobot configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MKVROBOT_DEVICE. The Config type centralizes every knob the CLI, the MakeMKV
// client, the scan store and the disc watcher need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
