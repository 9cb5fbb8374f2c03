// Package config loads, normalizes, and validates livesplit configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Analysis section groups every tuning
// constant of the detection and refinement passes into one value that is
// handed to each component, so passes can be exercised with synthetic
// parameters in tests.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
