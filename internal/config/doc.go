// Package config loads, normalizes, and validates chorale configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// PAGE_BREAK_EVERY and FONT_FAMILY for keys the file omits. The Config type
// centralizes every rendering knob the generators need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
