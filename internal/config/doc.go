// Package config loads, normalizes, and validates moneypress configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// OPENAI_API_KEY. The Config type centralizes every knob the pipeline and CLI
// need, so site directories and external service credentials are discovered
// in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
// Missing optional credentials are deliberately NOT validation errors; the
// preflight package reports them as warnings and the affected features
// degrade instead.
package config
