// Package config loads, normalizes, and validates sortify configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads an optional TOML file from ~/.config/sortify or the
// working directory. File values act as flag defaults; explicit command-line
// flags always take precedence.
package config
