// Package config loads, normalizes, and validates vidforge configuration.
//
// Configuration comes from a TOML file (~/.config/vidforge/config.toml or a
// project-local vidforge.toml), falling back to compiled defaults for every
// field. Tool binaries may additionally be overridden through environment
// variables so degraded environments can point at alternates without editing
// the file.
//
// The package deliberately owns every default the generator uses (geometry,
// durations, tone frequency, bitrates, timeouts) so strategies receive their
// parameters from one place instead of scattering literals.
package config
