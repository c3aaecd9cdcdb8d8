// Command vidforge generates short videos from text prompts, degrading
// through a chain of synthesis strategies as optional tooling is missing.
package main
