// Package config defines launch options, their defaults, and the
// optional profile file that supplies per-team values.
//
// Precedence: explicit flags, then profile file, then built-in
// defaults. Validation runs before any remote side effect.
package config
