// SPDX-License-Identifier: MPL-2.0

// Package plumbfile defines the schema, compilation, and validation for
// plumbfile command definitions.
//
// A plumbfile declares composite commands: each command names its CLI
// surface (arguments and options) and an ordered list of stages, where
// every stage delegates to an existing base command with optional
// parameter renames and literal overrides. The package turns raw
// configuration (CUE or TOML) into immutable CommandSpec values,
// collecting every validation error in a single pass rather than
// stopping at the first problem.
//
// Compilation is synchronous and side-effect-free: compiling the same
// configuration twice yields structurally equal results. Registration
// and stage resolution against the command registry live in
// internal/registry; execution of the resolved pipeline is not handled
// here.
package plumbfile
