// SPDX-License-Identifier: MPL-2.0

// Package registry holds the command registry and the stage parameter
// resolution logic.
//
// The registry maps command names to their canonical parameter sets:
// built-in base commands plus every compiled plumbfile command. Stage
// resolution reconciles a composite command's stage declarations with
// the referenced base command's parameters: renames are applied first,
// literal overrides replace defaults second, and everything untouched
// keeps the base command's own default. Resolution happens once per
// command registration; only inject-value binding happens per
// invocation.
package registry
