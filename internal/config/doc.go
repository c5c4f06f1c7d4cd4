// SPDX-License-Identifier: MPL-2.0

// Package config loads and validates the plumb application
// configuration. Configuration lives in a CUE file validated against an
// embedded schema; values merge into viper on top of built-in defaults,
// so a missing config file is never an error.
package config
