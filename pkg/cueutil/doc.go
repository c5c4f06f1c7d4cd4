// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// It consolidates the schema-driven parsing pattern used by the
// plumbfile and config packages:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with the schema
//  3. Validate and decode into a Go value
//
// Decoding into map[string]any is the common case here: the plumbfile
// compiler applies its own field-level default/required policy on the
// raw mapping, so CUE is responsible for shape and scalar kinds while
// the compiler owns requiredness and error accumulation.
package cueutil
