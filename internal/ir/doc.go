// Package ir provides the language-agnostic intermediate representation
// of declared types consumed by the emitters.
//
// This package contains type definitions and validation only. All other
// internal packages import ir; ir imports nothing internal. This ensures
// IR remains the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Declaration kinds and enum-variant kinds are sealed interfaces with
//     marker methods, enabling exhaustive type switches in backends
//   - Nodes are built once per module by the definition compiler and are
//     read-only for the duration of emission
//   - The 64-bit numeric kinds exist in the vocabulary but must never
//     survive formatting; backends reject them instead of truncating
package ir
