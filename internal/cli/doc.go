// Package cli defines the Cobra command tree for the agentlint CLI. Each
// file in this package registers one top-level command (validate, new,
// config, version) with the root command. Command implementations delegate
// to internal packages for the validation logic and only handle flag
// parsing, I/O formatting, and the exit-code mapping.
package cli
