// Package agent implements the structural contract for agent plugin
// directories. It holds the ordered rule tables (required rules fail an
// agent, recommended rules only warn), the metadata.json parser with its
// embedded JSON Schema, and the inspector that evaluates every rule for a
// single candidate directory. All checks are read-only; rules never touch
// the filesystem beyond reads through the injected afero.Fs.
package agent
