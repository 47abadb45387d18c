// Package store keeps a local SQLite snapshot of the reference-data
// identifiers that vocabulary labels resolve to.
//
// The built-in vocabulary carries the identifiers of a standard install.
// Sites whose valid_values differ import their own rows here, and the
// compiler applies them as overrides on top of the built-in set.
//
// # Determinism
//
//   - Reads order by domain, label COLLATE BINARY so that loading the same
//     snapshot always yields the same override list.
//   - Imports are numbered by a seq counter, never by wall time.
//   - Checksum hashes the canonical JSON of the override list, so two
//     snapshots with the same rows have the same checksum.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
