// Package vocab resolves human labels from closed vocabularies to the
// identifiers stored in the screening database.
//
// Each vocabulary is a Domain built once when the package initializes.
// Resolution is case-insensitive and ignores surrounding and repeated
// whitespace. The symbolic labels "null", "not null" and "unchanged" resolve
// to sentinels only on domains that enable them.
//
// The identifiers in Default mirror the reference data of a standard
// installation. Sites whose lookup tables differ load a snapshot into the
// vocabulary store and apply it with Set.WithOverrides.
package vocab
