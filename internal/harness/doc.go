// Package harness runs conformance scenarios against the selection compiler.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: fobt_abnormal_latest_kit
//	description: "Latest kit in the latest FOBT episode was abnormal"
//	rows: 5
//	criteria:
//	  - latest episode type: FOBT
//	  - which test kit: latest kit in latest episode
//	  - kit result: Abnormal
//	vocabulary:
//	  - { domain: episode type, label: FOBT, id: 11350 }
//	assertions:
//	  - type: contains
//	    fragment: "INNER JOIN tk_items_t tk"
//	  - type: param
//	    name: p1
//	    value: "11350"
//	  - type: join_count
//	    table: tk_items_t
//	    count: 1
//
// Instead of inline criteria a scenario may name a selection file and the
// selection within it:
//
//	file: selections/fobt.cue
//	selection: fobt due
//
// # Assertion Types
//
//   - error: compilation fails with the given kind (and key, if set)
//   - contains: the query text contains fragment
//   - not_contains: the query text does not contain fragment
//   - param: bind name has value (compared as text)
//   - param_count: the query has exactly count binds
//   - join_count: table is joined exactly count times
//
// # Deterministic Testing
//
// Every scenario compiles in isolation. Vocabulary rows are imported into a
// fresh in-memory store, so overrides never leak between scenarios, and the
// compiler itself is pure. Identical scenarios produce identical queries,
// which RunWithGolden compares against testdata/golden.
package harness
