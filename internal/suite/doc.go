// Package suite loads named selections from CUE and YAML files.
//
// Both formats share one shape: a top-level "selection" struct whose fields
// are selection names, each carrying optional rows, user and subject
// context, and its criteria.
//
//	selection: "fobt due": {
//		rows: 10
//		criteria: {
//			"screening status":  "Call"
//			"screening due date": "<= today"
//		}
//	}
//
// Criteria are kept in file order, since order decides join order in the
// compiled text. A key that must appear more than once ("which diagnostic
// test") is written with the list form, one single-field struct per entry:
//
//	criteria: [
//		{"which diagnostic test": "latest test in latest episode"},
//		{"which diagnostic test": "earlier test in latest episode"},
//	]
package suite
