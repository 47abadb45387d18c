// Package criteria defines the catalogue of selection criteria keys and the
// parsing of raw criterion values.
//
// Every key has a canonical description (the label callers write), an
// allowMultipleValues flag and an allowNegation flag. The catalogue is a
// static table; the Registry built from it at package init resolves labels
// case-insensitively without rebuilding anything on lookup.
//
// Value parsing strips, in order:
//
//	#...            comment: the whole criterion is skipped
//	NOT:            negation: comparator forced to NE
//	>= <= > <       comparator symbol
//	more than       comparator phrase (GT)
//	less than       comparator phrase (LT)
//
// Only one comparator token is consumed. Symbols are tried before phrases,
// and a second comparator left at the start of the literal is rejected.
package criteria
