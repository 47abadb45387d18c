// Package dates interprets the date expressions used in selection criteria.
//
// Rules are tried in order and the first match wins:
//
//  1. absolute dates, yyyy-mm-dd or dd/mm/yyyy
//  2. "<n> <day|week|month|year>[s] ago|later"
//  3. "<n> birthday"
//  4. "last birthday"
//  5. the symbolic catalogue (today, null, programme milestones, ...)
//
// Anything else is UNPARSEABLE_DATE. Relative expressions are anchored on
// TRUNC(SYSDATE) in the generated SQL, so compiled text never depends on the
// wall clock; Evaluate computes the same date in Go for tests and --explain.
package dates
