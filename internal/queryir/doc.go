// Package queryir is the fragment representation the selection compiler
// builds before any SQL text exists.
//
// Handlers never concatenate SQL. They append Predicates to a Select and ask
// its Joins registry for the alias of every relation they reference. The
// querysql package is the only place that turns these nodes into text, so
// bind numbering and clause ordering are decided in exactly one spot.
//
// SEALED INTERFACES:
//
// Predicate and Operand are sealed with marker methods. Renderers can type
// switch exhaustively:
//
//	switch p := pred.(type) {
//	case Compare:
//	case IsNull:
//	case Exists:
//	case In:
//	case And:
//	case Or:
//	case Raw:
//	}
//
// JOIN REGISTRY:
//
// A relation is identified by its name and an optional ordinal, so the
// second diagnostic test of an episode is a distinct relation from the
// first. Joins.Ensure is idempotent per identity: the first call allocates
// an alias and records the join, later calls return that alias and change
// nothing. Joins render in first-requested order.
//
// VALUES:
//
// Caller-supplied strings always travel as Bind operands. Lit is reserved
// for text the compiler itself produced (SQL keywords, integers it parsed).
package queryir
