// Package selection compiles ordered selection criteria into one Oracle
// query over screening subjects.
//
// Compile runs a fixed sequence of stages:
//
//	INIT -> SELECT_BUILT -> FROM_BUILT -> WHERE_OPENED
//	     -> { PARSE -> RESOLVE_KEY -> VALIDATE -> DISPATCH } per criterion
//	     -> LIMIT_APPENDED -> ASSEMBLED
//
// Every criterion is handled by exactly one Handler, looked up by key. A
// handler mutates only the State of the current call: it asks the State for
// the aliases of the relations it needs and appends predicates. The first
// error aborts the compile; nothing partial is returned.
//
// Criteria order changes the text (join order, alias numbering) but never
// the rows selected.
package selection
