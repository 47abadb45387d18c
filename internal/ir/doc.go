// Package ir holds the foundational types shared by every stage of the
// subject selection compiler: raw criteria, comparators, resolved values,
// caller context and the compiled query.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Bind parameters are scalars only (string or int64), never floats
//   - Compiled output is a pure function of its inputs
//   - Every compile failure is a *CriterionError naming the criterion at fault
package ir
