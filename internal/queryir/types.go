package queryir

import (
	"strconv"

	"github.com/roach88/subsel/internal/ir"
)

// Operand is a value position inside a predicate.
//
// This is a sealed interface; only types in this package implement it.
type Operand interface {
	operandNode()
}

// Column references a column through a join alias.
type Column struct {
	Alias string
	Name  string
}

func (Column) operandNode() {}

// Col builds a Column.
func Col(alias, name string) Column {
	return Column{Alias: alias, Name: name}
}

// String renders alias.name.
func (c Column) String() string {
	if c.Alias == "" {
		return c.Name
	}
	return c.Alias + "." + c.Name
}

// Bind is a value supplied at execution time. Value must be string or int64.
type Bind struct {
	Value any
}

func (Bind) operandNode() {}

// Lit is SQL text written by the compiler itself. Never put caller input here.
type Lit struct {
	SQL string
}

func (Lit) operandNode() {}

// Int renders an integer the compiler parsed as a literal.
func Int(n int) Lit {
	return Lit{SQL: strconv.Itoa(n)}
}

// Expr is a function-call style expression. Each '?' in Template is
// replaced, in order, by the rendered Args.
//
// Example:
//
//	Expr{Template: "ADD_MONTHS(?, ?)", Args: []Operand{Col("c", "date_of_birth"), Int(12)}}
//
// renders as ADD_MONTHS(c.date_of_birth, 12).
type Expr struct {
	Template string
	Args     []Operand
}

func (Expr) operandNode() {}

// Sub is a scalar subquery operand: (SELECT <Column> FROM <Table> <Alias> WHERE ...).
type Sub struct {
	Column Operand
	Table  string
	Alias  string
	Where  []Predicate
}

func (Sub) operandNode() {}

// Predicate is a boolean condition.
//
// This is a sealed interface; only types in this package implement it.
type Predicate interface {
	predicateNode()
}

// Compare is <Left> <Op> <Right>.
type Compare struct {
	Left  Operand
	Op    ir.Comparator
	Right Operand
}

func (Compare) predicateNode() {}

// Cmp builds a Compare.
func Cmp(left Operand, op ir.Comparator, right Operand) Compare {
	return Compare{Left: left, Op: op, Right: right}
}

// Eq builds an equality Compare.
func Eq(left Operand, right Operand) Compare {
	return Compare{Left: left, Op: ir.EQ, Right: right}
}

// IsNull is <Operand> IS NULL, or IS NOT NULL when Not is set.
type IsNull struct {
	Operand Operand
	Not     bool
}

func (IsNull) predicateNode() {}

// Exists is EXISTS (SELECT 1 FROM <Table> <Alias> WHERE ...), or NOT EXISTS.
type Exists struct {
	Not   bool
	Table string
	Alias string
	Where []Predicate
}

func (Exists) predicateNode() {}

// In is <Left> IN (<Values>), or NOT IN.
type In struct {
	Left   Operand
	Values []Operand
	Not    bool
}

func (In) predicateNode() {}

// And is a conjunction. An empty And renders as 1=1.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// Or is a disjunction, always parenthesized. An empty Or renders as 1=0.
type Or struct {
	Predicates []Predicate
}

func (Or) predicateNode() {}

// Raw is fixed predicate text with no values, e.g. the 1=1 base predicate.
type Raw struct {
	SQL string
}

func (Raw) predicateNode() {}

// OrderTerm is one ORDER BY entry.
type OrderTerm struct {
	Column Column
	Desc   bool
}

// Projection is one SELECT list entry.
type Projection struct {
	Value Operand
	As    string
}

// JoinKind selects the join operator.
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftJoin
)

// SQL returns the join keyword.
func (k JoinKind) SQL() string {
	if k == LeftJoin {
		return "LEFT OUTER JOIN"
	}
	return "INNER JOIN"
}

// Join is one joined relation.
type Join struct {
	Kind  JoinKind
	Table string
	Alias string
	On    []Predicate
	// OrderBy terms are appended to the query's ORDER BY, in join order.
	OrderBy []OrderTerm
}

// Table is the FROM relation.
type Table struct {
	Name  string
	Alias string
}

// Select accumulates one query. It is created per compile call.
type Select struct {
	Columns []Projection
	From    Table
	Joins   *Joins
	Where   []Predicate
	// Limit is the FETCH FIRST row count; zero omits the clause.
	Limit int
}

// NewSelect starts a query over from. The FROM alias is reserved in the
// join registry so no join can take it.
func NewSelect(from Table) *Select {
	return &Select{
		From:  from,
		Joins: NewJoins(from.Alias),
	}
}

// Project appends a SELECT column.
func (s *Select) Project(value Operand, as string) {
	s.Columns = append(s.Columns, Projection{Value: value, As: as})
}

// AndWhere appends predicates to the WHERE conjunction.
func (s *Select) AndWhere(preds ...Predicate) {
	s.Where = append(s.Where, preds...)
}

// OrderBy returns the join-contributed ORDER BY terms in join order.
func (s *Select) OrderBy() []OrderTerm {
	var terms []OrderTerm
	for _, j := range s.Joins.List() {
		terms = append(terms, j.OrderBy...)
	}
	return terms
}
