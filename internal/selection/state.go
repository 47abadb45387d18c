package selection

import (
	"github.com/roach88/subsel/internal/criteria"
	"github.com/roach88/subsel/internal/dates"
	"github.com/roach88/subsel/internal/ir"
	"github.com/roach88/subsel/internal/queryir"
	"github.com/roach88/subsel/internal/vocab"
)

// Stage is a step of the compile state machine.
type Stage int

const (
	StageInit Stage = iota
	StageSelectBuilt
	StageFromBuilt
	StageWhereOpened
	StageParse
	StageResolveKey
	StageValidate
	StageDispatch
	StageLimitAppended
	StageAssembled
)

var stageNames = [...]string{
	StageInit:          "INIT",
	StageSelectBuilt:   "SELECT_BUILT",
	StageFromBuilt:     "FROM_BUILT",
	StageWhereOpened:   "WHERE_OPENED",
	StageParse:         "PARSE",
	StageResolveKey:    "RESOLVE_KEY",
	StageValidate:      "VALIDATE",
	StageDispatch:      "DISPATCH",
	StageLimitAppended: "LIMIT_APPENDED",
	StageAssembled:     "ASSEMBLED",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "UNKNOWN"
	}
	return stageNames[s]
}

// Base query shape.
const (
	subjectTable = "screening_subject_t"
	subjectAlias = "ss"
	contactTable = "sd_contact_t"
	contactAlias = "c"
)

var projection = []queryir.Projection{
	{Value: queryir.Col(subjectAlias, "screening_subject_id")},
	{Value: queryir.Col(subjectAlias, "subject_nhs_number")},
	{Value: queryir.Col(contactAlias, "contact_id")},
	{Value: queryir.Col(contactAlias, "surname")},
	{Value: queryir.Col(contactAlias, "forenames")},
	{Value: queryir.Col(contactAlias, "date_of_birth")},
	{Value: queryir.Col(contactAlias, "date_of_death")},
	{Value: queryir.Col(contactAlias, "gender_code")},
	{Value: queryir.Col(subjectAlias, "screening_status_id")},
	{Value: queryir.Col(subjectAlias, "screening_due_date")},
	{Value: queryir.Col(subjectAlias, "surveillance_screen_due_date")},
	{Value: queryir.Col(subjectAlias, "lynch_screening_due_date")},
}

// State is the accumulator of one compile call. It is never shared.
type State struct {
	sel   *queryir.Select
	opts  Options
	vocab *vocab.Set
	dates *dates.Resolver
	stage Stage

	// seen counts occurrences per key for arity checks.
	seen map[criteria.Key]int
	// testOrdinal is the current diagnostic test; zero before the first.
	testOrdinal int

	// Selectors named anywhere in the criteria, found before dispatch so a
	// relation joined early still honours its "which" criterion.
	kitSelector         string
	appointmentSelector string
	firstTestSelector   string
}

// newState builds the base query: INIT through WHERE_OPENED.
func newState(c *Compiler, opts Options) *State {
	s := &State{
		opts:  opts,
		vocab: c.vocab,
		dates: c.dates,
		seen:  make(map[criteria.Key]int),

		kitSelector:         anySelector,
		appointmentSelector: anySelector,
		firstTestSelector:   anySelector,
	}

	s.sel = queryir.NewSelect(queryir.Table{Name: subjectTable, Alias: subjectAlias})
	s.sel.Columns = append(s.sel.Columns, projection...)
	s.advance(StageSelectBuilt)

	s.sel.Joins.Ensure(queryir.Relation{Name: "contact", Alias: contactAlias}, func(alias string) queryir.Join {
		return queryir.Join{
			Table: contactTable,
			On:    []queryir.Predicate{queryir.Eq(queryir.Col(alias, "nhs_number"), s.subject("subject_nhs_number"))},
		}
	})
	s.advance(StageFromBuilt)

	s.sel.AndWhere(queryir.Raw{SQL: "1=1"})
	s.advance(StageWhereOpened)
	return s
}

func (s *State) advance(to Stage) {
	s.stage = to
}

// where appends predicates to the WHERE clause.
func (s *State) where(preds ...queryir.Predicate) {
	s.sel.AndWhere(preds...)
}

// subject references a screening_subject_t column.
func (s *State) subject(name string) queryir.Column {
	return queryir.Col(subjectAlias, name)
}

// contact references a sd_contact_t column.
func (s *State) contact(name string) queryir.Column {
	return queryir.Col(contactAlias, name)
}

// dob is the date-of-birth column birthday expressions are built on.
func (s *State) dob() queryir.Column {
	return s.contact("date_of_birth")
}

// user returns the caller's user context or MISSING_CONTEXT.
func (s *State) user(what string) (*ir.User, error) {
	if s.opts.User == nil {
		return nil, ir.NewError(ir.ErrMissingContext, "%s needs a user context", what)
	}
	return s.opts.User, nil
}
