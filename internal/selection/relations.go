package selection

import (
	"github.com/roach88/subsel/internal/ir"
	"github.com/roach88/subsel/internal/queryir"
)

// Relation tables.
const (
	episodeTable     = "ep_subject_episode_t"
	eventTable       = "ep_events_t"
	kitTable         = "tk_items_t"
	testTable        = "external_tests_t"
	appointmentTable = "appointment_t"
	addressTable     = "sd_address_t"
	orgTable         = "org"
	lynchTable       = "lynch_diagnosis_t"
)

// temporaryAddressType is the address_type of a temporary address.
const temporaryAddressType = 13043

var (
	relLatestEpisode    = queryir.Relation{Name: "latest episode", Alias: "ep"}
	relTemporaryAddress = queryir.Relation{Name: "temporary address", Alias: "adr"}
	relGPPractice       = queryir.Relation{Name: "gp practice", Alias: "gp"}
	relGPPracticeCentre = queryir.Relation{Name: "gp practice screening centre", Alias: "gpsc"}
	relHub              = queryir.Relation{Name: "hub", Alias: "hub"}
	relScreeningCentre  = queryir.Relation{Name: "screening centre", Alias: "sc"}
	relKit              = queryir.Relation{Name: "test kit", Alias: "tk"}
	relAppointment      = queryir.Relation{Name: "appointment", Alias: "ap"}
	relLynchDiagnosis   = queryir.Relation{Name: "lynch diagnosis", Alias: "ld"}
)

func relDiagnosticTest(ordinal int) queryir.Relation {
	return queryir.Relation{Name: "diagnostic test", Ordinal: ordinal, Alias: "xt"}
}

func relTestDataset(ordinal int) queryir.Relation {
	return queryir.Relation{Name: "diagnostic test dataset", Ordinal: ordinal, Alias: "dsc"}
}

// latestEpisode joins the subject's most recent episode. The join is outer
// so that "latest episode type: null" can select subjects with no episode.
func (s *State) latestEpisode() string {
	return s.sel.Joins.Ensure(relLatestEpisode, func(alias string) queryir.Join {
		inner := s.sel.Joins.Reserve(alias + "x")
		return queryir.Join{
			Kind:  queryir.LeftJoin,
			Table: episodeTable,
			On: []queryir.Predicate{
				queryir.Eq(queryir.Col(alias, "screening_subject_id"), s.subject("screening_subject_id")),
				queryir.Eq(queryir.Col(alias, "subject_epis_id"), queryir.Sub{
					Column: queryir.Expr{Template: "MAX(?)", Args: []queryir.Operand{queryir.Col(inner, "subject_epis_id")}},
					Table:  episodeTable,
					Alias:  inner,
					Where:  []queryir.Predicate{queryir.Eq(queryir.Col(inner, "screening_subject_id"), s.subject("screening_subject_id"))},
				}),
			},
		}
	})
}

func (s *State) temporaryAddress() string {
	return s.sel.Joins.Ensure(relTemporaryAddress, func(alias string) queryir.Join {
		return queryir.Join{
			Kind:  queryir.LeftJoin,
			Table: addressTable,
			On: []queryir.Predicate{
				queryir.Eq(queryir.Col(alias, "contact_id"), s.contact("contact_id")),
				queryir.Eq(queryir.Col(alias, "address_type"), queryir.Int(temporaryAddressType)),
				queryir.IsNull{Operand: queryir.Col(alias, "effective_from"), Not: true},
			},
		}
	})
}

// gpPractice joins the subject's GP practice organisation. The join is outer
// so practice-level null checks can see subjects without a practice.
func (s *State) gpPractice() string {
	return s.sel.Joins.Ensure(relGPPractice, func(alias string) queryir.Join {
		return queryir.Join{
			Kind:  queryir.LeftJoin,
			Table: orgTable,
			On:    []queryir.Predicate{queryir.Eq(queryir.Col(alias, "org_id"), s.contact("gp_practice_id"))},
		}
	})
}

func (s *State) gpPracticeCentre() string {
	gp := s.gpPractice()
	return s.sel.Joins.Ensure(relGPPracticeCentre, func(alias string) queryir.Join {
		return queryir.Join{
			Table: orgTable,
			On:    []queryir.Predicate{queryir.Eq(queryir.Col(alias, "org_id"), queryir.Col(gp, "parent_org_id"))},
		}
	})
}

func (s *State) hub() string {
	return s.sel.Joins.Ensure(relHub, func(alias string) queryir.Join {
		return queryir.Join{
			Table: orgTable,
			On:    []queryir.Predicate{queryir.Eq(queryir.Col(alias, "org_id"), s.contact("hub_id"))},
		}
	})
}

func (s *State) screeningCentre() string {
	return s.sel.Joins.Ensure(relScreeningCentre, func(alias string) queryir.Join {
		return queryir.Join{
			Kind:  queryir.LeftJoin,
			Table: orgTable,
			On:    []queryir.Predicate{queryir.Eq(queryir.Col(alias, "org_id"), s.subject("screening_centre_id"))},
		}
	})
}

func (s *State) lynchDiagnosis() string {
	return s.sel.Joins.Ensure(relLynchDiagnosis, func(alias string) queryir.Join {
		return queryir.Join{
			Kind:  queryir.LeftJoin,
			Table: lynchTable,
			On: []queryir.Predicate{
				queryir.Eq(queryir.Col(alias, "screening_subject_id"), s.subject("screening_subject_id")),
				queryir.Eq(queryir.Col(alias, "active_flag"), flagLit(true)),
			},
		}
	})
}

// scope correlates a row of a subquery, aliased inner, with the outer row.
type scope func(inner string) []queryir.Predicate

// latestOf builds "<alias>.<idCol> = (SELECT <agg>(<inner>.<idCol>) FROM
// <table> <inner> WHERE <scope>)".
func (s *State) latestOf(alias, table, idCol, agg string, where scope) queryir.Predicate {
	inner := s.sel.Joins.Reserve(alias + "x")
	return queryir.Eq(queryir.Col(alias, idCol), queryir.Sub{
		Column: queryir.Expr{Template: agg + "(?)", Args: []queryir.Operand{queryir.Col(inner, idCol)}},
		Table:  table,
		Alias:  inner,
		Where:  where(inner),
	})
}

// onlyOne builds NOT EXISTS another row of table in the same scope.
func (s *State) onlyOne(alias, table, idCol string, where scope) queryir.Predicate {
	return s.exists(true, table, alias+"o", func(other string) []queryir.Predicate {
		return append(where(other), queryir.Cmp(queryir.Col(other, idCol), ir.NE, queryir.Col(alias, idCol)))
	})
}
