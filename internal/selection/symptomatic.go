package selection

import (
	"github.com/roach88/subsel/internal/criteria"
	"github.com/roach88/subsel/internal/queryir"
)

const symptomaticTable = "symptomatic_procedure_t"

var relSymptomaticProcedure = queryir.Relation{Name: "symptomatic procedure", Alias: "sym"}

func symptomaticHandlers() map[criteria.Key]Handler {
	return map[criteria.Key]Handler{
		criteria.SubjectHasSymptomaticProcedures: func(s *State, c criteria.Compiled) error {
			return matchExists(s, c, symptomaticTable, "syms", func(a string) []queryir.Predicate {
				return []queryir.Predicate{s.bySubject(a)}
			})
		},
		criteria.SymptomaticProcedureResult: func(s *State, c criteria.Compiled) error {
			return matchDomain(s, c, s.vocab.SymptomaticResult, queryir.Col(s.symptomaticProcedure(), "result_id"), nil)
		},
		criteria.SymptomaticProcedureDate: func(s *State, c criteria.Compiled) error {
			return matchDate(s, c, queryir.Col(s.symptomaticProcedure(), "procedure_date"), nil)
		},
	}
}

// symptomaticProcedure joins the subject's latest symptomatic procedure.
func (s *State) symptomaticProcedure() string {
	return s.sel.Joins.Ensure(relSymptomaticProcedure, func(alias string) queryir.Join {
		return queryir.Join{
			Kind:  queryir.LeftJoin,
			Table: symptomaticTable,
			On: []queryir.Predicate{
				s.bySubject(alias),
				s.latestOf(alias, symptomaticTable, "procedure_id", "MAX", func(a string) []queryir.Predicate {
					return []queryir.Predicate{s.bySubject(a)}
				}),
			},
		}
	})
}
