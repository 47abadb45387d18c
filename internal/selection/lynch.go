package selection

import (
	"github.com/roach88/subsel/internal/criteria"
	"github.com/roach88/subsel/internal/ir"
	"github.com/roach88/subsel/internal/queryir"
)

func lynchHandlers() map[criteria.Key]Handler {
	return map[criteria.Key]Handler{
		criteria.SubjectHasLynchDiagnosis: subjectHasLynchDiagnosis,
		criteria.LynchDiagnosisDate: func(s *State, c criteria.Compiled) error {
			return matchDate(s, c, queryir.Col(s.lynchDiagnosis(), "diagnosis_date"), nil)
		},
		criteria.LynchLastColonoscopyDate: func(s *State, c criteria.Compiled) error {
			return matchDate(s, c, queryir.Col(s.lynchDiagnosis(), "last_colonoscopy_date"), nil)
		},
		criteria.LynchIncidentEpisode: lynchIncidentEpisode,
		criteria.LynchDiagnosisType: func(s *State, c criteria.Compiled) error {
			return matchDomain(s, c, s.vocab.LynchDiagnosisType, queryir.Col(s.lynchDiagnosis(), "lynch_diagnosis_type_id"), nil)
		},
	}
}

func subjectHasLynchDiagnosis(s *State, c criteria.Compiled) error {
	return matchExists(s, c, lynchTable, "lds", func(a string) []queryir.Predicate {
		return []queryir.Predicate{s.bySubject(a), queryir.Eq(queryir.Col(a, "active_flag"), flagLit(true))}
	})
}

// lynchIncidentEpisode places the subject's lynch incident relative to the
// latest episode.
func lynchIncidentEpisode(s *State, c criteria.Compiled) error {
	state, err := lookupCode(c, s.vocab.LynchIncident)
	if err != nil {
		return err
	}
	col := s.subject("lynch_incident_episode_id")
	switch state {
	case "NONE":
		s.where(queryir.IsNull{Operand: col})
	case "ANY":
		s.where(queryir.IsNull{Operand: col, Not: true})
	case "LATEST":
		s.where(queryir.Eq(col, queryir.Col(s.latestEpisode(), "subject_epis_id")))
	case "EARLIER":
		s.where(queryir.Cmp(col, ir.LT, queryir.Col(s.latestEpisode(), "subject_epis_id")))
	}
	return nil
}
