package selection

import (
	"github.com/roach88/subsel/internal/criteria"
	"github.com/roach88/subsel/internal/dates"
	"github.com/roach88/subsel/internal/ir"
	"github.com/roach88/subsel/internal/queryir"
	"github.com/roach88/subsel/internal/vocab"
)

// Dataset tables checked by the "latest episode has ... dataset" keys.
const (
	cancerAuditDataset           = "ds_cancer_audit_t"
	colonoscopyAssessmentDataset = "ds_patient_assessment_t"
	mdtDataset                   = "ds_mdt_t"
	investigationDataset         = "ds_colonoscopy_t"
	pathologyDataset             = "ds_pathology_t"
	radiologyDataset             = "ds_radiology_t"
)

// referralWindowDays bounds the "within the last 28 days" referral states.
const referralWindowDays = 28

func episodeHandlers() map[criteria.Key]Handler {
	return map[criteria.Key]Handler{
		criteria.SubjectHasEpisodes:      subjectHasEpisodes,
		criteria.SubjectHasAnOpenEpisode: subjectHasOpenEpisode,
		criteria.SubjectHasFOBTEpisodes:  episodesOfType("FOBT"),

		criteria.LatestEpisodeType:                    episodeDomain("episode_type_id", func(v *vocab.Set) *vocab.Domain[int64] { return v.EpisodeType }),
		criteria.LatestEpisodeSubType:                 episodeDomain("episode_subtype_id", func(v *vocab.Set) *vocab.Domain[int64] { return v.EpisodeSubType }),
		criteria.LatestEpisodeStatus:                  episodeDomain("episode_status_id", func(v *vocab.Set) *vocab.Domain[int64] { return v.EpisodeStatus }),
		criteria.LatestEpisodeStatusReason:            episodeDomain("episode_status_reason_id", func(v *vocab.Set) *vocab.Domain[int64] { return v.EpisodeStatusReason }),
		criteria.LatestEpisodeRecallCalculationMethod: episodeDomain("recall_calculation_method_id", func(v *vocab.Set) *vocab.Domain[int64] { return v.RecallCalculationMethod }),
		criteria.LatestEpisodeRecallEpisodeType:       episodeDomain("recall_episode_type_id", func(v *vocab.Set) *vocab.Domain[int64] { return v.EpisodeType }),
		criteria.LatestEpisodeDiagnosisDateReason:     episodeDomain("diagnosis_date_reason_id", func(v *vocab.Set) *vocab.Domain[int64] { return v.DiagnosisDateReason }),
		criteria.LatestEpisodeAccumulatedResult:       episodeDomain("accumulated_result_id", func(v *vocab.Set) *vocab.Domain[int64] { return v.AccumulatedResult }),
		criteria.LatestEventStatus:                    episodeDomain("latest_event_status_id", func(v *vocab.Set) *vocab.Domain[int64] { return v.EventStatus }),

		criteria.LatestEpisodeStarted: episodeDate("episode_start_date"),
		criteria.LatestEpisodeEnded:   episodeDate("episode_end_date"),

		criteria.LatestEpisodeHasReferralDate:         latestEpisodeReferralDate,
		criteria.LatestEpisodeHasDiagnosisDate:        latestEpisodeDiagnosisDate,
		criteria.LatestEpisodeCompletedSatisfactorily: latestEpisodeCompleted,

		criteria.LatestEpisodeHasCancerAuditDataset:           episodeDataset(cancerAuditDataset, "cad"),
		criteria.LatestEpisodeHasColonoscopyAssessmentDataset: episodeDataset(colonoscopyAssessmentDataset, "cas"),
		criteria.LatestEpisodeHasMDTDataset:                   episodeDataset(mdtDataset, "mdt"),
		criteria.LatestEpisodeHasSignificantKitResult:         latestEpisodeSignificantKit,

		criteria.LatestEpisodeIncludesEventCode:   latestEpisodeIncludesEventCode,
		criteria.LatestEpisodeIncludesEventStatus: latestEpisodeIncludesEventStatus,
		criteria.SubjectHasEventStatus:            subjectEvent(false, "event_status_id", func(v *vocab.Set) *vocab.Domain[int64] { return v.EventStatus }),
		criteria.SubjectDoesNotHaveEventStatus:    subjectEvent(true, "event_status_id", func(v *vocab.Set) *vocab.Domain[int64] { return v.EventStatus }),
		criteria.LatestEpisodeKitClass:            latestEpisodeKitClass,
		criteria.LatestEpisodeHasDiagnosticTest:   latestEpisodeHasDiagnosticTest,

		criteria.ScreeningReferralType:           episodeDomain("screening_referral_type_id", func(v *vocab.Set) *vocab.Domain[int64] { return v.ScreeningReferralType }),
		criteria.LatestEpisodeReferralDate:       episodeDate("referral_date"),
		criteria.LatestEpisodeDiagnosisDate:      episodeDate("diagnosis_date"),
		criteria.LatestEpisodeStatusDateOfChange: episodeDate("episode_status_change_date"),

		criteria.LatestEpisodeHasInvestigationDataset: episodeDataset(investigationDataset, "inv"),
		criteria.LatestEpisodeHasPathologyDataset:     episodeDataset(pathologyDataset, "pth"),
		criteria.LatestEpisodeHasRadiologyDataset:     episodeDataset(radiologyDataset, "rad"),
		criteria.LatestInvestigationDataset:           latestInvestigationDataset,

		criteria.SubjectHasClosedEpisodes:       subjectHasClosedEpisodes,
		criteria.SubjectHasSurveillanceEpisodes: episodesOfType("Surveillance"),
		criteria.SubjectHasLynchEpisodes:        episodesOfType("Lynch Surveillance"),
		criteria.SubjectHasBowelScopeEpisodes:   episodesOfType("Bowel Scope"),
		criteria.SubjectHasEventCode:            subjectEvent(false, "event_code_id", func(v *vocab.Set) *vocab.Domain[int64] { return v.EventCode }),
		criteria.SubjectDoesNotHaveEventCode:    subjectEvent(true, "event_code_id", func(v *vocab.Set) *vocab.Domain[int64] { return v.EventCode }),
	}
}

// bySubject correlates a subquery row with the outer subject.
func (s *State) bySubject(alias string) queryir.Predicate {
	return queryir.Eq(queryir.Col(alias, "screening_subject_id"), s.subject("screening_subject_id"))
}

// byEpisode correlates a subquery row with the joined latest episode.
func byEpisode(alias, episode string) queryir.Predicate {
	return queryir.Eq(queryir.Col(alias, "subject_epis_id"), queryir.Col(episode, "subject_epis_id"))
}

// episodeDomain builds a handler for a coded column of the latest episode.
func episodeDomain(column string, domain func(*vocab.Set) *vocab.Domain[int64]) Handler {
	return func(s *State, c criteria.Compiled) error {
		ep := s.latestEpisode()
		return matchDomain(s, c, domain(s.vocab), queryir.Col(ep, column), nil)
	}
}

func episodeDate(column string) Handler {
	return func(s *State, c criteria.Compiled) error {
		ep := s.latestEpisode()
		return matchDate(s, c, queryir.Col(ep, column), nil)
	}
}

// subjectHasEpisodes accepts yes/no or an episode type label.
func subjectHasEpisodes(s *State, c criteria.Compiled) error {
	if _, err := vocab.YesNo(c.Value); err == nil {
		return matchExists(s, c, episodeTable, "eps", func(a string) []queryir.Predicate {
			return []queryir.Predicate{s.bySubject(a)}
		})
	}
	if err := noComparator(c); err != nil {
		return err
	}
	id, ok := s.vocab.EpisodeType.Lookup(c.Value)
	if !ok {
		return ir.UnresolvableDomainValue("yes/no value or episode type", c.Value)
	}
	s.where(s.exists(false, episodeTable, "eps", func(a string) []queryir.Predicate {
		return []queryir.Predicate{s.bySubject(a), queryir.Eq(queryir.Col(a, "episode_type_id"), queryir.Bind{Value: id})}
	}))
	return nil
}

func subjectHasOpenEpisode(s *State, c criteria.Compiled) error {
	return matchExists(s, c, episodeTable, "eps", func(a string) []queryir.Predicate {
		return []queryir.Predicate{s.bySubject(a), queryir.IsNull{Operand: queryir.Col(a, "episode_end_date")}}
	})
}

func subjectHasClosedEpisodes(s *State, c criteria.Compiled) error {
	return matchExists(s, c, episodeTable, "eps", func(a string) []queryir.Predicate {
		return []queryir.Predicate{s.bySubject(a), queryir.IsNull{Operand: queryir.Col(a, "episode_end_date"), Not: true}}
	})
}

// episodesOfType tests for any episode of the named built-in type.
func episodesOfType(label string) Handler {
	return func(s *State, c criteria.Compiled) error {
		id, err := builtin(s.vocab.EpisodeType, label)
		if err != nil {
			return err
		}
		return matchExists(s, c, episodeTable, "eps", func(a string) []queryir.Predicate {
			return []queryir.Predicate{s.bySubject(a), queryir.Eq(queryir.Col(a, "episode_type_id"), queryir.Bind{Value: id})}
		})
	}
}

func latestEpisodeReferralDate(s *State, c criteria.Compiled) error {
	state, err := lookupCode(c, s.vocab.ReferralDateState)
	if err != nil {
		return err
	}
	col := queryir.Col(s.latestEpisode(), "referral_date")
	window := dates.Relative{Days: -referralWindowDays}.Operand(s.dob())
	switch state {
	case "NONE":
		s.where(queryir.IsNull{Operand: col})
	case "ANY":
		s.where(queryir.IsNull{Operand: col, Not: true})
	case "PAST":
		s.where(queryir.Cmp(col, ir.LE, dates.Today))
	case "OVER_28_DAYS":
		s.where(queryir.Cmp(col, ir.LT, window))
	case "WITHIN_28_DAYS":
		s.where(queryir.Cmp(col, ir.GE, window), queryir.Cmp(col, ir.LE, dates.Today))
	}
	return nil
}

func latestEpisodeDiagnosisDate(s *State, c criteria.Compiled) error {
	state, err := lookupCode(c, s.vocab.DiagnosisDateState)
	if err != nil {
		return err
	}
	col := queryir.Col(s.latestEpisode(), "diagnosis_date")
	switch state {
	case "NONE":
		s.where(queryir.IsNull{Operand: col})
	case "ANY":
		s.where(queryir.IsNull{Operand: col, Not: true})
	case "NONE_WITH_DEATH":
		s.where(queryir.IsNull{Operand: col}, queryir.IsNull{Operand: s.contact("date_of_death"), Not: true})
	}
	return nil
}

// latestEpisodeCompleted matches on the "Episode Complete" status reason.
func latestEpisodeCompleted(s *State, c criteria.Compiled) error {
	yes, err := yesNo(c)
	if err != nil {
		return err
	}
	complete, err := builtin(s.vocab.EpisodeStatusReason, "Episode Complete")
	if err != nil {
		return err
	}
	col := queryir.Col(s.latestEpisode(), "episode_status_reason_id")
	if yes {
		s.where(queryir.Eq(col, queryir.Bind{Value: complete}))
		return nil
	}
	s.where(queryir.Or{Predicates: []queryir.Predicate{
		queryir.IsNull{Operand: col},
		queryir.Cmp(col, ir.NE, queryir.Bind{Value: complete}),
	}})
	return nil
}

func episodeDataset(table, alias string) Handler {
	return func(s *State, c criteria.Compiled) error {
		state, err := lookupCode(c, s.vocab.DatasetState)
		if err != nil {
			return err
		}
		ep := s.latestEpisode()
		s.where(s.exists(state == "NONE", table, alias, func(a string) []queryir.Predicate {
			where := []queryir.Predicate{queryir.Eq(queryir.Col(a, "episode_id"), queryir.Col(ep, "subject_epis_id"))}
			return append(where, datasetState(a, state)...)
		}))
		return nil
	}
}

// datasetState restricts a live dataset row to the completion state.
// NONE adds nothing; the caller negates the EXISTS instead.
func datasetState(alias, state string) []queryir.Predicate {
	where := []queryir.Predicate{queryir.Eq(queryir.Col(alias, "deleted_flag"), flagLit(false))}
	switch state {
	case "INCOMPLETE":
		where = append(where, queryir.IsNull{Operand: queryir.Col(alias, "dataset_completed_date")})
	case "COMPLETE":
		where = append(where, queryir.IsNull{Operand: queryir.Col(alias, "dataset_completed_date"), Not: true})
	}
	return where
}

// latestInvestigationDataset checks the investigation dataset of the latest
// not void diagnostic test in the latest episode.
func latestInvestigationDataset(s *State, c criteria.Compiled) error {
	state, err := lookupCode(c, s.vocab.DatasetState)
	if err != nil {
		return err
	}
	ep := s.latestEpisode()
	s.where(s.exists(state == "NONE", investigationDataset, "lid", func(a string) []queryir.Predicate {
		inner := s.sel.Joins.Reserve(a + "x")
		latest := queryir.Sub{
			Column: queryir.Expr{Template: "MAX(?)", Args: []queryir.Operand{queryir.Col(inner, "ext_test_id")}},
			Table:  testTable,
			Alias:  inner,
			Where:  []queryir.Predicate{byEpisode(inner, ep), queryir.Eq(queryir.Col(inner, "void"), flagLit(false))},
		}
		where := []queryir.Predicate{queryir.Eq(queryir.Col(a, "ext_test_id"), latest)}
		return append(where, datasetState(a, state)...)
	}))
	return nil
}

// significantKitResults are the kit results that end an FOBT round.
var significantKitResults = []string{"Abnormal", "Weak Positive"}

func latestEpisodeSignificantKit(s *State, c criteria.Compiled) error {
	ep := s.latestEpisode()
	var results []queryir.Operand
	for _, label := range significantKitResults {
		code, err := builtin(s.vocab.KitResult, label)
		if err != nil {
			return err
		}
		results = append(results, queryir.Bind{Value: code})
	}
	return matchExists(s, c, kitTable, "tks", func(a string) []queryir.Predicate {
		return []queryir.Predicate{
			queryir.Eq(queryir.Col(a, "logged_in_epis_id"), queryir.Col(ep, "subject_epis_id")),
			queryir.In{Left: queryir.Col(a, "test_results"), Values: results},
		}
	})
}

// episodeEvent adds EXISTS an event of the latest episode with col = id.
func episodeEvent(s *State, c criteria.Compiled, d *vocab.Domain[int64], column string) error {
	if err := noComparator(c); err != nil {
		return err
	}
	id, ok := d.Lookup(c.Value)
	if !ok {
		return ir.UnresolvableDomainValue(d.Name(), c.Value)
	}
	ep := s.latestEpisode()
	s.where(s.exists(false, eventTable, "ev", func(a string) []queryir.Predicate {
		return []queryir.Predicate{byEpisode(a, ep), queryir.Eq(queryir.Col(a, column), queryir.Bind{Value: id})}
	}))
	return nil
}

func latestEpisodeIncludesEventCode(s *State, c criteria.Compiled) error {
	return episodeEvent(s, c, s.vocab.EventCode, "event_code_id")
}

func latestEpisodeIncludesEventStatus(s *State, c criteria.Compiled) error {
	return episodeEvent(s, c, s.vocab.EventStatus, "event_status_id")
}

// subjectEvent tests for any event of the subject with the given coded
// column value, or its absence when not is set.
func subjectEvent(not bool, column string, domain func(*vocab.Set) *vocab.Domain[int64]) Handler {
	return func(s *State, c criteria.Compiled) error {
		if err := noComparator(c); err != nil {
			return err
		}
		d := domain(s.vocab)
		id, ok := d.Lookup(c.Value)
		if !ok {
			return ir.UnresolvableDomainValue(d.Name(), c.Value)
		}
		s.where(s.exists(not, eventTable, "sev", func(a string) []queryir.Predicate {
			return []queryir.Predicate{s.bySubject(a), queryir.Eq(queryir.Col(a, column), queryir.Bind{Value: id})}
		}))
		return nil
	}
}

func latestEpisodeKitClass(s *State, c criteria.Compiled) error {
	if err := noComparator(c); err != nil {
		return err
	}
	id, ok := s.vocab.KitTypeClass.Lookup(c.Value)
	if !ok {
		return ir.UnresolvableDomainValue(s.vocab.KitTypeClass.Name(), c.Value)
	}
	ep := s.latestEpisode()
	s.where(s.exists(false, kitTable, "tkc", func(a string) []queryir.Predicate {
		return []queryir.Predicate{
			queryir.Eq(queryir.Col(a, "logged_in_epis_id"), queryir.Col(ep, "subject_epis_id")),
			queryir.Eq(queryir.Col(a, "tk_type_class_id"), queryir.Bind{Value: id}),
		}
	}))
	return nil
}

func latestEpisodeHasDiagnosticTest(s *State, c criteria.Compiled) error {
	ep := s.latestEpisode()
	return matchExists(s, c, testTable, "xte", func(a string) []queryir.Predicate {
		return []queryir.Predicate{byEpisode(a, ep), queryir.Eq(queryir.Col(a, "void"), flagLit(false))}
	})
}
