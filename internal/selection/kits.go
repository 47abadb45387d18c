package selection

import (
	"github.com/roach88/subsel/internal/criteria"
	"github.com/roach88/subsel/internal/queryir"
)

// anySelector is the selector used when a relation is first needed by a
// criterion other than its "which" key.
const anySelector = "ANY_ANY"

func kitHandlers() map[criteria.Key]Handler {
	return map[criteria.Key]Handler{
		criteria.WhichTestKit: whichTestKit,
		criteria.KitHasBeenRead: func(s *State, c criteria.Compiled) error {
			return matchYN(s, c, queryir.Col(s.kit(), "reading_flag"))
		},
		criteria.KitResult: func(s *State, c criteria.Compiled) error {
			return matchDomain(s, c, s.vocab.KitResult, queryir.Col(s.kit(), "test_results"), nil)
		},
		criteria.KitHasAnalyserResultCode: func(s *State, c criteria.Compiled) error {
			return matchFlag(s, c, queryir.Col(s.kit(), "analyser_error_code"))
		},
		criteria.SubjectHasKitNotes: notesExist(kitNoteType, "sn"),
		criteria.KitHasBeenLogged: func(s *State, c criteria.Compiled) error {
			return matchYN(s, c, queryir.Col(s.kit(), "logged_in_flag"))
		},
		criteria.KitLoggedDate: kitDate("logged_in_on"),
		criteria.KitIssueDate:  kitDate("issue_date"),
		criteria.KitReadDate:   kitDate("reading_date"),
		criteria.KitTypeClass: func(s *State, c criteria.Compiled) error {
			return matchDomain(s, c, s.vocab.KitTypeClass, queryir.Col(s.kit(), "tk_type_class_id"), nil)
		},
		criteria.SubjectHasFITKits:       subjectKits(true, nil),
		criteria.SubjectHasUnloggedKits:  subjectKits(false, loggedKit(false)),
		criteria.SubjectHasLoggedFITKits: subjectKits(true, loggedKit(true)),
	}
}

// whichTestKit validates the selector. The kit itself is joined with the
// selector found before dispatch, wherever the criterion sits.
func whichTestKit(s *State, c criteria.Compiled) error {
	if _, err := lookupCode(c, s.vocab.WhichKit); err != nil {
		return err
	}
	s.kit()
	return nil
}

// kit joins the test kit picked by the criteria's kit selector, or returns
// the one already joined.
func (s *State) kit() string {
	if alias, ok := s.sel.Joins.Alias(relKit); ok {
		return alias
	}
	selector := s.kitSelector

	var ep string
	switch selector {
	case "ANY_LATEST", "ONLY_LATEST", "LATEST_LATEST", "FIRST_LATEST":
		ep = s.latestEpisode()
	}
	inEpisode := func(a string) []queryir.Predicate {
		return []queryir.Predicate{queryir.Eq(queryir.Col(a, "logged_in_epis_id"), queryir.Col(ep, "subject_epis_id"))}
	}
	flagged := func(flag string, yes bool) scope {
		return func(a string) []queryir.Predicate {
			return []queryir.Predicate{s.bySubject(a), queryir.Eq(queryir.Col(a, flag), flagLit(yes))}
		}
	}

	return s.sel.Joins.Ensure(relKit, func(alias string) queryir.Join {
		join := queryir.Join{
			Table: kitTable,
			On:    []queryir.Predicate{s.bySubject(alias)},
		}
		newest := []queryir.OrderTerm{{Column: queryir.Col(alias, "kitid"), Desc: true}}
		switch selector {
		case "ANY_ANY":
			join.OrderBy = newest
		case "ANY_LATEST":
			join.On = append(join.On, inEpisode(alias)...)
			join.OrderBy = newest
		case "ONLY_LATEST":
			join.On = append(join.On, inEpisode(alias)...)
			join.On = append(join.On, s.onlyOne(alias, kitTable, "kitid", inEpisode))
		case "LATEST_LATEST":
			join.On = append(join.On, inEpisode(alias)...)
			join.On = append(join.On, s.latestOf(alias, kitTable, "kitid", "MAX", inEpisode))
		case "FIRST_LATEST":
			join.On = append(join.On, inEpisode(alias)...)
			join.On = append(join.On, s.latestOf(alias, kitTable, "kitid", "MIN", inEpisode))
		case "LATEST_UNLOGGED":
			join.On = append(join.On, s.latestOf(alias, kitTable, "kitid", "MAX", flagged("logged_in_flag", false)))
		case "LATEST_LOGGED":
			join.On = append(join.On, s.latestOf(alias, kitTable, "kitid", "MAX", flagged("logged_in_flag", true)))
		case "LATEST_READ":
			join.On = append(join.On, s.latestOf(alias, kitTable, "kitid", "MAX", flagged("reading_flag", true)))
		}
		return join
	})
}

func kitDate(column string) Handler {
	return func(s *State, c criteria.Compiled) error {
		return matchDate(s, c, queryir.Col(s.kit(), column), nil)
	}
}

func loggedKit(yes bool) func(alias string) queryir.Predicate {
	return func(a string) queryir.Predicate {
		return queryir.Eq(queryir.Col(a, "logged_in_flag"), flagLit(yes))
	}
}

// subjectKits tests for any kit of the subject, optionally only FIT kits
// and only those matching logged.
func subjectKits(fit bool, logged func(alias string) queryir.Predicate) Handler {
	return func(s *State, c criteria.Compiled) error {
		var class int64
		if fit {
			id, err := builtin(s.vocab.KitTypeClass, "FIT")
			if err != nil {
				return err
			}
			class = id
		}
		return matchExists(s, c, kitTable, "tka", func(a string) []queryir.Predicate {
			where := []queryir.Predicate{s.bySubject(a)}
			if fit {
				where = append(where, queryir.Eq(queryir.Col(a, "tk_type_class_id"), queryir.Bind{Value: class}))
			}
			if logged != nil {
				where = append(where, logged(a))
			}
			return where
		})
	}
}
