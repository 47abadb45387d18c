package selection

import (
	"github.com/roach88/subsel/internal/criteria"
	"github.com/roach88/subsel/internal/ir"
	"github.com/roach88/subsel/internal/queryir"
	"github.com/roach88/subsel/internal/vocab"
)

const polypTable = "ds_polyp_t"

func diagnosticTestHandlers() map[criteria.Key]Handler {
	return map[criteria.Key]Handler{
		criteria.WhichDiagnosticTest: whichDiagnosticTest,
		criteria.DiagnosticTestConfirmedType: func(s *State, c criteria.Compiled) error {
			return matchDomain(s, c, s.vocab.DiagnosticTestType, queryir.Col(s.test(), "confirmed_test_id"), nil)
		},
		criteria.DiagnosticTestProposedType: func(s *State, c criteria.Compiled) error {
			return matchDomain(s, c, s.vocab.DiagnosticTestType, queryir.Col(s.test(), "proposed_type_id"), nil)
		},
		criteria.DiagnosticTestIsVoid: func(s *State, c criteria.Compiled) error {
			return matchYN(s, c, queryir.Col(s.test(), "void"))
		},
		criteria.DiagnosticTestHasResult: func(s *State, c criteria.Compiled) error {
			return matchPresenceOrDomain(s, c, s.vocab.TestResult, queryir.Col(s.test(), "result_id"))
		},
		criteria.DiagnosticTestHasOutcome: func(s *State, c criteria.Compiled) error {
			return matchPresenceOrDomain(s, c, s.vocab.TestOutcome, queryir.Col(s.test(), "outcome_id"))
		},
		criteria.DiagnosticTestIntendedExtent: func(s *State, c criteria.Compiled) error {
			return matchDomain(s, c, s.vocab.IntendedExtent, queryir.Col(s.test(), "intended_extent_id"), nil)
		},
		criteria.SubjectHasDiagnosticTests:        subjectHasDiagnosticTests,
		criteria.HasDiagnosticTestContainingPolyp: hasTestContainingPolyp,
		criteria.DiagnosticTestDate: func(s *State, c criteria.Compiled) error {
			return matchDate(s, c, queryir.Col(s.test(), "test_date"), nil)
		},
		criteria.DiagnosticTestResultDate: func(s *State, c criteria.Compiled) error {
			return matchDate(s, c, queryir.Col(s.test(), "result_date"), nil)
		},
		criteria.DiagnosticTestHasPolyp: testHasPolyp,
		criteria.DatasetIntendedExtent: func(s *State, c criteria.Compiled) error {
			return matchDomain(s, c, s.vocab.IntendedExtent, queryir.Col(s.testDataset(), "intended_extent_id"), nil)
		},
		criteria.DatasetActualExtent: func(s *State, c criteria.Compiled) error {
			return matchDomain(s, c, s.vocab.IntendedExtent, queryir.Col(s.testDataset(), "actual_extent_id"), nil)
		},
		criteria.SubjectHasDiagnosticTestType: subjectHasTestType,
	}
}

// matchPresenceOrDomain accepts yes/no for presence of a value, or a label
// of d for the value itself.
func matchPresenceOrDomain(s *State, c criteria.Compiled, d *vocab.Domain[int64], col queryir.Column) error {
	if _, err := vocab.YesNo(c.Value); err == nil {
		return matchFlag(s, c, col)
	}
	return matchDomain(s, c, d, col, nil)
}

// whichDiagnosticTest opens the diagnostic test ordinal matching its
// occurrence. The first one may already be open with this selector.
func whichDiagnosticTest(s *State, c criteria.Compiled) error {
	selector, err := lookupCode(c, s.vocab.WhichTest)
	if err != nil {
		return err
	}
	if isRelativeTest(selector) && c.Occurrence == 0 {
		return ir.NewError(ir.ErrUnsupportedModifier, "%q needs an earlier diagnostic test to compare with", c.Value)
	}
	if s.testOrdinal > c.Occurrence {
		return nil
	}
	s.openTest(selector)
	return nil
}

// isRelativeTest reports whether selector picks a test relative to the
// previous one.
func isRelativeTest(selector string) bool {
	return selector == "EARLIER" || selector == "LATER"
}

// test returns the alias of the current diagnostic test, opening the first
// with the criteria's first test selector if none is open.
func (s *State) test() string {
	if s.testOrdinal == 0 {
		return s.openTest(s.firstTestSelector)
	}
	alias, _ := s.sel.Joins.Alias(relDiagnosticTest(s.testOrdinal))
	return alias
}

func (s *State) openTest(selector string) string {
	var ep, previous string
	if selector != anySelector {
		ep = s.latestEpisode()
	}
	if s.testOrdinal > 0 {
		previous, _ = s.sel.Joins.Alias(relDiagnosticTest(s.testOrdinal))
	}
	s.testOrdinal++

	inEpisode := func(a string) []queryir.Predicate {
		return []queryir.Predicate{queryir.Eq(queryir.Col(a, "subject_epis_id"), queryir.Col(ep, "subject_epis_id"))}
	}
	notVoid := func(a string) []queryir.Predicate {
		return append(inEpisode(a), queryir.Eq(queryir.Col(a, "void"), flagLit(false)))
	}

	return s.sel.Joins.Ensure(relDiagnosticTest(s.testOrdinal), func(alias string) queryir.Join {
		join := queryir.Join{
			Table: testTable,
			On:    []queryir.Predicate{s.bySubject(alias)},
		}
		id := queryir.Col(alias, "ext_test_id")
		switch selector {
		case "ANY_ANY":
			join.OrderBy = []queryir.OrderTerm{{Column: id, Desc: true}}
		case "ANY_LATEST":
			join.On = append(join.On, inEpisode(alias)...)
			join.OrderBy = []queryir.OrderTerm{{Column: id, Desc: true}}
		case "ONLY_LATEST":
			join.On = append(join.On, inEpisode(alias)...)
			join.On = append(join.On, s.onlyOne(alias, testTable, "ext_test_id", inEpisode))
		case "ONLY_NOT_VOID_LATEST":
			join.On = append(join.On, notVoid(alias)...)
			join.On = append(join.On, s.onlyOne(alias, testTable, "ext_test_id", notVoid))
		case "LATEST_LATEST":
			join.On = append(join.On, inEpisode(alias)...)
			join.On = append(join.On, s.latestOf(alias, testTable, "ext_test_id", "MAX", inEpisode))
		case "LATEST_NOT_VOID_LATEST":
			join.On = append(join.On, notVoid(alias)...)
			join.On = append(join.On, s.latestOf(alias, testTable, "ext_test_id", "MAX", notVoid))
		case "EARLIEST_NOT_VOID_LATEST":
			join.On = append(join.On, notVoid(alias)...)
			join.On = append(join.On, s.latestOf(alias, testTable, "ext_test_id", "MIN", notVoid))
		case "EARLIER":
			join.On = append(join.On, inEpisode(alias)...)
			join.On = append(join.On, queryir.Cmp(id, ir.LT, queryir.Col(previous, "ext_test_id")))
		case "LATER":
			join.On = append(join.On, inEpisode(alias)...)
			join.On = append(join.On, queryir.Cmp(id, ir.GT, queryir.Col(previous, "ext_test_id")))
		}
		return join
	})
}

func subjectHasDiagnosticTests(s *State, c criteria.Compiled) error {
	return matchExists(s, c, testTable, "xts", func(a string) []queryir.Predicate {
		return []queryir.Predicate{s.bySubject(a), queryir.Eq(queryir.Col(a, "void"), flagLit(false))}
	})
}

// hasTestContainingPolyp looks for a non-void test with a live polyp record.
func hasTestContainingPolyp(s *State, c criteria.Compiled) error {
	return matchExists(s, c, testTable, "xtp", func(a string) []queryir.Predicate {
		return []queryir.Predicate{
			s.bySubject(a),
			queryir.Eq(queryir.Col(a, "void"), flagLit(false)),
			s.exists(false, polypTable, "pol", polyps(a)),
		}
	})
}

// testDataset joins the investigation dataset of the current diagnostic
// test. The join is outer so a test without a dataset still matches null.
func (s *State) testDataset() string {
	test := s.test()
	return s.sel.Joins.Ensure(relTestDataset(s.testOrdinal), func(alias string) queryir.Join {
		return queryir.Join{
			Kind:  queryir.LeftJoin,
			Table: investigationDataset,
			On: []queryir.Predicate{
				queryir.Eq(queryir.Col(alias, "ext_test_id"), queryir.Col(test, "ext_test_id")),
				queryir.Eq(queryir.Col(alias, "deleted_flag"), flagLit(false)),
			},
		}
	})
}

// polyps selects the live polyp records of test.
func polyps(test string) func(alias string) []queryir.Predicate {
	return func(p string) []queryir.Predicate {
		return []queryir.Predicate{
			queryir.Eq(queryir.Col(p, "ext_test_id"), queryir.Col(test, "ext_test_id")),
			queryir.Eq(queryir.Col(p, "deleted_flag"), flagLit(false)),
		}
	}
}

func testHasPolyp(s *State, c criteria.Compiled) error {
	return matchExists(s, c, polypTable, "xpol", polyps(s.test()))
}

// subjectHasTestType looks for a non-void test of the subject confirmed as
// the given type.
func subjectHasTestType(s *State, c criteria.Compiled) error {
	if err := noComparator(c); err != nil {
		return err
	}
	id, ok := s.vocab.DiagnosticTestType.Lookup(c.Value)
	if !ok {
		return ir.UnresolvableDomainValue(s.vocab.DiagnosticTestType.Name(), c.Value)
	}
	s.where(s.exists(false, testTable, "xtt", func(a string) []queryir.Predicate {
		return []queryir.Predicate{
			s.bySubject(a),
			queryir.Eq(queryir.Col(a, "void"), flagLit(false)),
			queryir.Eq(queryir.Col(a, "confirmed_test_id"), queryir.Bind{Value: id}),
		}
	}))
	return nil
}
