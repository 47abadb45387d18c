package selection

import (
	"github.com/roach88/subsel/internal/criteria"
	"github.com/roach88/subsel/internal/queryir"
)

const surveillanceReviewTable = "surveillance_review_t"

var relSurveillanceReview = queryir.Relation{Name: "surveillance review", Alias: "rev"}

func reviewHandlers() map[criteria.Key]Handler {
	return map[criteria.Key]Handler{
		criteria.HasExistingSurveillanceReviewCase: func(s *State, c criteria.Compiled) error {
			return matchExists(s, c, surveillanceReviewTable, "sr", func(a string) []queryir.Predicate {
				return []queryir.Predicate{s.bySubject(a)}
			})
		},
		criteria.SurveillanceReviewStatus: func(s *State, c criteria.Compiled) error {
			return matchDomain(s, c, s.vocab.ReviewStatus, queryir.Col(s.surveillanceReview(), "review_status_id"), nil)
		},
		criteria.SurveillanceReviewType: func(s *State, c criteria.Compiled) error {
			return matchDomain(s, c, s.vocab.ReviewType, queryir.Col(s.surveillanceReview(), "review_case_type_id"), nil)
		},
		criteria.SurveillanceReviewCreatedDate: func(s *State, c criteria.Compiled) error {
			return matchDate(s, c, queryir.Col(s.surveillanceReview(), "created_date"), nil)
		},
		criteria.SurveillanceReviewClosedDate: func(s *State, c criteria.Compiled) error {
			return matchDate(s, c, queryir.Col(s.surveillanceReview(), "closed_date"), nil)
		},
	}
}

// surveillanceReview joins the subject's most recent review case. The join
// is outer so "surveillance review status: null" finds subjects without one.
func (s *State) surveillanceReview() string {
	return s.sel.Joins.Ensure(relSurveillanceReview, func(alias string) queryir.Join {
		return queryir.Join{
			Kind:  queryir.LeftJoin,
			Table: surveillanceReviewTable,
			On: []queryir.Predicate{
				s.bySubject(alias),
				s.latestOf(alias, surveillanceReviewTable, "review_id", "MAX", func(a string) []queryir.Predicate {
					return []queryir.Predicate{s.bySubject(a)}
				}),
			},
		}
	})
}
