package selection

import (
	"github.com/roach88/subsel/internal/criteria"
	"github.com/roach88/subsel/internal/queryir"
)

func appointmentHandlers() map[criteria.Key]Handler {
	return map[criteria.Key]Handler{
		criteria.WhichAppointment: whichAppointment,
		criteria.AppointmentType: func(s *State, c criteria.Compiled) error {
			return matchDomain(s, c, s.vocab.AppointmentType, queryir.Col(s.appointment(), "appointment_type_id"), nil)
		},
		criteria.AppointmentStatus: func(s *State, c criteria.Compiled) error {
			return matchDomain(s, c, s.vocab.AppointmentStatus, queryir.Col(s.appointment(), "appointment_status_id"), nil)
		},
		criteria.AppointmentDate: func(s *State, c criteria.Compiled) error {
			return matchDate(s, c, queryir.Col(s.appointment(), "appointment_date"), nil)
		},
		criteria.AppointmentCancelled: func(s *State, c criteria.Compiled) error {
			return matchFlag(s, c, queryir.Col(s.appointment(), "cancel_date"))
		},
		criteria.AppointmentBookedDate: func(s *State, c criteria.Compiled) error {
			return matchDate(s, c, queryir.Col(s.appointment(), "booked_date"), nil)
		},
		criteria.SubjectHasAppointments: func(s *State, c criteria.Compiled) error {
			return matchExists(s, c, appointmentTable, "aps", func(a string) []queryir.Predicate {
				return []queryir.Predicate{s.bySubject(a)}
			})
		},
		criteria.LatestEpisodeHasAppointment: latestEpisodeHasAppointment,
	}
}

func whichAppointment(s *State, c criteria.Compiled) error {
	if _, err := lookupCode(c, s.vocab.WhichAppointment); err != nil {
		return err
	}
	s.appointment()
	return nil
}

// appointment joins the appointment picked by the criteria's appointment
// selector, or returns the one already joined.
func (s *State) appointment() string {
	if alias, ok := s.sel.Joins.Alias(relAppointment); ok {
		return alias
	}
	selector := s.appointmentSelector

	var ep string
	if selector != anySelector {
		ep = s.latestEpisode()
	}
	inEpisode := func(a string) []queryir.Predicate {
		return []queryir.Predicate{
			queryir.Eq(queryir.Col(a, "subject_epis_id"), queryir.Col(ep, "subject_epis_id")),
			queryir.IsNull{Operand: queryir.Col(a, "cancel_date")},
		}
	}

	return s.sel.Joins.Ensure(relAppointment, func(alias string) queryir.Join {
		join := queryir.Join{
			Table: appointmentTable,
			On:    []queryir.Predicate{s.bySubject(alias)},
		}
		newest := []queryir.OrderTerm{{Column: queryir.Col(alias, "appointment_id"), Desc: true}}
		switch selector {
		case "ANY_ANY":
			join.OrderBy = newest
		case "ANY_LATEST":
			join.On = append(join.On, inEpisode(alias)...)
			join.OrderBy = newest
		case "LATEST_LATEST":
			join.On = append(join.On, inEpisode(alias)...)
			join.On = append(join.On, s.latestOf(alias, appointmentTable, "appointment_id", "MAX", inEpisode))
		}
		return join
	})
}

// latestEpisodeHasAppointment ignores cancelled appointments.
func latestEpisodeHasAppointment(s *State, c criteria.Compiled) error {
	ep := s.latestEpisode()
	return matchExists(s, c, appointmentTable, "ape", func(a string) []queryir.Predicate {
		return []queryir.Predicate{byEpisode(a, ep), queryir.IsNull{Operand: queryir.Col(a, "cancel_date")}}
	})
}
