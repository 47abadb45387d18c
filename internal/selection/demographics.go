package selection

import (
	"regexp"
	"strings"
	"time"

	"github.com/roach88/subsel/internal/criteria"
	"github.com/roach88/subsel/internal/dates"
	"github.com/roach88/subsel/internal/ir"
	"github.com/roach88/subsel/internal/queryir"
)

func demographicHandlers() map[criteria.Key]Handler {
	return map[criteria.Key]Handler{
		criteria.NHSNumber:                                  nhsNumber,
		criteria.SubjectAge:                                 subjectAge,
		criteria.SubjectAgeYearsDays:                        subjectAgeYearsDays,
		criteria.DateOfBirth:                                dateOfBirth,
		criteria.DateOfDeath:                                dateOfDeath,
		criteria.Gender:                                     gender,
		criteria.SubjectHasTemporaryAddress:                 temporaryAddress,
		criteria.HasGPPractice:                              hasGPPractice,
		criteria.HasGPPracticeAssociatedWithScreeningCentre: gpPracticeScreeningCentre,
		criteria.SubjectScreeningCentreCode:                 screeningCentreCode,
		criteria.SubjectHubCode:                             hubCode,
		criteria.SubjectHasUnprocessedSSPIUpdates:           unprocessedSSPIUpdates,
		criteria.SubjectHasUserDOBUpdates:                   userDOBUpdates,
		criteria.Subject75thBirthday:                        seventyFifthBirthday,
		criteria.SubjectLowerFOBTAge:                        lowerAge("fobt_lower_age"),
		criteria.SubjectLowerLynchAge:                       lowerAge("lynch_lower_age"),
		criteria.DateOfDeathRemoval:                         dateOfDeathRemoval,
		criteria.InvitedSinceAgeExtension:                   invitedSinceAgeExtension,
		criteria.GPPracticeCode: func(s *State, c criteria.Compiled) error {
			return matchOrg(s, c, s.contact("gp_practice_id"), s.gpPractice)
		},
	}
}

func nhsNumber(s *State, c criteria.Compiled) error {
	if err := noComparator(c); err != nil {
		return err
	}
	s.where(queryir.Cmp(s.contact("nhs_number"), c.Comparator, queryir.Bind{Value: strings.ReplaceAll(c.Value, " ", "")}))
	return nil
}

// ageInYears is FLOOR(MONTHS_BETWEEN(TRUNC(SYSDATE), c.date_of_birth) / 12).
func (s *State) ageInYears() queryir.Operand {
	return queryir.Expr{
		Template: "FLOOR(MONTHS_BETWEEN(?, ?) / 12)",
		Args:     []queryir.Operand{dates.Today, s.dob()},
	}
}

var ageRange = regexp.MustCompile(`^(?i)between\s+(\d+)\s+and\s+(\d+)$`)

// subjectAge accepts "<n>", a comparator with "<n>", or "between <a> and <b>".
func subjectAge(s *State, c criteria.Compiled) error {
	age := s.ageInYears()
	if m := ageRange.FindStringSubmatch(c.Value); m != nil {
		if c.HasComparator() {
			return ir.NewError(ir.ErrUnsupportedModifier, "a comparator cannot apply to an age range")
		}
		lo, err := ageYears(m[1])
		if err != nil {
			return err
		}
		hi, err := ageYears(m[2])
		if err != nil {
			return err
		}
		if lo > hi {
			return ir.NewError(ir.ErrUnresolvableDomainValue, "age range %d to %d is empty", lo, hi)
		}
		s.where(queryir.Cmp(age, ir.GE, queryir.Int(lo)), queryir.Cmp(age, ir.LE, queryir.Int(hi)))
		return nil
	}

	n, err := ageYears(c.Value)
	if err != nil {
		return err
	}
	s.where(queryir.Cmp(age, c.Comparator, queryir.Int(n)))
	return nil
}

// Upper bounds of an age criterion.
const (
	maxAgeYears = 200
	maxAgeDays  = 366
)

// ageYears parses a whole number of years no greater than maxAgeYears.
func ageYears(value string) (int, error) {
	return boundedNumber(value, maxAgeYears, "years")
}

func boundedNumber(value string, max int, unit string) (int, error) {
	n, err := wholeNumber(value)
	if err != nil {
		return 0, err
	}
	if n > max {
		return 0, ir.NewError(ir.ErrUnresolvableDomainValue, "%d %s is more than the %d allowed", n, unit, max)
	}
	return n, nil
}

// subjectAgeYearsDays compares the birth date with today minus <y> years
// minus <d> days. Comparators are flipped: an older subject was born earlier.
func subjectAgeYearsDays(s *State, c criteria.Compiled) error {
	years, days, ok := strings.Cut(c.Value, "/")
	if !ok {
		return ir.NewError(ir.ErrUnparseableDate, "expected <years>/<days>, got %q", c.Value)
	}
	y, err := ageYears(years)
	if err != nil {
		return err
	}
	d, err := boundedNumber(days, maxAgeDays, "days")
	if err != nil {
		return err
	}
	s.where(queryir.Cmp(s.dob(), c.Comparator.Flip(), queryir.Expr{
		Template: "ADD_MONTHS(?, ?) - ?",
		Args:     []queryir.Operand{dates.Today, queryir.Int(-12 * y), queryir.Int(d)},
	}))
	return nil
}

func dateOfBirth(s *State, c criteria.Compiled) error {
	return matchDate(s, c, s.dob(), nil)
}

func dateOfDeath(s *State, c criteria.Compiled) error {
	return matchDate(s, c, s.contact("date_of_death"), func(sub *ir.Subject) *time.Time { return sub.DateOfDeath })
}

func gender(s *State, c criteria.Compiled) error {
	return matchDomain(s, c, s.vocab.Gender, s.contact("gender_code"), nil)
}

func temporaryAddress(s *State, c criteria.Compiled) error {
	yes, err := yesNo(c)
	if err != nil {
		return err
	}
	adr := s.temporaryAddress()
	s.where(queryir.IsNull{Operand: queryir.Col(adr, "address_id"), Not: yes})
	return nil
}

func hasGPPractice(s *State, c criteria.Compiled) error {
	state, err := lookupCode(c, s.vocab.GPPracticeState)
	if err != nil {
		return err
	}
	switch state {
	case "NONE":
		s.where(queryir.IsNull{Operand: s.contact("gp_practice_id")})
	case "ANY":
		s.where(queryir.IsNull{Operand: s.contact("gp_practice_id"), Not: true})
	case "ACTIVE", "INACTIVE":
		gp := s.gpPractice()
		s.where(
			queryir.IsNull{Operand: s.contact("gp_practice_id"), Not: true},
			queryir.Eq(queryir.Col(gp, "active_flag"), flagLit(state == "ACTIVE")),
		)
	}
	return nil
}

// orgCode resolves an organisation code value: a literal code, or the
// current user's organisation or hub.
func (s *State) orgCode(value string) (string, error) {
	switch strings.ToLower(strings.Join(strings.Fields(value), " ")) {
	case "user's organisation", "user's screening centre", "user's sc":
		u, err := s.user(value)
		if err != nil {
			return "", err
		}
		return u.OrganisationCode, nil
	case "user's hub":
		u, err := s.user(value)
		if err != nil {
			return "", err
		}
		return u.HubCode, nil
	}
	return strings.ToUpper(strings.TrimSpace(value)), nil
}

func gpPracticeScreeningCentre(s *State, c criteria.Compiled) error {
	if err := noComparator(c); err != nil {
		return err
	}
	if v, ok := sentinel(c.Value); ok {
		p, err := nullCheck(c, queryir.Col(s.gpPractice(), "parent_org_id"), v)
		if err != nil {
			return err
		}
		s.where(p)
		return nil
	}
	code, err := s.orgCode(c.Value)
	if err != nil {
		return err
	}
	s.where(queryir.Eq(queryir.Col(s.gpPracticeCentre(), "org_code"), queryir.Bind{Value: code}))
	return nil
}

func screeningCentreCode(s *State, c criteria.Compiled) error {
	return matchOrg(s, c, s.subject("screening_centre_id"), s.screeningCentre)
}

func hubCode(s *State, c criteria.Compiled) error {
	return matchOrg(s, c, s.contact("hub_id"), s.hub)
}

// matchOrg tests the organisation referenced by id. Null and not null test
// id itself; anything else is an org code compared through the join.
func matchOrg(s *State, c criteria.Compiled, id queryir.Column, org func() string) error {
	if err := noComparator(c); err != nil {
		return err
	}
	if v, ok := sentinel(c.Value); ok {
		p, err := nullCheck(c, id, v)
		if err != nil {
			return err
		}
		s.where(p)
		return nil
	}
	code, err := s.orgCode(c.Value)
	if err != nil {
		return err
	}
	s.where(queryir.Cmp(queryir.Col(org(), "org_code"), c.Comparator, queryir.Bind{Value: code}))
	return nil
}

func unprocessedSSPIUpdates(s *State, c criteria.Compiled) error {
	return matchExists(s, c, "sd_sspi_update_t", "sspi", func(a string) []queryir.Predicate {
		return []queryir.Predicate{
			queryir.Eq(queryir.Col(a, "contact_id"), s.contact("contact_id")),
			queryir.Eq(queryir.Col(a, "processed_flag"), flagLit(false)),
		}
	})
}

func userDOBUpdates(s *State, c criteria.Compiled) error {
	return matchExists(s, c, "sd_contact_audit_t", "dobu", func(a string) []queryir.Predicate {
		return []queryir.Predicate{
			queryir.Eq(queryir.Col(a, "contact_id"), s.contact("contact_id")),
			queryir.Eq(queryir.Col(a, "changed_field"), queryir.Lit{SQL: "'DATE_OF_BIRTH'"}),
			queryir.IsNull{Operand: queryir.Col(a, "changed_by_pio_id"), Not: true},
		}
	})
}

func seventyFifthBirthday(s *State, c criteria.Compiled) error {
	return matchDate(s, c, dates.Birthday{Years: 75}.Operand(s.dob()), nil)
}

// lowerAge compares a subject-specific lower age limit. "default" means no
// override is recorded.
func lowerAge(column string) Handler {
	return func(s *State, c criteria.Compiled) error {
		col := s.subject(column)
		if strings.EqualFold(strings.TrimSpace(c.Value), "default") {
			if err := noComparator(c); err != nil {
				return err
			}
			s.where(queryir.IsNull{Operand: col})
			return nil
		}
		n, err := ageYears(c.Value)
		if err != nil {
			return err
		}
		s.where(queryir.Cmp(col, c.Comparator, queryir.Int(n)))
		return nil
	}
}

func dateOfDeathRemoval(s *State, c criteria.Compiled) error {
	return matchExists(s, c, "sd_dod_removal_t", "dodr", func(a string) []queryir.Predicate {
		return []queryir.Predicate{queryir.Eq(queryir.Col(a, "contact_id"), s.contact("contact_id"))}
	})
}

// invitedSinceAgeExtension holds for subjects brought in by the age
// extension who have had an invitation since their status changed.
func invitedSinceAgeExtension(s *State, c criteria.Compiled) error {
	yes, err := yesNo(c)
	if err != nil {
		return err
	}
	extension, err := builtin(s.vocab.ScreeningStatusReason, "Age Extension")
	if err != nil {
		return err
	}
	invited, err := builtin(s.vocab.EventStatus, "S10")
	if err != nil {
		return err
	}
	s.where(
		queryir.Eq(s.subject("ss_reason_for_change_id"), queryir.Bind{Value: extension}),
		s.exists(!yes, eventTable, "aev", func(a string) []queryir.Predicate {
			return []queryir.Predicate{
				s.bySubject(a),
				queryir.Eq(queryir.Col(a, "event_status_id"), queryir.Bind{Value: invited}),
				queryir.Cmp(queryir.Col(a, "datestamp"), ir.GE, s.subject("ss_status_change_date")),
			}
		}),
	)
	return nil
}
