package selection

import (
	"strconv"
	"strings"
	"time"

	"github.com/roach88/subsel/internal/criteria"
	"github.com/roach88/subsel/internal/ir"
	"github.com/roach88/subsel/internal/queryir"
	"github.com/roach88/subsel/internal/vocab"
)

// automatedProcessPIOID is the PIO id recorded for batch-confirmed ceases.
const automatedProcessPIOID = 2

func statusHandlers() map[criteria.Key]Handler {
	return map[criteria.Key]Handler{
		criteria.ScreeningStatus: func(s *State, c criteria.Compiled) error {
			return matchDomain(s, c, s.vocab.ScreeningStatus, s.subject("screening_status_id"),
				func(sub *ir.Subject) *int64 { return sub.ScreeningStatusID })
		},
		criteria.ScreeningStatusReason: func(s *State, c criteria.Compiled) error {
			return matchDomain(s, c, s.vocab.ScreeningStatusReason, s.subject("ss_reason_for_change_id"),
				func(sub *ir.Subject) *int64 { return sub.ScreeningStatusReasonID })
		},
		criteria.ScreeningStatusDateOfChange: dateColumn("ss_status_change_date", nil),
		criteria.PreviousScreeningStatus:     previousScreeningStatus,

		criteria.ScreeningDueDate: dateColumn("screening_due_date",
			func(sub *ir.Subject) *time.Time { return sub.ScreeningDueDate }),
		criteria.ScreeningDueDateReason: func(s *State, c criteria.Compiled) error {
			return matchDomain(s, c, s.vocab.DueDateReason, s.subject("sdd_reason_for_change_id"),
				func(sub *ir.Subject) *int64 { return sub.ScreeningDueDateReasonID })
		},
		criteria.ScreeningDueDateDateOfChange: dateColumn("sdd_change_date", nil),
		criteria.CalculatedScreeningDueDate:   dateColumn("calculated_sdd",
			func(sub *ir.Subject) *time.Time { return sub.CalculatedScreeningDueDate }),
		criteria.PreviousScreeningDueDate: dateColumn("previous_screening_due_date", nil),

		criteria.SurveillanceDueDate: dateColumn("surveillance_screen_due_date",
			func(sub *ir.Subject) *time.Time { return sub.SurveillanceDueDate }),
		criteria.SurveillanceDueDateReason: func(s *State, c criteria.Compiled) error {
			return matchDomain(s, c, s.vocab.SurveillanceDueReason, s.subject("surveillance_sdd_rsn_change_id"),
				func(sub *ir.Subject) *int64 { return sub.SurveillanceDueReasonID })
		},
		criteria.SurveillanceDueDateDateOfChange: dateColumn("surveillance_sdd_change_date", nil),
		criteria.CalculatedSurveillanceDueDate:   dateColumn("calculated_ssdd",
			func(sub *ir.Subject) *time.Time { return sub.CalculatedSurveillanceDate }),
		criteria.PreviousSurveillanceDueDate: dateColumn("previous_surveillance_sdd", nil),

		criteria.LynchDueDate: dateColumn("lynch_screening_due_date",
			func(sub *ir.Subject) *time.Time { return sub.LynchDueDate }),
		criteria.LynchDueDateReason: func(s *State, c criteria.Compiled) error {
			return matchDomain(s, c, s.vocab.LynchDueDateReason, s.subject("lynch_sdd_reason_for_change_id"),
				func(sub *ir.Subject) *int64 { return sub.LynchDueDateReasonID })
		},
		criteria.LynchDueDateDateOfChange: dateColumn("lynch_sdd_change_date", nil),
		criteria.CalculatedLynchDueDate:   dateColumn("lynch_calculated_sdd",
			func(sub *ir.Subject) *time.Time { return sub.CalculatedLynchDueDate }),
		criteria.PreviousLynchDueDate: dateColumn("previous_lynch_sdd", nil),

		criteria.ManualCeaseRequested:      manualCeaseRequested,
		criteria.CeasedConfirmationDate:    dateColumn("ceased_confirmation_recd_date", nil),
		criteria.CeasedConfirmationDetails: func(s *State, c criteria.Compiled) error { return matchText(s, c, s.subject("ceased_confirmation_details")) },
		criteria.CeasedConfirmationUserID:  ceasedConfirmationUserID,
		criteria.ClinicalReasonForCease: func(s *State, c criteria.Compiled) error {
			return matchDomain(s, c, s.vocab.ClinicalCeaseReason, s.subject("clinical_reason_for_cease_id"), nil)
		},
	}
}

// dateColumn builds a handler for a date column of screening_subject_t.
func dateColumn(name string, prev previousDate) Handler {
	return func(s *State, c criteria.Compiled) error {
		return matchDate(s, c, s.subject(name), prev)
	}
}

// previousScreeningStatus accepts any screening status label or null/not null.
func previousScreeningStatus(s *State, c criteria.Compiled) error {
	col := s.subject("previous_screening_status_id")
	if v, ok := sentinel(c.Value); ok {
		if err := noComparator(c); err != nil {
			return err
		}
		p, err := nullCheck(c, col, v)
		if err != nil {
			return err
		}
		s.where(p)
		return nil
	}
	return matchDomain(s, c, s.vocab.ScreeningStatus, col, nil)
}

func manualCeaseRequested(s *State, c criteria.Compiled) error {
	state, err := lookupCode(c, s.vocab.ManualCeaseState)
	if err != nil {
		return err
	}
	requested := s.subject("ceased_request_date")
	disclaimer := s.subject("ceased_disclaimer_received_date")
	switch state {
	case "NONE":
		s.where(queryir.IsNull{Operand: requested})
	case "ANY":
		s.where(queryir.IsNull{Operand: requested, Not: true})
	case "AWAITING_DISCLAIMER":
		s.where(queryir.IsNull{Operand: requested, Not: true}, queryir.IsNull{Operand: disclaimer})
	case "DISCLAIMER_RECEIVED":
		s.where(queryir.IsNull{Operand: requested, Not: true}, queryir.IsNull{Operand: disclaimer, Not: true})
	}
	return nil
}

// ceasedConfirmationUserID accepts a PIO id, "automated process id",
// "user's pio id" or null/not null.
func ceasedConfirmationUserID(s *State, c criteria.Compiled) error {
	if err := noComparator(c); err != nil {
		return err
	}
	col := s.subject("ceased_confirmation_pio_id")
	if v, ok := sentinel(c.Value); ok {
		p, err := nullCheck(c, col, v)
		if err != nil {
			return err
		}
		s.where(p)
		return nil
	}

	var id int64
	switch strings.ToLower(strings.Join(strings.Fields(c.Value), " ")) {
	case "automated process id":
		id = automatedProcessPIOID
	case "user's pio id":
		u, err := s.user(c.Value)
		if err != nil {
			return err
		}
		id = u.PIOID
	default:
		n, err := strconv.ParseInt(strings.TrimSpace(c.Value), 10, 64)
		if err != nil {
			return ir.NewError(ir.ErrUnresolvableDomainValue, "%q is not a PIO id", c.Value)
		}
		id = n
	}
	s.where(queryir.Eq(col, queryir.Bind{Value: id}))
	return nil
}

// lookupCode resolves a string-coded state label without sentinels.
func lookupCode(c criteria.Compiled, d *vocab.Domain[string]) (string, error) {
	if err := noComparator(c); err != nil {
		return "", err
	}
	code, ok := d.Lookup(c.Value)
	if !ok {
		return "", ir.UnresolvableDomainValue(d.Name(), strings.TrimSpace(c.Value))
	}
	return code, nil
}
