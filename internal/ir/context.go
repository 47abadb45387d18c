package ir

import "time"

// Subject carries previous values of a subject record. It enables the
// "unchanged" sentinel: a criterion compiled with "unchanged" compares the
// column against the value held here.
//
// A nil pointer field means the previous value is absent (the column was
// NULL), which degrades "unchanged" to a null check.
type Subject struct {
	NHSNumber string `json:"nhs_number" yaml:"nhs_number"`

	ScreeningStatusID        *int64 `json:"screening_status_id,omitempty" yaml:"screening_status_id,omitempty"`
	ScreeningStatusReasonID  *int64 `json:"screening_status_reason_id,omitempty" yaml:"screening_status_reason_id,omitempty"`
	ScreeningDueDateReasonID *int64 `json:"screening_due_date_reason_id,omitempty" yaml:"screening_due_date_reason_id,omitempty"`
	SurveillanceDueReasonID  *int64 `json:"surveillance_due_date_reason_id,omitempty" yaml:"surveillance_due_date_reason_id,omitempty"`
	LynchDueDateReasonID     *int64 `json:"lynch_due_date_reason_id,omitempty" yaml:"lynch_due_date_reason_id,omitempty"`

	DateOfDeath                *time.Time `json:"date_of_death,omitempty" yaml:"date_of_death,omitempty"`
	ScreeningDueDate           *time.Time `json:"screening_due_date,omitempty" yaml:"screening_due_date,omitempty"`
	CalculatedScreeningDueDate *time.Time `json:"calculated_screening_due_date,omitempty" yaml:"calculated_screening_due_date,omitempty"`
	SurveillanceDueDate        *time.Time `json:"surveillance_due_date,omitempty" yaml:"surveillance_due_date,omitempty"`
	CalculatedSurveillanceDate *time.Time `json:"calculated_surveillance_due_date,omitempty" yaml:"calculated_surveillance_due_date,omitempty"`
	LynchDueDate               *time.Time `json:"lynch_due_date,omitempty" yaml:"lynch_due_date,omitempty"`
	CalculatedLynchDueDate     *time.Time `json:"calculated_lynch_due_date,omitempty" yaml:"calculated_lynch_due_date,omitempty"`
}

// User identifies the person running the selection. It enables criteria
// relative to the user's organisation ("user's hub", "user's sc").
type User struct {
	PIOID            int64  `json:"pio_id" yaml:"pio_id"`
	OrganisationCode string `json:"organisation_code" yaml:"organisation_code"`
	HubCode          string `json:"hub_code" yaml:"hub_code"`
}

// Int64 returns a pointer to v. Convenience for building Subject values.
func Int64(v int64) *int64 {
	return &v
}

// Date returns a pointer to the UTC midnight of the given calendar day.
func Date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
