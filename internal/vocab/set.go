package vocab

import (
	"fmt"
	"sort"
)

// Set is the complete collection of domains used by the compiler.
// A Set is never mutated after construction.
type Set struct {
	// Numeric identifiers.
	ScreeningStatus         *Domain[int64]
	ScreeningStatusReason   *Domain[int64]
	DueDateReason           *Domain[int64]
	SurveillanceDueReason   *Domain[int64]
	LynchDueDateReason      *Domain[int64]
	ClinicalCeaseReason     *Domain[int64]
	Gender                  *Domain[int64]
	EpisodeType             *Domain[int64]
	EpisodeSubType          *Domain[int64]
	EpisodeStatus           *Domain[int64]
	EpisodeStatusReason     *Domain[int64]
	RecallCalculationMethod *Domain[int64]
	DiagnosisDateReason     *Domain[int64]
	EventStatus             *Domain[int64]
	EventCode               *Domain[int64]
	AccumulatedResult       *Domain[int64]
	KitTypeClass            *Domain[int64]
	DiagnosticTestType      *Domain[int64]
	IntendedExtent          *Domain[int64]
	TestResult              *Domain[int64]
	TestOutcome             *Domain[int64]
	AppointmentType         *Domain[int64]
	AppointmentStatus       *Domain[int64]
	ScreeningReferralType   *Domain[int64]
	SymptomaticResult       *Domain[int64]
	ReviewStatus            *Domain[int64]
	ReviewType              *Domain[int64]
	LynchDiagnosisType      *Domain[int64]

	// String codes.
	KitResult          *Domain[string]
	NotifyStatus       *Domain[string]
	DatasetState       *Domain[string]
	GPPracticeState    *Domain[string]
	ManualCeaseState   *Domain[string]
	LynchIncident      *Domain[string]
	WhichKit           *Domain[string]
	WhichTest          *Domain[string]
	WhichAppointment   *Domain[string]
	ReferralDateState  *Domain[string]
	DiagnosisDateState *Domain[string]
}

// Override replaces or adds one numeric identifier.
type Override struct {
	Domain string
	Label  string
	ID     int64
}

var defaultSet = buildDefault()

// Default returns the built-in vocabulary.
func Default() *Set {
	return defaultSet
}

// numeric returns pointers to the numeric domain fields keyed by domain name.
func (s *Set) numeric() map[string]**Domain[int64] {
	fields := []**Domain[int64]{
		&s.ScreeningStatus, &s.ScreeningStatusReason, &s.DueDateReason,
		&s.SurveillanceDueReason, &s.LynchDueDateReason, &s.ClinicalCeaseReason,
		&s.Gender, &s.EpisodeType, &s.EpisodeSubType, &s.EpisodeStatus,
		&s.EpisodeStatusReason, &s.RecallCalculationMethod, &s.DiagnosisDateReason,
		&s.EventStatus, &s.EventCode, &s.AccumulatedResult, &s.KitTypeClass,
		&s.DiagnosticTestType, &s.IntendedExtent, &s.TestResult, &s.TestOutcome,
		&s.AppointmentType, &s.AppointmentStatus, &s.ScreeningReferralType,
		&s.SymptomaticResult, &s.ReviewStatus, &s.ReviewType, &s.LynchDiagnosisType,
	}
	out := make(map[string]**Domain[int64], len(fields))
	for _, f := range fields {
		out[(*f).Name()] = f
	}
	return out
}

// NumericDomains returns the names of domains that accept overrides, sorted.
func (s *Set) NumericDomains() []string {
	names := make([]string, 0)
	for name := range s.numeric() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithOverrides returns a copy of s with the given identifiers applied.
// Overrides naming an unknown domain are rejected.
func (s *Set) WithOverrides(overrides []Override) (*Set, error) {
	out := *s
	domains := out.numeric()
	for _, o := range overrides {
		field, ok := domains[o.Domain]
		if !ok {
			return nil, fmt.Errorf("override %q: unknown vocabulary domain %q", o.Label, o.Domain)
		}
		if normalize(o.Label) == "" {
			return nil, fmt.Errorf("override in domain %q: empty label", o.Domain)
		}
		*field = (*field).with(o.Label, o.ID)
	}
	return &out, nil
}
