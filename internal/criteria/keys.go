package criteria

// Key is the enumerated identity of a selection criterion.
type Key int

// Info describes a catalogue entry.
type Info struct {
	Key                 Key
	Description         string
	AllowMultipleValues bool
	AllowNegation       bool
}

// Demographics.
const (
	NHSNumber Key = iota
	SubjectAge
	SubjectAgeYearsDays
	DateOfBirth
	DateOfDeath
	Gender
	SubjectHasTemporaryAddress
	HasGPPractice
	HasGPPracticeAssociatedWithScreeningCentre
	SubjectScreeningCentreCode
	SubjectHubCode
	SubjectHasUnprocessedSSPIUpdates
	SubjectHasUserDOBUpdates
	Subject75thBirthday
	SubjectLowerFOBTAge
	SubjectLowerLynchAge
	DateOfDeathRemoval
	InvitedSinceAgeExtension
	GPPracticeCode

	// Screening status and due dates.
	ScreeningStatus
	ScreeningStatusReason
	ScreeningStatusDateOfChange
	PreviousScreeningStatus
	ScreeningDueDate
	ScreeningDueDateReason
	ScreeningDueDateDateOfChange
	CalculatedScreeningDueDate
	PreviousScreeningDueDate
	SurveillanceDueDate
	SurveillanceDueDateReason
	SurveillanceDueDateDateOfChange
	CalculatedSurveillanceDueDate
	PreviousSurveillanceDueDate
	LynchDueDate
	LynchDueDateReason
	LynchDueDateDateOfChange
	CalculatedLynchDueDate
	PreviousLynchDueDate
	ManualCeaseRequested
	CeasedConfirmationDate
	CeasedConfirmationDetails
	CeasedConfirmationUserID
	ClinicalReasonForCease

	// Episodes and events.
	SubjectHasEpisodes
	SubjectHasAnOpenEpisode
	SubjectHasFOBTEpisodes
	LatestEpisodeType
	LatestEpisodeSubType
	LatestEpisodeStatus
	LatestEpisodeStatusReason
	LatestEpisodeStarted
	LatestEpisodeEnded
	LatestEpisodeRecallCalculationMethod
	LatestEpisodeRecallEpisodeType
	LatestEpisodeHasReferralDate
	LatestEpisodeHasDiagnosisDate
	LatestEpisodeDiagnosisDateReason
	LatestEpisodeCompletedSatisfactorily
	LatestEpisodeHasCancerAuditDataset
	LatestEpisodeHasColonoscopyAssessmentDataset
	LatestEpisodeHasMDTDataset
	LatestEpisodeHasSignificantKitResult
	LatestEpisodeIncludesEventCode
	LatestEpisodeIncludesEventStatus
	LatestEventStatus
	SubjectHasEventStatus
	SubjectDoesNotHaveEventStatus
	LatestEpisodeAccumulatedResult
	LatestEpisodeKitClass
	LatestEpisodeHasDiagnosticTest
	ScreeningReferralType
	LatestEpisodeReferralDate
	LatestEpisodeDiagnosisDate
	LatestEpisodeStatusDateOfChange
	LatestEpisodeHasInvestigationDataset
	LatestEpisodeHasPathologyDataset
	LatestEpisodeHasRadiologyDataset
	LatestInvestigationDataset
	SubjectHasClosedEpisodes
	SubjectHasSurveillanceEpisodes
	SubjectHasLynchEpisodes
	SubjectHasBowelScopeEpisodes
	SubjectHasEventCode
	SubjectDoesNotHaveEventCode

	// Test kits.
	WhichTestKit
	KitHasBeenRead
	KitResult
	KitHasAnalyserResultCode
	SubjectHasKitNotes
	KitHasBeenLogged
	KitLoggedDate
	KitIssueDate
	KitReadDate
	KitTypeClass
	SubjectHasFITKits
	SubjectHasUnloggedKits
	SubjectHasLoggedFITKits

	// Diagnostic tests.
	WhichDiagnosticTest
	DiagnosticTestConfirmedType
	DiagnosticTestProposedType
	DiagnosticTestIsVoid
	DiagnosticTestHasResult
	DiagnosticTestHasOutcome
	DiagnosticTestIntendedExtent
	SubjectHasDiagnosticTests
	HasDiagnosticTestContainingPolyp
	DiagnosticTestDate
	DiagnosticTestResultDate
	DiagnosticTestHasPolyp
	DatasetIntendedExtent
	DatasetActualExtent
	SubjectHasDiagnosticTestType

	// Appointments.
	WhichAppointment
	AppointmentType
	AppointmentStatus
	AppointmentDate
	AppointmentCancelled
	AppointmentBookedDate
	SubjectHasAppointments
	LatestEpisodeHasAppointment

	// Lynch.
	SubjectHasLynchDiagnosis
	LynchDiagnosisDate
	LynchLastColonoscopyDate
	LynchIncidentEpisode
	LynchDiagnosisType

	// Notify messages.
	NotifyQueuedMessageStatus
	NotifyArchivedMessageStatus
	SubjectHasQueuedNotifyMessages

	// Surveillance review.
	HasExistingSurveillanceReviewCase
	SurveillanceReviewStatus
	SurveillanceReviewType
	SurveillanceReviewCreatedDate
	SurveillanceReviewClosedDate

	// Supporting notes.
	SubjectHasSubjectNotes
	SubjectHasAdditionalCareNotes
	SubjectHasEpisodeNotes
	SubjectNoteCount
	AdditionalCareNoteCount
	KitNoteCount

	// Symptomatic procedures.
	SubjectHasSymptomaticProcedures
	SymptomaticProcedureResult
	SymptomaticProcedureDate

	keyCount
)

// catalogue is indexed by Key. Order here is the order `subsel keys` prints.
var catalogue = [keyCount]Info{
	NHSNumber:                                  {Description: "nhs number", AllowNegation: true},
	SubjectAge:                                 {Description: "subject age"},
	SubjectAgeYearsDays:                        {Description: "subject age (y/d)"},
	DateOfBirth:                                {Description: "date of birth"},
	DateOfDeath:                                {Description: "date of death"},
	Gender:                                     {Description: "gender", AllowNegation: true},
	SubjectHasTemporaryAddress:                 {Description: "subject has temporary address"},
	HasGPPractice:                              {Description: "has gp practice"},
	HasGPPracticeAssociatedWithScreeningCentre: {Description: "has gp practice associated with screening centre code"},
	SubjectScreeningCentreCode:                 {Description: "subject screening centre code", AllowNegation: true},
	SubjectHubCode:                             {Description: "subject hub code", AllowNegation: true},
	SubjectHasUnprocessedSSPIUpdates:           {Description: "subject has unprocessed sspi updates"},
	SubjectHasUserDOBUpdates:                   {Description: "subject has user dob updates"},
	Subject75thBirthday:                        {Description: "subject 75th birthday"},
	SubjectLowerFOBTAge:                        {Description: "subject lower fobt age"},
	SubjectLowerLynchAge:                       {Description: "subject lower lynch age"},
	DateOfDeathRemoval:                         {Description: "date of death removal"},
	InvitedSinceAgeExtension:                   {Description: "invited since age extension"},
	GPPracticeCode:                             {Description: "gp practice code", AllowNegation: true},

	ScreeningStatus:                 {Description: "screening status", AllowNegation: true},
	ScreeningStatusReason:           {Description: "screening status reason", AllowNegation: true},
	ScreeningStatusDateOfChange:     {Description: "screening status date of change"},
	PreviousScreeningStatus:         {Description: "previous screening status", AllowNegation: true},
	ScreeningDueDate:                {Description: "screening due date"},
	ScreeningDueDateReason:          {Description: "screening due date reason", AllowNegation: true},
	ScreeningDueDateDateOfChange:    {Description: "screening due date date of change"},
	CalculatedScreeningDueDate:      {Description: "calculated screening due date"},
	PreviousScreeningDueDate:        {Description: "previous screening due date"},
	SurveillanceDueDate:             {Description: "surveillance due date"},
	SurveillanceDueDateReason:       {Description: "surveillance due date reason", AllowNegation: true},
	SurveillanceDueDateDateOfChange: {Description: "surveillance due date date of change"},
	CalculatedSurveillanceDueDate:   {Description: "calculated surveillance due date"},
	PreviousSurveillanceDueDate:     {Description: "previous surveillance due date"},
	LynchDueDate:                    {Description: "lynch due date"},
	LynchDueDateReason:              {Description: "lynch due date reason", AllowNegation: true},
	LynchDueDateDateOfChange:        {Description: "lynch due date date of change"},
	CalculatedLynchDueDate:          {Description: "calculated lynch due date"},
	PreviousLynchDueDate:            {Description: "previous lynch due date"},
	ManualCeaseRequested:            {Description: "manual cease requested"},
	CeasedConfirmationDate:          {Description: "ceased confirmation date"},
	CeasedConfirmationDetails:       {Description: "ceased confirmation details", AllowNegation: true},
	CeasedConfirmationUserID:        {Description: "ceased confirmation user id"},
	ClinicalReasonForCease:          {Description: "clinical reason for cease", AllowNegation: true},

	SubjectHasEpisodes:                           {Description: "subject has episodes"},
	SubjectHasAnOpenEpisode:                      {Description: "subject has an open episode"},
	SubjectHasFOBTEpisodes:                       {Description: "subject has fobt episodes"},
	LatestEpisodeType:                            {Description: "latest episode type", AllowNegation: true},
	LatestEpisodeSubType:                         {Description: "latest episode sub type", AllowNegation: true},
	LatestEpisodeStatus:                          {Description: "latest episode status", AllowNegation: true},
	LatestEpisodeStatusReason:                    {Description: "latest episode status reason", AllowNegation: true},
	LatestEpisodeStarted:                         {Description: "latest episode started"},
	LatestEpisodeEnded:                           {Description: "latest episode ended"},
	LatestEpisodeRecallCalculationMethod:         {Description: "latest episode recall calculation method", AllowNegation: true},
	LatestEpisodeRecallEpisodeType:               {Description: "latest episode recall episode type", AllowNegation: true},
	LatestEpisodeHasReferralDate:                 {Description: "latest episode has referral date"},
	LatestEpisodeHasDiagnosisDate:                {Description: "latest episode has diagnosis date"},
	LatestEpisodeDiagnosisDateReason:             {Description: "latest episode diagnosis date reason", AllowNegation: true},
	LatestEpisodeCompletedSatisfactorily:         {Description: "latest episode completed satisfactorily"},
	LatestEpisodeHasCancerAuditDataset:           {Description: "latest episode has cancer audit dataset"},
	LatestEpisodeHasColonoscopyAssessmentDataset: {Description: "latest episode has colonoscopy assessment dataset"},
	LatestEpisodeHasMDTDataset:                   {Description: "latest episode has mdt dataset"},
	LatestEpisodeHasSignificantKitResult:         {Description: "latest episode has significant kit result"},
	LatestEpisodeIncludesEventCode:               {Description: "latest episode includes event code", AllowMultipleValues: true},
	LatestEpisodeIncludesEventStatus:             {Description: "latest episode includes event status", AllowMultipleValues: true},
	LatestEventStatus:                            {Description: "latest event status", AllowNegation: true},
	SubjectHasEventStatus:                        {Description: "subject has event status", AllowMultipleValues: true},
	SubjectDoesNotHaveEventStatus:                {Description: "subject does not have event status", AllowMultipleValues: true},
	LatestEpisodeAccumulatedResult:               {Description: "latest episode accumulated result", AllowNegation: true},
	LatestEpisodeKitClass:                        {Description: "latest episode kit class"},
	LatestEpisodeHasDiagnosticTest:               {Description: "latest episode has diagnostic test"},
	ScreeningReferralType:                        {Description: "screening referral type", AllowNegation: true},
	LatestEpisodeReferralDate:                    {Description: "latest episode referral date"},
	LatestEpisodeDiagnosisDate:                   {Description: "latest episode diagnosis date"},
	LatestEpisodeStatusDateOfChange:              {Description: "latest episode status date of change"},
	LatestEpisodeHasInvestigationDataset:         {Description: "latest episode has investigation dataset"},
	LatestEpisodeHasPathologyDataset:             {Description: "latest episode has pathology dataset"},
	LatestEpisodeHasRadiologyDataset:             {Description: "latest episode has radiology dataset"},
	LatestInvestigationDataset:                   {Description: "latest investigation dataset"},
	SubjectHasClosedEpisodes:                     {Description: "subject has closed episodes"},
	SubjectHasSurveillanceEpisodes:               {Description: "subject has surveillance episodes"},
	SubjectHasLynchEpisodes:                      {Description: "subject has lynch episodes"},
	SubjectHasBowelScopeEpisodes:                 {Description: "subject has bowel scope episodes"},
	SubjectHasEventCode:                          {Description: "subject has event code", AllowMultipleValues: true},
	SubjectDoesNotHaveEventCode:                  {Description: "subject does not have event code", AllowMultipleValues: true},

	WhichTestKit:             {Description: "which test kit"},
	KitHasBeenRead:           {Description: "kit has been read"},
	KitResult:                {Description: "kit result", AllowNegation: true},
	KitHasAnalyserResultCode: {Description: "kit has analyser result code"},
	SubjectHasKitNotes:       {Description: "subject has kit notes"},
	KitHasBeenLogged:         {Description: "kit has been logged"},
	KitLoggedDate:            {Description: "kit logged date"},
	KitIssueDate:             {Description: "kit issue date"},
	KitReadDate:              {Description: "kit read date"},
	KitTypeClass:             {Description: "kit type class", AllowNegation: true},
	SubjectHasFITKits:        {Description: "subject has fit kits"},
	SubjectHasUnloggedKits:   {Description: "subject has unlogged kits"},
	SubjectHasLoggedFITKits:  {Description: "subject has logged fit kits"},

	WhichDiagnosticTest:              {Description: "which diagnostic test", AllowMultipleValues: true},
	DiagnosticTestConfirmedType:      {Description: "diagnostic test confirmed type", AllowMultipleValues: true, AllowNegation: true},
	DiagnosticTestProposedType:       {Description: "diagnostic test proposed type", AllowMultipleValues: true, AllowNegation: true},
	DiagnosticTestIsVoid:             {Description: "diagnostic test is void", AllowMultipleValues: true},
	DiagnosticTestHasResult:          {Description: "diagnostic test has result", AllowMultipleValues: true, AllowNegation: true},
	DiagnosticTestHasOutcome:         {Description: "diagnostic test has outcome", AllowMultipleValues: true, AllowNegation: true},
	DiagnosticTestIntendedExtent:     {Description: "diagnostic test intended extent", AllowMultipleValues: true, AllowNegation: true},
	SubjectHasDiagnosticTests:        {Description: "subject has diagnostic tests"},
	HasDiagnosticTestContainingPolyp: {Description: "has diagnostic test containing polyp"},
	DiagnosticTestDate:               {Description: "diagnostic test date", AllowMultipleValues: true},
	DiagnosticTestResultDate:         {Description: "diagnostic test result date", AllowMultipleValues: true},
	DiagnosticTestHasPolyp:           {Description: "diagnostic test has polyp", AllowMultipleValues: true},
	DatasetIntendedExtent:            {Description: "dataset intended extent", AllowMultipleValues: true, AllowNegation: true},
	DatasetActualExtent:              {Description: "dataset actual extent", AllowMultipleValues: true, AllowNegation: true},
	SubjectHasDiagnosticTestType:     {Description: "subject has diagnostic test type", AllowMultipleValues: true},

	WhichAppointment:  {Description: "which appointment"},
	AppointmentType:   {Description: "appointment type", AllowNegation: true},
	AppointmentStatus: {Description: "appointment status", AllowNegation: true},
	AppointmentDate:   {Description: "appointment date"},
	AppointmentCancelled:        {Description: "appointment cancelled"},
	AppointmentBookedDate:       {Description: "appointment booked date"},
	SubjectHasAppointments:      {Description: "subject has appointments"},
	LatestEpisodeHasAppointment: {Description: "latest episode has appointment"},

	SubjectHasLynchDiagnosis: {Description: "subject has lynch diagnosis"},
	LynchDiagnosisDate:       {Description: "lynch diagnosis date"},
	LynchLastColonoscopyDate: {Description: "lynch last colonoscopy date"},
	LynchIncidentEpisode:     {Description: "lynch incident episode"},
	LynchDiagnosisType:       {Description: "lynch diagnosis type", AllowNegation: true},

	NotifyQueuedMessageStatus:   {Description: "notify queued message status", AllowMultipleValues: true},
	NotifyArchivedMessageStatus: {Description: "notify archived message status", AllowMultipleValues: true},
	SubjectHasQueuedNotifyMessages: {Description: "subject has queued notify messages"},

	HasExistingSurveillanceReviewCase: {Description: "has existing surveillance review case"},
	SurveillanceReviewStatus:          {Description: "surveillance review status", AllowNegation: true},
	SurveillanceReviewType:            {Description: "surveillance review type", AllowNegation: true},
	SurveillanceReviewCreatedDate:     {Description: "surveillance review created date"},
	SurveillanceReviewClosedDate:      {Description: "surveillance review closed date"},

	SubjectHasSubjectNotes:        {Description: "subject has subject notes"},
	SubjectHasAdditionalCareNotes: {Description: "subject has additional care notes"},
	SubjectHasEpisodeNotes:        {Description: "subject has episode notes"},
	SubjectNoteCount:              {Description: "subject note count"},
	AdditionalCareNoteCount:       {Description: "additional care note count"},
	KitNoteCount:                  {Description: "kit note count"},

	SubjectHasSymptomaticProcedures: {Description: "subject has symptomatic procedures"},
	SymptomaticProcedureResult:      {Description: "symptomatic procedure result", AllowNegation: true},
	SymptomaticProcedureDate:        {Description: "symptomatic procedure date"},
}

func init() {
	for i := range catalogue {
		catalogue[i].Key = Key(i)
	}
}

// Keys returns every catalogue key in declaration order.
func Keys() []Key {
	keys := make([]Key, keyCount)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// Info returns the catalogue entry for k.
func (k Key) Info() Info {
	if k < 0 || k >= keyCount {
		return Info{Key: k}
	}
	return catalogue[k]
}

// String returns the canonical description.
func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown key"
	}
	return catalogue[k].Description
}
