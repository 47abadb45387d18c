package vocab

func n(label string, id int64) Entry[int64] { return Entry[int64]{Label: label, Value: id} }
func c(label string, code string) Entry[string] { return Entry[string]{Label: label, Value: code} }

// coded expands a "<code> - <description>" row into two entries so that
// either the bare code or the full label resolves.
func coded(code, description string, id int64) []Entry[int64] {
	return []Entry[int64]{n(code, id), n(code+" - "+description, id)}
}

func concat(groups ...[]Entry[int64]) []Entry[int64] {
	var out []Entry[int64]
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func buildDefault() *Set {
	return &Set{
		ScreeningStatus: newDomain("screening status", AllowUnchanged,
			n("Call", 4001),
			n("Inactive", 4002),
			n("Opt-in", 4003),
			n("Recall", 4004),
			n("Self-referral", 4005),
			n("Surveillance", 4006),
			n("Seeking Further Data", 4007),
			n("Ceased", 4008),
			n("Bowel Scope", 4009),
			n("Lynch Surveillance", 307129),
			n("Lynch Self-referral", 307130),
		),
		ScreeningStatusReason: newDomain("screening status reason", AllowAll,
			n("Age Extension", 307135),
			n("Eligible to be invited for FS screening", 20217),
			n("Failsafe Trawl", 43057),
			n("Implausible Address", 43051),
			n("Informed Dissent", 43052),
			n("Informal Death", 43053),
			n("Opt (Back) into Screening Programme", 11317),
			n("Outside Screening Population", 43054),
			n("Recall", 43055),
			n("Reinstate Screening", 43056),
			n("Request Screening Episode", 20412),
			n("Reset Seeking Further Data to Inactive", 307124),
			n("Selected for Lynch Surveillance", 307131),
		),
		DueDateReason: newDomain("screening due date reason", AllowAll,
			n("Awaiting Failsafe", 307123),
			n("Ceased", 20227),
			n("Discharge from Surveillance - Age", 20225),
			n("Discharge from Surveillance - Clinical Decision", 20226),
			n("Initial Due Date", 11382),
			n("Opt (Back) into Screening Programme", 11383),
			n("Recall", 11384),
			n("Reopened Episode", 11385),
			n("Reset After Cease", 20228),
			n("Result Referred for Cancer Treatment", 11386),
			n("Result Referred to Surveillance", 11387),
			n("Self-referral", 11388),
			n("Schedule Next Round", 307136),
		),
		SurveillanceDueReason: newDomain("surveillance due date reason", AllowAll,
			n("Ceased", 9135),
			n("Discharge from Screening and Surveillance - Clinical Decision", 9180),
			n("Discharge from Surveillance - Cannot Contact Patient", 9136),
			n("Discharge from Surveillance - National Guidelines", 9137),
			n("Discharge from Surveillance - Patient Choice", 9138),
			n("Reinstate Surveillance", 9140),
			n("Result - Cancer", 9141),
			n("Result - High Risk Findings", 9142),
			n("Result - LNPCP", 9143),
			n("Schedule Surveillance", 9144),
		),
		LynchDueDateReason: newDomain("lynch due date reason", AllowAll,
			n("Lynch Surveillance", 307071),
			n("Ceased", 307072),
			n("Discharge from Lynch - Clinical Decision", 307073),
			n("Reinstate Lynch Surveillance", 307074),
			n("Result - Cancer", 307075),
			n("Age Less Than Lower Age Limit", 307076),
		),
		ClinicalCeaseReason: newDomain("clinical reason for cease", AllowNullable,
			n("Already Involved in Surveillance Programme Outside BCSP", 11236),
			n("Currently Under Treatment", 11239),
			n("Clinical Assessment Indicates Ceased", 20064),
			n("Reasons Outside BCSP", 11237),
			n("No Functioning Colon", 11240),
			n("Terminal Illness", 11241),
			n("Under Care of GP", 11242),
		),
		Gender: newDomain("gender", 0,
			n("Male", 130),
			n("M", 130),
			n("Female", 131),
			n("F", 131),
			n("Indeterminate", 132),
			n("Not Known", 160),
			n("U", 160),
		),
		EpisodeType: newDomain("episode type", AllowNullable,
			n("FOBT", 11350),
			n("Surveillance", 11351),
			n("Bowel Scope", 200640),
			n("Lynch Surveillance", 305526),
			n("Lynch", 305526),
		),
		EpisodeSubType: newDomain("episode sub type", AllowNullable,
			n("Routine Screening", 11352),
			n("Routine Surveillance", 11353),
			n("Lynch Surveillance", 305528),
			n("Lynch Self-referral", 305529),
			n("Self-referral", 11354),
			n("Recall", 11355),
		),
		EpisodeStatus: newDomain("episode status", 0,
			n("Open", 11452),
			n("Closed", 11453),
			n("Paused", 11454),
		),
		EpisodeStatusReason: newDomain("episode status reason", AllowNullable,
			n("Clinical Reason", 11480),
			n("Death", 11481),
			n("Deceased", 11481),
			n("Episode Complete", 11482),
			n("Informal Death", 11483),
			n("Informed Dissent", 11484),
			n("No Response", 11485),
			n("Non Response", 11485),
			n("Opted Out During Episode", 11486),
			n("Withdrawn", 11487),
		),
		RecallCalculationMethod: newDomain("recall calculation method", AllowNullable,
			n("Diagnostic Test Date", 200433),
			n("Episode End Date", 200434),
			n("Date of Last Colonoscopy", 200435),
			n("Lynch Diagnosis Date", 305531),
		),
		DiagnosisDateReason: newDomain("diagnosis date reason", AllowNullable,
			n("Patient Informed", 305521),
			n("Reasonable Time Elapsed", 305522),
			n("Patient Choice", 305523),
			n("Clinical Decision", 305524),
			n("Date of Death", 305525),
		),
		EventStatus: newDomain("event status", AllowNullable, concat(
			coded("S1", "Selected for Screening", 11197),
			coded("S9", "Pre-invitation Sent", 11198),
			coded("S10", "Invitation & Test Kit Sent", 11199),
			coded("S19", "Reminder of Initial Test Sent", 11213),
			coded("S43", "Kit Returned and Logged (Initial Test)", 11223),
			coded("S2", "Normal", 11220),
			coded("S158", "Subject Discharge Sent", 20173),
			coded("S61", "Normal (Weak Positive)", 20182),
			coded("A8", "Abnormal", 11132),
			coded("A25", "Practitioner Clinic 1st Appointment Booked", 11114),
			coded("A99", "Suitable for Endoscopic Test", 20014),
			coded("A59", "Invited for Diagnostic Test", 11139),
			coded("A318", "Post-investigation Appointment NOT Required - Result Letter Created", 20420),
			coded("J10", "Attended Colonoscopy Assessment Appointment", 11111),
			coded("C203", "Episode Closed", 20195),
			coded("G1", "Selected for Lynch Surveillance", 305609),
			coded("G2", "Lynch Pre-invitation Sent", 305610),
		)...),
		EventCode: newDomain("event code", 0, concat(
			coded("E1", "Record Registered", 11071),
			coded("E3", "Kit Returned", 11073),
			coded("E4", "Kit Logged", 11074),
			coded("E9", "Pre-invitation Sent", 11079),
			coded("E10", "Invitation Sent", 11080),
			coded("E20", "Result Letter Sent", 11090),
			coded("E63", "Practitioner Clinic Appointment Booked", 11133),
			coded("E99", "Diagnostic Test Result Recorded", 11169),
			coded("E160", "Episode Closed", 20230),
		)...),
		AccumulatedResult: newDomain("accumulated result", AllowNullable,
			n("Definitive Normal FOBT Outcome", 11271),
			n("Definitive Abnormal FOBT Outcome", 11270),
			n("Weak Positive", 11272),
			n("Normal", 11271),
			n("Abnormal", 11270),
		),
		KitTypeClass: newDomain("kit class", 0,
			n("gFOBT", 800),
			n("Guaiac", 800),
			n("FIT", 801),
			n("Immunochemical", 801),
		),
		DiagnosticTestType: newDomain("diagnostic test type", AllowNullable,
			n("Colonoscopy", 15001),
			n("Flexible Sigmoidoscopy", 15002),
			n("CT Colonography", 15004),
			n("Limited Colonoscopy", 17996),
			n("Endoscopic Mucosal Resection", 15005),
		),
		IntendedExtent: newDomain("intended extent", AllowNullable,
			n("Anus", 17236),
			n("Rectum", 17237),
			n("Sigmoid Colon", 17238),
			n("Descending Colon", 17239),
			n("Splenic Flexure", 17240),
			n("Transverse Colon", 17241),
			n("Hepatic Flexure", 17242),
			n("Ascending Colon", 17243),
			n("Caecum", 17244),
			n("Ileum", 17245),
			n("Not Known", 17246),
		),
		TestResult: newDomain("diagnostic test result", AllowNullable,
			n("Normal", 20311),
			n("Abnormal", 20312),
			n("High-risk findings", 20313),
			n("LNPCP", 20314),
			n("Cancer", 20315),
			n("Incomplete", 20316),
			n("Failed", 20317),
		),
		TestOutcome: newDomain("diagnostic test outcome", AllowNullable,
			n("Investigations Complete", 20361),
			n("Refer Another Diagnostic Test", 20362),
			n("Refer Surveillance (BCSP)", 20363),
			n("Refer Symptomatic", 20364),
			n("Return to FOBT", 20365),
			n("Refer MDT", 20366),
		),
		AppointmentType: newDomain("appointment type", 0,
			n("Colonoscopy Assessment", 6001),
			n("Post-investigation", 6002),
			n("Surveillance Assessment", 6003),
			n("Lynch Assessment", 305600),
		),
		AppointmentStatus: newDomain("appointment status", 0,
			n("Booked", 6201),
			n("Attended", 6202),
			n("Cancelled", 6203),
			n("Did Not Attend", 6204),
			n("DNA", 6204),
			n("Attended - Unfit", 6205),
		),
		ScreeningReferralType: newDomain("screening referral type", AllowNullable,
			n("Direct to Colonoscopy", 305690),
			n("Practitioner Clinic", 305691),
			n("Symptomatic", 305692),
			n("Surveillance", 305693),
			n("Lynch", 305694),
		),
		SymptomaticResult: newDomain("symptomatic procedure result", AllowNullable,
			n("Normal", 305700),
			n("Abnormal", 305701),
			n("Polyps Detected", 305702),
			n("Cancer Detected", 305703),
			n("Not Performed", 305704),
		),
		ReviewStatus: newDomain("surveillance review status", AllowNullable,
			n("Awaiting Review", 305710),
			n("In Review", 305711),
			n("Review Complete", 305712),
			n("Closed", 305713),
		),
		ReviewType: newDomain("surveillance review type", AllowNullable,
			n("Age Discharge Review", 305720),
			n("Clinical Review", 305721),
			n("Guideline Review", 305722),
		),
		LynchDiagnosisType: newDomain("lynch diagnosis type", AllowNullable,
			n("MLH1", 305730),
			n("MSH2", 305731),
			n("MSH6", 305732),
			n("PMS2", 305733),
			n("EPCAM", 305734),
		),

		KitResult: newDomain("kit result", AllowNullable,
			c("Normal", "NORMAL"),
			c("Abnormal", "ABNORMAL"),
			c("Weak Positive", "WEAK_POSITIVE"),
			c("Spoilt", "SPOILT"),
			c("Technical Fail", "TECHNICAL_FAIL"),
		),
		NotifyStatus: newDomain("notify message status", 0,
			c("new", "new"),
			c("requested", "requested"),
			c("sending", "sending"),
			c("delivered", "delivered"),
			c("failed", "failed"),
		),
		DatasetState: newDomain("dataset state", 0,
			c("No", "NONE"),
			c("Yes - incomplete", "INCOMPLETE"),
			c("Yes - complete", "COMPLETE"),
		),
		GPPracticeState: newDomain("gp practice state", 0,
			c("No", "NONE"),
			c("Yes", "ANY"),
			c("Yes - active", "ACTIVE"),
			c("Yes - inactive", "INACTIVE"),
		),
		ManualCeaseState: newDomain("manual cease requested", 0,
			c("No", "NONE"),
			c("Yes - awaiting disclaimer", "AWAITING_DISCLAIMER"),
			c("Yes - disclaimer received", "DISCLAIMER_RECEIVED"),
			c("Yes", "ANY"),
		),
		LynchIncident: newDomain("lynch incident episode", 0,
			c("No", "NONE"),
			c("Latest episode", "LATEST"),
			c("Earlier episode", "EARLIER"),
			c("Yes", "ANY"),
		),
		WhichKit: newDomain("test kit selector", 0,
			c("any kit in any episode", "ANY_ANY"),
			c("any kit in latest episode", "ANY_LATEST"),
			c("only kit issued in latest episode", "ONLY_LATEST"),
			c("latest kit in latest episode", "LATEST_LATEST"),
			c("first kit in latest episode", "FIRST_LATEST"),
			c("latest unlogged kit", "LATEST_UNLOGGED"),
			c("latest logged kit", "LATEST_LOGGED"),
			c("latest read kit", "LATEST_READ"),
		),
		WhichTest: newDomain("diagnostic test selector", 0,
			c("any test in any episode", "ANY_ANY"),
			c("any test in latest episode", "ANY_LATEST"),
			c("only test in latest episode", "ONLY_LATEST"),
			c("only not void test in latest episode", "ONLY_NOT_VOID_LATEST"),
			c("latest test in latest episode", "LATEST_LATEST"),
			c("latest not void test in latest episode", "LATEST_NOT_VOID_LATEST"),
			c("earliest not void test in latest episode", "EARLIEST_NOT_VOID_LATEST"),
			c("earlier test in latest episode", "EARLIER"),
			c("later test in latest episode", "LATER"),
		),
		WhichAppointment: newDomain("appointment selector", 0,
			c("any appointment in any episode", "ANY_ANY"),
			c("any appointment in latest episode", "ANY_LATEST"),
			c("latest appointment in latest episode", "LATEST_LATEST"),
		),
		ReferralDateState: newDomain("referral date state", 0,
			c("No", "NONE"),
			c("Yes", "ANY"),
			c("Past", "PAST"),
			c("More than 28 days ago", "OVER_28_DAYS"),
			c("Within the last 28 days", "WITHIN_28_DAYS"),
		),
		DiagnosisDateState: newDomain("diagnosis date state", 0,
			c("No", "NONE"),
			c("Yes", "ANY"),
			c("No - but has date of death", "NONE_WITH_DEATH"),
		),
	}
}
