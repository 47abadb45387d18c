package selection

import (
	"bytes"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/subsel/internal/ir"
	"github.com/roach88/subsel/internal/vocab"
)

const baseFrom = "FROM screening_subject_t ss\nINNER JOIN sd_contact_t c ON c.nhs_number = ss.subject_nhs_number"

func compile(t *testing.T, opts Options, crit ...ir.Criterion) *ir.CompiledQuery {
	t.Helper()
	q, err := New().Compile(crit, opts)
	require.NoError(t, err)
	return q
}

func compileErr(t *testing.T, opts Options, crit ...ir.Criterion) *ir.CriterionError {
	t.Helper()
	_, err := New().Compile(crit, opts)
	require.Error(t, err)
	var ce *ir.CriterionError
	require.ErrorAs(t, err, &ce)
	return ce
}

func TestCompile_NoCriteria(t *testing.T) {
	q := compile(t, Options{})
	assert.Contains(t, q.Text, baseFrom+"\nWHERE 1=1\nFETCH FIRST 1 ROWS ONLY")
	assert.Empty(t, q.Params)
}

func TestCompile_NHSNumber(t *testing.T) {
	q := compile(t, Options{}, ir.C("nhs number", "9163626810"))

	assert.Equal(t, map[string]any{"p1": "9163626810"}, q.Params)
	assert.Contains(t, q.Text, baseFrom+"\nWHERE 1=1\nAND c.nhs_number = :p1\n")
	assert.Equal(t, 1, strings.Count(q.Text, "JOIN"))
}

func TestCompile_NHSNumberSpaces(t *testing.T) {
	q := compile(t, Options{}, ir.C("NHS Number", "916 362 6810"))
	assert.Equal(t, "9163626810", q.Params["p1"])
}

func TestCompile_ScreeningStatus(t *testing.T) {
	q := compile(t, Options{}, ir.C("screening status", "Surveillance"))

	want, ok := vocab.Default().ScreeningStatus.Lookup("Surveillance")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"p1": want}, q.Params)
	assert.Equal(t, int64(4006), q.Params["p1"])
	assert.Contains(t, q.Text, "AND ss.screening_status_id = :p1\n")
	assert.Equal(t, 1, strings.Count(q.Text, "JOIN"))
}

func TestCompile_TemporaryAddressNo(t *testing.T) {
	q := compile(t, Options{}, ir.C("subject has temporary address", "No"))

	assert.Contains(t, q.Text, "\nLEFT OUTER JOIN sd_address_t adr ON adr.contact_id = c.contact_id AND adr.address_type = 13043 AND adr.effective_from IS NOT NULL\n")
	assert.Contains(t, q.Text, "\nAND adr.address_id IS NULL\n")
	assert.Empty(t, q.Params)
}

func TestCompile_AgeYearsDays(t *testing.T) {
	q := compile(t, Options{}, ir.C("subject age (y/d)", "60/0"))
	assert.Contains(t, q.Text, "\nAND c.date_of_birth = ADD_MONTHS(TRUNC(SYSDATE), -720) - 0\n")
}

func TestCompile_AgeYearsDaysComparatorFlips(t *testing.T) {
	q := compile(t, Options{}, ir.C("subject age (y/d)", ">= 75/10"))
	assert.Contains(t, q.Text, "\nAND c.date_of_birth <= ADD_MONTHS(TRUNC(SYSDATE), -900) - 10\n")
}

func TestCompile_AgeBounds(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"subject age", "201"},
		{"subject age", "99999999999999999999"},
		{"subject age", "between 60 and 9223372036854775808"},
		{"subject age", "between 60 and 500"},
		{"subject age (y/d)", "768614336404564651/0"},
		{"subject age (y/d)", "201/0"},
		{"subject age (y/d)", "60/400"},
	}
	for _, tt := range tests {
		t.Run(tt.key+" "+tt.value, func(t *testing.T) {
			ce := compileErr(t, Options{}, ir.C(tt.key, tt.value))
			assert.Equal(t, ir.ErrUnresolvableDomainValue, ce.Kind)
		})
	}

	q := compile(t, Options{}, ir.C("subject age (y/d)", "200/366"))
	assert.Contains(t, q.Text, "ADD_MONTHS(TRUNC(SYSDATE), -2400) - 366\n")
}

func TestCompile_UnknownKey(t *testing.T) {
	ce := compileErr(t, Options{}, ir.C("invalid key", "value"))
	assert.Equal(t, ir.ErrUnknownCriteriaKey, ce.Kind)
	assert.Equal(t, "invalid key", ce.Key)
	assert.Equal(t, "value", ce.Value)
}

func TestCompile_ErrorNamesCriterion(t *testing.T) {
	ce := compileErr(t, Options{},
		ir.C("nhs number", "9163626810"),
		ir.C("screening status", "Nonsense"))
	assert.Equal(t, ir.ErrUnresolvableDomainValue, ce.Kind)
	assert.Equal(t, "screening status", ce.Key)
	assert.Equal(t, "Nonsense", ce.Value)
}

func TestCompile_CommentedOutCriterion(t *testing.T) {
	q := compile(t, Options{}, ir.C("screening status", "#Surveillance"), ir.C("gender", ""))
	assert.Empty(t, q.Params)
	assert.NotContains(t, q.Text, "screening_status_id =")
}

func TestCompile_Rows(t *testing.T) {
	q := compile(t, Options{Rows: 25})
	assert.True(t, strings.HasSuffix(q.Text, "FETCH FIRST 25 ROWS ONLY"))

	_, err := New().Compile(nil, Options{Rows: -1})
	require.Error(t, err)
	assert.True(t, ir.IsKind(err, ir.ErrInvalidOptions))
}

func TestCompile_MissingContext(t *testing.T) {
	tests := []struct {
		name string
		crit ir.Criterion
	}{
		{"unchanged status", ir.C("screening status", "unchanged")},
		{"unchanged due date", ir.C("screening due date", "unchanged")},
		{"user's hub", ir.C("subject hub code", "user's hub")},
		{"user's sc", ir.C("subject screening centre code", "user's sc")},
		{"user's pio id", ir.C("ceased confirmation user id", "user's pio id")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce := compileErr(t, Options{}, tt.crit)
			assert.Equal(t, ir.ErrMissingContext, ce.Kind)
		})
	}
}

func TestCompile_Unchanged(t *testing.T) {
	subject := &ir.Subject{ScreeningStatusID: ir.Int64(4001)}

	q := compile(t, Options{Subject: subject}, ir.C("screening status", "unchanged"))
	assert.Contains(t, q.Text, "AND ss.screening_status_id = :p1\n")
	assert.Equal(t, int64(4001), q.Params["p1"])

	q = compile(t, Options{Subject: subject}, ir.C("screening status reason", "unchanged"))
	assert.Contains(t, q.Text, "AND ss.ss_reason_for_change_id IS NULL\n")

	ce := compileErr(t, Options{Subject: subject}, ir.C("clinical reason for cease", "unchanged"))
	assert.Equal(t, ir.ErrUnresolvableDomainValue, ce.Kind)

	ce = compileErr(t, Options{Subject: subject}, ir.C("date of birth", "unchanged"))
	assert.Equal(t, ir.ErrUnsupportedModifier, ce.Kind)
}

func TestCompile_NullValues(t *testing.T) {
	q := compile(t, Options{}, ir.C("screening status reason", "null"))
	assert.Contains(t, q.Text, "AND ss.ss_reason_for_change_id IS NULL\n")

	q = compile(t, Options{}, ir.C("screening status reason", "NOT:not null"))
	assert.Contains(t, q.Text, "AND ss.ss_reason_for_change_id IS NULL\n")

	ce := compileErr(t, Options{}, ir.C("screening status reason", "NOT:null"))
	assert.Equal(t, ir.ErrUnsupportedModifier, ce.Kind)

	q = compile(t, Options{}, ir.C("subject hub code", "null"))
	assert.Contains(t, q.Text, "AND c.hub_id IS NULL\n")
	assert.NotContains(t, q.Text, "JOIN org")
	assert.Empty(t, q.Params)

	q = compile(t, Options{}, ir.C("subject hub code", "not null"))
	assert.Contains(t, q.Text, "AND c.hub_id IS NOT NULL\n")

	ce = compileErr(t, Options{}, ir.C("subject hub code", "NOT:null"))
	assert.Equal(t, ir.ErrUnsupportedModifier, ce.Kind)
}

func TestCompile_ComparatorOnDomainKey(t *testing.T) {
	ce := compileErr(t, Options{}, ir.C("screening status", "> Call"))
	assert.Equal(t, ir.ErrUnsupportedModifier, ce.Kind)
}

func TestCompile_EpisodesValue(t *testing.T) {
	ce := compileErr(t, Options{}, ir.C("subject has episodes", "maybe"))
	assert.Equal(t, ir.ErrUnresolvableDomainValue, ce.Kind)
}

func TestCompile_SubjectAge(t *testing.T) {
	q := compile(t, Options{}, ir.C("subject age", "> 74"))
	assert.Contains(t, q.Text, "AND FLOOR(MONTHS_BETWEEN(TRUNC(SYSDATE), c.date_of_birth) / 12) > 74\n")

	q = compile(t, Options{}, ir.C("subject age", "between 60 and 74"))
	assert.Contains(t, q.Text, "AND FLOOR(MONTHS_BETWEEN(TRUNC(SYSDATE), c.date_of_birth) / 12) >= 60\nAND FLOOR(MONTHS_BETWEEN(TRUNC(SYSDATE), c.date_of_birth) / 12) <= 74\n")

	ce := compileErr(t, Options{}, ir.C("subject age", "sixty"))
	assert.Equal(t, ir.ErrUnresolvableDomainValue, ce.Kind)
}

func TestCompile_RelativeDatePin(t *testing.T) {
	q := compile(t, Options{}, ir.C("screening due date", "> 2 years ago"))
	assert.Contains(t, q.Text, "AND ss.screening_due_date > ADD_MONTHS(TRUNC(SYSDATE), -24)\nAND ss.screening_due_date <= TRUNC(SYSDATE)\n")

	q = compile(t, Options{}, ir.C("screening due date", ">= 3 months later"))
	assert.Contains(t, q.Text, "AND ss.screening_due_date >= ADD_MONTHS(TRUNC(SYSDATE), 3)\nAND ss.screening_due_date >= TRUNC(SYSDATE)\n")
}

func TestCompile_UnparseableDate(t *testing.T) {
	ce := compileErr(t, Options{}, ir.C("date of birth", "the day after never"))
	assert.Equal(t, ir.ErrUnparseableDate, ce.Kind)
	assert.Equal(t, "date of birth", ce.Key)
}

func TestCompile_LatestEpisodeJoin(t *testing.T) {
	q := compile(t, Options{},
		ir.C("latest episode type", "FOBT"),
		ir.C("latest episode status", "Open"))

	assert.Equal(t, 1, strings.Count(q.Text, "LEFT OUTER JOIN ep_subject_episode_t ep ON"))
	assert.Contains(t, q.Text, "ep.subject_epis_id = (SELECT MAX(epx.subject_epis_id) FROM ep_subject_episode_t epx WHERE epx.screening_subject_id = ss.screening_subject_id)")
	assert.Contains(t, q.Text, "AND ep.episode_type_id = :p1\nAND ep.episode_status_id = :p2\n")
	assert.Equal(t, map[string]any{"p1": int64(11350), "p2": int64(11452)}, q.Params)
}

func TestCompile_KitSelector(t *testing.T) {
	q := compile(t, Options{},
		ir.C("which test kit", "any kit in any episode"),
		ir.C("kit result", "Abnormal"))
	assert.Contains(t, q.Text, "\nINNER JOIN tk_items_t tk ON tk.screening_subject_id = ss.screening_subject_id\n")
	assert.Contains(t, q.Text, "\nORDER BY tk.kitid DESC\n")
	assert.Equal(t, "ABNORMAL", q.Params["p1"])

	ce := compileErr(t, Options{},
		ir.C("kit result", "Abnormal"),
		ir.C("which test kit", "the kit under the sofa"))
	assert.Equal(t, ir.ErrUnresolvableDomainValue, ce.Kind)
	assert.Equal(t, "which test kit", ce.Key)
}

// predicates returns the WHERE lines of q, sorted.
func predicates(q *ir.CompiledQuery) []string {
	var out []string
	for _, line := range strings.Split(q.Text, "\n") {
		if strings.HasPrefix(line, "AND ") {
			out = append(out, line)
		}
	}
	sort.Strings(out)
	return out
}

func TestCompile_SelectorOrder(t *testing.T) {
	tests := []struct {
		name     string
		selector ir.Criterion
		user     ir.Criterion
		join     string
	}{
		{
			name:     "test kit",
			selector: ir.C("which test kit", "latest kit in latest episode"),
			user:     ir.C("kit result", "Abnormal"),
			join:     "SELECT MAX(tkx.kitid)",
		},
		{
			name:     "appointment",
			selector: ir.C("which appointment", "latest appointment in latest episode"),
			user:     ir.C("appointment status", "Attended"),
			join:     "SELECT MAX(apx.appointment_id)",
		},
		{
			name:     "diagnostic test",
			selector: ir.C("which diagnostic test", "latest not void test in latest episode"),
			user:     ir.C("diagnostic test confirmed type", "Colonoscopy"),
			join:     "SELECT MAX(xt1x.ext_test_id)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := compile(t, Options{}, tt.selector, tt.user)
			after := compile(t, Options{}, tt.user, tt.selector)

			assert.Equal(t, before.Text, after.Text)
			assert.Equal(t, before.Params, after.Params)
			assert.Equal(t, predicates(before), predicates(after))
			assert.Contains(t, after.Text, tt.join)
		})
	}
}

func TestCompile_DiagnosticTestOrdinals(t *testing.T) {
	q := compile(t, Options{},
		ir.C("which diagnostic test", "latest not void test in latest episode"),
		ir.C("diagnostic test confirmed type", "Colonoscopy"),
		ir.C("which diagnostic test", "earlier test in latest episode"),
		ir.C("diagnostic test confirmed type", "NOT:Colonoscopy"))

	assert.Contains(t, q.Text, "INNER JOIN external_tests_t xt1 ON")
	assert.Contains(t, q.Text, "INNER JOIN external_tests_t xt2 ON")
	assert.Contains(t, q.Text, "xt2.ext_test_id < xt1.ext_test_id")
	assert.Contains(t, q.Text, "AND xt1.confirmed_test_id = :p1\nAND xt2.confirmed_test_id != :p2\n")

	ce := compileErr(t, Options{}, ir.C("which diagnostic test", "later test in latest episode"))
	assert.Equal(t, ir.ErrUnsupportedModifier, ce.Kind)
}

func TestCompile_NotifyMessage(t *testing.T) {
	q := compile(t, Options{}, ir.C("notify queued message status", "S1 (S1) - new"))
	assert.Contains(t, q.Text, "AND EXISTS (SELECT 1 FROM notify_message_queue nq WHERE nq.nhs_number = c.nhs_number AND nq.event_status_id = :p1 AND nq.message_code = :p2 AND nq.message_status = :p3)\n")
	assert.Equal(t, map[string]any{"p1": int64(11197), "p2": "S1", "p3": "new"}, q.Params)

	q = compile(t, Options{}, ir.C("notify archived message status", "none"))
	assert.Contains(t, q.Text, "AND NOT EXISTS (SELECT 1 FROM notify_message_record nr WHERE nr.nhs_number = c.nhs_number)\n")

	ce := compileErr(t, Options{}, ir.C("notify queued message status", "S1 new"))
	assert.Equal(t, ir.ErrUnresolvableDomainValue, ce.Kind)
}

func TestCompile_RepeatedExistsGetDistinctAliases(t *testing.T) {
	q := compile(t, Options{},
		ir.C("subject has event status", "S1"),
		ir.C("subject has event status", "S10"))
	assert.Contains(t, q.Text, "FROM ep_events_t sev WHERE")
	assert.Contains(t, q.Text, "FROM ep_events_t sev_2 WHERE")
}

func TestCompile_VocabularyOverride(t *testing.T) {
	set, err := vocab.Default().WithOverrides([]vocab.Override{{Domain: "screening status", Label: "Surveillance", ID: 9999}})
	require.NoError(t, err)

	q, err := New(WithVocabulary(set)).Compile([]ir.Criterion{ir.C("screening status", "Surveillance")}, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(9999), q.Params["p1"])
}

func TestCompile_BuiltinLabels(t *testing.T) {
	set := vocab.Default()
	_, ok := set.EpisodeType.Lookup("FOBT")
	assert.True(t, ok)
	_, ok = set.EpisodeStatusReason.Lookup("Episode Complete")
	assert.True(t, ok)
	for _, label := range significantKitResults {
		_, ok = set.KitResult.Lookup(label)
		assert.True(t, ok, label)
	}

	// A vocabulary missing a label the compiler relies on fails loudly.
	broken := *set
	broken.EpisodeType = set.ScreeningStatus
	broken.EpisodeStatusReason = set.ScreeningStatus
	broken.KitResult = set.NotifyStatus
	c := New(WithVocabulary(&broken))
	for _, cr := range []ir.Criterion{
		ir.C("subject has fobt episodes", "yes"),
		ir.C("latest episode completed satisfactorily", "no"),
		ir.C("latest episode has significant kit result", "yes"),
	} {
		_, err := c.Compile([]ir.Criterion{cr}, Options{})
		require.Error(t, err, cr.Key)
		assert.Contains(t, err.Error(), "has no built-in label", cr.Key)
	}
}

func TestCompile_PurityAcrossCompilers(t *testing.T) {
	crit := []ir.Criterion{
		ir.C("screening status", "Call"),
		ir.C("latest episode type", "FOBT"),
		ir.C("which test kit", "only kit issued in latest episode"),
		ir.C("kit has been read", "no"),
	}
	a, err := New().Compile(crit, Options{Rows: 10})
	require.NoError(t, err)
	b, err := New().Compile(crit, Options{Rows: 10})
	require.NoError(t, err)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("compile not deterministic (-first +second):\n%s", diff)
	}
}

func TestCompile_Concurrent(t *testing.T) {
	c := New()
	crit := []ir.Criterion{ir.C("latest episode type", "FOBT"), ir.C("kit result", "Normal")}
	want, err := c.Compile(crit, Options{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*ir.CompiledQuery, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.Compile(crit, Options{})
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Empty(t, cmp.Diff(want, got))
	}
}

func TestCompile_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := New(WithLogger(logger)).Compile([]ir.Criterion{ir.C("gender", "Female")}, Options{})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "criterion dispatched")
	assert.Contains(t, buf.String(), "query compiled")
}

func TestStage_String(t *testing.T) {
	assert.Equal(t, "INIT", StageInit.String())
	assert.Equal(t, "ASSEMBLED", StageAssembled.String())
	assert.Equal(t, "UNKNOWN", Stage(99).String())
}

func TestCompile_LowerAge(t *testing.T) {
	q := compile(t, Options{}, ir.C("subject lower fobt age", "default"))
	assert.Contains(t, q.Text, "AND ss.fobt_lower_age IS NULL\n")

	q = compile(t, Options{}, ir.C("subject lower lynch age", "< 35"))
	assert.Contains(t, q.Text, "AND ss.lynch_lower_age < 35\n")

	ce := compileErr(t, Options{}, ir.C("subject lower fobt age", "250"))
	assert.Equal(t, ir.ErrUnresolvableDomainValue, ce.Kind)
}

func TestCompile_NoteCount(t *testing.T) {
	q := compile(t, Options{}, ir.C("subject note count", "> 2"))
	assert.Contains(t, q.Text, "AND (SELECT COUNT(*) FROM supporting_notes_t snc WHERE snc.screening_subject_id = ss.screening_subject_id AND snc.type_id = 4111 AND snc.obsolete_date IS NULL) > 2\n")

	ce := compileErr(t, Options{}, ir.C("kit note count", "several"))
	assert.Equal(t, ir.ErrUnresolvableDomainValue, ce.Kind)
}

func TestCompile_DatasetExtentFollowsTest(t *testing.T) {
	q := compile(t, Options{},
		ir.C("which diagnostic test", "latest not void test in latest episode"),
		ir.C("dataset intended extent", "Caecum"),
		ir.C("which diagnostic test", "earlier test in latest episode"),
		ir.C("dataset actual extent", "NOT:Caecum"))

	assert.Contains(t, q.Text, "LEFT OUTER JOIN ds_colonoscopy_t dsc1 ON dsc1.ext_test_id = xt1.ext_test_id")
	assert.Contains(t, q.Text, "LEFT OUTER JOIN ds_colonoscopy_t dsc2 ON dsc2.ext_test_id = xt2.ext_test_id")
	assert.Contains(t, q.Text, "AND dsc1.intended_extent_id = :p1\nAND dsc2.actual_extent_id != :p2\n")
	assert.Equal(t, map[string]any{"p1": int64(17244), "p2": int64(17244)}, q.Params)
}

func TestCompile_LatestInvestigationDataset(t *testing.T) {
	q := compile(t, Options{}, ir.C("latest investigation dataset", "No"))
	assert.Contains(t, q.Text, "AND NOT EXISTS (SELECT 1 FROM ds_colonoscopy_t lid WHERE lid.ext_test_id = (SELECT MAX(lidx.ext_test_id) FROM external_tests_t lidx WHERE lidx.subject_epis_id = ep.subject_epis_id AND lidx.void = 'N') AND lid.deleted_flag = 'N')\n")
}

func TestCompile_SurveillanceReviewJoin(t *testing.T) {
	q := compile(t, Options{},
		ir.C("surveillance review status", "Awaiting Review"),
		ir.C("surveillance review type", "NOT:Clinical Review"))

	assert.Equal(t, 1, strings.Count(q.Text, "LEFT OUTER JOIN surveillance_review_t rev ON"))
	assert.Contains(t, q.Text, "rev.review_id = (SELECT MAX(revx.review_id) FROM surveillance_review_t revx WHERE revx.screening_subject_id = ss.screening_subject_id)")
	assert.Contains(t, q.Text, "AND rev.review_status_id = :p1\nAND rev.review_case_type_id != :p2\n")
}

func TestCompile_InvitedSinceAgeExtension(t *testing.T) {
	q := compile(t, Options{}, ir.C("invited since age extension", "no"))
	assert.Contains(t, q.Text, "AND ss.ss_reason_for_change_id = :p1\n")
	assert.Contains(t, q.Text, "AND NOT EXISTS (SELECT 1 FROM ep_events_t aev WHERE aev.screening_subject_id = ss.screening_subject_id AND aev.event_status_id = :p2 AND aev.datestamp >= ss.ss_status_change_date)\n")
	assert.Equal(t, map[string]any{"p1": int64(307135), "p2": int64(11199)}, q.Params)
}
