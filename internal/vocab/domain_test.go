package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/subsel/internal/ir"
)

func TestDomain_Resolve(t *testing.T) {
	d := Default().ScreeningStatus

	tests := []struct {
		label string
		want  ir.ResolvedValue
	}{
		{"Surveillance", ir.NewConcrete(int64(4006))},
		{"surveillance", ir.NewConcrete(int64(4006))},
		{"  SURVEILLANCE ", ir.NewConcrete(int64(4006))},
		{"lynch   self-referral", ir.NewConcrete(int64(307130))},
		{"unchanged", ir.Unchanged{}},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := d.Resolve(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDomain_SentinelsGated(t *testing.T) {
	// Screening status only enables "unchanged".
	_, err := Default().ScreeningStatus.Resolve("null")
	require.Error(t, err)
	assert.True(t, ir.IsKind(err, ir.ErrUnresolvableDomainValue))

	v, err := Default().ScreeningStatusReason.Resolve("NULL")
	require.NoError(t, err)
	assert.Equal(t, ir.Null{}, v)

	v, err = Default().ScreeningStatusReason.Resolve("Not Null")
	require.NoError(t, err)
	assert.Equal(t, ir.NotNull{}, v)

	_, err = Default().Gender.Resolve("not null")
	assert.True(t, ir.IsKind(err, ir.ErrUnresolvableDomainValue))
}

func TestDomain_ResolveUnknown(t *testing.T) {
	_, err := Default().ScreeningStatus.Resolve(" Bogus ")
	require.Error(t, err)

	var ce *ir.CriterionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ir.ErrUnresolvableDomainValue, ce.Kind)
	assert.Equal(t, "Bogus", ce.Value)
	assert.Contains(t, ce.Message, "screening status")
}

func TestDomain_StringCodes(t *testing.T) {
	v, err := Default().KitResult.Resolve("weak positive")
	require.NoError(t, err)
	assert.Equal(t, ir.NewConcrete("WEAK_POSITIVE"), v)
}

func TestDomain_CodedEntries(t *testing.T) {
	d := Default().EventStatus
	byCode, ok := d.Lookup("A8")
	require.True(t, ok)
	byLabel, ok := d.Lookup("a8 - abnormal")
	require.True(t, ok)
	assert.Equal(t, byCode, byLabel)
}

func TestDomain_Labels(t *testing.T) {
	labels := Default().AppointmentStatus.Labels()
	assert.Equal(t, "Booked", labels[0])
	assert.Contains(t, labels, "DNA")
}

func TestYesNo(t *testing.T) {
	for _, label := range []string{"Yes", "y", "TRUE"} {
		got, err := YesNo(label)
		require.NoError(t, err)
		assert.True(t, got, label)
	}
	for _, label := range []string{"no", "N", " false "} {
		got, err := YesNo(label)
		require.NoError(t, err)
		assert.False(t, got, label)
	}

	_, err := YesNo("maybe")
	assert.True(t, ir.IsKind(err, ir.ErrUnresolvableDomainValue))
}
