package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_Explain(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want DateExplanation
	}{
		{
			name: "relative past",
			args: []string{"3 months ago"},
			want: DateExplanation{Expression: "3 months ago", Comparator: "=", Kind: "today-3m+0d", Date: "2023-12-15"},
		},
		{
			name: "relative future pinned",
			args: []string{">= 2 years later"},
			want: DateExplanation{Expression: ">= 2 years later", Comparator: ">=", Kind: "today+24m+0d", Date: "2026-03-15", Pin: "not before today"},
		},
		{
			name: "last birthday",
			args: []string{"last birthday", "--dob", "1960-05-04"},
			want: DateExplanation{Expression: "last birthday", Comparator: "=", Kind: "last birthday", Date: "2023-05-04"},
		},
		{
			name: "sentinel",
			args: []string{"null"},
			want: DateExplanation{Expression: "null", Comparator: "=", Kind: "sentinel", Sentinel: "null"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"date", "--format", "json"}, tt.args...)
			out, _, err := newCLIEnv().run(args...)
			require.NoError(t, err)

			var resp struct {
				Data DateExplanation `json:"data"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &resp))
			assert.Equal(t, tt.want, resp.Data)
		})
	}
}

func TestDate_Text(t *testing.T) {
	out, _, err := newCLIEnv().run("date", "> 3 days ago")
	require.NoError(t, err)
	assert.Equal(t, "> 2024-03-12  (today+0m-3d)\nand not after today\n", out)
}

func TestDate_Unparseable(t *testing.T) {
	out, _, err := newCLIEnv().run("date", "sometime soon")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error ["+ErrCodeUnparseableDate+"]")
}

func TestDate_BirthdayNeedsDOB(t *testing.T) {
	_, _, err := newCLIEnv().run("date", "last birthday")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
