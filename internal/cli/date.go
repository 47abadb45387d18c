package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/subsel/internal/criteria"
	"github.com/roach88/subsel/internal/dates"
	"github.com/roach88/subsel/internal/ir"
)

// DateExplanation is the evaluation of one date expression.
type DateExplanation struct {
	Expression string `json:"expression"`
	Comparator string `json:"comparator"`
	Kind       string `json:"kind"`
	Date       string `json:"date,omitempty"`
	Sentinel   string `json:"sentinel,omitempty"`
	Pin        string `json:"pin,omitempty"`
}

// NewDateCommand creates the date command.
func NewDateCommand(rootOpts *RootOptions) *cobra.Command {
	var dob string

	cmd := &cobra.Command{
		Use:   "date <expression>",
		Short: "Explain a date criterion value",
		Long: `Resolve a date criterion value the way the compiler does and show the
calendar date it stands for today.

Examples:
  subsel date "3 months ago"
  subsel date ">= 2 years later"
  subsel date "last birthday" --dob 1960-05-04`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDate(rootOpts, args[0], dob, cmd)
		},
	}

	cmd.Flags().StringVar(&dob, "dob", "", "date of birth for birthday expressions (yyyy-mm-dd)")

	return cmd
}

func runDate(opts *RootOptions, value, dob string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	var birth time.Time
	if dob != "" {
		t, err := time.Parse(time.DateOnly, dob)
		if err != nil {
			return reportCommandError(formatter, &cliError{code: ErrCodeGeneric, msg: "invalid --dob", err: err})
		}
		birth = t
	}

	parsed, err := criteria.ParseValue(value)
	if err == nil && parsed.Skip {
		err = ir.NewError(ir.ErrUnparseableDate, "value is commented out")
	}
	var res dates.Resolution
	if err == nil {
		cmp := parsed.Comparator
		if parsed.Negated {
			cmp = ir.NE
		}
		res, err = dates.Default().Resolve(cmp, parsed.Literal)
	}
	if err != nil {
		return outputCriterionError(formatter, "date", err)
	}

	out := DateExplanation{Expression: value, Comparator: res.Comparator.SQL()}
	if expr, ok := res.Expr(); ok {
		switch expr.(type) {
		case dates.Birthday, dates.LastBirthday:
			if dob == "" {
				return reportCommandError(formatter, &cliError{code: ErrCodeGeneric, msg: "birthday expressions need --dob"})
			}
		}
		out.Kind = expr.String()
		out.Date = expr.Evaluate(opts.clock().Now(), birth).Format(time.DateOnly)
	} else {
		out.Kind = "sentinel"
		out.Sentinel = ir.Describe(res.Value)
	}
	switch res.Pin {
	case dates.PinPast:
		out.Pin = "not after today"
	case dates.PinFuture:
		out.Pin = "not before today"
	}

	if formatter.IsJSON() {
		return formatter.Success(out)
	}
	if out.Date != "" {
		fmt.Fprintf(formatter.Writer, "%s %s  (%s)\n", out.Comparator, out.Date, out.Kind)
	} else {
		fmt.Fprintf(formatter.Writer, "%s %s\n", out.Comparator, out.Sentinel)
	}
	if out.Pin != "" {
		fmt.Fprintf(formatter.Writer, "and %s\n", out.Pin)
	}
	return nil
}
