package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/subsel/internal/criteria"
)

// KeyInfo is one catalogue entry in command output.
type KeyInfo struct {
	Key            string `json:"key"`
	MultipleValues bool   `json:"multiple_values"`
	Negation       bool   `json:"negation"`
}

// NewKeysCommand creates the keys command.
func NewKeysCommand(rootOpts *RootOptions) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List criteria keys",
		Long: `List every criteria key the compiler accepts, in catalogue order,
with whether it may be repeated and whether it accepts NOT:.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(rootOpts, filter, cmd)
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "only keys containing this text")

	return cmd
}

func runKeys(opts *RootOptions, filter string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	keys := []KeyInfo{}
	for _, info := range criteria.Default().All() {
		if filter != "" && !strings.Contains(info.Description, strings.ToLower(filter)) {
			continue
		}
		keys = append(keys, KeyInfo{
			Key:            info.Description,
			MultipleValues: info.AllowMultipleValues,
			Negation:       info.AllowNegation,
		})
	}

	if formatter.IsJSON() {
		return formatter.Success(keys)
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tREPEATABLE\tNOT:")
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", k.Key, yesNo(k.MultipleValues), yesNo(k.Negation))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(formatter.Writer, "\n%d key(s)\n", len(keys))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
