package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/subsel/internal/store"
	"github.com/roach88/subsel/internal/vocab"
)

// VocabOptions holds flags shared by the vocab subcommands.
type VocabOptions struct {
	*RootOptions
	VocabularyDB string
}

// ValidValue is one stored identifier in command output.
type ValidValue struct {
	Domain string `json:"domain" yaml:"domain"`
	Label  string `json:"label" yaml:"label"`
	ID     int64  `json:"id" yaml:"id"`
}

// ImportSummary describes a completed import.
type ImportSummary struct {
	ID       string `json:"id"`
	Seq      int64  `json:"seq"`
	Source   string `json:"source"`
	Rows     int    `json:"rows"`
	Checksum string `json:"checksum"`
}

// NewVocabCommand creates the vocab command and its subcommands.
func NewVocabCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &VocabOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "Manage the vocabulary snapshot",
		Long: `Manage the local vocabulary snapshot: identifiers that replace the
built-in ones when a deployment's valid values differ.`,
	}
	cmd.PersistentFlags().StringVar(&opts.VocabularyDB, "vocab-db", "", "vocabulary database path")

	importCmd := &cobra.Command{
		Use:   "import <values.yaml>",
		Short: "Import identifiers from a YAML list",
		Long: `Import a YAML list of {domain, label, id} rows in one transaction.
Every row must name a known domain; one bad row rejects the whole file.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVocabImport(opts, args[0], cmd)
		},
	}

	var domain string
	listCmd := &cobra.Command{
		Use:           "list",
		Short:         "List stored identifiers",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVocabList(opts, domain, cmd)
		},
	}
	listCmd.Flags().StringVar(&domain, "domain", "", "only this domain")

	domainsCmd := &cobra.Command{
		Use:           "domains",
		Short:         "List domains that accept identifiers",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := opts.formatter(cmd)
			names := vocab.Default().NumericDomains()
			if formatter.IsJSON() {
				return formatter.Success(names)
			}
			for _, n := range names {
				fmt.Fprintln(formatter.Writer, n)
			}
			return nil
		},
	}

	cmd.AddCommand(importCmd, listCmd, domainsCmd)
	return cmd
}

func (o *VocabOptions) dbPath() (string, error) {
	if o.VocabularyDB != "" {
		return o.VocabularyDB, nil
	}
	if p := o.vocabularyDB(); p != "" {
		return p, nil
	}
	return "", &cliError{code: ErrCodeNotFound, msg: "no vocabulary database: pass --vocab-db or set vocabulary_db"}
}

func runVocabImport(opts *VocabOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	dbPath, err := opts.dbPath()
	if err != nil {
		return reportCommandError(formatter, err)
	}

	data, err := afero.ReadFile(opts.fs(), path)
	if err != nil {
		return reportCommandError(formatter, &cliError{code: ErrCodeNotFound, msg: "read values file", err: err})
	}
	var values []ValidValue
	if err := yaml.Unmarshal(data, &values); err != nil {
		return reportCommandError(formatter, &cliError{code: ErrCodeLoadFailed, msg: "parse values file", err: err})
	}
	rows := make([]vocab.Override, len(values))
	for i, v := range values {
		rows[i] = vocab.Override{Domain: v.Domain, Label: v.Label, ID: v.ID}
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return reportCommandError(formatter, &cliError{code: ErrCodeStoreFailed, msg: "open vocabulary database", err: err})
	}
	defer st.Close()

	imp, err := st.ImportOverrides(cmd.Context(), path, rows)
	if err != nil {
		// Rejected rows are a validation failure, not a command error.
		_ = formatter.Error(ErrCodeStoreFailed, err.Error(), nil)
		return WrapExitError(ExitFailure, "import rejected", err)
	}
	opts.logger().Info("vocabulary imported", "id", imp.ID, "rows", imp.Rows, "checksum", imp.Checksum)

	summary := ImportSummary{ID: imp.ID, Seq: imp.Seq, Source: imp.Source, Rows: imp.Rows, Checksum: imp.Checksum}
	if formatter.IsJSON() {
		return formatter.Success(summary)
	}
	fmt.Fprintf(formatter.Writer, "%s Imported %d value(s) from %s (import #%d, checksum %.12s)\n",
		Mark(true), summary.Rows, path, summary.Seq, summary.Checksum)
	return nil
}

func runVocabList(opts *VocabOptions, domain string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	dbPath, err := opts.dbPath()
	if err != nil {
		return reportCommandError(formatter, err)
	}
	if ok, _ := afero.Exists(opts.fs(), dbPath); !ok {
		return reportCommandError(formatter, &cliError{code: ErrCodeNotFound, msg: fmt.Sprintf("vocabulary database not found: %s", dbPath)})
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return reportCommandError(formatter, &cliError{code: ErrCodeStoreFailed, msg: "open vocabulary database", err: err})
	}
	defer st.Close()

	var rows []vocab.Override
	if domain != "" {
		rows, err = st.ValidValues(cmd.Context(), domain)
	} else {
		rows, err = st.LoadOverrides(cmd.Context())
	}
	if err != nil {
		return reportCommandError(formatter, &cliError{code: ErrCodeStoreFailed, msg: "read vocabulary", err: err})
	}

	values := make([]ValidValue, len(rows))
	for i, r := range rows {
		values[i] = ValidValue{Domain: r.Domain, Label: r.Label, ID: r.ID}
	}
	if formatter.IsJSON() {
		return formatter.Success(values)
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DOMAIN\tLABEL\tID")
	for _, v := range values {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", v.Domain, v.Label, v.ID)
	}
	return tw.Flush()
}
