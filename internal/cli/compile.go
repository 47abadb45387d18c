package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/roach88/subsel/internal/ir"
	"github.com/roach88/subsel/internal/selection"
	"github.com/roach88/subsel/internal/suite"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Selection    string // compile only this selection
	Rows         int    // row bound override; zero keeps file/config values
	VocabularyDB string // vocabulary snapshot; overrides config
	Output       string // output file path
}

// CompiledSelection is one compiled selection in command output.
type CompiledSelection struct {
	Name        string         `json:"name"`
	Text        string         `json:"text"`
	Params      map[string]any `json:"params"`
	Fingerprint string         `json:"fingerprint"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <selection-file>",
		Short: "Compile selections to Oracle SQL",
		Long: `Compile the selections in a CUE or YAML file to parameterized Oracle SQL.

Each selection compiles to one query with named binds (:p1, :p2, ...).
A rejected criterion stops that selection and names the key and value.

Exit codes:
  0 - All selections compiled
  1 - A criterion was rejected
  2 - Command error (missing file, unreadable vocabulary, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Selection, "selection", "s", "", "compile only the named selection")
	cmd.Flags().IntVar(&opts.Rows, "rows", 0, "row bound (overrides file and config)")
	cmd.Flags().StringVar(&opts.VocabularyDB, "vocab-db", "", "vocabulary database path")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	sels, err := opts.loadSelections(path, opts.Selection)
	if err != nil {
		return reportCommandError(formatter, err)
	}

	dbPath := opts.VocabularyDB
	if dbPath == "" {
		dbPath = opts.vocabularyDB()
	}
	compiler, err := opts.newCompiler(cmd.Context(), dbPath)
	if err != nil {
		return reportCommandError(formatter, err)
	}

	var compiled []CompiledSelection
	for _, sel := range sels {
		formatter.VerboseLog("Compiling selection: %s (%d criteria)", sel.Name, len(sel.Criteria))

		q, err := compiler.Compile(sel.Criteria, compileOptions(sel, opts.Rows, opts.defaultRows()))
		if err != nil {
			return outputCriterionError(formatter, sel.Name, err)
		}
		fp, err := ir.Fingerprint(q)
		if err != nil {
			return reportCommandError(formatter, err)
		}
		compiled = append(compiled, CompiledSelection{
			Name:        sel.Name,
			Text:        q.Text,
			Params:      q.Params,
			Fingerprint: fp,
		})
	}

	if opts.Output != "" {
		var b strings.Builder
		writeSQL(&b, compiled)
		if err := afero.WriteFile(opts.fs(), opts.Output, []byte(b.String()), 0o644); err != nil {
			return reportCommandError(formatter, &cliError{code: ErrCodeWriteFailed, msg: "writing output file", err: err})
		}
	}

	if formatter.IsJSON() {
		return formatter.Success(compiled)
	}
	if opts.Output != "" {
		fmt.Fprintf(formatter.Writer, "%s Compiled %d selection(s) to %s\n", Mark(true), len(compiled), opts.Output)
		return nil
	}
	writeSQL(formatter.Writer, compiled)
	return nil
}

// compileOptions merges row bounds: flag, then selection, then config.
func compileOptions(sel suite.Selection, flagRows, configRows int) selection.Options {
	rows := sel.Rows
	if flagRows != 0 {
		rows = flagRows
	}
	if rows == 0 {
		rows = configRows
	}
	return selection.Options{User: sel.User, Subject: sel.Subject, Rows: rows}
}

// writeSQL renders compiled selections as a SQL script: a comment header
// per selection, the query, and its binds as comments.
func writeSQL(w io.Writer, compiled []CompiledSelection) {
	for i, c := range compiled {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "-- selection: %s\n", c.Name)
		fmt.Fprintln(w, c.Text)
		q := ir.CompiledQuery{Text: c.Text, Params: c.Params}
		for _, name := range q.ParamNames() {
			fmt.Fprintf(w, "-- :%s = %s\n", name, bindLiteral(c.Params[name]))
		}
	}
}

func bindLiteral(v any) string {
	if s, ok := v.(string); ok {
		return "'" + strings.ReplaceAll(s, "'", "''") + "'"
	}
	return fmt.Sprint(v)
}

// outputCriterionError reports a rejected criterion (exit code 1).
func outputCriterionError(formatter *OutputFormatter, selection string, err error) error {
	code := MapErrorCode(err)
	_ = formatter.Error(code, fmt.Sprintf("selection %q: %v", selection, err), criterionDetails(err))
	return WrapExitError(ExitFailure, code, err)
}
