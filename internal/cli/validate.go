package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/roach88/subsel/internal/suite"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	VocabularyDB string
}

// SelectionCheck is the validation outcome of one selection.
type SelectionCheck struct {
	File      string            `json:"file"`
	Selection string            `json:"selection"`
	Valid     bool              `json:"valid"`
	Code      string            `json:"code,omitempty"`
	Message   string            `json:"message,omitempty"`
	Details   *CriterionDetails `json:"details,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool             `json:"valid"`
	Checks []SelectionCheck `json:"checks"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <selection-file-or-dir>",
		Short: "Check that selections compile",
		Long: `Compile every selection in a file, or in every selection file under a
directory, and report which are rejected without printing SQL.

Unlike compile, validate keeps going after a rejected selection so that
one run reports every problem.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.VocabularyDB, "vocab-db", "", "vocabulary database path")

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	files, err := selectionFiles(opts.fs(), path)
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

	result := ValidationResult{Valid: true, Checks: []SelectionCheck{}}
	for _, file := range files {
		formatter.VerboseLog("Validating %s", file)
		f, err := suite.LoadFile(opts.fs(), file)
		if err != nil {
			result.Valid = false
			result.Checks = append(result.Checks, SelectionCheck{
				File:    file,
				Code:    ErrCodeLoadFailed,
				Message: err.Error(),
			})
			continue
		}
		for _, sel := range f.Selections {
			check := SelectionCheck{File: file, Selection: sel.Name, Valid: true}
			if _, err := compiler.Compile(sel.Criteria, compileOptions(sel, 0, opts.defaultRows())); err != nil {
				check.Valid = false
				check.Code = MapErrorCode(err)
				check.Message = err.Error()
				check.Details = criterionDetails(err)
				result.Valid = false
			}
			result.Checks = append(result.Checks, check)
		}
	}

	if formatter.IsJSON() {
		if err := formatter.Response(CLIResponse{Status: status(result.Valid), Data: result}); err != nil {
			return err
		}
	} else {
		writeValidation(formatter, result)
	}

	if !result.Valid {
		return NewExitError(ExitFailure, "validation failed")
	}
	return nil
}

func writeValidation(f *OutputFormatter, result ValidationResult) {
	failed := 0
	for _, c := range result.Checks {
		name := c.File
		if c.Selection != "" {
			name = fmt.Sprintf("%s: %s", c.File, c.Selection)
		}
		if c.Valid {
			fmt.Fprintf(f.Writer, "%s %s\n", Mark(true), name)
			continue
		}
		failed++
		fmt.Fprintf(f.Writer, "%s %s\n  %s: %s\n", Mark(false), name, c.Code, c.Message)
	}
	fmt.Fprintln(f.Writer)
	if failed == 0 {
		fmt.Fprintf(f.Writer, "%s All %d selection(s) valid\n", Mark(true), len(result.Checks))
		return
	}
	fmt.Fprintf(f.Writer, "%s %d of %d check(s) failed\n", Mark(false), failed, len(result.Checks))
}

func status(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}

// selectionFiles expands path to the selection files it names.
func selectionFiles(fs afero.Fs, path string) ([]string, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return nil, &cliError{code: ErrCodeNotFound, msg: fmt.Sprintf("path not found: %s", path)}
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	files, err := suite.FindFiles(fs, path)
	if err != nil {
		return nil, &cliError{code: ErrCodeScanError, msg: "error scanning directory", err: err}
	}
	if len(files) == 0 {
		return nil, &cliError{code: ErrCodeNoFiles, msg: fmt.Sprintf("no selection files found in %s", path)}
	}
	return files, nil
}
