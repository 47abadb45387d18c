package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/roach88/subsel/internal/ir"
	"github.com/roach88/subsel/internal/selection"
	"github.com/roach88/subsel/internal/store"
	"github.com/roach88/subsel/internal/suite"
	"github.com/roach88/subsel/internal/vocab"
)

// Harness runs scenarios. The zero value is not usable; see New.
type Harness struct {
	fs     afero.Fs
	logger *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithFs sets the filesystem selection files are read from.
// Default: the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(h *Harness) {
		h.fs = fs
	}
}

// WithLogger sets the logger passed to the compiler.
// Default: a logger that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// New creates a Harness.
func New(opts ...Option) *Harness {
	h := &Harness{
		fs:     afero.NewOsFs(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a default Harness.
func Run(scenario *Scenario) (*Result, error) {
	return New().Run(context.Background(), scenario)
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Resolve criteria and context (inline or from a selection file)
// 2. Import vocabulary rows into a fresh in-memory store
// 3. Compile
// 4. Evaluate assertions
//
// A compile failure is part of the result, not an error. Errors are
// reserved for scenarios that cannot be run at all.
func (h *Harness) Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	sel, err := h.resolve(scenario)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}

	set, err := h.vocabulary(ctx, scenario)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}

	compiler := selection.New(
		selection.WithVocabulary(set),
		selection.WithLogger(h.logger),
	)

	result := NewResult()
	q, err := compiler.Compile(sel.Criteria, selection.Options{
		User:    sel.User,
		Subject: sel.Subject,
		Rows:    sel.Rows,
	})
	if err != nil {
		result.CompileError = err
	} else {
		result.Query = q
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	h.logger.Info("scenario completed",
		"scenario", scenario.Name,
		"pass", result.Pass,
		"kind", ir.KindOf(err))
	return result, nil
}

// resolve returns the selection the scenario compiles. Scenario-level
// rows, user and subject override those of a selection file.
func (h *Harness) resolve(scenario *Scenario) (*suite.Selection, error) {
	sel := &suite.Selection{Name: scenario.Name}

	if scenario.File != "" {
		f, err := suite.LoadFile(h.fs, scenario.File)
		if err != nil {
			return nil, err
		}
		found, ok := f.Find(scenario.Selection)
		if !ok {
			return nil, fmt.Errorf("selection %q not found in %s (have %v)", scenario.Selection, scenario.File, f.Names())
		}
		sel = found
	} else {
		crit, err := suite.DecodeCriteria(&scenario.Criteria)
		if err != nil {
			return nil, fmt.Errorf("criteria: %w", err)
		}
		sel.Criteria = crit
	}

	if scenario.Rows != 0 {
		sel.Rows = scenario.Rows
	}
	if scenario.User != nil {
		sel.User = scenario.User
	}
	if scenario.Subject != nil {
		sel.Subject = scenario.Subject
	}
	return sel, nil
}

// vocabulary imports the scenario's rows into an in-memory store and reads
// the resulting vocabulary back, so rows pass the same validation as a
// real import.
func (h *Harness) vocabulary(ctx context.Context, scenario *Scenario) (*vocab.Set, error) {
	if len(scenario.Vocabulary) == 0 {
		return vocab.Default(), nil
	}

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	rows := make([]vocab.Override, len(scenario.Vocabulary))
	for i, r := range scenario.Vocabulary {
		rows[i] = r.Override()
	}
	if _, err := st.ImportOverrides(ctx, "scenario:"+scenario.Name, rows); err != nil {
		return nil, fmt.Errorf("import vocabulary: %w", err)
	}
	return st.Vocabulary(ctx, vocab.Default())
}
