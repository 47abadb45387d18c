package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/roach88/subsel/internal/selection"
	"github.com/roach88/subsel/internal/store"
	"github.com/roach88/subsel/internal/suite"
	"github.com/roach88/subsel/internal/vocab"
)

// newCompiler builds a compiler, applying the vocabulary snapshot at dbPath
// when one is given. The snapshot must already exist.
func (o *RootOptions) newCompiler(ctx context.Context, dbPath string) (*selection.Compiler, error) {
	opts := []selection.Option{selection.WithLogger(o.logger())}
	if dbPath == "" {
		return selection.New(opts...), nil
	}

	if ok, err := afero.Exists(o.fs(), dbPath); err != nil || !ok {
		return nil, &cliError{code: ErrCodeNotFound, msg: fmt.Sprintf("vocabulary database not found: %s", dbPath)}
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, &cliError{code: ErrCodeStoreFailed, msg: "open vocabulary database", err: err}
	}
	defer st.Close()

	set, err := st.Vocabulary(ctx, vocab.Default())
	if err != nil {
		return nil, &cliError{code: ErrCodeStoreFailed, msg: "load vocabulary", err: err}
	}
	o.logger().Debug("vocabulary loaded", "path", dbPath)
	return selection.New(append(opts, selection.WithVocabulary(set))...), nil
}

// loadSelections reads a selection file and narrows it to one selection
// when name is non-empty.
func (o *RootOptions) loadSelections(path, name string) ([]suite.Selection, error) {
	if ok, err := afero.Exists(o.fs(), path); err != nil || !ok {
		return nil, &cliError{code: ErrCodeNotFound, msg: fmt.Sprintf("selection file not found: %s", path)}
	}
	f, err := suite.LoadFile(o.fs(), path)
	if err != nil {
		return nil, &cliError{code: ErrCodeLoadFailed, msg: "load selection file", err: err}
	}
	o.logger().Debug("selection file loaded", "path", path, "selections", len(f.Selections))

	if name == "" {
		if len(f.Selections) == 0 {
			return nil, &cliError{code: ErrCodeNoFiles, msg: fmt.Sprintf("no selections in %s", path)}
		}
		return f.Selections, nil
	}
	sel, ok := f.Find(name)
	if !ok {
		return nil, &cliError{code: ErrCodeNotFound, msg: fmt.Sprintf("selection %q not found in %s (have %v)", name, path, f.Names())}
	}
	return []suite.Selection{*sel}, nil
}

// cliError is a command error carrying its error code.
type cliError struct {
	code string
	msg  string
	err  error
}

func (e *cliError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *cliError) Unwrap() error { return e.err }

// reportCommandError writes err through the formatter and returns the exit
// error for a command failure.
func reportCommandError(f *OutputFormatter, err error) error {
	code := ErrCodeGeneric
	var ce *cliError
	if errors.As(err, &ce) {
		code = ce.code
	}
	_ = f.Error(code, err.Error(), nil)
	return WrapExitError(ExitCommandError, code, err)
}
