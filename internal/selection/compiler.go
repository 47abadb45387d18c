package selection

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/subsel/internal/criteria"
	"github.com/roach88/subsel/internal/dates"
	"github.com/roach88/subsel/internal/ir"
	"github.com/roach88/subsel/internal/querysql"
	"github.com/roach88/subsel/internal/vocab"
)

// DefaultRows is the row bound applied when Options.Rows is zero.
const DefaultRows = 1

// Options carries the optional inputs of one compile call.
type Options struct {
	// User enables criteria relative to the current user's organisation.
	User *ir.User
	// Subject enables the "unchanged" sentinel.
	Subject *ir.Subject
	// Rows bounds the result. Zero means DefaultRows; negative is invalid.
	Rows int
}

// Compiler turns criteria into a CompiledQuery.
//
// A Compiler holds only immutable tables. All accumulators live in a State
// allocated per Compile call, so one Compiler may be reused and shared.
type Compiler struct {
	keys     *criteria.Registry
	vocab    *vocab.Set
	dates    *dates.Resolver
	handlers map[criteria.Key]Handler
	logger   *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the logger for per-criterion debug records.
// Default: a logger that discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// WithVocabulary replaces the built-in vocabulary, e.g. with one carrying
// overrides from the vocabulary store.
func WithVocabulary(set *vocab.Set) Option {
	return func(c *Compiler) {
		c.vocab = set
	}
}

// WithDateResolver replaces the built-in date resolver.
func WithDateResolver(r *dates.Resolver) Option {
	return func(c *Compiler) {
		c.dates = r
	}
}

// New creates a Compiler over the built-in tables.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		keys:     criteria.Default(),
		vocab:    vocab.Default(),
		dates:    dates.Default(),
		handlers: handlers(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Keys returns the registry the compiler resolves labels with.
func (c *Compiler) Keys() *criteria.Registry {
	return c.keys
}

// Compile compiles crit, in order, into a single query.
//
// Any failure returns a *ir.CriterionError naming the offending criterion
// and no query.
func (c *Compiler) Compile(crit []ir.Criterion, opts Options) (*ir.CompiledQuery, error) {
	s, err := c.build(crit, opts)
	if err != nil {
		return nil, err
	}

	q, err := querysql.Compile(s.sel)
	if err != nil {
		return nil, fmt.Errorf("assemble query: %w", err)
	}
	s.advance(StageAssembled)

	c.logger.Debug("query compiled",
		"criteria", len(crit),
		"joins", s.sel.Joins.Len(),
		"params", len(q.Params))
	return q, nil
}

// build runs the state machine up to LIMIT_APPENDED.
func (c *Compiler) build(crit []ir.Criterion, opts Options) (*State, error) {
	rows := opts.Rows
	if rows < 0 {
		return nil, ir.NewError(ir.ErrInvalidOptions, "row count must not be negative, got %d", rows)
	}
	if rows == 0 {
		rows = DefaultRows
	}

	s := newState(c, opts)
	c.scanSelectors(s, crit)
	for i, cr := range crit {
		if err := c.apply(s, cr); err != nil {
			c.logger.Debug("criterion rejected",
				"index", i,
				"key", cr.Key,
				"value", cr.Value,
				"stage", s.stage,
				"error", err)
			return nil, attribute(err, cr)
		}
	}

	s.sel.Limit = rows
	s.advance(StageLimitAppended)
	return s, nil
}

// scanSelectors records the first valid "which" value of each relation.
// Invalid values are left for dispatch to report.
func (c *Compiler) scanSelectors(s *State, crit []ir.Criterion) {
	found := make(map[criteria.Key]bool)
	for _, cr := range crit {
		parsed, err := criteria.ParseValue(cr.Value)
		if err != nil || parsed.Skip || parsed.Negated || !parsed.Comparator.IsEquality() {
			continue
		}
		info, err := c.keys.Resolve(cr.Key)
		if err != nil || found[info.Key] {
			continue
		}

		var d *vocab.Domain[string]
		var dst *string
		switch info.Key {
		case criteria.WhichTestKit:
			d, dst = s.vocab.WhichKit, &s.kitSelector
		case criteria.WhichAppointment:
			d, dst = s.vocab.WhichAppointment, &s.appointmentSelector
		case criteria.WhichDiagnosticTest:
			d, dst = s.vocab.WhichTest, &s.firstTestSelector
		default:
			continue
		}
		found[info.Key] = true
		code, ok := d.Lookup(parsed.Literal)
		if !ok || isRelativeTest(code) {
			continue
		}
		*dst = code
	}
}

// apply runs one criterion through PARSE, RESOLVE_KEY, VALIDATE and DISPATCH.
func (c *Compiler) apply(s *State, cr ir.Criterion) error {
	s.advance(StageParse)
	parsed, err := criteria.ParseValue(cr.Value)
	if err != nil {
		return err
	}
	if parsed.Skip {
		c.logger.Debug("criterion skipped", "key", cr.Key)
		return nil
	}

	s.advance(StageResolveKey)
	info, err := c.keys.Resolve(cr.Key)
	if err != nil {
		return err
	}

	s.advance(StageValidate)
	if parsed.Negated && !info.AllowNegation {
		return ir.NewError(ir.ErrUnsupportedModifier, "%q does not allow negation", info.Description)
	}
	occurrence := s.seen[info.Key]
	if occurrence > 0 && !info.AllowMultipleValues {
		return ir.NewError(ir.ErrArityViolation, "%q may only be given once", info.Description)
	}
	s.seen[info.Key] = occurrence + 1

	s.advance(StageDispatch)
	h, ok := c.handlers[info.Key]
	if !ok {
		return fmt.Errorf("no handler registered for %q", info.Description)
	}
	compiled := criteria.Compiled{
		Key:        info.Key,
		Info:       info,
		Label:      cr.Key,
		Raw:        cr.Value,
		Negated:    parsed.Negated,
		Comparator: parsed.Comparator,
		Value:      parsed.Literal,
		Occurrence: occurrence,
	}
	if err := h(s, compiled); err != nil {
		return err
	}

	c.logger.Debug("criterion dispatched",
		"key", info.Description,
		"comparator", parsed.Comparator,
		"negated", parsed.Negated,
		"joins", s.sel.Joins.Len())
	return nil
}

// attribute stamps the criterion onto a CriterionError. Other errors are
// wrapped so the criterion is still named.
func attribute(err error, cr ir.Criterion) error {
	var ce *ir.CriterionError
	if errors.As(err, &ce) {
		ce.Key = cr.Key
		ce.Value = cr.Value
		return ce
	}
	return fmt.Errorf("criterion %q=%q: %w", cr.Key, cr.Value, err)
}
