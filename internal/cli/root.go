package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/roach88/subsel/internal/config"
)

// RootOptions holds global flags and the dependencies shared by all
// commands. Zero-valued dependencies fall back to the real ones.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string

	// Config is loaded before any command runs.
	Config *config.Config

	Fs      afero.Fs
	IDs     IDGenerator
	Clock   Clock
	Logger  *slog.Logger
	Environ func(string) (string, bool)
}

// IDGenerator produces trace ids for JSON responses.
type IDGenerator interface {
	Generate() string
}

// Clock supplies the current time for date evaluation.
type Clock interface {
	Now() time.Time
}

// UUIDv7Generator generates time-ordered UUIDv7 trace ids.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the subsel CLI.
func NewRootCommand() *cobra.Command {
	return NewRootCommandWithOptions(&RootOptions{})
}

// NewRootCommandWithOptions creates the root command over opts, letting
// tests inject a filesystem, id generator and clock.
func NewRootCommandWithOptions(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subsel",
		Short: "subsel - subject selection query compiler",
		Long: `Compile human-authored selection criteria into one parameterized
Oracle query over the screening subject tables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.init(cmd); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default .subsel.yaml)")

	cmd.AddCommand(NewCompileCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewKeysCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewVocabCommand(opts))
	cmd.AddCommand(NewDateCommand(opts))

	return cmd
}

// init loads configuration and settles the output format and logger.
// An explicit --format wins over the config file.
func (o *RootOptions) init(cmd *cobra.Command) error {
	loadOpts := []config.Option{config.WithFs(o.fs())}
	if o.Environ != nil {
		loadOpts = append(loadOpts, config.WithLookupEnv(o.Environ))
	}
	cfg, err := config.NewLoader(loadOpts...).Load(o.ConfigFile)
	if err != nil {
		return WrapExitError(ExitCommandError, "load config", err)
	}
	o.Config = cfg

	if f := cmd.Flags().Lookup("format"); f == nil || !f.Changed {
		o.Format = cfg.Format
	}
	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	if o.Logger == nil {
		o.Logger = newLogger(cmd.ErrOrStderr(), o.Verbose)
	}
	return nil
}

// newLogger writes debug records to w when verbose, and discards otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (o *RootOptions) fs() afero.Fs {
	if o.Fs == nil {
		o.Fs = afero.NewOsFs()
	}
	return o.Fs
}

func (o *RootOptions) ids() IDGenerator {
	if o.IDs == nil {
		o.IDs = UUIDv7Generator{}
	}
	return o.IDs
}

func (o *RootOptions) clock() Clock {
	if o.Clock == nil {
		o.Clock = systemClock{}
	}
	return o.Clock
}

func (o *RootOptions) logger() *slog.Logger {
	if o.Logger == nil {
		o.Logger = newLogger(io.Discard, false)
	}
	return o.Logger
}

// defaultRows is the configured row bound, or the compiler default.
func (o *RootOptions) defaultRows() int {
	if o.Config != nil {
		return o.Config.Rows
	}
	return 0
}

func (o *RootOptions) vocabularyDB() string {
	if o.Config != nil {
		return o.Config.VocabularyDB
	}
	return ""
}

// formatter builds the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
		TraceID:   o.ids().Generate(),
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
