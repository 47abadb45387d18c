// Package config loads subsel settings from a config file, the environment
// and .env files.
//
// Precedence, highest first: SUBSEL_* environment variables, .env.local,
// .env, the config file, defaults. Command-line flags are applied on top by
// the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable subsel reads.
const EnvPrefix = "SUBSEL"

// FileName is the config file name searched for, without extension.
const FileName = ".subsel"

// Config keys.
const (
	KeyRows         = "rows"
	KeyVocabularyDB = "vocabulary_db"
	KeyFormat       = "format"
)

// Keys lists every config key.
var Keys = []string{KeyRows, KeyVocabularyDB, KeyFormat}

// Config holds the resolved settings.
type Config struct {
	// Rows is the default row bound for compiled queries.
	Rows int
	// VocabularyDB is the vocabulary snapshot path, home-expanded.
	// Empty means the built-in vocabulary only.
	VocabularyDB string
	// Format is the output format, "text" or "json".
	Format string
	// File is the config file that was read, empty if none.
	File string
}

// Loader reads configuration. The zero value is not usable; see NewLoader.
type Loader struct {
	fs     afero.Fs
	lookup func(string) (string, bool)
}

// Option configures a Loader.
type Option func(*Loader)

// WithFs sets the filesystem config and .env files are read from.
// Default: the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(l *Loader) {
		l.fs = fs
	}
}

// WithLookupEnv sets the environment lookup. Default: os.LookupEnv.
func WithLookupEnv(lookup func(string) (string, bool)) Option {
	return func(l *Loader) {
		l.lookup = lookup
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		fs:     afero.NewOsFs(),
		lookup: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves the configuration. If path is non-empty that file must
// exist; otherwise .subsel.yaml is searched for in the working directory,
// the home directory and ~/.config/subsel, and a missing file is fine.
func (l *Loader) Load(path string) (*Config, error) {
	v := viper.New()
	v.SetFs(l.fs)
	v.SetDefault(KeyRows, 1)
	v.SetDefault(KeyVocabularyDB, "")
	v.SetDefault(KeyFormat, "text")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
			v.AddConfigPath(filepath.Join(home, ".config", "subsel"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	dotenv, err := l.readDotenv()
	if err != nil {
		return nil, err
	}
	for _, key := range Keys {
		name := EnvPrefix + "_" + strings.ToUpper(key)
		if val, ok := l.lookup(name); ok {
			v.Set(key, val)
		} else if val, ok := dotenv[name]; ok {
			v.Set(key, val)
		}
	}

	cfg := &Config{
		Rows:   v.GetInt(KeyRows),
		Format: v.GetString(KeyFormat),
		File:   v.ConfigFileUsed(),
	}
	if db := v.GetString(KeyVocabularyDB); db != "" {
		expanded, err := homedir.Expand(db)
		if err != nil {
			return nil, fmt.Errorf("expand %s: %w", KeyVocabularyDB, err)
		}
		cfg.VocabularyDB = expanded
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readDotenv merges .env and .env.local, the latter winning.
func (l *Loader) readDotenv() (map[string]string, error) {
	out := map[string]string{}
	for _, name := range []string{".env", ".env.local"} {
		f, err := l.fs.Open(name)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		vals, err := godotenv.Parse(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		for k, val := range vals {
			out[k] = val
		}
	}
	return out, nil
}

// Validate checks the settings are usable.
func (c *Config) Validate() error {
	if c.Rows < 0 {
		return fmt.Errorf("config: %s must not be negative, got %d", KeyRows, c.Rows)
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: %s must be text or json, got %q", KeyFormat, c.Format)
	}
	return nil
}

// Load resolves the configuration with a default Loader.
func Load(path string) (*Config, error) {
	return NewLoader().Load(path)
}
