package harness

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/roach88/subsel/internal/ir"
	"github.com/roach88/subsel/internal/vocab"
)

// Scenario defines a conformance test scenario: one compile call and the
// assertions its outcome must satisfy.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// File is a selection file to take criteria from, relative to the
	// scenario file. Used together with Selection.
	File string `yaml:"file,omitempty"`

	// Selection names the selection within File.
	Selection string `yaml:"selection,omitempty"`

	// Criteria are inline criteria, as a mapping or a list of single-key
	// mappings. Mutually exclusive with File.
	Criteria yaml.Node `yaml:"criteria,omitempty"`

	// Rows overrides the row bound. Zero keeps the selection's own value.
	Rows int `yaml:"rows,omitempty"`

	User    *ir.User    `yaml:"user,omitempty"`
	Subject *ir.Subject `yaml:"subject,omitempty"`

	// Vocabulary rows are imported into the run's vocabulary store before
	// compiling.
	Vocabulary []VocabRow `yaml:"vocabulary,omitempty"`

	// Assertions validate the compile outcome.
	Assertions []Assertion `yaml:"assertions"`
}

// VocabRow is one vocabulary override.
type VocabRow struct {
	Domain string `yaml:"domain"`
	Label  string `yaml:"label"`
	ID     int64  `yaml:"id"`
}

// Override converts the row to its vocab form.
func (r VocabRow) Override() vocab.Override {
	return vocab.Override{Domain: r.Domain, Label: r.Label, ID: r.ID}
}

// Assertion validates the compile outcome.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Kind is the expected error kind (error).
	Kind string `yaml:"kind,omitempty"`

	// Key is the expected criterion key on the error (error, optional).
	Key string `yaml:"key,omitempty"`

	// Fragment is searched for in the query text (contains, not_contains).
	Fragment string `yaml:"fragment,omitempty"`

	// Name is a bind name such as p1 (param).
	Name string `yaml:"name,omitempty"`

	// Value is the expected bind value rendered as text (param).
	Value string `yaml:"value,omitempty"`

	// Table is the joined table name (join_count).
	Table string `yaml:"table,omitempty"`

	// Count is the expected count (param_count, join_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertError       = "error"
	AssertContains    = "contains"
	AssertNotContains = "not_contains"
	AssertParam       = "param"
	AssertParamCount  = "param_count"
	AssertJoinCount   = "join_count"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected so typos surface as errors. A relative File is resolved against
// the scenario's directory.
func LoadScenario(fs afero.Fs, path string) (*Scenario, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.File != "" && !filepath.IsAbs(scenario.File) {
		scenario.File = filepath.Join(filepath.Dir(path), scenario.File)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	hasInline := s.Criteria.Kind != 0
	switch {
	case hasInline && s.File != "":
		return fmt.Errorf("criteria and file are mutually exclusive")
	case !hasInline && s.File == "":
		return fmt.Errorf("one of criteria or file is required")
	case s.File != "" && s.Selection == "":
		return fmt.Errorf("selection is required with file")
	case s.File == "" && s.Selection != "":
		return fmt.Errorf("selection requires file")
	}

	if s.Rows < 0 {
		return fmt.Errorf("rows must be non-negative")
	}
	for i, row := range s.Vocabulary {
		if row.Domain == "" || row.Label == "" {
			return fmt.Errorf("vocabulary[%d]: domain and label are required", i)
		}
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertError:
		if a.Kind == "" {
			return fmt.Errorf("assertions[%d]: kind is required for error", index)
		}
	case AssertContains, AssertNotContains:
		if a.Fragment == "" {
			return fmt.Errorf("assertions[%d]: fragment is required for %s", index, a.Type)
		}
	case AssertParam:
		if a.Name == "" {
			return fmt.Errorf("assertions[%d]: name is required for param", index)
		}
	case AssertParamCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for param_count", index)
		}
	case AssertJoinCount:
		if a.Table == "" {
			return fmt.Errorf("assertions[%d]: table is required for join_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for join_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
