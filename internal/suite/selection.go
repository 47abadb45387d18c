package suite

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/roach88/subsel/internal/ir"
)

// Selection is one named set of criteria with its compile context.
type Selection struct {
	Name        string
	Description string
	// Rows is the row bound; zero means the compiler default.
	Rows     int
	User     *ir.User
	Subject  *ir.Subject
	Criteria []ir.Criterion
}

// File is the selections of one file, in file order.
type File struct {
	Path       string
	Selections []Selection
}

// Find returns the selection with the given name.
func (f *File) Find(name string) (*Selection, bool) {
	for i := range f.Selections {
		if f.Selections[i].Name == name {
			return &f.Selections[i], true
		}
	}
	return nil, false
}

// Names lists the selection names in file order.
func (f *File) Names() []string {
	names := make([]string, len(f.Selections))
	for i, s := range f.Selections {
		names[i] = s.Name
	}
	return names
}

// Extensions are the file extensions LoadFile understands.
var Extensions = []string{".cue", ".yaml", ".yml"}

// LoadFile reads a selection file, choosing the format by extension.
func LoadFile(fs afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read selection file: %w", err)
	}

	var sels []Selection
	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		sels, err = ParseCUE(path, data)
	case ".yaml", ".yml":
		sels, err = ParseYAML(data)
	default:
		return nil, fmt.Errorf("%s: unsupported selection file type (want one of %s)", path, strings.Join(Extensions, ", "))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &File{Path: path, Selections: sels}, nil
}

// FindFiles lists the selection files under dir in walk order.
func FindFiles(fs afero.Fs, dir string) ([]string, error) {
	var files []string
	err := afero.Walk(fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && slices.Contains(Extensions, strings.ToLower(filepath.Ext(path))) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
