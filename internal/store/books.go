package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tallybook/tally/internal/model"
)

// BooksFile holds everything in a book that is not the chart or the journal.
const BooksFile = "books.yaml"

// Books is the YAML document stored in books.yaml.
type Books struct {
	Parties   []model.Party         `yaml:"parties,omitempty"`
	Assets    []model.Asset         `yaml:"assets,omitempty"`
	Recurring []model.RecurringRule `yaml:"recurring,omitempty"`
	Budgets   []model.Budget        `yaml:"budgets,omitempty"`
}

// LoadBooks reads books.yaml from root. A missing file is an empty book.
func LoadBooks(root string) (Books, error) {
	data, err := os.ReadFile(filepath.Join(root, BooksFile))
	if errors.Is(err, fs.ErrNotExist) {
		return Books{}, nil
	}
	if err != nil {
		return Books{}, fmt.Errorf("reading %s: %w", BooksFile, err)
	}
	var b Books
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Books{}, fmt.Errorf("parsing %s: %w", BooksFile, err)
	}
	return b, nil
}

// SaveBooks writes b to books.yaml under root.
func SaveBooks(root string, b Books) error {
	data, err := yaml.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", BooksFile, err)
	}
	if err := os.WriteFile(filepath.Join(root, BooksFile), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", BooksFile, err)
	}
	return nil
}
