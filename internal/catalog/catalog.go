// Package catalog defines the fixed set of skill categories and the
// statements a respondent rates within each one.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category is a named group of statements, rated in order.
type Category struct {
	Name       string   `yaml:"name" json:"name"`
	Statements []string `yaml:"statements" json:"statements"`
}

// Catalog is the ordered list of categories an assessment covers.
// Category order is significant: it drives navigation and tie-breaking.
type Catalog struct {
	Categories []Category `yaml:"categories" json:"categories"`
}

// Names returns the category names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		names[i] = cat.Name
	}
	return names
}

// Lookup returns the position of the named category.
func (c *Catalog) Lookup(name string) (int, bool) {
	for i, cat := range c.Categories {
		if cat.Name == name {
			return i, true
		}
	}
	return -1, false
}

// Category returns the named category.
func (c *Catalog) Category(name string) (Category, bool) {
	i, ok := c.Lookup(name)
	if !ok {
		return Category{}, false
	}
	return c.Categories[i], true
}

// StatementCount returns the number of statements in the named category,
// or 0 if the category does not exist.
func (c *Catalog) StatementCount(name string) int {
	cat, ok := c.Category(name)
	if !ok {
		return 0
	}
	return len(cat.Statements)
}

// TotalStatements returns the statement count across all categories.
func (c *Catalog) TotalStatements() int {
	total := 0
	for _, cat := range c.Categories {
		total += len(cat.Statements)
	}
	return total
}

// Validate checks structural integrity: at least one category, unique
// non-empty names, and at least one non-empty statement per category.
func (c *Catalog) Validate() error {
	if len(c.Categories) == 0 {
		return errors.New("catalog has no categories")
	}

	seen := make(map[string]bool, len(c.Categories))
	for i, cat := range c.Categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return fmt.Errorf("category %d has an empty name", i)
		}
		if seen[name] {
			return fmt.Errorf("duplicate category %q", name)
		}
		seen[name] = true

		if len(cat.Statements) == 0 {
			return fmt.Errorf("category %q has no statements", name)
		}
		for j, s := range cat.Statements {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("category %q statement %d is empty", name, j)
			}
		}
	}
	return nil
}

// Load reads a catalog from a YAML file and validates it.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog document and validates it.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}

// LoadOrDefault loads the catalog at path, or returns the reference
// catalog when path is empty.
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
