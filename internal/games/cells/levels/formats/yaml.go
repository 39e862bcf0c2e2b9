// Package formats provides level collection file parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/tui-cells/internal/games/cells/core"
	"gopkg.in/yaml.v3"
)

// YAMLCollection represents the YAML structure for a collection file.
type YAMLCollection struct {
	ID     string      `yaml:"id"`
	Name   string      `yaml:"name"`
	Order  int         `yaml:"order,omitempty"`
	Levels []YAMLLevel `yaml:"levels"`
}

// YAMLLevel represents a single level entry.
type YAMLLevel struct {
	Name  string `yaml:"name,omitempty"`
	Board string `yaml:"board"`
	Help  string `yaml:"help,omitempty"`
}

// Collection represents a parsed collection ready for use.
type Collection struct {
	ID     string
	Name   string
	Order  int
	Levels []Level
}

// Level is one entry of a collection. Board is a validated board string.
type Level struct {
	Name  string
	Board string
	Help  string
}

// ParseYAML parses a YAML collection file. Every board must pass
// core.Validate.
func ParseYAML(data []byte) (Collection, error) {
	var yc YAMLCollection
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Collection{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yc.ID == "" {
		return Collection{}, fmt.Errorf("collection id is required")
	}
	if len(yc.Levels) == 0 {
		return Collection{}, fmt.Errorf("collection %s has no levels", yc.ID)
	}

	name := yc.Name
	if name == "" {
		name = yc.ID
	}
	c := Collection{
		ID:     yc.ID,
		Name:   name,
		Order:  yc.Order,
		Levels: make([]Level, 0, len(yc.Levels)),
	}
	for i, l := range yc.Levels {
		if err := core.Validate(l.Board); err != nil {
			return Collection{}, fmt.Errorf("level %d: %w", i+1, err)
		}
		c.Levels = append(c.Levels, Level{Name: l.Name, Board: l.Board, Help: l.Help})
	}
	return c, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
