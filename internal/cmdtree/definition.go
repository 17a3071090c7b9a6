package cmdtree

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/webhelp/internal/foundation/errors"
	"git.home.luguber.info/inful/webhelp/internal/logfields"
)

// Definition is the file representation of a command tree node.
type Definition struct {
	Name        string       `yaml:"name" json:"name" toml:"name"`
	Aliases     []string     `yaml:"aliases,omitempty" json:"aliases,omitempty" toml:"aliases,omitempty"`
	Type        Type         `yaml:"type,omitempty" json:"type,omitempty" toml:"type,omitempty"`
	Summary     string       `yaml:"summary,omitempty" json:"summary,omitempty" toml:"summary,omitempty"`
	Description string       `yaml:"description,omitempty" json:"description,omitempty" toml:"description,omitempty"`
	Positionals []Positional `yaml:"positionals,omitempty" json:"positionals,omitempty" toml:"positionals,omitempty"`
	Options     []Option     `yaml:"options,omitempty" json:"options,omitempty" toml:"options,omitempty"`
	Examples    []Example    `yaml:"examples,omitempty" json:"examples,omitempty" toml:"examples,omitempty"`
	Children    []Definition `yaml:"children,omitempty" json:"children,omitempty" toml:"children,omitempty"`
}

// Positional describes a positional argument.
type Positional struct {
	Name        string `yaml:"name" json:"name" toml:"name"`
	Type        string `yaml:"type,omitempty" json:"type,omitempty" toml:"type,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty" toml:"description,omitempty"`
	Required    bool   `yaml:"required,omitempty" json:"required,omitempty" toml:"required,omitempty"`
}

// Option describes a command line option.
type Option struct {
	Name            string   `yaml:"name" json:"name" toml:"name"`
	Aliases         []string `yaml:"aliases,omitempty" json:"aliases,omitempty" toml:"aliases,omitempty"`
	Type            string   `yaml:"type,omitempty" json:"type,omitempty" toml:"type,omitempty"`
	Description     string   `yaml:"description,omitempty" json:"description,omitempty" toml:"description,omitempty"`
	Required        bool     `yaml:"required,omitempty" json:"required,omitempty" toml:"required,omitempty"`
	Default         string   `yaml:"default,omitempty" json:"default,omitempty" toml:"default,omitempty"`
	AllowableValues []string `yaml:"allowable_values,omitempty" json:"allowable_values,omitempty" toml:"allowable_values,omitempty"`
}

// Example is a usage example; Options is the text following the command itself.
type Example struct {
	Description string `yaml:"description" json:"description" toml:"description"`
	Options     string `yaml:"options,omitempty" json:"options,omitempty" toml:"options,omitempty"`
}

// Format is a definition file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath derives the encoding from a file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".json":
		return FormatJSON, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// LoadDefinition reads a definition tree from a YAML, JSON or TOML file.
func LoadDefinition(path string) (*Definition, error) {
	format, ok := FormatFromPath(path)
	if !ok {
		return nil, errors.TreeError("unsupported command tree format (want .yaml, .json or .toml)").
			WithContext(logfields.KeyFile, path).
			Build()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("command tree file not found").WithContext(logfields.KeyFile, path).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read command tree").
			Fatal().
			WithContext(logfields.KeyFile, path).
			Build()
	}
	def, err := DecodeDefinition(data, format)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryTree, "failed to parse command tree").
			Fatal().
			UserAction().
			WithContext(logfields.KeyFile, path).
			Build()
	}
	return def, nil
}

// DecodeDefinition decodes a definition tree in the given format.
func DecodeDefinition(data []byte, format Format) (*Definition, error) {
	var def Definition
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &def)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&def)
	case FormatTOML:
		err = toml.Unmarshal(data, &def)
	default:
		return nil, errors.TreeError("unsupported command tree format " + string(format)).Build()
	}
	if err != nil {
		return nil, err
	}
	return &def, nil
}

// HelpFactory creates the help source for a definition node.
type HelpFactory func(def *Definition) HelpSource

// FromDefinition converts a definition tree into nodes and validates the result.
// Nodes without an explicit type become groups when they have children.
func FromDefinition(def *Definition, newHelp HelpFactory) (*Node, error) {
	if def == nil {
		return nil, errors.TreeError("command tree has no root").Build()
	}
	root := convert(def, newHelp)
	if err := Validate(root); err != nil {
		return nil, err
	}
	return root, nil
}

func convert(def *Definition, newHelp HelpFactory) *Node {
	n := &Node{
		Name:        def.Name,
		Aliases:     def.Aliases,
		Type:        def.Type,
		Description: def.Summary,
		Help:        newHelp(def),
	}
	if n.Type == "" {
		n.Type = TypeCommand
		if len(def.Children) > 0 {
			n.Type = TypeGroup
		}
	}
	if n.Description == "" {
		n.Description = firstSentence(def.Description)
	}
	for i := range def.Children {
		n.Children = append(n.Children, convert(&def.Children[i], newHelp))
	}
	return n
}

func firstSentence(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\n"); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, ". "); i >= 0 {
		return s[:i+1]
	}
	return s
}
