package definition

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Format is the serialization of a definition document.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Document is the raw, uncompiled form of a machine definition.
type Document struct {
	Name     string `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Blank    string `json:"blank,omitempty" yaml:"blank,omitempty" mapstructure:"blank"`
	Wildcard string `json:"wildcard,omitempty" yaml:"wildcard,omitempty" mapstructure:"wildcard"`
	Start    string `json:"start,omitempty" yaml:"start,omitempty" mapstructure:"start"`
	End      string `json:"end,omitempty" yaml:"end,omitempty" mapstructure:"end"`

	// MaxSteps bounds the run. Zero means the caller's default.
	MaxSteps int `json:"max_steps,omitempty" yaml:"max_steps,omitempty" mapstructure:"max_steps"`
	// OutputTape defaults to the last tape.
	OutputTape *int `json:"output_tape,omitempty" yaml:"output_tape,omitempty" mapstructure:"output_tape"`

	Tapes [][]string `json:"tapes" yaml:"tapes" mapstructure:"tapes"`
	Rules []RuleDoc  `json:"rules" yaml:"rules" mapstructure:"rules"`
}

// RuleDoc is one transition in a Document.
type RuleDoc struct {
	From    string      `json:"from" yaml:"from" mapstructure:"from"`
	To      string      `json:"to" yaml:"to" mapstructure:"to"`
	Actions []ActionDoc `json:"actions" yaml:"actions" mapstructure:"actions"`
}

// ActionDoc is one tape's part of a RuleDoc. Move is L, R or S (or the full name).
type ActionDoc struct {
	Read  string `json:"read" yaml:"read" mapstructure:"read"`
	Write string `json:"write" yaml:"write" mapstructure:"write"`
	Move  string `json:"move" yaml:"move" mapstructure:"move"`
}

// Load reads a definition document from path. Files ending in .json are read
// as JSON, anything else as YAML.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}

	format := FormatYAML
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		format = FormatJSON
	}

	doc, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes data in the given format. Scalars keep their source text, so
// symbols such as true, 1.50 or 0x10 reach the tapes exactly as written.
func Parse(data []byte, format Format) (*Document, error) {
	var raw map[string]any

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("%w: failed to parse json: %v", domain.ErrInvalidDefinition, err)
		}
		m, ok := jsonText(v).(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: document must be an object", domain.ErrInvalidDefinition)
		}
		raw = m
	case FormatYAML:
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("%w: failed to parse yaml: %v", domain.ErrInvalidDefinition, err)
		}
		v, err := yamlText(&root)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDefinition, err)
		}
		switch m := v.(type) {
		case nil:
			raw = map[string]any{}
		case map[string]any:
			raw = m
		default:
			return nil, fmt.Errorf("%w: document must be a mapping", domain.ErrInvalidDefinition)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", domain.ErrInvalidDefinition, format)
	}

	return Decode(raw)
}

// yamlText converts a node tree into maps, slices and the literal text of
// each scalar. Nulls become nil.
func yamlText(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlText(n.Content[0])
	case yaml.AliasNode:
		return yamlText(n.Alias)
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return nil, nil
		}
		return n.Value, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlText(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", key.Line)
			}
			v, err := yamlText(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out[key.Value] = v
		}
		return out, nil
	}
	return nil, fmt.Errorf("line %d: unsupported yaml node", n.Line)
}

// jsonText rewrites numbers and booleans decoded with UseNumber into their
// literal text.
func jsonText(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = jsonText(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = jsonText(e)
		}
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	}
	return v
}

// Decode maps a generic document onto a Document. Unknown keys are rejected.
// Numeric fields accept their decimal or prefixed text.
func Decode(raw map[string]any) (*Document, error) {
	var doc Document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &doc,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDefinition, err)
	}
	return &doc, nil
}
