package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// File is the serialized form of a symbol model.
type File struct {
	Version string        `yaml:"version,omitempty"`
	Types   []*TypeSymbol `yaml:"types"`
}

// LoadFile loads a symbol model from path. Files ending in ".mp" or
// ".msgpack" are decoded as msgpack, everything else as YAML.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}

	if isMsgpack(path) {
		return ParseMsgpack(data)
	}

	return Parse(data)
}

// LoadGraph loads and merges the given model files into a validated graph.
func LoadGraph(paths ...string) (*TypeGraph, error) {
	graph := NewTypeGraph()

	for _, path := range paths {
		f, err := LoadFile(path)
		if err != nil {
			return nil, err
		}

		for _, t := range f.Types {
			if err := graph.Add(t); err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
		}
	}

	if err := graph.Validate(); err != nil {
		return nil, fmt.Errorf("invalid symbol model: %w", err)
	}

	return graph, nil
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse model YAML: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// ParseMsgpack parses msgpack data into a File.
func ParseMsgpack(data []byte) (*File, error) {
	var f File

	err := msgpack.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse model msgpack: %w", err)
	}

	applyDefaults(&f)

	return &f, nil
}

// Graph builds a validated TypeGraph from the file.
func (f *File) Graph() (*TypeGraph, error) {
	graph := NewTypeGraph()

	for _, t := range f.Types {
		if err := graph.Add(t); err != nil {
			return nil, err
		}
	}

	if err := graph.Validate(); err != nil {
		return nil, fmt.Errorf("invalid symbol model: %w", err)
	}

	return graph, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}

	for _, t := range f.Types {
		if t.FilePath == "" {
			t.FilePath = t.Location.File
		}

		for _, m := range t.Methods {
			if m.ReturnType == "" {
				m.ReturnType = VoidType
			}

			if m.Accessibility == AccessibilityNotApplicable {
				m.Accessibility = AccessibilityPrivate
			}
		}

		for i, c := range t.Constructors {
			if c.ID == "" {
				c.ID = fmt.Sprintf("ctor%d", i)
			}

			if c.Accessibility == AccessibilityNotApplicable {
				if c.Implicit {
					c.Accessibility = AccessibilityPublic
				} else {
					c.Accessibility = AccessibilityPrivate
				}
			}
		}
	}
}

// Marshal serializes a File to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}

// MarshalMsgpack serializes a File to msgpack.
func MarshalMsgpack(f *File) ([]byte, error) {
	return msgpack.Marshal(f)
}

// WriteFile writes a File to path, choosing the encoding from the extension.
func WriteFile(f *File, path string) error {
	var (
		data []byte
		err  error
	)

	if isMsgpack(path) {
		data, err = MarshalMsgpack(f)
	} else {
		data, err = Marshal(f)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write model file %s: %w", path, err)
	}

	return nil
}

func isMsgpack(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp", ".msgpack":
		return true
	default:
		return false
	}
}
