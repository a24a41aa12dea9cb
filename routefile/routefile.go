package routefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ErrVersion is returned when a route file declares a version this
// package does not understand. The only supported version is 1.
var ErrVersion = errors.New("routefile: unsupported file version")

// File is the root of a parsed route file.
type File struct {
	Version int               `yaml:"version"`
	Types   map[string]string `yaml:"types,omitempty"`
	Routes  []RouteDef        `yaml:"routes,omitempty"`
	Groups  []Group           `yaml:"groups,omitempty"`
}

// Group is a set of routes registered under a shared pattern prefix.
type Group struct {
	Prefix string     `yaml:"prefix"`
	Routes []RouteDef `yaml:"routes"`
}

// RouteDef is one route entry of a route file. The handler field is a
// key resolved against a Registry at build time, so the file stays data.
type RouteDef struct {
	Pattern    string     `yaml:"pattern"`
	Methods    MethodList `yaml:"methods,omitempty"`
	Handler    string     `yaml:"handler,omitempty"`
	Name       string     `yaml:"name,omitempty"`
	CountMatch *bool      `yaml:"count_match,omitempty"`
}

// MethodList holds a route's method filter, decoded from either a YAML
// scalar or a sequence:
//
//	methods: GET
//	methods: [GET, PUT]
type MethodList struct {
	value []string
}

// Methods creates a MethodList from the given method tokens.
func Methods(ms ...string) MethodList {
	return MethodList{value: ms}
}

// Values returns the underlying method tokens.
func (ml MethodList) Values() []string {
	return ml.value
}

// IsZero implements the yaml.v3 IsZeroer interface so that omitempty
// on YAML struct tags correctly omits an unset methods field.
func (ml MethodList) IsZero() bool {
	return len(ml.value) == 0
}

// MarshalYAML encodes the filter as a YAML scalar (single method) or
// YAML sequence (multiple methods).
func (ml MethodList) MarshalYAML() (any, error) {
	switch len(ml.value) {
	case 0:
		return nil, nil
	case 1:
		return ml.value[0], nil
	default:
		return ml.value, nil
	}
}

// UnmarshalYAML decodes the filter from either a YAML scalar or sequence.
func (ml *MethodList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		ml.value = []string{node.Value}
		return nil
	case yaml.SequenceNode:
		var arr []string
		if err := node.Decode(&arr); err != nil {
			return err
		}
		ml.value = arr
		return nil
	default:
		return fmt.Errorf("routefile: unsupported YAML node kind %d for methods", node.Kind)
	}
}

// Parse reads one route file. Unknown fields are rejected so typos in
// hand-written files fail loudly rather than silently dropping routes.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("routefile: decode: %w", err)
	}
	if f.Version != 1 {
		return nil, fmt.Errorf("%w: %d", ErrVersion, f.Version)
	}

	return &f, nil
}

// ParseBytes parses a route file held in memory, typically an
// embedded one.
func ParseBytes(b []byte) (*File, error) {
	return Parse(bytes.NewReader(b))
}
