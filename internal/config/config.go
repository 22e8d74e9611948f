package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultName = "scratch"
	DefaultKind = "int"
)

// Config is a scenario script: a named list of steps run against a set of
// named arrays.
type Config struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Kind        string `yaml:"kind,omitempty"`
	Steps       []Step `yaml:"steps"`
}

// Step is one operation. Which fields matter depends on Op. A titled step
// prints a numbered header; Header, when set, is printed verbatim instead.
type Step struct {
	Title  string    `yaml:"title,omitempty"`
	Header string    `yaml:"header,omitempty"`
	Op     string    `yaml:"op"`
	Array  string    `yaml:"array"`
	Kind   string    `yaml:"kind,omitempty"`
	Size   int       `yaml:"size,omitempty"`
	Values []Literal `yaml:"values,omitempty"`
	Count  int       `yaml:"count,omitempty"`
	Source string    `yaml:"source,omitempty"`
	Index  int       `yaml:"index,omitempty"`
	Value  Literal   `yaml:"value,omitempty"`
	Print  bool      `yaml:"print,omitempty"`
}

// Literal holds a scalar exactly as written, so that 10, 10.1 and "ten"
// can all be parsed later against the element kind of the target array.
type Literal string

func (l *Literal) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", n.Line)
	}
	*l = Literal(n.Value)
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Name: DefaultName,
		Kind: DefaultKind,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// applyDefaults gives kind-less steps the script's kind.
func (c *Config) applyDefaults() {
	if c.Kind == "" {
		c.Kind = DefaultKind
	}
	for i := range c.Steps {
		if c.Steps[i].Kind == "" {
			c.Steps[i].Kind = c.Kind
		}
	}
}

// Literals converts the step's values to plain strings.
func (s Step) Literals() []string {
	out := make([]string, len(s.Values))
	for i, v := range s.Values {
		out[i] = string(v)
	}
	return out
}
