// Package config loads .typeormlint.yaml files.
//
//	rules:
//	  enforce-column-types: { severity: error, options: { driver: sqlite } }
//	  enforce-relation-wrapper: { severity: "off" }
//	ignore: ["migrations/**"]
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/broady/typeormlint"
)

// FileName is the configuration file looked up by Find.
const FileName = ".typeormlint.yaml"

var validate = validator.New()

// Config is the parsed configuration file.
type Config struct {
	Rules  map[string]RuleEntry `yaml:"rules" validate:"dive,keys,required,endkeys"`
	Ignore []string             `yaml:"ignore" validate:"dive,required"`

	// Path is the file the config was read from, if any.
	Path string `yaml:"-"`
}

// RuleEntry configures one rule. An empty severity keeps the rule's
// preset severity, or enables it at error when the preset is off and
// options are given.
type RuleEntry struct {
	Severity string            `yaml:"severity" validate:"omitempty,oneof=off warn warning error 0 1 2"`
	Options  map[string]string `yaml:"options"`
}

// Parse decodes a configuration. Unknown keys are errors.
func Parse(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var cfg Config
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, typeormlint.Errorf(typeormlint.CodeConfigInvalid, "decode config: %v", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		e := typeormlint.AsError(err)
		return nil, typeormlint.NewError(typeormlint.CodeConfigInvalid, e.Message).WithDetails(e.Details)
	}
	return &cfg, nil
}

// Load reads the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, typeormlint.Errorf(typeormlint.CodeConfigInvalid, "read config: %v", err).WithDetail("path", path)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		if e := typeormlint.AsError(err); e != nil {
			return nil, e.WithDetail("path", path)
		}
		return nil, err
	}
	cfg.Path = path
	return cfg, nil
}

// Find looks for FileName in dir and its parents. It returns "" when
// there is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		p := filepath.Join(dir, FileName)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// RuleNames returns the configured rule names, sorted.
func (c *Config) RuleNames() []string {
	names := make([]string, 0, len(c.Rules))
	for name := range c.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply configures l. Rules are applied in name order so the first
// error is deterministic.
func (c *Config) Apply(l *typeormlint.Linter) error {
	for _, name := range c.RuleNames() {
		entry := c.Rules[name]
		values := make(map[string][]string, len(entry.Options))
		for k, v := range entry.Options {
			values[k] = []string{v}
		}
		opts, err := typeormlint.DecodeOptions(values)
		if err != nil {
			return withRule(err, name)
		}

		cfg, ok := l.Config(name)
		if !ok {
			return typeormlint.Errorf(typeormlint.CodeUnknownRule, "unknown rule %q", name).WithDetail("rule", name)
		}
		cfg.Options = opts
		switch {
		case entry.Severity != "":
			sev, err := typeormlint.ParseSeverity(entry.Severity)
			if err != nil {
				return withRule(err, name)
			}
			cfg.Severity = sev
		case cfg.Severity == typeormlint.SeverityOff && len(entry.Options) > 0:
			cfg.Severity = typeormlint.SeverityError
		}
		if err := l.Configure(name, cfg); err != nil {
			return err
		}
	}
	return nil
}

func withRule(err error, rule string) error {
	if e := typeormlint.AsError(err); e != nil {
		return e.WithDetail("rule", rule)
	}
	return err
}
