package prompts

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var catalogYAML []byte

// Spec is one catalogue entry as written in prompts.yaml.
type Spec struct {
	Name        PromptName `yaml:"name"`
	Version     int        `yaml:"version"`
	Temperature float64    `yaml:"temperature"`
	MaxTokens   int        `yaml:"max_tokens"`
	Required    []string   `yaml:"required"`
	System      string     `yaml:"system"`
	User        string     `yaml:"user"`
}

type catalog struct {
	Prompts []Spec `yaml:"prompts"`
}

// Prompt is a rendered request ready for the model.
type Prompt struct {
	Name        string
	Version     int
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

type compiled struct {
	spec   Spec
	system *template.Template
	user   *template.Template
}

type Registry struct {
	byName map[PromptName]compiled
}

// Load compiles the embedded catalogue.
func Load() (*Registry, error) {
	return Parse(catalogYAML)
}

// Parse compiles a catalogue document.
func Parse(raw []byte) (*Registry, error) {
	var c catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse prompt catalogue: %w", err)
	}
	r := &Registry{byName: map[PromptName]compiled{}}
	for _, s := range c.Prompts {
		if strings.TrimSpace(string(s.Name)) == "" {
			return nil, fmt.Errorf("missing prompt name")
		}
		if s.Version <= 0 {
			return nil, fmt.Errorf("invalid version for %s", s.Name)
		}
		if _, dup := r.byName[s.Name]; dup {
			return nil, fmt.Errorf("duplicate prompt %s", s.Name)
		}
		for _, f := range s.Required {
			if _, ok := (Input{}).field(f); !ok {
				return nil, fmt.Errorf("%s: unknown required field %s", s.Name, f)
			}
		}
		sysT, err := template.New("system").Option("missingkey=zero").Parse(s.System)
		if err != nil {
			return nil, fmt.Errorf("%s system template parse: %w", s.Name, err)
		}
		userT, err := template.New("user").Option("missingkey=zero").Parse(s.User)
		if err != nil {
			return nil, fmt.Errorf("%s user template parse: %w", s.Name, err)
		}
		r.byName[s.Name] = compiled{spec: s, system: sysT, user: userT}
	}
	return r, nil
}

// Build validates in against the prompt's required fields and renders it.
func (r *Registry) Build(name PromptName, in Input) (Prompt, error) {
	c, ok := r.byName[name]
	if !ok {
		return Prompt{}, fmt.Errorf("unknown prompt: %s", string(name))
	}
	for _, f := range c.spec.Required {
		v, _ := in.field(f)
		if strings.TrimSpace(v) == "" {
			return Prompt{}, fmt.Errorf("%s: %s required", string(name), f)
		}
	}
	system, err := render(c.system, in)
	if err != nil {
		return Prompt{}, fmt.Errorf("%s: %w", string(name), err)
	}
	user, err := render(c.user, in)
	if err != nil {
		return Prompt{}, fmt.Errorf("%s: %w", string(name), err)
	}
	return Prompt{
		Name:        string(c.spec.Name),
		Version:     c.spec.Version,
		System:      system,
		User:        user,
		Temperature: c.spec.Temperature,
		MaxTokens:   c.spec.MaxTokens,
	}, nil
}

func render(t *template.Template, in Input) (string, error) {
	var b bytes.Buffer
	if err := t.Execute(&b, in); err != nil {
		return "", err
	}
	return strings.TrimSpace(b.String()), nil
}
