package relay

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"text/template"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"

	"travelmitra-backend/internal/types"
)

//go:embed prompts/trip_plan.yaml
var defaultPromptSpec []byte

// PromptSpec is the YAML document the trip prompt is built from.
type PromptSpec struct {
	Persona  string `yaml:"persona"`
	Task     string `yaml:"task"`
	Schema   string `yaml:"schema"`
	Template string `yaml:"template"`
}

type PromptBuilder struct {
	spec PromptSpec
	tmpl *template.Template
}

// LoadPromptBuilder reads the prompt spec at path, or the built-in spec
// when path is empty.
func LoadPromptBuilder(path string) (*PromptBuilder, error) {
	b := defaultPromptSpec
	if path != "" {
		var err error
		b, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}
	return ParsePromptSpec(b)
}

func ParsePromptSpec(b []byte) (*PromptBuilder, error) {
	var spec PromptSpec
	if err := yaml.Unmarshal(b, &spec); err != nil {
		return nil, fmt.Errorf("parse prompt spec: %w", err)
	}
	if strings.TrimSpace(spec.Template) == "" {
		return nil, fmt.Errorf("prompt spec has no template")
	}
	tmpl, err := template.New("trip_plan").Option("missingkey=error").Parse(spec.Template)
	if err != nil {
		return nil, fmt.Errorf("parse prompt template: %w", err)
	}
	return &PromptBuilder{spec: spec, tmpl: tmpl}, nil
}

type promptData struct {
	Persona  string
	Task     string
	Schema   string
	Language string
	Trip     types.TripRequest
}

// Build interpolates the trip fields into the prompt template.
func (p *PromptBuilder) Build(trip types.TripRequest) (string, error) {
	var b strings.Builder
	err := p.tmpl.Execute(&b, promptData{
		Persona:  strings.TrimSpace(p.spec.Persona),
		Task:     strings.TrimSpace(p.spec.Task),
		Schema:   strings.TrimSpace(p.spec.Schema),
		Language: languageLabel(trip.Language),
		Trip:     trip,
	})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return b.String(), nil
}

// languageLabel renders "en" as "English (en)". Anything that is not a
// well-formed tag passes through untouched.
func languageLabel(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return code
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	name := display.English.Tags().Name(tag)
	if name == "" || strings.EqualFold(name, code) {
		return code
	}
	return fmt.Sprintf("%s (%s)", name, code)
}
