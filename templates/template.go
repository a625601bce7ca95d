package templates

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/prashantgupta17/evaltemplates/dataset"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
)

// NotParsable is the label given to a model response that does not match exactly one rail.
const NotParsable = "NOT_PARSABLE"

const (
	DefaultStartDelimiter = "{"
	DefaultEndDelimiter   = "}"
)

var (
	// ErrInvalidTemplate is returned by NormalizeTemplate for values that are neither templates nor strings.
	ErrInvalidTemplate = errors.New("invalid template type")
	// ErrMissingVariable is returned by MapTemplate when a record lacks a template variable.
	ErrMissingVariable = errors.New("missing template variable")
)

// PromptTemplate is a prompt with named placeholders enclosed in delimiters.
type PromptTemplate struct {
	text       string
	startDelim string
	endDelim   string
	variables  []string
}

// Option configures a PromptTemplate.
type Option func(*PromptTemplate)

// WithDelimiters sets the placeholder delimiters, e.g. "{{" and "}}".
// An empty start or end keeps the defaults.
func WithDelimiters(start, end string) Option {
	return func(t *PromptTemplate) {
		if start == "" || end == "" {
			return
		}
		t.startDelim = start
		t.endDelim = end
	}
}

// NewPromptTemplate parses text and records its variables.
func NewPromptTemplate(text string, opts ...Option) *PromptTemplate {
	t := &PromptTemplate{
		text:       text,
		startDelim: DefaultStartDelimiter,
		endDelim:   DefaultEndDelimiter,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.variables = t.parseVariables()
	return t
}

// Text returns the raw template text.
func (t *PromptTemplate) Text() string {
	return t.text
}

// Delimiters returns the start and end placeholder delimiters.
func (t *PromptTemplate) Delimiters() (string, string) {
	return t.startDelim, t.endDelim
}

// Variables returns the placeholder names in order of first appearance.
func (t *PromptTemplate) Variables() []string {
	return append([]string(nil), t.variables...)
}

// Format substitutes the values whose names appear in the template.
// Placeholders without a value are left as they are.
func (t *PromptTemplate) Format(values map[string]any) string {
	prompt := t.text
	for _, name := range t.variables {
		value, ok := values[name]
		if !ok {
			continue
		}
		prompt = strings.ReplaceAll(prompt, t.startDelim+name+t.endDelim, fmt.Sprint(value))
	}
	return prompt
}

// FormatPrompt implements prompts.FormatPrompter so a PromptTemplate can drive a langchaingo chain.
func (t *PromptTemplate) FormatPrompt(values map[string]any) (llms.PromptValue, error) {
	return prompts.StringPromptValue(t.Format(values)), nil
}

// GetInputVariables implements prompts.FormatPrompter.
func (t *PromptTemplate) GetInputVariables() []string {
	return t.Variables()
}

// LangChain converts the template into a langchaingo f-string template.
func (t *PromptTemplate) LangChain() prompts.PromptTemplate {
	text := t.text
	if t.startDelim != DefaultStartDelimiter || t.endDelim != DefaultEndDelimiter {
		for _, name := range t.variables {
			text = strings.ReplaceAll(text, t.startDelim+name+t.endDelim, "{"+name+"}")
		}
	}
	return prompts.NewPromptTemplate(text, t.Variables())
}

func (t *PromptTemplate) parseVariables() []string {
	pattern := regexp.MustCompile(regexp.QuoteMeta(t.startDelim) + "(.*?)" + regexp.QuoteMeta(t.endDelim))
	seen := make(map[string]struct{})
	var variables []string
	for _, match := range pattern.FindAllStringSubmatch(t.text, -1) {
		name := match[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		variables = append(variables, name)
	}
	return variables
}

// NormalizeTemplate accepts a *PromptTemplate, a PromptTemplate or a template string
// and returns a *PromptTemplate.
func NormalizeTemplate(template any) (*PromptTemplate, error) {
	switch t := template.(type) {
	case *PromptTemplate:
		if t == nil {
			return nil, fmt.Errorf("%w: nil *PromptTemplate", ErrInvalidTemplate)
		}
		return t, nil
	case PromptTemplate:
		return &t, nil
	case string:
		return NewPromptTemplate(t), nil
	case EvalTemplate:
		return evalTemplatePrompt(&t)
	case *EvalTemplate:
		if t == nil {
			return nil, fmt.Errorf("%w: nil *EvalTemplate", ErrInvalidTemplate)
		}
		return evalTemplatePrompt(t)
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidTemplate, template)
	}
}

func evalTemplatePrompt(t *EvalTemplate) (*PromptTemplate, error) {
	if t.Template == nil {
		return nil, fmt.Errorf("%w: eval template %q has no prompt template", ErrInvalidTemplate, t.Name)
	}
	return t.Template, nil
}

// MapTemplate formats template once per record of ds, in record order.
func MapTemplate(ds *dataset.Dataset, template *PromptTemplate) ([]string, error) {
	if template == nil {
		return nil, fmt.Errorf("%w: nil template", ErrInvalidTemplate)
	}
	formatted := make([]string, 0, ds.Len())
	if ds == nil {
		return formatted, nil
	}
	for i, record := range ds.Records {
		values := make(map[string]any, len(template.variables))
		for _, name := range template.variables {
			value, ok := record[name]
			if !ok {
				return nil, fmt.Errorf("error while constructing the prompts from the template and dataset variables: record %d: %w %q",
					i, ErrMissingVariable, name)
			}
			values[name] = value
		}
		formatted = append(formatted, template.Format(values))
	}
	return formatted, nil
}
