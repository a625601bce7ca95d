package templates

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrTemplateNotFound  = errors.New("template not found")
	ErrDuplicateTemplate = errors.New("template already registered")
)

// Names of the built-in evaluation templates.
const (
	HallucinationTemplateName   = "hallucination"
	RAGRelevancyTemplateName    = "rag_relevancy"
	ToxicityTemplateName        = "toxicity"
	CodeReadabilityTemplateName = "code_readability"
)

// EvalTemplate bundles a prompt template with the rails its answers are snapped to.
type EvalTemplate struct {
	Name        string
	Description string
	Template    *PromptTemplate
	Rails       RailsMap
}

// Builtin returns the four built-in evaluation templates.
func Builtin() []EvalTemplate {
	return []EvalTemplate{
		{
			Name:        HallucinationTemplateName,
			Description: "Checks whether an answer is grounded in the reference text.",
			Template:    NewPromptTemplate(HallucinationPromptTemplateStr),
			Rails:       HallucinationPromptRailsMap,
		},
		{
			Name:        RAGRelevancyTemplateName,
			Description: "Checks whether a retrieved document can answer the question.",
			Template:    NewPromptTemplate(RAGRelevancyPromptTemplateStr),
			Rails:       RAGRelevancyPromptRailsMap,
		},
		{
			Name:        ToxicityTemplateName,
			Description: "Checks whether a text is toxic.",
			Template:    NewPromptTemplate(ToxicityPromptTemplateStr),
			Rails:       ToxicityPromptRailsMap,
		},
		{
			Name:        CodeReadabilityTemplateName,
			Description: "Grades the readability of code written for a task.",
			Template:    NewPromptTemplate(CodeReadabilityPromptTemplateStr),
			Rails:       CodeReadabilityPromptRailsMap,
		},
	}
}

// Registry holds evaluation templates by name. It is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]EvalTemplate
}

// NewRegistry returns a registry preloaded with the built-in templates.
func NewRegistry() *Registry {
	r := &Registry{templates: make(map[string]EvalTemplate)}
	for _, t := range Builtin() {
		r.templates[t.Name] = t
	}
	return r
}

// Register adds a template. Names must be unique.
func (r *Registry) Register(t EvalTemplate) error {
	if t.Name == "" {
		return errors.New("template name is required")
	}
	if t.Template == nil {
		return fmt.Errorf("template %q has no prompt", t.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.templates[t.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateTemplate, t.Name)
	}
	r.templates[t.Name] = t
	return nil
}

// Get looks up a template by name.
func (r *Registry) Get(name string) (EvalTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[name]
	if !ok {
		return EvalTemplate{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return t, nil
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
