package templates_test

import (
	"testing"

	"github.com/prashantgupta17/evaltemplates/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplates_Variables(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		variables []string
		rails     templates.RailsMap
		expected  []string
	}{
		{"hallucination", templates.HallucinationPromptTemplateStr, []string{"query", "reference", "response"}, templates.HallucinationPromptRailsMap, []string{"factual", "hallucinated"}},
		{"rag relevancy", templates.RAGRelevancyPromptTemplateStr, []string{"query", "reference"}, templates.RAGRelevancyPromptRailsMap, []string{"relevant", "irrelevant"}},
		{"toxicity", templates.ToxicityPromptTemplateStr, []string{"text"}, templates.ToxicityPromptRailsMap, []string{"toxic", "non-toxic"}},
		{"code readability", templates.CodeReadabilityPromptTemplateStr, []string{"query", "code"}, templates.CodeReadabilityPromptRailsMap, []string{"readable", "unreadable"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := templates.NewPromptTemplate(tt.text)
			assert.Equal(t, tt.variables, tmpl.Variables())
			assert.Equal(t, tt.expected, tt.rails.Rails())
			for _, rail := range tt.expected {
				assert.Contains(t, tt.text, `"`+rail+`"`)
			}
		})
	}
}

func TestRailsMap(t *testing.T) {
	rails := templates.HallucinationPromptRailsMap

	assert.Equal(t, "factual", rails.Label(true))
	assert.Equal(t, "hallucinated", rails.Label(false))

	v, ok := rails.Value("FACTUAL")
	require.True(t, ok)
	assert.True(t, v)

	v, ok = rails.Value("hallucinated")
	require.True(t, ok)
	assert.False(t, v)

	_, ok = rails.Value(templates.NotParsable)
	assert.False(t, ok)

	assert.Equal(t, "", templates.RailsMap{}.Label(true))
}

func TestRegistry(t *testing.T) {
	r := templates.NewRegistry()
	assert.Equal(t, []string{"code_readability", "hallucination", "rag_relevancy", "toxicity"}, r.List())

	got, err := r.Get(templates.ToxicityTemplateName)
	require.NoError(t, err)
	assert.Equal(t, []string{"text"}, got.Template.Variables())

	_, err = r.Get("missing")
	assert.ErrorIs(t, err, templates.ErrTemplateNotFound)

	err = r.Register(templates.EvalTemplate{Name: "toxicity", Template: templates.NewPromptTemplate("{x}")})
	assert.ErrorIs(t, err, templates.ErrDuplicateTemplate)

	err = r.Register(templates.EvalTemplate{Name: "no_prompt"})
	assert.Error(t, err)

	custom := templates.EvalTemplate{
		Name:     "politeness",
		Template: templates.NewPromptTemplate("Is this polite? {text}"),
		Rails:    templates.NewRailsMap("polite", "rude"),
	}
	require.NoError(t, r.Register(custom))
	assert.Contains(t, r.List(), "politeness")
}
