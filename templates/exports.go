package templates

// ExportedNames lists the public names of the evaluation templates surface,
// in the order they are exported.
var ExportedNames = []string{
	"PromptTemplate",
	"normalize_template",
	"map_template",
	"NOT_PARSABLE",
	"RAG_RELEVANCY_PROMPT_RAILS_MAP",
	"RAG_RELEVANCY_PROMPT_TEMPLATE_STR",
	"HALLUCINATION_PROMPT_RAILS_MAP",
	"HALLUCINATION_PROMPT_TEMPLATE_STR",
	"CODE_READABILITY_PROMPT_RAILS_MAP",
	"CODE_READABILITY_PROMPT_TEMPLATE_STR",
	"TOXICITY_PROMPT_RAILS_MAP",
	"TOXICITY_PROMPT_TEMPLATE_STR",
}

// Exports resolves every exported name to its Go value. Type names resolve to a zero value.
func Exports() map[string]any {
	return map[string]any{
		"PromptTemplate":                       PromptTemplate{},
		"normalize_template":                   NormalizeTemplate,
		"map_template":                         MapTemplate,
		"NOT_PARSABLE":                         NotParsable,
		"RAG_RELEVANCY_PROMPT_RAILS_MAP":       RAGRelevancyPromptRailsMap,
		"RAG_RELEVANCY_PROMPT_TEMPLATE_STR":    RAGRelevancyPromptTemplateStr,
		"HALLUCINATION_PROMPT_RAILS_MAP":       HallucinationPromptRailsMap,
		"HALLUCINATION_PROMPT_TEMPLATE_STR":    HallucinationPromptTemplateStr,
		"CODE_READABILITY_PROMPT_RAILS_MAP":    CodeReadabilityPromptRailsMap,
		"CODE_READABILITY_PROMPT_TEMPLATE_STR": CodeReadabilityPromptTemplateStr,
		"TOXICITY_PROMPT_RAILS_MAP":            ToxicityPromptRailsMap,
		"TOXICITY_PROMPT_TEMPLATE_STR":         ToxicityPromptTemplateStr,
	}
}
