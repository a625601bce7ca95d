package evals

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/prashantgupta17/evaltemplates/llm"
)

const recordResponseFunctionName = "record_response"

// recordResponseFunction asks the model to pick one rail through a function call.
func recordResponseFunction(rails []string, withExplanation bool) *llm.FunctionDefinition {
	properties := map[string]any{
		"response": map[string]any{
			"type":        "string",
			"description": "Your response.",
			"enum":        rails,
		},
	}
	required := []string{"response"}
	if withExplanation {
		properties["explanation"] = map[string]any{
			"type":        "string",
			"description": "Explanation of the reasoning for your response.",
		}
		required = []string{"explanation", "response"}
	}

	return &llm.FunctionDefinition{
		Name:        recordResponseFunctionName,
		Description: "A function to record your response.",
		Parameters: map[string]any{
			"type":       "object",
			"properties": properties,
			"required":   required,
		},
	}
}

type recordResponseArguments struct {
	Response    string `json:"response"`
	Explanation string `json:"explanation"`
}

func parseFunctionArguments(raw string) (recordResponseArguments, bool) {
	var args recordResponseArguments
	if raw == "" {
		return args, false
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return args, false
	}
	return args, true
}

const explanationInstructions = `

Please read the text above carefully and write out in a step by step manner an EXPLANATION
to show how you determined your answer. Avoid simply stating the correct answer at the outset.
Your response LABEL must be a single word, one of: %s.

Use the following format exactly:
************
EXPLANATION: An explanation of your reasoning for why the label is what it is
LABEL: The single word label
************`

var labelMarker = regexp.MustCompile(`(?i)label\s*:`)
var explanationMarker = regexp.MustCompile(`(?i)explanation\s*:`)

// splitExplanation separates the explanation and the label part of a free-text answer.
// Answers without a LABEL marker are returned whole as the label part.
func splitExplanation(text string) (explanation, label string) {
	locs := labelMarker.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return "", text
	}
	last := locs[len(locs)-1]
	explanation = text[:last[0]]
	label = text[last[1]:]

	if loc := explanationMarker.FindStringIndex(explanation); loc != nil {
		explanation = explanation[loc[1]:]
	}
	explanation = strings.Trim(strings.TrimSpace(explanation), "*")
	label = strings.Trim(strings.TrimSpace(label), "*")
	return strings.TrimSpace(explanation), strings.TrimSpace(label)
}
