package langchain

import (
	"github.com/prashantgupta17/evaltemplates/llm"
	"github.com/tmc/langchaingo/llms"
)

// toolFor converts a function definition into a LangChainGo tool.
func toolFor(def *llm.FunctionDefinition) llms.Tool {
	return llms.Tool{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        def.Name,
			Description: def.Description,
			Parameters:  def.Parameters,
		},
	}
}
