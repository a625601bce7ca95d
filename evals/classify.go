package evals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prashantgupta17/evaltemplates/dataset"
	"github.com/prashantgupta17/evaltemplates/llm"
	"github.com/prashantgupta17/evaltemplates/templates"
	"go.uber.org/zap"
)

// ErrNoRails is returned when a classification is requested without any rails.
var ErrNoRails = errors.New("at least one rail is required")

// Classification is the outcome of classifying one record.
type Classification struct {
	Label       string `json:"label"`
	Explanation string `json:"explanation,omitempty"`
	Err         error  `json:"-"`
}

// Classify formats template for every record in ds, asks model to answer with one
// of rails and snaps each answer to a rail. Results are in record order.
//
// template may be a *templates.PromptTemplate, a templates.EvalTemplate or a string.
func Classify(ctx context.Context, model llm.Model, ds *dataset.Dataset, template any, rails []string, opts ...Option) ([]Classification, error) {
	o := newOptions(opts)
	if len(rails) == 0 {
		return nil, ErrNoRails
	}

	tmpl, err := templates.NormalizeTemplate(template)
	if err != nil {
		return nil, err
	}
	prompts, err := templates.MapTemplate(ds, tmpl)
	if err != nil {
		return nil, err
	}

	useFunction := o.useFunctionCalling && model.SupportsFunctionCalling()
	var function *llm.FunctionDefinition
	if useFunction {
		function = recordResponseFunction(rails, o.provideExplanation)
	}
	suffix := ""
	if o.provideExplanation && !useFunction {
		suffix = fmt.Sprintf(explanationInstructions, strings.Join(rails, ", "))
	}

	start := time.Now()
	o.logger.Info("classification started",
		zap.String("model", model.Name()),
		zap.Int("records", len(prompts)),
		zap.Strings("rails", rails),
		zap.Bool("function_calling", useFunction))

	results := make([]Classification, len(prompts))
	errs, err := runAll(ctx, len(prompts), o, func(ctx context.Context, i int) error {
		req := llm.Request{
			Prompt:            prompts[i] + suffix,
			SystemInstruction: o.systemInstruction,
			Function:          function,
		}
		resp, err := completeWithRetries(ctx, model, req, o)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		results[i] = parseClassification(resp, rails, o.provideExplanation)
		return nil
	})
	if err != nil {
		return nil, err
	}

	notParsable := 0
	for i := range results {
		if errs[i] != nil {
			results[i] = Classification{Label: templates.NotParsable, Err: errs[i]}
		}
		if results[i].Label == templates.NotParsable {
			notParsable++
		}
	}

	o.logger.Info("classification finished",
		zap.String("model", model.Name()),
		zap.Int("records", len(results)),
		zap.Int("not_parsable", notParsable),
		zap.Duration("elapsed", time.Since(start)))

	return results, nil
}

func parseClassification(resp llm.Response, rails []string, withExplanation bool) Classification {
	if args, ok := parseFunctionArguments(resp.FunctionArguments); ok {
		return Classification{
			Label:       SnapToRail(args.Response, rails),
			Explanation: args.Explanation,
		}
	}
	if withExplanation {
		explanation, label := splitExplanation(resp.Text)
		return Classification{
			Label:       SnapToRail(label, rails),
			Explanation: explanation,
		}
	}
	return Classification{Label: SnapToRail(resp.Text, rails)}
}

// Labels returns the labels of results in order.
func Labels(results []Classification) []string {
	labels := make([]string, len(results))
	for i, r := range results {
		labels[i] = r.Label
	}
	return labels
}

// BinaryLabels maps labels back through rails: true or false for a known rail, nil otherwise.
func BinaryLabels(results []Classification, rails templates.RailsMap) []*bool {
	out := make([]*bool, len(results))
	for i, r := range results {
		if v, ok := rails.Value(r.Label); ok {
			out[i] = &v
		}
	}
	return out
}
