package evals

import (
	"context"
	"fmt"
	"time"

	"github.com/prashantgupta17/evaltemplates/dataset"
	"github.com/prashantgupta17/evaltemplates/llm"
	"github.com/prashantgupta17/evaltemplates/templates"
	"go.uber.org/zap"
)

// Generate formats template for every record in ds and returns the parsed model
// output per record. The default parser yields {"output": text}.
// Under WithContinueOnError a failed record yields {"error": message}.
func Generate(ctx context.Context, model llm.Model, ds *dataset.Dataset, template any, opts ...Option) ([]map[string]any, error) {
	o := newOptions(opts)

	tmpl, err := templates.NormalizeTemplate(template)
	if err != nil {
		return nil, err
	}
	prompts, err := templates.MapTemplate(ds, tmpl)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	o.logger.Info("generation started", zap.String("model", model.Name()), zap.Int("records", len(prompts)))

	outputs := make([]map[string]any, len(prompts))
	errs, err := runAll(ctx, len(prompts), o, func(ctx context.Context, i int) error {
		resp, err := completeWithRetries(ctx, model, llm.Request{
			Prompt:            prompts[i],
			SystemInstruction: o.systemInstruction,
		}, o)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		parsed, err := o.outputParser(resp.Text)
		if err != nil {
			return fmt.Errorf("record %d: error parsing output: %w", i, err)
		}
		outputs[i] = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i, e := range errs {
		if e != nil {
			outputs[i] = map[string]any{"error": e.Error()}
		}
	}

	o.logger.Info("generation finished",
		zap.String("model", model.Name()),
		zap.Int("records", len(outputs)),
		zap.Duration("elapsed", time.Since(start)))

	return outputs, nil
}
