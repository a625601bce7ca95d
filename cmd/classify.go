package cmd

import (
	"github.com/prashantgupta17/evaltemplates/evals"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var classifyFlags struct {
	data              datasetFlags
	template          templateFlags
	rails             []string
	systemInstruction string
	explain           bool
	column            string
	continueOnError   bool
	noFunctions       bool
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify each record of a dataset into the template's rails",
	Example: `  evaltemplates classify -t hallucination -i answers.jsonl -o labeled.csv
  evaltemplates classify --template "Is {text} polite?" --rails polite,rude -i chat.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f := &classifyFlags
		registry, err := newRegistry(settings)
		if err != nil {
			return err
		}
		tmpl, rails, err := f.template.resolve(registry)
		if err != nil {
			return err
		}
		if len(f.rails) > 0 {
			rails = f.rails
		}
		ds, err := f.data.load()
		if err != nil {
			return err
		}
		model, err := newModel(settings, log)
		if err != nil {
			return err
		}

		opts := append(evalOptions(settings),
			evals.WithSystemInstruction(f.systemInstruction),
			evals.WithExplanation(f.explain),
			evals.WithContinueOnError(f.continueOnError),
			evals.WithFunctionCalling(!f.noFunctions))
		results, err := evals.Classify(cmd.Context(), model, ds, tmpl, rails, opts...)
		if err != nil {
			return err
		}

		labels := make([]any, len(results))
		explanations := make([]any, len(results))
		errs := make([]any, len(results))
		failed := 0
		for i, r := range results {
			labels[i] = r.Label
			explanations[i] = r.Explanation
			if r.Err != nil {
				errs[i] = r.Err.Error()
				failed++
			}
		}
		if err := ds.WithColumn(f.column, labels); err != nil {
			return err
		}
		if f.explain {
			if err := ds.WithColumn("explanation", explanations); err != nil {
				return err
			}
		}
		if failed > 0 {
			log.Warn("some records failed", zap.Int("failed", failed))
			if err := ds.WithColumn("error", errs); err != nil {
				return err
			}
		}
		return f.data.write(cmd, ds)
	},
}

func init() {
	f := &classifyFlags
	f.data.register(classifyCmd)
	f.template.register(classifyCmd)
	classifyCmd.Flags().StringSliceVar(&f.rails, "rails", nil, "labels the answer must snap to (defaults to the template's rails)")
	classifyCmd.Flags().StringVar(&f.systemInstruction, "system", "", "system instruction sent with every prompt")
	classifyCmd.Flags().BoolVar(&f.explain, "explain", false, "ask the model to explain each label")
	classifyCmd.Flags().StringVar(&f.column, "column", "label", "output column for labels")
	classifyCmd.Flags().BoolVar(&f.continueOnError, "continue-on-error", false, "record failures instead of aborting")
	classifyCmd.Flags().BoolVar(&f.noFunctions, "no-function-calling", false, "parse labels from plain text even when the model supports tools")
	rootCmd.AddCommand(classifyCmd)
}
