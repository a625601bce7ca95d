package cmd

import (
	"sort"

	"github.com/prashantgupta17/evaltemplates/evals"
	"github.com/spf13/cobra"
)

var generateFlags struct {
	data              datasetFlags
	template          templateFlags
	systemInstruction string
	continueOnError   bool
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a free-form answer for each record of a dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := &generateFlags
		registry, err := newRegistry(settings)
		if err != nil {
			return err
		}
		tmpl, _, err := f.template.resolve(registry)
		if err != nil {
			return err
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
			evals.WithContinueOnError(f.continueOnError))
		outputs, err := evals.Generate(cmd.Context(), model, ds, tmpl, opts...)
		if err != nil {
			return err
		}
		for _, key := range outputKeys(outputs) {
			values := make([]any, len(outputs))
			for i, out := range outputs {
				values[i] = out[key]
			}
			if err := ds.WithColumn(key, values); err != nil {
				return err
			}
		}
		return f.data.write(cmd, ds)
	},
}

func outputKeys(outputs []map[string]any) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, out := range outputs {
		for k := range out {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

func init() {
	f := &generateFlags
	f.data.register(generateCmd)
	f.template.register(generateCmd)
	generateCmd.Flags().StringVar(&f.systemInstruction, "system", "", "system instruction sent with every prompt")
	generateCmd.Flags().BoolVar(&f.continueOnError, "continue-on-error", false, "record failures instead of aborting")
	rootCmd.AddCommand(generateCmd)
}
