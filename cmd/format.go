package cmd

import (
	"github.com/prashantgupta17/evaltemplates/templates"
	"github.com/spf13/cobra"
)

var formatFlags struct {
	data     datasetFlags
	template templateFlags
	column   string
}

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Render a template over each record without calling a model",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := &formatFlags
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
		prompts, err := templates.MapTemplate(ds, tmpl)
		if err != nil {
			return err
		}
		values := make([]any, len(prompts))
		for i, p := range prompts {
			values[i] = p
		}
		if err := ds.WithColumn(f.column, values); err != nil {
			return err
		}
		return f.data.write(cmd, ds)
	},
}

func init() {
	f := &formatFlags
	f.data.register(formatCmd)
	f.template.register(formatCmd)
	formatCmd.Flags().StringVar(&f.column, "column", "prompt", "output column for rendered prompts")
	rootCmd.AddCommand(formatCmd)
}
