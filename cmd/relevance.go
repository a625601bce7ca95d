package cmd

import (
	"github.com/prashantgupta17/evaltemplates/evals"
	"github.com/spf13/cobra"
)

var relevanceFlags struct {
	data            datasetFlags
	queryColumn     string
	documentsColumn string
}

var relevanceCmd = &cobra.Command{
	Use:   "relevance",
	Short: "Judge whether each retrieved document is relevant to its query",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := &relevanceFlags
		ds, err := f.data.load()
		if err != nil {
			return err
		}
		model, err := newModel(settings, log)
		if err != nil {
			return err
		}

		opts := append(evalOptions(settings),
			evals.WithQueryColumn(f.queryColumn),
			evals.WithDocumentsColumn(f.documentsColumn))
		relevance, err := evals.RunRelevanceEval(cmd.Context(), model, ds, opts...)
		if err != nil {
			return err
		}
		values := make([]any, len(relevance))
		for i, r := range relevance {
			values[i] = r
		}
		if err := ds.WithColumn("relevance", values); err != nil {
			return err
		}
		return f.data.write(cmd, ds)
	},
}

func init() {
	f := &relevanceFlags
	f.data.register(relevanceCmd)
	relevanceCmd.Flags().StringVar(&f.queryColumn, "query-column", evals.DefaultQueryColumn, "column holding the query")
	relevanceCmd.Flags().StringVar(&f.documentsColumn, "documents-column", evals.DefaultDocumentsColumn, "column holding the retrieved documents")
	rootCmd.AddCommand(relevanceCmd)
}
