package cmd

import (
	"errors"
	"fmt"

	"github.com/prashantgupta17/evaltemplates/config"
	"github.com/prashantgupta17/evaltemplates/dataset"
	"github.com/prashantgupta17/evaltemplates/evals"
	"github.com/prashantgupta17/evaltemplates/templates"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// datasetFlags are shared by the commands that evaluate a dataset.
type datasetFlags struct {
	input  string
	output string
	filter string
}

func (f *datasetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "", "dataset file (.json, .jsonl, .csv)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file; JSON lines on stdout when empty")
	cmd.Flags().StringVar(&f.filter, "filter", "", `Starlark expression over row selecting records, e.g. row["query"] != ""`)
	_ = cmd.MarkFlagRequired("input")
}

func (f *datasetFlags) load() (*dataset.Dataset, error) {
	ds, err := dataset.Load(f.input)
	if err != nil {
		return nil, err
	}
	if f.filter == "" {
		return ds, nil
	}
	filtered, err := ds.Filter(f.filter)
	if err != nil {
		return nil, err
	}
	log.Info("filtered dataset", zap.Int("before", ds.Len()), zap.Int("after", filtered.Len()))
	return filtered, nil
}

func (f *datasetFlags) write(cmd *cobra.Command, ds *dataset.Dataset) error {
	if f.output == "" {
		return dataset.Encode(cmd.OutOrStdout(), "jsonl", ds)
	}
	if err := dataset.Save(f.output, ds); err != nil {
		return err
	}
	log.Info("wrote results", zap.String("path", f.output), zap.Int("records", ds.Len()))
	return nil
}

// templateFlags select a template by registry name or inline text.
type templateFlags struct {
	name string
	text string
}

func (f *templateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, "template-name", "t", "", "registered template name (see 'templates list')")
	cmd.Flags().StringVar(&f.text, "template", "", "inline template text with {variable} placeholders")
	cmd.MarkFlagsMutuallyExclusive("template-name", "template")
}

// resolve returns the selected template and, for registered templates, its rails.
func (f *templateFlags) resolve(registry *templates.Registry) (*templates.PromptTemplate, []string, error) {
	if f.name != "" {
		t, err := registry.Get(f.name)
		if err != nil {
			return nil, nil, err
		}
		return t.Template, t.Rails.Rails(), nil
	}
	if f.text == "" {
		return nil, nil, errors.New("one of --template-name or --template is required")
	}
	return templates.NewPromptTemplate(f.text), nil, nil
}

// newRegistry returns the built-in templates plus those under templates.dir.
func newRegistry(s *config.Settings) (*templates.Registry, error) {
	registry := templates.NewRegistry()
	custom, err := config.LoadTemplates(s.Templates.Dir)
	if err != nil {
		return nil, err
	}
	for _, t := range custom {
		if err := registry.Register(t); err != nil {
			return nil, fmt.Errorf("error registering template from %s: %w", s.Templates.Dir, err)
		}
		log.Debug("registered custom template", zap.String("name", t.Name))
	}
	return registry, nil
}

func evalOptions(s *config.Settings) []evals.Option {
	return []evals.Option{
		evals.WithConcurrency(s.Evals.Concurrency),
		evals.WithMaxRetries(s.Evals.MaxRetries),
		evals.WithLogger(log),
	}
}
