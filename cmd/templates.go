package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect the available evaluation templates",
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := newRegistry(settings)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tRAILS\tVARIABLES")
		for _, name := range registry.List() {
			t, err := registry.Get(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", t.Name,
				strings.Join(t.Rails.Rails(), ","),
				strings.Join(t.Template.Variables(), ","))
		}
		return w.Flush()
	},
}

var templatesShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Print a template's text and rails",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := newRegistry(settings)
		if err != nil {
			return err
		}
		t, err := registry.Get(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", t.Name)
		if t.Description != "" {
			fmt.Fprintf(out, "# %s\n", t.Description)
		}
		fmt.Fprintf(out, "# rails: %s\n\n", strings.Join(t.Rails.Rails(), ", "))
		fmt.Fprintln(out, t.Template.Text())
		return nil
	},
}

func init() {
	templatesCmd.AddCommand(templatesListCmd, templatesShowCmd)
	rootCmd.AddCommand(templatesCmd)
}
