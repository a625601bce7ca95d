package cmd

import (
	"github.com/prashantgupta17/evaltemplates/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve templates and evaluations over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := newRegistry(settings)
		if err != nil {
			return err
		}
		model, err := newModel(settings, log)
		if err != nil {
			return err
		}
		return server.NewEvalServer(model, registry, log, evalOptions(settings)...).Start(settings.Server.Port)
	},
}

func init() {
	serveCmd.Flags().StringP("port", "p", "8080", "HTTP port")
	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	rootCmd.AddCommand(serveCmd)
}
