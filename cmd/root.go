package cmd

import (
	"fmt"
	"os"

	"github.com/prashantgupta17/evaltemplates/config"
	"github.com/prashantgupta17/evaltemplates/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile  string
	settings *config.Settings
	log      = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "evaltemplates",
	Short: "LLM evaluation templates",
	Long: `Format evaluation prompt templates over datasets and classify the
answers of an LLM into rails (hallucination, relevancy, toxicity, code readability
or custom templates).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultConfigFile, "config file")

	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().StringP("model", "m", "openai/gpt-4o-mini", "model as provider/name (openai/..., anthropic/..., ollama/...)")
	viper.BindPFlag("model.name", rootCmd.PersistentFlags().Lookup("model"))

	rootCmd.PersistentFlags().Int("concurrency", 20, "maximum concurrent model calls")
	viper.BindPFlag("evals.concurrency", rootCmd.PersistentFlags().Lookup("concurrency"))

	rootCmd.PersistentFlags().String("templates-dir", "", "directory of custom YAML templates")
	viper.BindPFlag("templates.dir", rootCmd.PersistentFlags().Lookup("templates-dir"))
}

func initConfig() error {
	s, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}
	l, err := logger.Build(s.Logging.Level, s.Logging.Output)
	if err != nil {
		return fmt.Errorf("error building logger: %w", err)
	}
	settings = s
	log = l
	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("using config file", zap.String("path", used))
	}
	return nil
}
