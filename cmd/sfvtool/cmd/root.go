package cmd

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:          "sfvtool",
		Short:        "sfvtool",
		SilenceUsage: true,
		Long:         `CLI for parsing HTTP Structured Field Values (lists, dictionaries, items) and validating header dumps against them.`,
	}

	configPath string
	debug      bool

	log logrus.FieldLogger
)

// Execute runs the root command.
func Execute() error {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a .sfvtool.yaml config file (defaults to ./.sfvtool.yaml if present)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "dump parsed values structurally via repr instead of printing one line per element")
	return rootCmd.Execute()
}

func init() {
	base := logrus.New()
	base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log = base.WithField("trace_id", uuid.New().String())
}
