package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"urbanvision-ao/urbanvision/pkg/cli"
	"urbanvision-ao/urbanvision/pkg/config"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "urbanvision",
	Short: "Urban Vision Angola - environmental assistant API",
	Long: `Urban Vision Angola serves an environmental assistant for Angolan
municipalities. It answers questions about air quality, urban greening and
sustainability through a hosted language model:

  - /api/chat        free-form conversation with history
  - /api/analyze     air quality analysis for an area
  - /api/predict     multi-year environmental projection
  - /api/recommend   afforestation plan for an area

Without a provider credential the server still runs and answers the
generation endpoints with a configuration message.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with a status derived from the
// returned error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		fmt.Sprintf("config file path (default %q, may be absent)", config.DefaultPath))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
}

// loadConfig loads the configuration named by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("", err.Error())
	}
	return cfg, nil
}

// configPath is the file that loadConfig reads.
func configPath() string {
	if cfgFile == "" {
		return config.DefaultPath
	}
	return cfgFile
}
