package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kylejlin/snafed/configs"
)

// configCmd prints the effective merged configuration
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration after merging defaults, the config file,
environment variables, and flags, as YAML.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) error {
	config, err := configs.LoadConfig()
	if err != nil {
		return err
	}

	if err := configs.ValidateConfig(config); err != nil {
		fmt.Fprintf(os.Stderr, "warning: configuration is invalid: %v\n", err)
	}

	out, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	_, err = os.Stdout.Write(out)
	return err
}
