package cli

import (
	"encoding/json"
	"os"

	"github.com/getmockd/mockwatchlogs/pkg/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration serve would run with, after applying the
--config file, environment variables and defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg := config.DefaultServerConfiguration()
		if path != "" {
			loaded, err := config.LoadFromFile(path)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		}
		data, err := config.ToYAML(cfg)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	},
}

func init() {
	configCmd.Flags().StringP("config", "c", "", "Path to configuration file (YAML or JSON)")
	rootCmd.AddCommand(configCmd)
}
