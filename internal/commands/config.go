// internal/commands/config.go
package tccc

import (
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/tccc/internal/appconfig"
)

var rawConfig bool

// configCmd implements the 'config' command, which displays the current configuration settings.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON config is loaded properly and overridden by environment variables and flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := GetConfig()
		if rawConfig {
			if cfg == nil {
				d := appconfig.Defaults()
				cfg = &d
			}
			redacted := *cfg
			if redacted.Host.APIKey != "" {
				redacted.Host.APIKey = "********"
			}
			pp.Fprintln(cmd.OutOrStdout(), redacted)
			return
		}
		appconfig.ShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), cfg)
	},
}

func init() {
	configCmd.Flags().BoolVar(&rawConfig, "raw", false, "dump the merged configuration structure")
	rootCmd.AddCommand(configCmd)
}
