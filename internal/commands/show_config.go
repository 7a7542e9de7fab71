// internal/commands/show_config.go
package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RNAdvani/kurukshetra/internal/appconfig"
)

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overridden by flags accordingly.`,
	Run: func(cmd *cobra.Command, args []string) {
		fallback := appconfig.Config{
			Debug:   viper.GetBool("debug"),
			LogFile: viper.GetString("logFile"),
		}
		cfg := GetConfig()
		var file string
		if cfg != nil {
			file = cfg.ConfigPath
		}
		appconfig.ShowConfig(cmd.OutOrStdout(), file, cfg, fallback)
	},
}

func init() {
	showCmd.AddCommand(showConfigCmd)
}
