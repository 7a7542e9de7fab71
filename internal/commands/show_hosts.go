// internal/commands/show_hosts.go
package commands

import (
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"
)

// showHostsCmd implements the 'show hosts' command, which dumps the configured
// model hosts with their sampling parameters.
var showHostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "Show configured model hosts and their parameters",
	Long:  `Show the model hosts from the configuration file, including models, system prompts, and sampling parameters.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, host := range GetConfig().Hosts {
			pp.Println(host)
		}
	},
}

func init() {
	showCmd.AddCommand(showHostsCmd)
}
