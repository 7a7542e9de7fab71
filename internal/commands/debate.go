// internal/commands/debate.go
package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/RNAdvani/kurukshetra/cli"
)

// startGUI is a function alias to cli.StartGUI for starting the debate interface.
var startGUI = cli.StartGUI

// debateCmd represents the 'debate' command, which starts an interactive debate session.
var debateCmd = &cobra.Command{
	Use:   "debate",
	Short: "Start an interactive debate with a persona",
	Long: `The 'debate' command starts an interactive debate session against a
simulated public figure. Pick a persona, make your argument, and the persona
responds in character using retrieved reference material.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(cmd.Context())
		startGUI(ctx, GetConfig(), cancel)
	},
}

func init() {
	rootCmd.AddCommand(debateCmd)
}
