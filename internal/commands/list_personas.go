// internal/commands/list_personas.go
package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/RNAdvani/kurukshetra/internal/persona"
)

// personasCmd implements 'list personas', which prints every persona
// available for debate sessions, built-in and user-defined.
var personasCmd = &cobra.Command{
	Use:   "personas",
	Short: "List available debate personas",
	Long:  `The 'personas' subcommand lists every persona available for debate sessions, including those loaded from the persona directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := persona.LoadRegistry(GetConfig().PersonaDir)
		if err != nil {
			return err
		}

		nameStyle := color.New(color.FgCyan, color.Bold)
		for _, name := range registry.Names() {
			p, err := registry.Get(name)
			if err != nil {
				return err
			}
			nameStyle.Printf("%s (%s)\n", p.DisplayName(), name)
			fmt.Printf("  style: %s\n", strings.Join(p.Profile.RhetoricalStyle, ", "))
		}
		return nil
	},
}

func init() {
	listCmd.AddCommand(personasCmd)
}
