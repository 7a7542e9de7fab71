// internal/commands/analyze.go
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/RNAdvani/kurukshetra/internal/analysis"
)

var (
	analyzeTopic       string
	analyzePerson1     string
	analyzePerson2     string
	analyzePerson1File string
	analyzePerson2File string
)

// analyzeCmd runs a one-shot debate analysis from the command line.
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a two-speaker debate from the command line",
	Long: `The 'analyze' command scores two arguments against each other across the
rhetorical aspects (ethos, pathos, logos, stoic), fact-checks the combined
text, and prints the weighted comparison.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		person1, err := argumentText(analyzePerson1, analyzePerson1File)
		if err != nil {
			return fmt.Errorf("person1: %w", err)
		}
		person2, err := argumentText(analyzePerson2, analyzePerson2File)
		if err != nil {
			return fmt.Errorf("person2: %w", err)
		}

		comps, err := buildComponents(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer comps.close()

		report, err := comps.orchestrator.AnalyzeDebate(cmd.Context(), analyzeTopic, person1, person2)
		if err != nil {
			return err
		}
		printDebateAnalysis(report)
		return nil
	},
}

func argumentText(literal, file string) (string, error) {
	if strings.TrimSpace(literal) != "" {
		return literal, nil
	}
	if strings.TrimSpace(file) == "" {
		return "", fmt.Errorf("provide the argument text or a file")
	}
	raw, err := os.ReadFile(file)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}

func printDebateAnalysis(report *analysis.DebateAnalysis) {
	heading := color.New(color.FgCyan, color.Bold)
	aspectReports := []struct {
		name   string
		report analysis.AspectReport
	}{
		{"ethos", report.Ethos},
		{"pathos", report.Pathos},
		{"logos", report.Logos},
		{"stoic", report.Stoic},
	}

	for _, entry := range aspectReports {
		heading.Printf("\n%s\n", strings.ToUpper(entry.name))
		fmt.Printf("  person1: %.1f  person2: %.1f  (diff %.1f, leading: %s)\n",
			entry.report.Scores[analysis.SpeakerPerson1],
			entry.report.Scores[analysis.SpeakerPerson2],
			entry.report.Difference,
			entry.report.Leading)
		for _, speaker := range []string{analysis.SpeakerPerson1, analysis.SpeakerPerson2} {
			if explanation := entry.report.Explanations[speaker]; explanation != "" {
				fmt.Printf("  %s: %s\n", speaker, explanation)
			}
		}
	}

	heading.Printf("\nFACTS\n")
	if report.Facts.ContainsErrors {
		color.Red("  %d contradicted claim(s) of %d checked", len(report.Facts.IncorrectClaims), len(report.Facts.AllClaims))
		for _, claim := range report.Facts.IncorrectClaims {
			fmt.Printf("  - %q: %s (confidence %.0f)\n", claim.Claim, claim.Summary, claim.Confidence)
		}
	} else {
		fmt.Printf("  no contradicted claims among %d checked\n", len(report.Facts.AllClaims))
	}

	heading.Printf("\nTOTAL\n")
	fmt.Printf("  person1: %.2f  person2: %.2f\n", report.Total.Person1, report.Total.Person2)
	color.Green("  winner: %s", report.Total.Winner)
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeTopic, "topic", "", "debate topic (required)")
	analyzeCmd.Flags().StringVar(&analyzePerson1, "person1", "", "first speaker's argument text")
	analyzeCmd.Flags().StringVar(&analyzePerson2, "person2", "", "second speaker's argument text")
	analyzeCmd.Flags().StringVar(&analyzePerson1File, "person1File", "", "file with the first speaker's argument")
	analyzeCmd.Flags().StringVar(&analyzePerson2File, "person2File", "", "file with the second speaker's argument")
	_ = analyzeCmd.MarkFlagRequired("topic")
	rootCmd.AddCommand(analyzeCmd)
}
