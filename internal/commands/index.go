// internal/commands/index.go
package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/RNAdvani/kurukshetra/internal/corpus"
	"github.com/RNAdvani/kurukshetra/internal/providerfactory"
)

// indexCmd rebuilds the corpus vector index from the metadata file.
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the corpus vector index from the metadata file",
	Long: `The 'index' command re-embeds every record in the corpus metadata file
and writes a fresh vector index. Run it after editing the metadata file;
the serve command also rebuilds automatically when counts diverge.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		provider, err := providerfactory.New(cfg)
		if err != nil {
			return err
		}
		defer provider.Close()

		store, err := corpus.LoadStore(cfg.CorpusMetadataPath)
		if err != nil {
			return err
		}
		if store.Size() == 0 {
			return fmt.Errorf("corpus metadata %s contains no usable records", cfg.CorpusMetadataPath)
		}

		index, err := corpus.Build(cmd.Context(), cfg, provider, store)
		if err != nil {
			return err
		}

		color.Green("Indexed %d documents (%d dimensions) into %s", index.Count(), index.Dim(), cfg.CorpusIndexPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
