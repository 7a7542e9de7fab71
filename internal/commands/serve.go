// internal/commands/serve.go
package commands

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/RNAdvani/kurukshetra/internal/server"
)

var serverConfigPath string

// serveCmd starts the debate analysis HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the debate analysis HTTP API",
	Long: `The 'serve' command loads the corpus, wires the scoring pipeline, and
serves the analysis endpoints: POST /analyze, POST /analyze-message,
POST /debate, and GET /healthz.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		srvCfg, err := server.LoadConfig(serverConfigPath)
		if err != nil {
			return err
		}

		comps, err := buildComponents(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer comps.close()

		srv, err := server.New(srvCfg, comps.orchestrator, comps.debaterFactory(cfg))
		if err != nil {
			return err
		}
		log.Printf("serving debate analysis API on %s", srvCfg.Addr())
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverConfigPath, "serverConfig", server.DefaultConfigPath, "server config file")
	rootCmd.AddCommand(serveCmd)
}
