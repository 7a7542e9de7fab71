// internal/appconfig/show.go
package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	fmt.Fprintln(out, "Current configuration:")
	if cfg == nil {
		fmt.Fprintf(out, "  Debug:            %v\n", fallback.Debug)
		fmt.Fprintf(out, "  Log File:         %s\n", fallback.LogFilePath())
		return
	}

	fmt.Fprintf(out, "  Debug:            %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Log File:         %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Request Timeout:  %s\n", cfg.RequestTimeout())
	fmt.Fprintf(out, "  Hosts:            %d\n", len(cfg.Hosts))
	fmt.Fprintf(out, "  Embedding Model:  %s\n", cfg.EmbeddingModel)
	if cfg.EmbeddingHost != "" {
		fmt.Fprintf(out, "  Embedding Host:   %s\n", cfg.EmbeddingHost)
	}
	fmt.Fprintf(out, "  Corpus Index:     %s\n", cfg.CorpusIndexPath)
	fmt.Fprintf(out, "  Corpus Metadata:  %s\n", cfg.CorpusMetadataPath)
	fmt.Fprintf(out, "  Retrieval Top K:  %d\n", cfg.TopK())
	fmt.Fprintf(out, "  Context Cap:      %d\n", cfg.ContextLimit())
	if cfg.PersonaDir != "" {
		fmt.Fprintf(out, "  Persona Dir:      %s\n", cfg.PersonaDir)
	}
}
