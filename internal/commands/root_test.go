// internal/commands/root_test.go
package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"github.com/RNAdvani/kurukshetra/internal/logging"
)

// TestRootCmd verifies running the root command with an invalid subcommand reports an error.
func TestRootCmd(t *testing.T) {
	b := new(bytes.Buffer)
	rootCmd.SetOut(b)
	rootCmd.SetErr(b)

	rootCmd.SetArgs([]string{"nonexistent"})
	_, err := rootCmd.ExecuteC()

	if err == nil {
		t.Error("Expected an error for a nonexistent command, but got none")
	}

	expected := "unknown command \"nonexistent\" for \"kurukshetra\""
	if !strings.Contains(b.String(), expected) {
		t.Errorf("Expected output to contain '%s', but got '%s'", expected, b.String())
	}
}

func resetFlag(cmdFlag string) {
	flag := rootCmd.PersistentFlags().Lookup(cmdFlag)
	if flag == nil {
		return
	}
	_ = flag.Value.Set(flag.DefValue)
	flag.Changed = false
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestPersistentPreRunELoadsConfigAndFlags(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "kurukshetra.log")
	configPath := writeTempConfig(t, `{
		"hosts": [{"name": "local", "url": "http://localhost:11434", "type": "ollama", "models": ["llama3.1:8b"]}],
		"corpusIndexPath": "data/corpus.index",
		"corpusMetadataPath": "data/corpus.jsonl",
		"embeddingModel": "nomic-embed-text"
	}`)

	prevCfgFile := cfgFile
	cfgFile = configPath
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		currentConfig = nil
	})
	t.Cleanup(func() { _ = logging.Close() })

	for _, name := range []string{"debug", "logFile"} {
		resetFlag(name)
	}
	_ = rootCmd.PersistentFlags().Set("debug", "true")
	_ = rootCmd.PersistentFlags().Set("logFile", logPath)

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}

	cfg := GetConfig()
	if cfg == nil {
		t.Fatal("expected config to be loaded")
	}
	if !cfg.Debug {
		t.Error("expected debug flag to override config")
	}
	if cfg.LogFilePath() != logPath {
		t.Errorf("expected log file %q, got %q", logPath, cfg.LogFilePath())
	}
	if viper.GetBool("debug") != true {
		t.Error("expected viper binding for debug flag")
	}
}

func TestPersistentPreRunERejectsMissingConfig(t *testing.T) {
	prevCfgFile := cfgFile
	cfgFile = filepath.Join(t.TempDir(), "absent.json")
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		for _, name := range []string{"debug", "logFile"} {
			resetFlag(name)
		}
	})

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
