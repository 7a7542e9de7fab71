// internal/providerfactory/factory_test.go
package providerfactory

import (
	"testing"

	"github.com/RNAdvani/kurukshetra/internal/appconfig"
)

func TestNewRejectsNilConfig(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestNewRejectsNoHosts(t *testing.T) {
	if _, err := New(&appconfig.Config{}); err == nil {
		t.Fatal("expected error for empty host list")
	}
}

func TestNewRejectsUnknownHostType(t *testing.T) {
	cfg := &appconfig.Config{Hosts: []appconfig.Host{{Name: "h", Type: "llama.cpp"}}}
	if _, err := New(cfg); err == nil {
		t.Fatal("expected error for unsupported host type")
	}
}

func TestNewOllamaProvider(t *testing.T) {
	cfg := &appconfig.Config{Hosts: []appconfig.Host{{Name: "h", URL: "http://localhost:11434", Type: "ollama"}}}
	provider, err := New(cfg)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if provider == nil {
		t.Fatal("expected provider")
	}
	_ = provider.Close()
}

func TestNewLlamaCppProvider(t *testing.T) {
	cfg := &appconfig.Config{Hosts: []appconfig.Host{{Name: "h", URL: "http://localhost:8080", Type: "llamacpp"}}}
	provider, err := New(cfg)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if provider == nil {
		t.Fatal("expected provider")
	}
	_ = provider.Close()
}

func TestNewMixedHostTypes(t *testing.T) {
	cfg := &appconfig.Config{Hosts: []appconfig.Host{
		{Name: "gen", URL: "http://localhost:11434", Type: "ollama"},
		{Name: "embed", URL: "http://localhost:8080", Type: "llamacpp"},
	}}
	provider, err := New(cfg)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if provider == nil {
		t.Fatal("expected multiplexing provider")
	}
	_ = provider.Close()
}
