package di

import (
	"context"
	"testing"

	"github.com/goliatone/go-translations/internal/languages"
	"github.com/goliatone/go-translations/internal/provider"
	"github.com/goliatone/go-translations/internal/records"
	"github.com/goliatone/go-translations/internal/runtimeconfig"
	"github.com/goliatone/go-translations/pkg/interfaces"
)

func TestNewContainer_Defaults(t *testing.T) {
	c, err := NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer() error = %v", err)
	}
	defer c.Close()

	if c.Orchestrator() == nil || c.Workflow() == nil || c.Cache() == nil {
		t.Fatal("expected all services to be assembled")
	}
	if _, ok := c.RecordStore().(*records.MemoryStore); !ok {
		t.Fatalf("default record store = %T, want MemoryStore", c.RecordStore())
	}
	if _, ok := c.Translator().(*provider.HTTPProvider); !ok {
		t.Fatalf("default translator = %T, want HTTPProvider", c.Translator())
	}
}

func TestNewContainer_RejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Languages.Default = "xx"

	if _, err := NewContainer(cfg); err == nil {
		t.Fatal("expected config validation error")
	}
}

func TestNewContainer_TranslatorOverride(t *testing.T) {
	stub := &provider.StubTranslator{}
	c, err := NewContainer(runtimeconfig.DefaultConfig(), WithTranslator(stub))
	if err != nil {
		t.Fatalf("NewContainer() error = %v", err)
	}
	defer c.Close()

	resp, err := c.Orchestrator().TranslateToAll(context.Background(), languages.Chinese, "你好", interfaces.FormatPlain)
	if err != nil {
		t.Fatalf("TranslateToAll() error = %v", err)
	}
	if !resp.Usable() {
		t.Fatalf("unexpected outcome %s", resp.Outcome)
	}
	if stub.Calls() != 1 {
		t.Fatalf("Calls = %d, want 1", stub.Calls())
	}
}

func TestNewContainer_OpenAIKind(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Provider.Kind = "openai"

	c, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer() error = %v", err)
	}
	defer c.Close()

	if _, ok := c.Translator().(*provider.OpenAIProvider); !ok {
		t.Fatalf("translator = %T, want OpenAIProvider", c.Translator())
	}
}

func TestNewContainer_SqliteStorage(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage = runtimeconfig.StorageConfig{
		Provider: "bun",
		Driver:   "sqlite",
		DSN:      "file::memory:?cache=shared",
	}

	c, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer() error = %v", err)
	}
	defer c.Close()

	if c.DB() == nil {
		t.Fatal("expected owned bun.DB for bun storage")
	}
	if _, ok := c.RecordStore().(*records.BunStore); !ok {
		t.Fatalf("record store = %T, want BunStore", c.RecordStore())
	}
}
