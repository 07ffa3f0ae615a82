package config

import (
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("no-such-env")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Engine.Driver != "memory" {
		t.Errorf("expected default engine driver memory, got %q", cfg.Engine.Driver)
	}
	if cfg.Retrieval.WeightingModel != "pl2" {
		t.Errorf("expected default weighting model pl2, got %q", cfg.Retrieval.WeightingModel)
	}
	if cfg.Retrieval.MatchingModel != "daat" {
		t.Errorf("expected default matching model daat, got %q", cfg.Retrieval.MatchingModel)
	}
	if cfg.Output.MaxDisplayed != 1000 {
		t.Errorf("expected default max_displayed 1000, got %d", cfg.Output.MaxDisplayed)
	}
	if len(cfg.Output.MetaKeys) != 1 || cfg.Output.MetaKeys[0] != "docno" {
		t.Errorf("expected default meta keys [docno], got %v", cfg.Output.MetaKeys)
	}
	if !cfg.Interactive.Lowercase {
		t.Error("expected lowercase to default to true")
	}
	if cfg.Metadata.Driver != "engine" {
		t.Errorf("expected default metadata driver engine, got %q", cfg.Metadata.Driver)
	}
}

func TestOverride_KnownKeys(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	overrides := map[string]string{
		"engine.driver":             "memory",
		"engine.corpus":             "testdata/corpus.jsonl",
		"retrieval.weighting_model": "bm25",
		"output.max_displayed":      "25",
		"output.meta_keys":          "docno, title",
		"lowercase":                 "false",
		"metrics.addr":              ":9095",
	}
	for k, v := range overrides {
		if err := cfg.Override(k, v); err != nil {
			t.Fatalf("Override(%s=%s): %v", k, v, err)
		}
	}

	if cfg.Engine.Corpus != "testdata/corpus.jsonl" {
		t.Errorf("corpus not applied: %q", cfg.Engine.Corpus)
	}
	if cfg.Retrieval.WeightingModel != "bm25" {
		t.Errorf("weighting model not applied: %q", cfg.Retrieval.WeightingModel)
	}
	if cfg.Output.MaxDisplayed != 25 {
		t.Errorf("max_displayed not applied: %d", cfg.Output.MaxDisplayed)
	}
	if len(cfg.Output.MetaKeys) != 2 || cfg.Output.MetaKeys[1] != "title" {
		t.Errorf("meta keys not applied: %v", cfg.Output.MetaKeys)
	}
	if cfg.Interactive.Lowercase {
		t.Error("lowercase override not applied")
	}
	if cfg.Metrics.Addr != ":9095" {
		t.Errorf("metrics addr not applied: %q", cfg.Metrics.Addr)
	}
}

func TestOverride_UnknownKeyIsIdempotent(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if err := cfg.Override("foo", "bar"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Override("foo", "bar"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Extra) != 1 || cfg.Extra["foo"] != "bar" {
		t.Errorf("expected Extra == {foo: bar}, got %v", cfg.Extra)
	}

	if err := cfg.Override("foo", "baz"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Extra["foo"] != "baz" {
		t.Errorf("expected override to overwrite, got %q", cfg.Extra["foo"])
	}
}

func TestOverride_BadValues(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if err := cfg.Override("output.max_displayed", "lots"); err == nil {
		t.Error("expected error for non-numeric max_displayed")
	}
	if cfg.Output.MaxDisplayed != 1000 {
		t.Errorf("failed override must leave value unchanged, got %d", cfg.Output.MaxDisplayed)
	}
	if err := cfg.Override("lowercase", "maybe"); err == nil {
		t.Error("expected error for non-boolean lowercase")
	}
}

func TestValidate_RedisDriverNeedsAddrs(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	cfg.Metadata.Driver = "redis"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "metadata.addrs") {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.Metadata.Addrs = []string{"localhost:6379"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_UnknownMetadataDriver(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	cfg.Metadata.Driver = "dynamo"

	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown metadata driver")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SIFT_TEST_CORPUS", "/data/corpus.jsonl")

	in := []byte("corpus: ${SIFT_TEST_CORPUS}\naddr: ${SIFT_TEST_MISSING:-localhost:6379}")
	out := string(expandEnvVars(in))

	if !strings.Contains(out, "/data/corpus.jsonl") {
		t.Errorf("env var not expanded: %s", out)
	}
	if !strings.Contains(out, "localhost:6379") {
		t.Errorf("default not applied: %s", out)
	}
}
