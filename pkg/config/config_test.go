package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Index.K1 != 1.5 || cfg.Index.B != 0.75 {
		t.Errorf("Index params = (%v, %v), want (1.5, 0.75)", cfg.Index.K1, cfg.Index.B)
	}
	if cfg.Corpus.Source != CorpusSourceDir {
		t.Errorf("Corpus.Source = %q, want %q", cfg.Corpus.Source, CorpusSourceDir)
	}
	if cfg.Search.DefaultLimit != 5 {
		t.Errorf("Search.DefaultLimit = %d, want 5", cfg.Search.DefaultLimit)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	data := `
server:
  port: 9999
index:
  k1: 1.2
  b: 0.6
corpus:
  source: postgres
  table: documents
redis:
  addr: localhost:6379
  cacheTTL: 30s
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Index.K1 != 1.2 || cfg.Index.B != 0.6 {
		t.Errorf("Index params = (%v, %v), want (1.2, 0.6)", cfg.Index.K1, cfg.Index.B)
	}
	if cfg.Corpus.Source != CorpusSourcePostgres || cfg.Corpus.Table != "documents" {
		t.Errorf("Corpus = %+v, want postgres source with table documents", cfg.Corpus)
	}
	if cfg.Redis.CacheTTL != 30*time.Second {
		t.Errorf("Redis.CacheTTL = %v, want 30s", cfg.Redis.CacheTTL)
	}
	// Values absent from the file keep their defaults.
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default info", cfg.Logging.Level)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load with missing file: want error, got nil")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BR_SERVER_PORT", "7070")
	t.Setenv("BR_CORPUS_DIR", "/data/corpus")
	t.Setenv("BR_INDEX_K1", "2.0")
	t.Setenv("BR_KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.Corpus.Dir != "/data/corpus" {
		t.Errorf("Corpus.Dir = %q, want /data/corpus", cfg.Corpus.Dir)
	}
	if cfg.Index.K1 != 2.0 {
		t.Errorf("Index.K1 = %v, want 2.0", cfg.Index.K1)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[0] != "k1:9092" {
		t.Errorf("Kafka.Brokers = %v, want [k1:9092 k2:9092]", cfg.Kafka.Brokers)
	}
}

func TestCorpusValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     CorpusConfig
		wantErr bool
	}{
		{"dir ok", CorpusConfig{Source: CorpusSourceDir, Dir: "corpus"}, false},
		{"dir missing path", CorpusConfig{Source: CorpusSourceDir}, true},
		{"postgres ok", CorpusConfig{Source: CorpusSourcePostgres, Table: "docs"}, false},
		{"postgres missing table", CorpusConfig{Source: CorpusSourcePostgres}, true},
		{"unknown source", CorpusConfig{Source: "s3"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
