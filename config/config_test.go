package config

import "testing"

func TestLoadEnv_Defaults(t *testing.T) {
	cfg := LoadEnv()

	if cfg.Search.EmbeddingDim != 512 {
		t.Errorf("embedding dim = %d, want 512", cfg.Search.EmbeddingDim)
	}
	if cfg.Search.DefaultPageSize != 20 || cfg.Search.MaxPageSize != 100 {
		t.Errorf("page sizes = %d/%d, want 20/100",
			cfg.Search.DefaultPageSize, cfg.Search.MaxPageSize)
	}
	if cfg.Search.RelatedCategories != 6 {
		t.Errorf("related categories = %d, want 6", cfg.Search.RelatedCategories)
	}
	if len(cfg.Kafka.Brokers) == 0 {
		t.Error("kafka brokers default missing")
	}
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("SEARCH_MAX_PAGE_SIZE", "50")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("LOGGER_DISABLE_STACKTRACE", "false")

	cfg := LoadEnv()

	if cfg.Search.MaxPageSize != 50 {
		t.Errorf("max page size = %d, want 50", cfg.Search.MaxPageSize)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("brokers = %v", cfg.Kafka.Brokers)
	}
	if cfg.Logger.DisableStacktrace {
		t.Error("stacktrace override not applied")
	}
}

func TestGetEnvInt_Malformed(t *testing.T) {
	t.Setenv("SEARCH_EMBEDDING_DIM", "not-a-number")

	cfg := LoadEnv()

	if cfg.Search.EmbeddingDim != 512 {
		t.Errorf("malformed int must fall back, got %d", cfg.Search.EmbeddingDim)
	}
}
