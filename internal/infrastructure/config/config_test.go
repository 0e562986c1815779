package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTP.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.HTTP.Port)
	}
	if cfg.Store.Driver != StoreMongo {
		t.Errorf("expected mongo store, got %q", cfg.Store.Driver)
	}
	if !cfg.Redis.Enabled || cfg.Redis.CacheTTL != 5*time.Minute {
		t.Errorf("unexpected redis defaults: %+v", cfg.Redis)
	}
	if cfg.Events.Broker != BrokerNone || cfg.Events.Workers != 4 {
		t.Errorf("unexpected event defaults: %+v", cfg.Events)
	}
	if len(cfg.Kafka.Brokers) != 1 || cfg.Kafka.Brokers[0] != "localhost:9092" {
		t.Errorf("unexpected kafka brokers: %v", cfg.Kafka.Brokers)
	}
	if cfg.IsProduction() {
		t.Error("default env must not be production")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"ENV":               "production",
		"PORT":              "9090",
		"STORE_DRIVER":      "sqlite",
		"STORE_DSN":         "file:/tmp/p.db",
		"REDIS_ENABLED":     "false",
		"EVENTS_BROKER":     "kafka",
		"KAFKA_BROKERS":     "k1:9092,k2:9092",
		"HTTP_READ_TIMEOUT": "3s",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.IsProduction() || cfg.HTTP.Port != "9090" {
		t.Errorf("unexpected env/port: %s/%s", cfg.Env, cfg.HTTP.Port)
	}
	if cfg.Store.Driver != StoreSQLite || cfg.Store.DSN != "file:/tmp/p.db" {
		t.Errorf("unexpected store: %+v", cfg.Store)
	}
	if cfg.Redis.Enabled {
		t.Error("expected redis disabled")
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "k2:9092" {
		t.Errorf("unexpected kafka brokers: %v", cfg.Kafka.Brokers)
	}
	if cfg.HTTP.ReadTimeout != 3*time.Second {
		t.Errorf("expected 3s read timeout, got %v", cfg.HTTP.ReadTimeout)
	}
}

func TestLoadWith_RejectsUnknownDrivers(t *testing.T) {
	cases := []map[string]string{
		{"STORE_DRIVER": "cassandra"},
		{"EVENTS_BROKER": "nats"},
	}
	for _, env := range cases {
		if _, err := LoadWith(context.Background(), envconfig.MapLookuper(env)); err == nil {
			t.Errorf("expected error for %v", env)
		}
	}
}

func TestConfig_PrettyLogs(t *testing.T) {
	cases := []struct {
		env    string
		pretty string
		want   bool
	}{
		{"development", "true", true},
		{"development", "false", false},
		{"production", "true", false},
		{"production", "false", false},
	}
	for _, tc := range cases {
		cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
			"ENV":        tc.env,
			"LOG_PRETTY": tc.pretty,
		}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := cfg.PrettyLogs(); got != tc.want {
			t.Errorf("ENV=%s LOG_PRETTY=%s: expected %v, got %v", tc.env, tc.pretty, tc.want, got)
		}
	}
}
