package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:            "8080",
		DataBackend:     "memory",
		AMQPExchange:    "expenso",
		AMQPQueue:       "expense_events",
		LoginDelay:      time.Second,
		SummaryCacheTTL: 30 * time.Second,
	}
}

func TestValidate(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name string
		mut  func(c *Config)
		want string
	}{
		{"non-numeric port", func(c *Config) { c.Port = "http" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "between 1 and 65535"},
		{"unknown backend", func(c *Config) { c.DataBackend = "postgres" }, "invalid data backend"},
		{"sqlite without path", func(c *Config) { c.DataBackend = "sqlite"; c.SQLiteDBPath = "" }, "path cannot be empty"},
		{"amqp bad scheme", func(c *Config) { c.AMQPURL = "http://broker" }, "must be 'amqp' or 'amqps'"},
		{"amqp without queue", func(c *Config) { c.AMQPURL = "amqp://broker"; c.AMQPQueue = "" }, "queue name cannot be empty"},
		{"negative login delay", func(c *Config) { c.LoginDelay = -time.Second }, "must not be negative"},
		{"excessive login delay", func(c *Config) { c.LoginDelay = time.Minute }, "at most 30 seconds"},
		{"tiny cache ttl", func(c *Config) { c.SummaryCacheTTL = 100 * time.Millisecond }, "at least 1 second"},
		{"huge cache ttl", func(c *Config) { c.SummaryCacheTTL = 2 * time.Hour }, "at most 1 hour"},
	}
	for _, tc := range cases {
		c := validConfig()
		tc.mut(c)
		err := c.Validate()
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: error %q does not mention %q", tc.name, err, tc.want)
		}
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	c := validConfig()
	c.Port = "bad"
	c.DataBackend = "postgres"
	err := c.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "invalid port") || !strings.Contains(msg, "invalid data backend") {
		t.Fatalf("expected both errors reported, got %q", msg)
	}
}

func TestLoadDefaults(t *testing.T) {
	c := Load()
	if c.Port != "8080" {
		t.Fatalf("port=%q", c.Port)
	}
	if c.DataBackend != "sqlite" {
		t.Fatalf("backend=%q", c.DataBackend)
	}
	if c.AMQPURL != "" {
		t.Fatalf("amqp url=%q", c.AMQPURL)
	}
	if c.LoginDelay != time.Second {
		t.Fatalf("login delay=%v", c.LoginDelay)
	}
	if c.SummaryCacheTTL != 30*time.Second {
		t.Fatalf("summary ttl=%v", c.SummaryCacheTTL)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("LOGIN_DELAY", "250ms")

	c := Load()
	if c.Port != "9090" || c.DataBackend != "memory" {
		t.Fatalf("config=%+v", c)
	}
	if c.LoginDelay != 250*time.Millisecond {
		t.Fatalf("login delay=%v", c.LoginDelay)
	}
}

func TestGetEnvDurationIgnoresGarbage(t *testing.T) {
	t.Setenv("LOGIN_DELAY", "soon")
	if c := Load(); c.LoginDelay != time.Second {
		t.Fatalf("login delay=%v, want default", c.LoginDelay)
	}
}
