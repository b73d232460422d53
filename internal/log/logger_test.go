package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestComponentTag(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{
		Component: "api",
		Handler:   slog.NewTextHandler(&buf, nil),
	})
	l.Info("Server started", "port", "8080")

	out := buf.String()
	if !strings.Contains(out, "component=api") {
		t.Fatalf("missing component tag: %q", out)
	}
	if !strings.Contains(out, "port=8080") {
		t.Fatalf("missing caller attrs: %q", out)
	}
}

func TestDefaultComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Handler: slog.NewTextHandler(&buf, nil)})
	if l.Component() != "app" {
		t.Fatalf("component=%q", l.Component())
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Component: "api", Handler: slog.NewTextHandler(&buf, nil)})
	w := l.WithComponent("worker")
	if w.Component() != "worker" {
		t.Fatalf("component=%q", w.Component())
	}
}
