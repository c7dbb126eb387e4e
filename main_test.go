package main

import (
	"testing"

	"navtrail/internal/config"
)

func TestCollectTTYDetails(t *testing.T) {
	details := collectTTYDetails()
	if len(details.Probes) != 3 {
		t.Fatalf("expected probes for stdin/stdout/stderr, got %d", len(details.Probes))
	}
	names := map[string]bool{}
	for _, probe := range details.Probes {
		names[probe.Name] = true
		if probe.IsTerminal && probe.Error == "" && probe.Width <= 0 {
			t.Fatalf("terminal probe %s reported no dimensions", probe.Name)
		}
	}
	for _, want := range []string{"stdin", "stdout", "stderr"} {
		if !names[want] {
			t.Fatalf("missing probe %s", want)
		}
	}
	if details.Detected != nil && details.Detected.Width <= 0 {
		t.Fatalf("detected terminal has no width: %+v", details.Detected)
	}
}

func TestStartupTracePayload(t *testing.T) {
	cfg, err := config.LoadArgs([]string{"--server", "/tmp/nvim.sock", "--trace"}, nil)
	if err != nil {
		t.Fatalf("LoadArgs() error: %v", err)
	}

	payload := startupTracePayload(cfg)

	flags, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map, got %T", payload["flags"])
	}
	if flags["server"] != "/tmp/nvim.sock" {
		t.Fatalf("unexpected server flag: %v", flags["server"])
	}
	if flags["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flags["trace"])
	}
	if payload["session"] == "" {
		t.Fatalf("expected session id in payload")
	}
	if _, ok := payload["tty"]; !ok {
		t.Fatalf("expected tty details in payload")
	}
	if _, ok := payload["executable"]; !ok {
		if _, ok := payload["executableError"]; !ok {
			t.Fatalf("expected executable or executableError in payload")
		}
	}
}
