package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/cognicore/qnorm/pkg/qnorm/config"
)

func testEnv(env map[string]string) func(string) string {
	return func(k string) string { return env[k] }
}

func TestRunWithoutArgs(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), nil, &stdout, &stderr, testEnv(nil))
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "usage") {
		t.Errorf("expected usage message, got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout should stay empty, got %q", stdout.String())
	}
}

func TestRunBadConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env := testEnv(map[string]string{config.EnvStoplist: "/nonexistent/stoplist.yaml"})

	code := run(context.Background(), []string{"show", "laptops"}, &stdout, &stderr, env)
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	out := stdout.String()
	for _, field := range []string{`"status": "error"`, `"original_query": "show laptops"`, `"ner_install_hint"`} {
		if !strings.Contains(out, field) {
			t.Errorf("output missing %s: %s", field, out)
		}
	}
}

func TestRunBadLogLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env := testEnv(map[string]string{"QNORM_LOG_LEVEL": "loud"})

	if code := run(context.Background(), []string{"hi"}, &stdout, &stderr, env); code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestWriteFallback(t *testing.T) {
	var buf bytes.Buffer
	write(&buf, map[string]any{"bad": make(chan int)}, "q")

	out := buf.String()
	if !strings.Contains(out, "Failed to serialize output") || !strings.Contains(out, `"original_query": "q"`) {
		t.Errorf("unexpected fallback: %s", out)
	}
}

func TestRunEmptyQuery(t *testing.T) {
	var stdout, stderr bytes.Buffer
	env := testEnv(map[string]string{config.EnvNER: "off"})

	code := run(context.Background(), []string{""}, &stdout, &stderr, env)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr: %s", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, `"status": "success"`) || !strings.Contains(out, `"sentences": []`) {
		t.Errorf("unexpected output: %s", out)
	}
	if !strings.Contains(out, `"ner_available": false`) {
		t.Errorf("NER should be reported unavailable: %s", out)
	}
}
