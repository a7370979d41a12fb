package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRun_MutuallyExclusiveFlags(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--latex", "--mathml", "-"}, strings.NewReader("x"), &stdout, &stderr)
	if code != exitParseError {
		t.Fatalf("expected exitParseError, got %d (stderr: %s)", code, stderr.String())
	}
}

func TestRun_MalformedMathML(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-"}, strings.NewReader("<mrow><mi>x</mrow>"), &stdout, &stderr)
	if code != exitParseError {
		t.Fatalf("expected exitParseError for malformed MathML, got %d (stderr: %s)", code, stderr.String())
	}
}

func TestRun_UnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--bogus"}, strings.NewReader(""), &stdout, &stderr)
	if code != exitParseError {
		t.Fatalf("expected exitParseError for unknown flag, got %d", code)
	}
}

func TestRun_MissingConfigFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", "/nonexistent/path.toml", "-"}, strings.NewReader("<mi>x</mi>"), &stdout, &stderr)
	if code != exitIOError {
		t.Fatalf("expected exitIOError for missing config, got %d", code)
	}
}
