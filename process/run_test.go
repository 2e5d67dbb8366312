package process

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestRun_CapturesOutput(t *testing.T) {
	result, err := Run(context.Background(), Command{Binary: "echo", Args: []string{"hello"}})
	if err != nil {
		t.Fatal(err)
	}
	if result.Output() != "hello" {
		t.Fatalf("expected 'hello', got %q", result.Output())
	}
	if result.ExitCode != 0 {
		t.Fatalf("expected exit 0, got %d", result.ExitCode)
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	result, err := Run(context.Background(), Command{Binary: "sh", Args: []string{"-c", "echo oops >&2; exit 3"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if result.ExitCode != 3 {
		t.Fatalf("expected exit 3, got %d", result.ExitCode)
	}
	if !strings.Contains(string(result.Stderr), "oops") {
		t.Fatalf("expected stderr captured, got %q", result.Stderr)
	}
}

func TestRun_MissingBinary(t *testing.T) {
	if _, err := Run(context.Background(), Command{}); err == nil {
		t.Fatal("expected error for empty binary")
	}

	result, err := Run(context.Background(), Command{Binary: "no-such-binary-xyz"})
	if err == nil {
		t.Fatal("expected error for unknown binary")
	}
	if result != nil && result.ExitCode != -1 {
		t.Fatalf("expected exit -1 when the process never started, got %d", result.ExitCode)
	}
}

func TestRun_Timeout(t *testing.T) {
	start := time.Now()
	_, err := Run(context.Background(), Command{
		Binary:      "sleep",
		Args:        []string{"5"},
		Timeout:     200 * time.Millisecond,
		GracePeriod: 100 * time.Millisecond,
	})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("timeout did not bound execution: %v", elapsed)
	}
}

func TestRun_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	result, err := Run(context.Background(), Command{Binary: "pwd", Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	// macOS tempdirs resolve through /private; compare the suffix
	if !strings.HasSuffix(result.Output(), strings.TrimPrefix(dir, "/private")) {
		t.Fatalf("expected pwd %q, got %q", dir, result.Output())
	}
}

func TestShell_PlainCommand(t *testing.T) {
	result, err := Shell(context.Background(), `echo "quoted arg"`, "", 0)
	if err != nil {
		t.Fatal(err)
	}
	if result.Output() != "quoted arg" {
		t.Fatalf("expected quote-aware splitting, got %q", result.Output())
	}
}

func TestShell_Metacharacters(t *testing.T) {
	result, err := Shell(context.Background(), "echo one && echo two", "", 0)
	if err != nil {
		t.Fatal(err)
	}
	out := result.Output()
	if !strings.Contains(out, "one") || !strings.Contains(out, "two") {
		t.Fatalf("expected shell interpretation, got %q", out)
	}
}

func TestShell_Empty(t *testing.T) {
	if _, err := Shell(context.Background(), "   ", "", 0); err == nil {
		t.Fatal("expected error for empty command")
	}
}
