package shell

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestExec_Success(t *testing.T) {
	res, err := Exec(context.Background(), "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("Exec error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d", res.ExitCode)
	}
	if strings.TrimSpace(res.Output) != "hello" {
		t.Errorf("Output = %q", res.Output)
	}
}

func TestExec_NonZeroExitIsNotError(t *testing.T) {
	res, err := Exec(context.Background(), "sh", "-c", "echo nope >&2; exit 3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if !strings.Contains(res.Output, "nope") {
		t.Errorf("stderr not captured: %q", res.Output)
	}
}

func TestExec_MissingCommand(t *testing.T) {
	_, err := Exec(context.Background(), "/nonexistent/definitely-not-here")
	if err == nil {
		t.Error("expected error for missing command")
	}
}

func TestExec_ContextTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := Exec(ctx, "sleep", "2")
	if err == nil {
		t.Error("expected error after context deadline")
	}
}

func TestDefault(t *testing.T) {
	res, err := Default().Exec(context.Background(), "true")
	if err != nil || res.ExitCode != 0 {
		t.Errorf("Default().Exec(true) = %+v, %v", res, err)
	}
}
