package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteTextfile(t *testing.T) {
	ProbeTotal.WithLabelValues("http", "OK").Inc()
	PluginFailTotal.WithLabelValues("ipinfo", "invalid").Inc()

	path := filepath.Join(t.TempDir(), "netstatus.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{
		`netstatus_probe_total{result="OK",strategy="http"}`,
		`netstatus_plugin_fail_total{plugin="ipinfo",reason="invalid"}`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "go_goroutines") {
		t.Error("runtime metrics should not be exported")
	}
}

func TestWriteTextfile_BadDir(t *testing.T) {
	if err := WriteTextfile("/nonexistent/dir/netstatus.prom"); err == nil {
		t.Error("expected error for missing directory")
	}
}
