package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"netstatus-bar/internal/config"
)

func TestBuildPostgresDSN(t *testing.T) {
	dsn := BuildPostgresDSN(config.Postgres{
		Host: "db", Port: "5433", User: "bar", Password: "p@ss", DB: "netstatus", SSLMode: "require",
	})
	want := "postgres://bar:p%40ss@db:5433/netstatus?connect_timeout=3&sslmode=require"
	if dsn != want {
		t.Errorf("dsn = %q, want %q", dsn, want)
	}
}

func TestBuildPostgresDSN_NoPassword(t *testing.T) {
	dsn := BuildPostgresDSN(config.Postgres{Host: "localhost", Port: "5432", User: "postgres", DB: "netstatus", SSLMode: "disable"})
	want := "postgres://postgres@localhost:5432/netstatus?connect_timeout=3&sslmode=disable"
	if dsn != want {
		t.Errorf("dsn = %q, want %q", dsn, want)
	}
}

func TestOpenRedis_EmptyAddr(t *testing.T) {
	if c := OpenRedis("", "", 0); c != nil {
		t.Error("expected nil client for empty address")
	}
}

func TestNewHTTPClient_TotalTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewHTTPClient(time.Second, 50*time.Millisecond)
	if _, err := c.Get(srv.URL); err == nil {
		t.Error("expected timeout error")
	}
}
