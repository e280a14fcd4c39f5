package plugins

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"netstatus-bar/internal/localdb"
)

func serve(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

type countingPlugin struct {
	name    string
	country string
	err     error
	calls   int
}

func (c *countingPlugin) Name() string { return c.name }
func (c *countingPlugin) Query(ctx context.Context) (string, error) {
	c.calls++
	return c.country, c.err
}

type fakeLookup struct {
	loc localdb.Location
	ok  bool
	ips []string
}

func (f *fakeLookup) Lookup(ip string) (localdb.Location, bool) {
	f.ips = append(f.ips, ip)
	return f.loc, f.ok
}

func TestHTTPPlugin_Plain(t *testing.T) {
	srv := serve(http.StatusOK, "SG\n")
	defer srv.Close()
	country, err := NewHTTP("ipinfo", srv.URL, FormatPlain, 0, 0, srv.Client()).Query(context.Background())
	if err != nil || country != "SG" {
		t.Errorf("Query = %q, %v", country, err)
	}
}

func TestHTTPPlugin_CSV(t *testing.T) {
	srv := serve(http.StatusOK, "success,Hong Kong,HK,HCW,Central and Western\n")
	defer srv.Close()
	country, err := NewHTTP("ip-api", srv.URL, FormatCSV, 3, 0, srv.Client()).Query(context.Background())
	if err != nil || country != "HK" {
		t.Errorf("Query = %q, %v", country, err)
	}
}

func TestHTTPPlugin_InvalidBodies(t *testing.T) {
	for _, body := range []string{"<!DOCTYPE html><html></html>", "Rate limit exceeded"} {
		srv := serve(http.StatusOK, body)
		_, err := NewHTTP("ipinfo", srv.URL, FormatPlain, 0, 0, srv.Client()).Query(context.Background())
		srv.Close()
		if !errors.Is(err, ErrInvalidResponse) {
			t.Errorf("body %q: err = %v, want ErrInvalidResponse", body, err)
		}
	}
}

func TestHTTPPlugin_NonSuccessStatus(t *testing.T) {
	srv := serve(http.StatusTooManyRequests, "SG")
	defer srv.Close()
	if _, err := NewHTTP("ipinfo", srv.URL, FormatPlain, 0, 0, srv.Client()).Query(context.Background()); err == nil {
		t.Error("expected error for 429")
	}
}

func TestHTTPPlugin_EmptyBody(t *testing.T) {
	srv := serve(http.StatusOK, "\n")
	defer srv.Close()
	_, err := NewHTTP("ipinfo", srv.URL, FormatPlain, 0, 0, srv.Client()).Query(context.Background())
	if !errors.Is(err, ErrNoCountry) {
		t.Errorf("err = %v, want ErrNoCountry", err)
	}
}

func TestHTTPPlugin_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("SG"))
	}))
	defer srv.Close()
	_, err := NewHTTP("slow", srv.URL, FormatPlain, 0, 20*time.Millisecond, srv.Client()).Query(context.Background())
	if err == nil {
		t.Error("expected timeout error")
	}
}

func TestLocalPlugin(t *testing.T) {
	srv := serve(http.StatusOK, "203.0.113.7\n")
	defer srv.Close()
	lk := &fakeLookup{loc: localdb.Location{Country: "NL"}, ok: true}

	country, err := NewLocal("localdb", srv.URL, srv.Client(), lk).Query(context.Background())
	if err != nil || country != "NL" {
		t.Errorf("Query = %q, %v", country, err)
	}
	if len(lk.ips) != 1 || lk.ips[0] != "203.0.113.7" {
		t.Errorf("lookup ips = %v", lk.ips)
	}
}

func TestLocalPlugin_BadEgress(t *testing.T) {
	srv := serve(http.StatusOK, "not an address")
	defer srv.Close()
	_, err := NewLocal("localdb", srv.URL, srv.Client(), &fakeLookup{ok: true}).Query(context.Background())
	if !errors.Is(err, ErrInvalidResponse) {
		t.Errorf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestLocalPlugin_Miss(t *testing.T) {
	srv := serve(http.StatusOK, "203.0.113.7")
	defer srv.Close()
	_, err := NewLocal("localdb", srv.URL, srv.Client(), &fakeLookup{}).Query(context.Background())
	if !errors.Is(err, ErrNoCountry) {
		t.Errorf("err = %v, want ErrNoCountry", err)
	}
}

func TestManager_FallbackInOrder(t *testing.T) {
	a := &countingPlugin{name: "primary", err: ErrInvalidResponse}
	b := &countingPlugin{name: "secondary", country: "SG"}
	c := &countingPlugin{name: "third", country: "HK"}
	m := NewManager()
	m.Register(a)
	m.Register(b)
	m.Register(c)

	country, src := m.Resolve(context.Background())
	if country != "SG" || src != "secondary" {
		t.Errorf("Resolve = %q, %q", country, src)
	}
	if a.calls != 1 || b.calls != 1 || c.calls != 0 {
		t.Errorf("calls = %d/%d/%d", a.calls, b.calls, c.calls)
	}
}

func TestManager_PrimaryWins(t *testing.T) {
	a := &countingPlugin{name: "primary", country: "DE"}
	b := &countingPlugin{name: "secondary", country: "SG"}
	m := NewManager()
	m.Register(a)
	m.Register(b)
	if country, _ := m.Resolve(context.Background()); country != "DE" {
		t.Errorf("country = %q", country)
	}
	if b.calls != 0 {
		t.Error("secondary should not be queried")
	}
}

func TestManager_AllFail(t *testing.T) {
	m := NewManager()
	m.Register(&countingPlugin{name: "a", err: errors.New("down")})
	m.Register(&countingPlugin{name: "b", err: ErrNoCountry})
	if country, src := m.Resolve(context.Background()); country != "" || src != "" {
		t.Errorf("Resolve = %q, %q; want empty", country, src)
	}
}

func TestManager_CancelledContext(t *testing.T) {
	a := &countingPlugin{name: "a", country: "SG"}
	m := NewManager()
	m.Register(a)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if country, _ := m.Resolve(ctx); country != "" || a.calls != 0 {
		t.Errorf("cancelled resolve should not query: country=%q calls=%d", country, a.calls)
	}
}

func TestFailReason(t *testing.T) {
	cases := map[error]string{
		ErrInvalidResponse:         "invalid",
		ErrNoCountry:               "empty",
		context.DeadlineExceeded:   "timeout",
		errors.New("conn refused"): "error",
	}
	for err, want := range cases {
		if got := failReason(err); got != want {
			t.Errorf("failReason(%v) = %q, want %q", err, got, want)
		}
	}
}

func TestLoadSpecs(t *testing.T) {
	p := filepath.Join(t.TempDir(), "providers.yaml")
	os.WriteFile(p, []byte(`providers:
  - name: ipapi-co
    kind: plain
    url: https://ipapi.co/country
    timeout: 3s
  - name: ip-api
    kind: csv
    url: http://ip-api.com/csv
    field: 3
`), 0644)
	specs, err := LoadSpecs(p)
	if err != nil {
		t.Fatalf("LoadSpecs: %v", err)
	}
	if len(specs) != 2 || specs[0].Name != "ipapi-co" || specs[0].Timeout != 3*time.Second || specs[1].Field != 3 {
		t.Errorf("specs = %+v", specs)
	}
}

func TestLoadSpecs_Empty(t *testing.T) {
	p := filepath.Join(t.TempDir(), "providers.yaml")
	os.WriteFile(p, []byte("providers: []\n"), 0644)
	if _, err := LoadSpecs(p); err == nil {
		t.Error("expected error for empty provider list")
	}
}

func TestBuild_DefaultsWithoutLocalDB(t *testing.T) {
	m, err := Build(DefaultSpecs("https://api.ipify.org"), nil, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ps := m.Plugins()
	if len(ps) != 2 || ps[0].Name() != "ipinfo" || ps[1].Name() != "ip-api" {
		t.Errorf("plugins = %v", ps)
	}
}

func TestBuild_WithLocalDB(t *testing.T) {
	m, err := Build(DefaultSpecs("https://api.ipify.org"), nil, &fakeLookup{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if ps := m.Plugins(); len(ps) != 3 || ps[2].Name() != "localdb" {
		t.Errorf("plugins = %v", ps)
	}
}

func TestBuild_Errors(t *testing.T) {
	if _, err := Build([]Spec{{Name: "x", Kind: "json", URL: "http://x"}}, nil, nil); err == nil {
		t.Error("expected error for unknown kind")
	}
	if _, err := Build([]Spec{{Name: "x", Kind: "plain"}}, nil, nil); err == nil {
		t.Error("expected error for missing url")
	}
}
