package plugins

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"netstatus-bar/internal/localdb"
	"netstatus-bar/internal/logger"
)

// Spec 描述一个查询插件；kind 取 plain、csv 或 localdb
type Spec struct {
	Name    string        `yaml:"name"`
	Kind    string        `yaml:"kind"`
	URL     string        `yaml:"url"`
	Field   int           `yaml:"field"`
	Timeout time.Duration `yaml:"timeout"`
}

type specFile struct {
	Providers []Spec `yaml:"providers"`
}

// DefaultSpecs：ipinfo 纯文本为主，ip-api CSV 作为限流兜底，离线库最后
func DefaultSpecs(egressURL string) []Spec {
	return []Spec{
		{Name: "ipinfo", Kind: "plain", URL: "https://ipinfo.io/country"},
		{Name: "ip-api", Kind: "csv", URL: "http://ip-api.com/csv", Field: 3},
		{Name: "localdb", Kind: "localdb", URL: egressURL},
	}
}

func LoadSpecs(path string) ([]Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f specFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Providers) == 0 {
		return nil, fmt.Errorf("%s: no providers", path)
	}
	return f.Providers, nil
}

// Build 按顺序注册插件；localdb 在 local 为 nil 时跳过
func Build(specs []Spec, client *http.Client, local localdb.Lookuper) (*Manager, error) {
	m := NewManager()
	for i, s := range specs {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("provider-%d", i+1)
		}
		if s.URL == "" {
			return nil, fmt.Errorf("provider %s: missing url", name)
		}
		switch s.Kind {
		case "plain", "":
			m.Register(NewHTTP(name, s.URL, FormatPlain, 0, s.Timeout, client))
		case "csv":
			field := s.Field
			if field == 0 {
				field = 3
			}
			m.Register(NewHTTP(name, s.URL, FormatCSV, field, s.Timeout, client))
		case "localdb":
			if local == nil {
				logger.L().Debug("plugin_skipped", "name", name, "reason", "no_local_db")
				continue
			}
			m.Register(NewLocal(name, s.URL, client, local))
		default:
			return nil, fmt.Errorf("provider %s: unknown kind %q", name, s.Kind)
		}
	}
	return m, nil
}
