package ip2region

import (
	"path/filepath"
	"testing"
)

func TestParseRegion(t *testing.T) {
	l := parseRegion("Singapore|0|0|Singapore|Unknown")
	if l.Country != "Singapore" || l.Region != "" || l.Province != "" || l.City != "Singapore" || l.ISP != "" {
		t.Errorf("parseRegion = %+v", l)
	}
	l = parseRegion("中国|0|广东省|深圳市|电信")
	if l.Country != "中国" || l.Province != "广东省" || l.ISP != "电信" {
		t.Errorf("parseRegion = %+v", l)
	}
	if l := parseRegion(""); l.Country != "" {
		t.Errorf("empty region should give empty location: %+v", l)
	}
}

func TestNewIP2RegionCache_MissingFile(t *testing.T) {
	if _, err := NewIP2RegionCache(filepath.Join(t.TempDir(), "missing.xdb"), ""); err == nil {
		t.Error("expected error for missing xdb")
	}
}

func TestLookup_NoSearchers(t *testing.T) {
	c, err := NewIP2RegionCache("", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Lookup("1.1.1.1"); ok {
		t.Error("expected miss without databases")
	}
	if _, ok := c.Lookup("not-an-ip"); ok {
		t.Error("expected miss for invalid IP")
	}
}
