package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/maksimkurb/cgproxy/src/internal/errors"
	"github.com/maksimkurb/cgproxy/src/internal/log"
)

func TestMain(m *testing.M) {
	log.DisableLogs()
	os.Exit(m.Run())
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Port != DefaultPort {
		t.Errorf("Expected default port %d, got %d", DefaultPort, cfg.Port)
	}
	if cfg.EnableGateway {
		t.Error("Expected gateway to be disabled by default")
	}
	if !cfg.EnableDNS || !cfg.EnableTCP || !cfg.EnableUDP || !cfg.EnableIPv4 || !cfg.EnableIPv6 {
		t.Errorf("Expected protocol and family flags enabled by default: %+v", cfg)
	}
	if len(cfg.CgroupProxy) != 0 || len(cfg.CgroupNoProxy) != 0 {
		t.Errorf("Expected empty cgroup lists, got %v / %v", cfg.CgroupProxy, cfg.CgroupNoProxy)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate: %v", err)
	}
}

func TestLoadFromJSON_PartialUpdate(t *testing.T) {
	cfg := NewConfig()
	cfg.EnableTCP = false

	report, err := cfg.LoadFromJSON([]byte(`{"port": 8080, "enable_tcp": true}`))
	if err != nil {
		t.Fatalf("Expected success, got: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Port)
	}
	if !cfg.EnableTCP {
		t.Error("Expected enable_tcp to be true")
	}

	expected := NewConfig()
	expected.Port = 8080
	if !reflect.DeepEqual(cfg, expected) {
		t.Errorf("Expected other fields to keep defaults\n got: %+v\nwant: %+v", cfg, expected)
	}

	if got := report.Applied(); !reflect.DeepEqual(got, []string{"port", "enable_tcp"}) {
		t.Errorf("Unexpected applied fields: %v", got)
	}
	if report.Outcome("enable_udp") != Absent {
		t.Errorf("Expected enable_udp to be absent, got %v", report.Outcome("enable_udp"))
	}
}

func TestLoadFromJSON_RejectedDocumentDoesNotMutate(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"port out of range", `{"port": 70000}`},
		{"cgroup wrong type", `{"cgroup_proxy": 123}`},
		{"valid key before invalid one", `{"enable_gateway": true, "port": 0}`},
		{"unknown key", `{"enable_dns": false, "verbose": true}`},
		{"not json", `{"port": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			cfg.CgroupProxy = []string{"/a"}
			before := cfg.Clone()

			report, err := cfg.LoadFromJSON([]byte(tt.input))
			if err == nil {
				t.Fatal("Expected error")
			}
			if !errors.IsParamError(err) {
				t.Errorf("Expected PARAM_ERROR, got: %v", err)
			}
			if report != nil {
				t.Errorf("Expected no report, got %+v", report)
			}
			if !reflect.DeepEqual(cfg, before) {
				t.Errorf("Config was mutated\n got: %+v\nwant: %+v", cfg, before)
			}
		})
	}
}

func TestLoadFromJSON_StringCgroupIsSkipped(t *testing.T) {
	cfg := NewConfig()
	cfg.CgroupProxy = []string{"/old"}

	report, err := cfg.LoadFromJSON([]byte(`{"cgroup_proxy": "/new.slice", "port": 2000}`))
	if err != nil {
		t.Fatalf("Expected success, got: %v", err)
	}

	if !reflect.DeepEqual(cfg.CgroupProxy, []string{"/old"}) {
		t.Errorf("Expected cgroup_proxy to keep its value, got %v", cfg.CgroupProxy)
	}
	if cfg.Port != 2000 {
		t.Errorf("Expected port to be applied, got %d", cfg.Port)
	}

	skipped := report.Skipped()
	if len(skipped) != 1 || skipped[0].Field != "cgroup_proxy" || skipped[0].Outcome != TypeMismatch {
		t.Fatalf("Expected cgroup_proxy to be reported as skipped, got %+v", skipped)
	}
	if skipped[0].Reason == "" {
		t.Error("Expected a reason for the skipped field")
	}
}

func TestLoadReport_JSONRoundTrip(t *testing.T) {
	cfg := NewConfig()
	report, err := cfg.LoadFromJSON([]byte(`{"cgroup_noproxy": "/a", "enable_udp": false}`))
	if err != nil {
		t.Fatalf("Expected success, got: %v", err)
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("Failed to marshal report: %v", err)
	}
	if !strings.Contains(string(data), `"outcome":"type_mismatch"`) {
		t.Errorf("Expected outcomes encoded as names, got %s", data)
	}

	var decoded LoadReport
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal report: %v", err)
	}
	if !reflect.DeepEqual(&decoded, report) {
		t.Errorf("Round trip changed the report:\n got %+v\nwant %+v", decoded, *report)
	}
	if decoded.Outcome("enable_udp") != Applied || decoded.Outcome("port") != Absent {
		t.Errorf("Unexpected outcomes after decoding: %+v", decoded.Results)
	}
}

func TestFieldOutcome_UnmarshalText(t *testing.T) {
	tests := []struct {
		text    string
		want    FieldOutcome
		wantErr bool
	}{
		{"absent", Absent, false},
		{"applied", Applied, false},
		{"type_mismatch", TypeMismatch, false},
		{"Applied", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			var got FieldOutcome
			err := got.UnmarshalText([]byte(tt.text))
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalText(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("UnmarshalText(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestLoadFromJSON_AllFields(t *testing.T) {
	input := `{
		"cgroup_proxy": ["/user.slice"],
		"cgroup_noproxy": ["/system.slice/v2ray.service", "/system.slice/dnsmasq.service"],
		"enable_gateway": true,
		"port": 1,
		"enable_dns": false,
		"enable_tcp": false,
		"enable_udp": false,
		"enable_ipv4": false,
		"enable_ipv6": false
	}`

	cfg := NewConfig()
	report, err := cfg.LoadFromJSON([]byte(input))
	if err != nil {
		t.Fatalf("Expected success, got: %v", err)
	}

	expected := &Config{
		CgroupProxy:   []string{"/user.slice"},
		CgroupNoProxy: []string{"/system.slice/v2ray.service", "/system.slice/dnsmasq.service"},
		EnableGateway: true,
		Port:          1,
	}
	if !reflect.DeepEqual(cfg, expected) {
		t.Errorf("Unexpected config\n got: %+v\nwant: %+v", cfg, expected)
	}
	if len(report.Applied()) != len(Fields) {
		t.Errorf("Expected all %d fields applied, got %v", len(Fields), report.Applied())
	}
}

func TestLoadFromJSON_EmptyObject(t *testing.T) {
	cfg := NewConfig()
	report, err := cfg.LoadFromJSON([]byte(`{}`))
	if err != nil {
		t.Fatalf("Expected success, got: %v", err)
	}
	if len(report.Applied()) != 0 {
		t.Errorf("Expected nothing applied, got %v", report.Applied())
	}
	if !reflect.DeepEqual(cfg, NewConfig()) {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadFromFile_NonExistentFile(t *testing.T) {
	cfg := NewConfig()
	cfg.Port = 4242
	before := cfg.Clone()

	report, err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("Expected error for non-existent file")
	}
	if !errors.IsFileError(err) {
		t.Errorf("Expected FILE_ERROR, got: %v", err)
	}
	if report != nil {
		t.Errorf("Expected no report, got %+v", report)
	}
	if !reflect.DeepEqual(cfg, before) {
		t.Errorf("Config was mutated: %+v", cfg)
	}
}

func TestLoadFromFile_ValidConfig(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.json")
	content := `{"cgroup_proxy": ["/proxy.slice", "/user.slice"], "enable_ipv6": false}`
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	cfg := NewConfig()
	if _, err := cfg.LoadFromFile(configFile); err != nil {
		t.Fatalf("Expected no error for valid config: %v", err)
	}

	if !reflect.DeepEqual(cfg.CgroupProxy, []string{"/proxy.slice", "/user.slice"}) {
		t.Errorf("Unexpected cgroup_proxy: %v", cfg.CgroupProxy)
	}
	if cfg.EnableIPv6 {
		t.Error("Expected enable_ipv6 to be false")
	}
}

func TestLoadFromFile_InvalidContent(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configFile, []byte(`{"port": "8080"}`), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	cfg := NewConfig()
	if _, err := cfg.LoadFromFile(configFile); !errors.IsParamError(err) {
		t.Errorf("Expected PARAM_ERROR, got: %v", err)
	}
	if cfg.Port != DefaultPort {
		t.Errorf("Expected port to keep default, got %d", cfg.Port)
	}
}

func TestToJSON_ExactKeys(t *testing.T) {
	cfg := NewConfig()
	cfg.CgroupNoProxy = nil

	data, err := cfg.ToJSON()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("ToJSON produced invalid JSON: %v", err)
	}
	if len(doc) != len(Fields) {
		t.Errorf("Expected %d keys, got %d: %s", len(Fields), len(doc), data)
	}
	for _, name := range FieldNames() {
		if _, ok := doc[name]; !ok {
			t.Errorf("Missing key %s in %s", name, data)
		}
	}
	if !strings.Contains(string(data), `"cgroup_noproxy":[]`) {
		t.Errorf("Expected nil list to serialize as [], got %s", data)
	}
	if !strings.HasPrefix(string(data), `{"cgroup_proxy":`) {
		t.Errorf("Expected keys in schema order, got %s", data)
	}
}

func TestRoundTrip(t *testing.T) {
	cfg := NewConfig()
	cfg.CgroupProxy = []string{"/a.slice", "/b.slice"}
	cfg.CgroupNoProxy = []string{"/system.slice/v2ray.service"}
	cfg.EnableGateway = true
	cfg.Port = 65535
	cfg.EnableUDP = false

	first, err := cfg.ToJSON()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	loaded := NewConfig()
	report, err := loaded.LoadFromJSON(first)
	if err != nil {
		t.Fatalf("Expected serialized config to load: %v", err)
	}
	if len(report.Skipped()) != 0 {
		t.Errorf("Expected no skipped fields, got %+v", report.Skipped())
	}

	second, err := loaded.ToJSON()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("Round trip mismatch\nfirst:  %s\nsecond: %s", first, second)
	}
}

func TestSaveToFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.json")

	cfg := NewConfig()
	cfg.CgroupProxy = []string{"/a"}
	if err := cfg.SaveToFile(configFile); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}

	expected := `{
    "cgroup_proxy": [
        "/a"
    ],
    "cgroup_noproxy": [],
    "enable_gateway": false,
    "port": 12345,
    "enable_dns": true,
    "enable_tcp": true,
    "enable_udp": true,
    "enable_ipv4": true,
    "enable_ipv6": true
}
`
	if string(content) != expected {
		t.Errorf("Unexpected file content:\n%s", content)
	}

	loaded := NewConfig()
	if _, err := loaded.LoadFromFile(configFile); err != nil {
		t.Fatalf("Saved file does not load: %v", err)
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("Loaded config differs\n got: %+v\nwant: %+v", loaded, cfg)
	}
}

func TestSaveToFile_UnwritablePath(t *testing.T) {
	cfg := NewConfig()
	err := cfg.SaveToFile(filepath.Join(t.TempDir(), "missing-dir", "config.json"))
	if !errors.IsFileError(err) {
		t.Errorf("Expected FILE_ERROR, got: %v", err)
	}
}

func TestClone_IsDeep(t *testing.T) {
	cfg := NewConfig()
	cfg.CgroupProxy = []string{"/a"}

	clone := cfg.Clone()
	clone.CgroupProxy[0] = "/b"
	clone.Port = 1

	if cfg.CgroupProxy[0] != "/a" || cfg.Port != DefaultPort {
		t.Errorf("Clone shares state with original: %+v", cfg)
	}
}
