package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	info := Get()
	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if !strings.Contains(info.Platform, runtime.GOOS) {
		t.Errorf("Platform = %q, want it to contain %q", info.Platform, runtime.GOOS)
	}
}

func TestInfo_Short(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"development", Info{Version: "0.1.0", GitCommit: "development"}, "v0.1.0"},
		{"empty commit", Info{Version: "0.1.0"}, "v0.1.0"},
		{"short commit", Info{Version: "1.0.0", GitCommit: "abc"}, "v1.0.0 (abc)"},
		{"long commit", Info{Version: "1.0.0", GitCommit: "0123456789abcdef"}, "v1.0.0 (0123456)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Short(); got != tt.want {
				t.Errorf("Short() = %q, want %q", got, tt.want)
			}
		})
	}
}
