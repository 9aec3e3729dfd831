package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/msto63/spellgym/internal/speech"
	"github.com/msto63/spellgym/pkg/core/config"
	"github.com/msto63/spellgym/pkg/core/health"
	"github.com/msto63/spellgym/pkg/core/logging"
)

func TestDoctorRegistry(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "animals.txt"), []byte("cat\ndog\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		rounds int
		want   health.Status
	}{
		{"enough words", 2, health.StatusHealthy},
		{"too few words", 3, health.StatusUnhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Speech.Backend = config.BackendSay
			cfg.Drill.ListsDir = dir
			cfg.Drill.Rounds = tt.rounds

			engine := speech.New(speech.Options{}, logging.Discard())
			report := doctorRegistry(cfg, engine).Check(context.Background())

			checks := map[string]health.CheckResult{}
			for _, c := range report.Checks {
				checks[c.Name] = c
			}
			if got := checks["word lists"].Status; got != tt.want {
				t.Errorf("word lists = %v (%s), want %v", got, checks["word lists"].Message, tt.want)
			}
			if got := checks["fast path"].Status; got != health.StatusDegraded {
				t.Errorf("fast path = %v, want degraded", got)
			}
			if _, ok := checks["piper voices"]; ok {
				t.Error("piper voices checked for the say backend")
			}
		})
	}
}
