package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/msto63/spellgym/internal/speech"
	"github.com/msto63/spellgym/internal/wordlist"
	"github.com/msto63/spellgym/pkg/core/config"
	"github.com/msto63/spellgym/pkg/core/health"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check speech and word list prerequisites",
	Long: `Checks everything a drill needs before it starts: the say utility,
the fast speech backend, the selected voice and the word lists.

Exits with an error when a drill could not run.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine := newEngine(cfg, newLogger(cfg))
	defer engine.Close()

	report := doctorRegistry(cfg, engine).CheckWithTimeout(5 * time.Second)

	out := cmd.OutOrStdout()
	r := lipgloss.NewRenderer(out)
	colors := map[health.Status]lipgloss.Style{
		health.StatusHealthy:   r.NewStyle().Foreground(lipgloss.Color("#10B981")),
		health.StatusDegraded:  r.NewStyle().Foreground(lipgloss.Color("#F59E0B")),
		health.StatusUnhealthy: r.NewStyle().Foreground(lipgloss.Color("#EF4444")),
		health.StatusUnknown:   r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.NewStyle().Foreground(lipgloss.Color("#6B7280"))).
		Headers("CHECK", "STATUS", "DETAILS")
	for _, c := range report.Checks {
		t.Row(c.Name, colors[c.Status].Render(string(c.Status)), c.Message)
	}
	fmt.Fprintln(out, t.Render())
	fmt.Fprintf(out, "Overall: %s\n", report.Status)

	if report.Status == health.StatusUnhealthy {
		return fmt.Errorf("spellgym cannot run a drill")
	}
	return nil
}

func doctorRegistry(cfg *config.Config, engine *speech.Engine) *health.Registry {
	fastPath := engine.State() == speech.StateFastPathReady

	// say is only required when there is no fast path
	sayMissing := health.StatusUnhealthy
	if fastPath {
		sayMissing = health.StatusDegraded
	}

	registry := health.NewRegistry()
	registry.Register(health.BinaryCheck("say", "say", sayMissing))

	registry.RegisterFunc("fast path", func(ctx context.Context) health.CheckResult {
		if !fastPath {
			return health.CheckResult{Status: health.StatusDegraded, Message: "unavailable, speech uses the slower say utility"}
		}
		return health.CheckResult{Status: health.StatusHealthy, Message: fmt.Sprintf("%s backend, %d voices", cfg.Speech.Backend, len(engine.Catalog()))}
	})

	registry.RegisterFunc("voice", func(ctx context.Context) health.CheckResult {
		if !fastPath {
			return health.CheckResult{Status: health.StatusHealthy, Message: fmt.Sprintf("say voice %q", cfg.Speech.SayVoice)}
		}
		if id, ok := engine.Voice(); ok {
			return health.CheckResult{Status: health.StatusHealthy, Message: id}
		}
		return health.CheckResult{Status: health.StatusDegraded, Message: "no English voice, using the system default"}
	})

	if cfg.Speech.Backend == config.BackendPiper {
		registry.Register(health.DirCheck("piper voices", cfg.Piper.VoicesDir, health.StatusDegraded))
	}

	registry.RegisterFunc("word lists", func(ctx context.Context) health.CheckResult {
		infos, err := wordlist.Lists(cfg.Drill.ListsDir)
		if err != nil {
			return health.CheckResult{Status: health.StatusUnhealthy, Message: err.Error()}
		}
		words := 0
		for _, info := range infos {
			words += info.Words
		}
		if words < cfg.Drill.Rounds {
			return health.CheckResult{
				Status:  health.StatusUnhealthy,
				Message: fmt.Sprintf("%d words in %s, %d rounds need more", words, cfg.Drill.ListsDir, cfg.Drill.Rounds),
			}
		}
		return health.CheckResult{Status: health.StatusHealthy, Message: fmt.Sprintf("%d lists, %d words", len(infos), words)}
	})

	return registry
}
