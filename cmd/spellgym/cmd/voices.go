package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/msto63/spellgym/internal/voice"
)

var voicesAll bool

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "Show the voice catalog and the selected voice",
	Long: `Shows the voices reported by the fast speech backend, grouped by
English locale, and the voice that would be used for the drill.

Examples:
  spellgym voices
  spellgym voices --all
  SPELL_GYM_VOICE_ID=com.apple.voice.compact.en-GB.Daniel spellgym voices`,
	Args: cobra.NoArgs,
	RunE: runVoices,
}

func init() {
	rootCmd.AddCommand(voicesCmd)

	voicesCmd.Flags().BoolVar(&voicesAll, "all", false, "also list voices without an English marker")
}

func runVoices(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	engine := newEngine(cfg, newLogger(cfg))
	defer engine.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Backend: %s (%s)\n", cfg.Speech.Backend, engine.State())

	catalog := engine.Catalog()
	if len(catalog) == 0 {
		fmt.Fprintf(out, "No voice catalog; speech uses 'say' with voice %q\n", cfg.Speech.SayVoice)
		return nil
	}

	report := voice.Describe(catalog, cfg.Speech.VoiceID)

	r := lipgloss.NewRenderer(out)
	selected := r.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.NewStyle().Foreground(lipgloss.Color("#6B7280"))).
		Headers("BUCKET", "VOICE", "QUALITY", "")

	buckets := []voice.Bucket{voice.BucketUS, voice.BucketGB, voice.BucketAU, voice.BucketOtherEnglish}
	if voicesAll {
		buckets = append(buckets, voice.BucketNone)
	}
	for _, b := range buckets {
		for _, id := range report.Buckets[b] {
			_, quality := voice.Classify(id)
			mark := ""
			if report.OK && id == report.Selected {
				mark = selected.Render("selected")
			}
			t.Row(b.String(), id, quality.String(), mark)
		}
	}
	fmt.Fprintln(out, t.Render())

	switch {
	case report.OK && report.FromOverride:
		fmt.Fprintf(out, "Using %s (voice_id override)\n", report.Selected)
	case report.OK:
		fmt.Fprintf(out, "Using %s\n", report.Selected)
	default:
		fmt.Fprintln(out, "No English voice found; the system default voice is used")
	}
	return nil
}
