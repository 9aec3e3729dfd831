package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/msto63/spellgym/internal/wordlist"
)

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Show available word lists",
	Long: `Shows the word lists in the lists directory with their word counts.

Examples:
  spellgym lists
  spellgym lists --lists ~/spelling`,
	Args: cobra.NoArgs,
	RunE: runLists,
}

func init() {
	rootCmd.AddCommand(listsCmd)
}

func runLists(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	infos, err := wordlist.Lists(cfg.Drill.ListsDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(infos) == 0 {
		fmt.Fprintf(out, "No word lists in %s\n", cfg.Drill.ListsDir)
		return nil
	}

	r := lipgloss.NewRenderer(out)
	total := 0
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(r.NewStyle().Foreground(lipgloss.Color("#6B7280"))).
		Headers("LIST", "WORDS", "FILE")
	for _, info := range infos {
		t.Row(info.Name, strconv.Itoa(info.Words), info.Path)
		total += info.Words
	}

	fmt.Fprintln(out, t.Render())
	fmt.Fprintf(out, "%d lists, %d words\n", len(infos), total)
	return nil
}
