// ============================================================================
// Spell Gym - Audio spelling drill
// ============================================================================
//
// Package:     cmd
// Description: Root command running the spelling drill
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/spellgym/internal/capture"
	"github.com/msto63/spellgym/internal/drill"
	"github.com/msto63/spellgym/internal/wordlist"
	"github.com/msto63/spellgym/pkg/core/config"
	"github.com/msto63/spellgym/pkg/core/logging"
)

var (
	cfgFile     string
	verbose     bool
	listsDir    string
	backend     string
	erasePolicy string
)

var rootCmd = &cobra.Command{
	Use:   "spellgym [rounds] [list]",
	Short: "Spell Gym - Audio spelling drill",
	Long: `Spell Gym speaks a word, you type it blind and hear every letter
spoken back as you type. Backspace starts the word over.

Word lists are read from the lists directory: one word per line in .txt
files ("color OR colour" accepts both spellings) or a words sequence in
.yaml files.

Examples:
  spellgym                  # 10 words from all lists
  spellgym 5                # 5 words
  spellgym 5 animals        # 5 words from lists/animals.txt
  spellgym --backend say    # always use the say utility`,
	Args:          cobra.MaximumNArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDrill,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./spellgym.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&listsDir, "lists", "", "word list directory")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "speech backend (auto, native, piper, say)")
	rootCmd.Flags().StringVar(&erasePolicy, "erase-policy", "", "backspace behavior (reset, erase)")
}

// loadConfig loads the configuration and applies command line overrides
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	if listsDir != "" {
		cfg.Drill.ListsDir = listsDir
	}
	if backend != "" {
		cfg.Speech.Backend = backend
	}
	if erasePolicy != "" {
		cfg.Drill.ErasePolicy = erasePolicy
	}
	if verbose {
		cfg.General.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *logging.Logger {
	return logging.NewLogger(logging.LoggerConfig{
		Name:   "spellgym",
		Level:  cfg.General.LogLevel,
		Format: cfg.General.LogFormat,
	})
}

func runDrill(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	rounds := cfg.Drill.Rounds
	if len(args) > 0 {
		if rounds, err = config.ParseRounds(args[0]); err != nil {
			return err
		}
	}

	entries, err := loadEntries(cfg.Drill.ListsDir, args)
	if err != nil {
		return err
	}
	game, err := wordlist.Sample(entries, rounds, nil)
	if err != nil {
		return fmt.Errorf("%w in %s", err, cfg.Drill.ListsDir)
	}

	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := newEngine(cfg, logger)
	defer engine.Close()

	policy, _ := capture.ParsePolicy(cfg.Drill.ErasePolicy)
	lines := bufio.NewReader(os.Stdin)

	var terminal capture.Terminal
	if stdin := capture.NewFileTerminal(os.Stdin); stdin.IsTerminal() {
		terminal = stdin
	}

	capturer := capture.New(capture.Options{
		In:           lines,
		Out:          os.Stdout,
		Terminal:     terminal,
		Speaker:      engine,
		Policy:       policy,
		StartOverCue: cfg.Drill.StartOverCue,
		BackspaceCue: cfg.Drill.BackspaceCue,
	})

	runner := drill.NewRunner(drill.Options{
		Out:      os.Stdout,
		Lines:    lines,
		Speaker:  engine,
		Capturer: capturer,
		Logger:   logger,
	})

	logger.Debug("Starting drill",
		"rounds", rounds,
		"backend", cfg.Speech.Backend,
		"erase_policy", policy.String(),
		"session", runner.SessionID())

	_, err = runner.Run(ctx, game)
	if ctx.Err() != nil && err != nil {
		return context.Canceled
	}
	return err
}

func loadEntries(dir string, args []string) ([]wordlist.Entry, error) {
	if len(args) > 1 {
		return wordlist.LoadFile(dir, args[1])
	}
	return wordlist.LoadDir(dir)
}
