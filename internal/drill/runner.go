// ============================================================================
// Spell Gym - Audio spelling drill
// ============================================================================
//
// Package:     drill
// Description: Round orchestration, scoring and result reporting
// Author:      Mike Stoffels
// Created:     2025-12-07
// License:     MIT
// ============================================================================

// Package drill runs a spelling session: it speaks each target word,
// captures the hidden answer, scores it and reports the running totals both
// on screen and as speech.
package drill

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/msto63/spellgym/internal/capture"
	"github.com/msto63/spellgym/internal/wordlist"
	"github.com/msto63/spellgym/pkg/core/logging"
)

// ErrNoEntries is returned by Run when there is nothing to drill
var ErrNoEntries = errors.New("no words to drill")

// Prompts
const (
	readyPrompt  = "Word %d of %d. Press Enter when you're ready."
	listenPrompt = "Listen carefully..."
	typePrompt   = "Type the spelling; input is hidden and spoken back as you type. Press Enter when done."
	inputPrompt  = "> "
)

// Capturer reads one hidden answer
type Capturer interface {
	Capture(ctx context.Context, prompt, repeat string) (capture.Result, error)
}

// Options configures a Runner
type Options struct {
	// Out receives the printed prompts and results
	Out io.Writer

	// Lines is read for the ready confirmation; share it with the Capturer
	Lines *bufio.Reader

	Speaker  capture.Speaker
	Capturer Capturer
	Logger   *logging.Logger
}

// RoundResult is the outcome of one word
type RoundResult struct {
	Index    int
	Target   string
	Typed    string
	Correct  bool
	Retries  int
	Feedback *Feedback
}

// Summary is the outcome of a session
type Summary struct {
	Score   int
	Rounds  int
	Retries int
	Results []RoundResult
}

// Runner plays a drill session
type Runner struct {
	out      io.Writer
	lines    *bufio.Reader
	speaker  capture.Speaker
	capturer Capturer
	logger   *logging.Logger
	styles   styles

	// pending is a ready-wait read abandoned by cancellation; it still owns
	// lines until it completes
	pending chan error

	sessionID string
}

// NewRunner creates a Runner with a fresh session id
func NewRunner(opts Options) *Runner {
	r := &Runner{
		out:       opts.Out,
		lines:     opts.Lines,
		speaker:   opts.Speaker,
		capturer:  opts.Capturer,
		sessionID: uuid.NewString(),
	}
	if r.out == nil {
		r.out = io.Discard
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	r.logger = logger.WithField("session", r.sessionID)
	r.styles = newStyles(r.out)
	return r
}

// SessionID returns the id attached to this runner's log records
func (r *Runner) SessionID() string {
	return r.sessionID
}

// Run plays one round per entry, in order. On error the summary holds the
// rounds completed so far.
func (r *Runner) Run(ctx context.Context, entries []wordlist.Entry) (Summary, error) {
	if len(entries) == 0 {
		return Summary{}, ErrNoEntries
	}

	summary := Summary{Rounds: len(entries)}
	r.logger.Debug("Drill started", "rounds", len(entries))

	for i, entry := range entries {
		result, err := r.round(ctx, i+1, len(entries), entry, summary.Score)
		if err != nil {
			return summary, err
		}

		if result.Correct {
			summary.Score++
		}
		summary.Retries += result.Retries
		summary.Results = append(summary.Results, result)

		if err := r.announce(ctx, result, summary.Score); err != nil {
			return summary, err
		}
	}

	r.printSummary(summary)
	if err := r.say(ctx, fmt.Sprintf("Final score %d out of %d", summary.Score, summary.Rounds)); err != nil {
		return summary, err
	}
	if err := r.say(ctx, fmt.Sprintf("Total retries %d", summary.Retries)); err != nil {
		return summary, err
	}

	r.logger.Info("Drill finished", "score", summary.Score, "rounds", summary.Rounds, "retries", summary.Retries)
	return summary, nil
}

func (r *Runner) round(ctx context.Context, index, total int, entry wordlist.Entry, score int) (RoundResult, error) {
	fmt.Fprintln(r.out, r.styles.header.Render(fmt.Sprintf(readyPrompt, index, total)))
	if err := r.waitReady(ctx); err != nil {
		return RoundResult{}, err
	}

	fmt.Fprintln(r.out, listenPrompt)
	if err := r.say(ctx, entry.Display); err != nil {
		return RoundResult{}, err
	}
	fmt.Fprintln(r.out, typePrompt)

	captured, err := r.capturer.Capture(ctx, inputPrompt, entry.Display)
	if err != nil {
		return RoundResult{}, err
	}

	result := RoundResult{
		Index:   index,
		Target:  entry.Display,
		Typed:   captured.Text,
		Correct: entry.Accepts(captured.Text),
		Retries: captured.Retries,
	}
	if !result.Correct {
		result.Feedback = Analyze(entry, captured.Text)
	}

	newScore := score
	if result.Correct {
		newScore++
	}
	r.printResult(result, newScore)

	r.logger.Debug("Round finished",
		"round", index,
		"target", entry.Display,
		"correct", result.Correct,
		"retries", result.Retries)
	return result, nil
}

// waitReady blocks until a line is read or ctx is done. A read abandoned by
// cancellation keeps running and is picked up by the next waitReady, so lines
// never has two readers. The Capturer must not read lines while a read is
// pending, which Run guarantees by returning on cancellation.
func (r *Runner) waitReady(ctx context.Context) error {
	if r.lines == nil {
		return nil
	}

	done := r.pending
	if done == nil {
		done = make(chan error, 1)
		go func() {
			_, err := r.lines.ReadString('\n')
			done <- err
		}()
	}

	select {
	case <-ctx.Done():
		r.pending = done
		return ctx.Err()
	case err := <-done:
		r.pending = nil
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("input closed: %w", io.ErrUnexpectedEOF)
		}
		return nil
	}
}

func (r *Runner) announce(ctx context.Context, result RoundResult, score int) error {
	typed := result.Typed
	if typed == "" {
		typed = "nothing"
	}
	verdict := "The answer is not correct"
	if result.Correct {
		verdict = "The answer is correct"
	}

	for _, text := range []string{
		"You typed " + typed,
		verdict,
		fmt.Sprintf("Score is %d out of %d", score, result.Index),
	} {
		if err := r.say(ctx, text); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) say(ctx context.Context, text string) error {
	if r.speaker == nil {
		return nil
	}
	outcome, err := r.speaker.Speak(ctx, text)
	if err != nil {
		return err
	}
	r.logger.Debug("Spoke", "outcome", outcome.String(), "chars", len(text))
	return nil
}

func (r *Runner) printResult(result RoundResult, score int) {
	verdict := r.styles.wrong.Render("incorrect")
	if result.Correct {
		verdict = r.styles.correct.Render("correct")
	}

	lines := []string{
		r.styles.label.Render("Target   :") + " " + result.Target,
		r.styles.label.Render("You typed:") + " " + result.Typed,
		r.styles.label.Render("Result   :") + " " + verdict,
	}
	if hint := result.Feedback.String(); hint != "" {
		lines = append(lines, r.styles.label.Render("Hint     :")+" "+r.styles.hint.Render(hint))
	}
	lines = append(lines, r.styles.label.Render("Score    :")+fmt.Sprintf(" %d / %d", score, result.Index))

	fmt.Fprintln(r.out, strings.Join(lines, "\n"))
	fmt.Fprintln(r.out)
}

func (r *Runner) printSummary(s Summary) {
	body := fmt.Sprintf("Final score: %d / %d\nTotal retries: %d", s.Score, s.Rounds, s.Retries)
	fmt.Fprintln(r.out, r.styles.summary.Render(body))
}
