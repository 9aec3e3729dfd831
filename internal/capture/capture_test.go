package capture

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/msto63/spellgym/internal/speech"
)

type fakeTerminal struct {
	raw        bool
	acquired   int
	restored   int
	err        error
	restoreErr error
}

func (t *fakeTerminal) MakeRaw() (func() error, error) {
	if t.err != nil {
		return nil, t.err
	}
	t.raw = true
	t.acquired++
	return func() error {
		t.raw = false
		t.restored++
		return t.restoreErr
	}, nil
}

type fakeSpeaker struct {
	spoken []string
	failOn string
	err    error
}

func (s *fakeSpeaker) Speak(_ context.Context, text string) (speech.Outcome, error) {
	s.spoken = append(s.spoken, text)
	if s.failOn != "" && text == s.failOn {
		return speech.OutcomeFatal, s.err
	}
	return speech.OutcomeSpoken, nil
}

func newTestCapturer(input string, policy Policy) (*Capturer, *fakeTerminal, *fakeSpeaker, *bytes.Buffer) {
	term := &fakeTerminal{}
	speaker := &fakeSpeaker{}
	var out bytes.Buffer
	c := New(Options{
		In:       strings.NewReader(input),
		Out:      &out,
		Terminal: term,
		Speaker:  speaker,
		Policy:   policy,
	})
	return c, term, speaker, &out
}

func TestCapture(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		policy      Policy
		repeat      string
		wantText    string
		wantRetries int
		wantSpoken  []string
	}{
		{
			name:        "plain word",
			input:       "cat\r",
			policy:      PolicyFullReset,
			repeat:      "cat",
			wantText:    "cat",
			wantRetries: 0,
			wantSpoken:  []string{"c", "a", "t"},
		},
		{
			name:        "full reset re-speaks target",
			input:       "a\x7fcat\r",
			policy:      PolicyFullReset,
			repeat:      "cat",
			wantText:    "cat",
			wantRetries: 1,
			wantSpoken:  []string{"a", "start over", "cat", "c", "a", "t"},
		},
		{
			name:        "full reset without target",
			input:       "ab\bab\x7f\x7fok\n",
			policy:      PolicyFullReset,
			wantText:    "ok",
			wantRetries: 3,
			wantSpoken:  []string{"a", "b", "start over", "a", "b", "start over", "start over", "o", "k"},
		},
		{
			name:        "single erase pops one character",
			input:       "cat\x7f\r",
			policy:      PolicySingleErase,
			wantText:    "ca",
			wantRetries: 0,
			wantSpoken:  []string{"c", "a", "t", "backspace"},
		},
		{
			name:        "single erase ignores repeat target",
			input:       "cat\x7f\r",
			policy:      PolicySingleErase,
			repeat:      "cat",
			wantText:    "ca",
			wantRetries: 0,
			wantSpoken:  []string{"c", "a", "t", "backspace"},
		},
		{
			name:        "single erase on empty buffer",
			input:       "\x7fa\r",
			policy:      PolicySingleErase,
			wantText:    "a",
			wantRetries: 0,
			wantSpoken:  []string{"backspace", "a"},
		},
		{
			name:        "empty submit",
			input:       "\r",
			policy:      PolicyFullReset,
			wantText:    "",
			wantRetries: 0,
		},
		{
			name:        "multibyte characters",
			input:       "café\r",
			policy:      PolicyFullReset,
			wantText:    "café",
			wantRetries: 0,
			wantSpoken:  []string{"c", "a", "f", "é"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, term, speaker, out := newTestCapturer(tt.input, tt.policy)

			got, err := c.Capture(context.Background(), "> ", tt.repeat)
			if err != nil {
				t.Fatalf("Capture() error = %v", err)
			}
			want := Result{Text: tt.wantText, Retries: tt.wantRetries}
			if got != want {
				t.Errorf("Capture() = %+v, want %+v", got, want)
			}
			if diff := cmp.Diff(tt.wantSpoken, speaker.spoken); diff != "" {
				t.Errorf("spoken mismatch (-want +got):\n%s", diff)
			}
			if term.raw || term.restored != 1 {
				t.Errorf("terminal raw = %v, restored = %d; want restored once", term.raw, term.restored)
			}
			if c.LastState() != StateSubmitted {
				t.Errorf("LastState() = %v, want %v", c.LastState(), StateSubmitted)
			}
			if out.String() != "> \r\n" {
				t.Errorf("output = %q, want %q", out.String(), "> \r\n")
			}
		})
	}
}

func TestCapture_InterruptRestoresTerminal(t *testing.T) {
	c, term, speaker, _ := newTestCapturer("a\x03dog\r", PolicyFullReset)

	_, err := c.Capture(context.Background(), "> ", "cat")
	if !errors.Is(err, ErrInterrupted) {
		t.Fatalf("Capture() error = %v, want ErrInterrupted", err)
	}
	if term.raw {
		t.Error("terminal left in raw mode after interrupt")
	}
	if c.LastState() != StateInterrupted {
		t.Errorf("LastState() = %v, want %v", c.LastState(), StateInterrupted)
	}

	got, err := c.Capture(context.Background(), "> ", "dog")
	if err != nil {
		t.Fatalf("second Capture() error = %v", err)
	}
	if got != (Result{Text: "dog"}) {
		t.Errorf("second Capture() = %+v, want text %q", got, "dog")
	}
	if term.acquired != 2 || term.restored != 2 {
		t.Errorf("acquired = %d, restored = %d; want 2 and 2", term.acquired, term.restored)
	}
	if diff := cmp.Diff([]string{"a", "d", "o", "g"}, speaker.spoken); diff != "" {
		t.Errorf("spoken mismatch (-want +got):\n%s", diff)
	}
}

func TestCapture_SpeakErrorPropagates(t *testing.T) {
	c, term, speaker, _ := newTestCapturer("ab\r", PolicyFullReset)
	speaker.failOn = "b"
	speaker.err = speech.ErrSayNotFound

	_, err := c.Capture(context.Background(), "", "")
	if !errors.Is(err, speech.ErrSayNotFound) {
		t.Fatalf("Capture() error = %v, want ErrSayNotFound", err)
	}
	if term.raw {
		t.Error("terminal left in raw mode after speak error")
	}
}

func TestCapture_EndOfInput(t *testing.T) {
	c, term, _, _ := newTestCapturer("ca", PolicyFullReset)

	if _, err := c.Capture(context.Background(), "", ""); err == nil {
		t.Fatal("Capture() expected error on closed input")
	}
	if term.raw {
		t.Error("terminal left in raw mode")
	}
}

func TestCapture_CanceledContext(t *testing.T) {
	c, term, speaker, _ := newTestCapturer("cat\r", PolicyFullReset)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Capture(ctx, "", ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("Capture() error = %v, want context.Canceled", err)
	}
	if len(speaker.spoken) != 0 {
		t.Errorf("spoken = %v, want nothing", speaker.spoken)
	}
	if term.raw {
		t.Error("terminal left in raw mode")
	}
}

func TestCapture_RestoreFailure(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"reported after submit", "cat\r", errTTY},
		{"interrupt wins", "ca\x03", ErrInterrupted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, term, _, _ := newTestCapturer(tt.input, PolicyFullReset)
			term.restoreErr = errTTY

			_, err := c.Capture(context.Background(), "", "")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Capture() error = %v, want %v", err, tt.wantErr)
			}
			if term.restored != 1 {
				t.Errorf("restored = %d, want 1", term.restored)
			}
		})
	}
}

var errTTY = errors.New("inappropriate ioctl for device")

func TestCapture_RawModeFailure(t *testing.T) {
	c, term, _, _ := newTestCapturer("cat\r", PolicyFullReset)
	term.err = errors.New("not a tty")

	if _, err := c.Capture(context.Background(), "", ""); err == nil {
		t.Fatal("Capture() expected error when raw mode fails")
	}
}

func TestNew_Defaults(t *testing.T) {
	c := New(Options{In: strings.NewReader("")})
	if c.startOverCue != DefaultStartOverCue || c.backspaceCue != DefaultBackspaceCue {
		t.Errorf("cues = %q/%q, want defaults", c.startOverCue, c.backspaceCue)
	}
	if c.Policy() != PolicyFullReset {
		t.Errorf("Policy() = %v, want %v", c.Policy(), PolicyFullReset)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in     string
		want   Policy
		wantOK bool
	}{
		{"reset", PolicyFullReset, true},
		{"erase", PolicySingleErase, true},
		{"pop", PolicyFullReset, false},
	}
	for _, tt := range tests {
		got, ok := ParsePolicy(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParsePolicy(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateReading, "reading"},
		{StateStartOver, "start-over"},
		{StateSubmitted, "submitted"},
		{StateInterrupted, "interrupted"},
		{State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
