package speech

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// Synthesizer speaks text aloud. Speak blocks until playback finishes.
type Synthesizer interface {
	Speak(ctx context.Context, text string) error
	Available() bool
}

// Options configures speech output
type Options struct {
	Rate    int     // words per minute
	Volume  float64 // 0..1
	Command string  // explicit program; empty picks the first installed one
}

// DefaultOptions mirrors the classic voice-over settings
func DefaultOptions() Options {
	return Options{Rate: 150, Volume: 0.9}
}

// candidates are tried in order when no command is configured
var candidates = []string{"espeak-ng", "espeak", "say"}

// CommandSynthesizer speaks through a system text-to-speech program
type CommandSynthesizer struct {
	program string
	opts    Options
}

// NewCommandSynthesizer resolves the speech program. When none is
// installed the synthesizer reports itself unavailable.
func NewCommandSynthesizer(opts Options) *CommandSynthesizer {
	s := &CommandSynthesizer{opts: opts}
	if opts.Command != "" {
		if path, err := exec.LookPath(opts.Command); err == nil {
			s.program = path
		}
		return s
	}
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			s.program = path
			break
		}
	}
	return s
}

// Available reports whether a speech program was found
func (s *CommandSynthesizer) Available() bool {
	return s.program != ""
}

// Speak runs the speech program and waits for it to finish
func (s *CommandSynthesizer) Speak(ctx context.Context, text string) error {
	if !s.Available() {
		return ErrUnavailable
	}
	cmd := exec.CommandContext(ctx, s.program, s.args(text)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to speak: %w: %s", err, out)
	}
	return nil
}

// args builds the command line for the resolved program
func (s *CommandSynthesizer) args(text string) []string {
	switch programName(s.program) {
	case "say":
		// say has no volume flag
		return []string{"-r", strconv.Itoa(s.opts.Rate), text}
	default:
		// espeak amplitude ranges 0..200 with 100 as normal
		amplitude := int(s.opts.Volume*100 + 0.5)
		return []string{"-s", strconv.Itoa(s.opts.Rate), "-a", strconv.Itoa(amplitude), text}
	}
}
