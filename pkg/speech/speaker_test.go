package speech

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSynth records spoken texts and blocks until released
type fakeSynth struct {
	mu        sync.Mutex
	spoken    []string
	release   chan struct{}
	err       error
	available bool
}

func newFakeSynth() *fakeSynth {
	return &fakeSynth{release: make(chan struct{}), available: true}
}

func (f *fakeSynth) Speak(ctx context.Context, text string) error {
	select {
	case <-f.release:
	case <-ctx.Done():
		return ctx.Err()
	}
	f.mu.Lock()
	f.spoken = append(f.spoken, text)
	f.mu.Unlock()
	return f.err
}

func (f *fakeSynth) Available() bool {
	return f.available
}

func (f *fakeSynth) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.spoken...)
}

func waitResult(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("speech did not complete")
		return nil
	}
}

func TestSayCompletes(t *testing.T) {
	synth := newFakeSynth()
	close(synth.release)
	s := NewSpeaker(synth, log.New(io.Discard))
	defer s.Close()

	done, err := s.Say("This is cube.stl.")
	require.NoError(t, err)
	assert.NoError(t, waitResult(t, done))
	assert.Equal(t, []string{"This is cube.stl."}, synth.texts())

	_, open := <-done
	assert.False(t, open, "completion channel should be closed")
}

func TestSayRejectsWhileBusy(t *testing.T) {
	synth := newFakeSynth()
	s := NewSpeaker(synth, log.New(io.Discard))
	defer s.Close()

	done, err := s.Say("first")
	require.NoError(t, err)
	assert.True(t, s.Busy())

	_, err = s.Say("second")
	assert.ErrorIs(t, err, ErrBusy)

	close(synth.release)
	require.NoError(t, waitResult(t, done))
	assert.False(t, s.Busy())

	done, err = s.Say("third")
	require.NoError(t, err)
	require.NoError(t, waitResult(t, done))
	assert.Equal(t, []string{"first", "third"}, synth.texts())
}

func TestSayReportsSynthesizerError(t *testing.T) {
	synth := newFakeSynth()
	synth.err = errors.New("audio device missing")
	close(synth.release)
	s := NewSpeaker(synth, log.New(io.Discard))
	defer s.Close()

	done, err := s.Say("hello")
	require.NoError(t, err)
	assert.EqualError(t, waitResult(t, done), "audio device missing")
	assert.False(t, s.Busy())
}

func TestSayUnavailable(t *testing.T) {
	synth := newFakeSynth()
	synth.available = false
	s := NewSpeaker(synth, log.New(io.Discard))
	defer s.Close()

	_, err := s.Say("hello")
	assert.ErrorIs(t, err, ErrUnavailable)

	nilSpeaker := NewSpeaker(nil, log.New(io.Discard))
	defer nilSpeaker.Close()
	_, err = nilSpeaker.Say("hello")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCloseCancelsPlayback(t *testing.T) {
	synth := newFakeSynth()
	s := NewSpeaker(synth, log.New(io.Discard))

	done, err := s.Say("never finishes")
	require.NoError(t, err)

	require.NoError(t, s.Close())
	assert.ErrorIs(t, waitResult(t, done), context.Canceled)

	_, err = s.Say("after close")
	assert.ErrorIs(t, err, ErrClosed)
	assert.NoError(t, s.Close())
}

func TestCommandSynthesizerArgs(t *testing.T) {
	opts := Options{Rate: 150, Volume: 0.9}

	espeak := &CommandSynthesizer{program: "/usr/bin/espeak", opts: opts}
	assert.Equal(t, []string{"-s", "150", "-a", "90", "hello"}, espeak.args("hello"))

	say := &CommandSynthesizer{program: "/usr/bin/say", opts: opts}
	assert.Equal(t, []string{"-r", "150", "hello"}, say.args("hello"))
}

func TestCommandSynthesizerMissingProgram(t *testing.T) {
	s := NewCommandSynthesizer(Options{Rate: 150, Volume: 1, Command: "no-such-tts-program"})
	assert.False(t, s.Available())
	assert.ErrorIs(t, s.Speak(context.Background(), "hi"), ErrUnavailable)
}

func TestDefaultOptions(t *testing.T) {
	assert.Equal(t, Options{Rate: 150, Volume: 0.9}, DefaultOptions())
}
