// Package speech speaks descriptions on a background worker so callers,
// such as a UI event handler, never block on audio playback.
package speech

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

var (
	// ErrBusy is returned while another text is still being spoken
	ErrBusy = errors.New("voice-over already playing")
	// ErrUnavailable is returned when no speech engine is installed
	ErrUnavailable = errors.New("text-to-speech not available")
	// ErrClosed is returned after Close
	ErrClosed = errors.New("speaker closed")
)

type job struct {
	text string
	done chan error
}

// Speaker plays one text at a time on a single worker goroutine
type Speaker struct {
	synth  Synthesizer
	logger *log.Logger

	jobs   chan job
	busy   atomic.Bool
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewSpeaker starts the worker
func NewSpeaker(synth Synthesizer, logger *log.Logger) *Speaker {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Speaker{
		synth:  synth,
		logger: logger,
		jobs:   make(chan job, 1),
		ctx:    ctx,
		cancel: cancel,
	}

	s.wg.Add(1)
	go s.run()

	return s
}

// Available reports whether speech output works at all
func (s *Speaker) Available() bool {
	return s.synth != nil && s.synth.Available()
}

// Busy reports whether a text is currently being spoken
func (s *Speaker) Busy() bool {
	return s.busy.Load()
}

// Say queues text for speaking and returns immediately. The returned
// channel receives the playback result once and is then closed.
func (s *Speaker) Say(text string) (<-chan error, error) {
	if !s.Available() {
		return nil, ErrUnavailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if !s.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	j := job{text: text, done: make(chan error, 1)}
	s.jobs <- j
	return j.done, nil
}

func (s *Speaker) run() {
	defer s.wg.Done()
	for j := range s.jobs {
		err := s.synth.Speak(s.ctx, j.text)
		if err != nil {
			s.logger.Error("speech failed", "err", err)
		}
		s.busy.Store(false)
		j.done <- err
		close(j.done)
	}
}

// Close stops any playback and waits for the worker to exit
func (s *Speaker) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.jobs)
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
	return nil
}

func programName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
