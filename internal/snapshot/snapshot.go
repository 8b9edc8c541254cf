// Package snapshot freezes the observable process environment — env vars and
// TTY state — at a single point so detection is deterministic and hermetic.
package snapshot

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// TTY is the capability that answers whether the standard streams are
// attached to a terminal. Detection reads TTY state only through this
// capability; environment variables never override it.
type TTY interface {
	IsTTYStdin() bool
	IsTTYStdout() bool
	IsTTYStderr() bool
}

// RealTTY answers from the OS. Cygwin/msys pipes report as terminals, the
// same treatment opentofu-style CLIs give their UI streams.
type RealTTY struct{}

func (RealTTY) IsTTYStdin() bool  { return isTerminal(os.Stdin.Fd()) }
func (RealTTY) IsTTYStdout() bool { return isTerminal(os.Stdout.Fd()) }
func (RealTTY) IsTTYStderr() bool { return isTerminal(os.Stderr.Fd()) }

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// MockTTY is a fixed-answer capability for tests.
type MockTTY struct {
	Stdin  bool
	Stdout bool
	Stderr bool
}

func (m MockTTY) IsTTYStdin() bool  { return m.Stdin }
func (m MockTTY) IsTTYStdout() bool { return m.Stdout }
func (m MockTTY) IsTTYStderr() bool { return m.Stderr }

// Snapshot is an immutable capture of the environment. Construction never
// fails; a missing variable is simply absent.
type Snapshot struct {
	env       map[string]string
	stdinTTY  bool
	stdoutTTY bool
	stderrTTY bool
}

// Current captures the process environment and queries the given TTY
// capability once. A nil capability defaults to RealTTY.
func Current(tty TTY) *Snapshot {
	if tty == nil {
		tty = RealTTY{}
	}
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}
	return &Snapshot{
		env:       env,
		stdinTTY:  tty.IsTTYStdin(),
		stdoutTTY: tty.IsTTYStdout(),
		stderrTTY: tty.IsTTYStderr(),
	}
}

// WithMock builds a snapshot from fixed env and TTY bits. The map is copied
// so later caller mutation cannot leak in.
func WithMock(env map[string]string, stdin, stdout, stderr bool) *Snapshot {
	copied := make(map[string]string, len(env))
	for k, v := range env {
		copied[k] = v
	}
	return &Snapshot{
		env:       copied,
		stdinTTY:  stdin,
		stdoutTTY: stdout,
		stderrTTY: stderr,
	}
}

// Get returns the value of an environment variable and whether it was set.
func (s *Snapshot) Get(key string) (string, bool) {
	v, ok := s.env[key]
	return v, ok
}

// Has reports whether an environment variable was set.
func (s *Snapshot) Has(key string) bool {
	_, ok := s.env[key]
	return ok
}

func (s *Snapshot) IsTTYStdin() bool  { return s.stdinTTY }
func (s *Snapshot) IsTTYStdout() bool { return s.stdoutTTY }
func (s *Snapshot) IsTTYStderr() bool { return s.stderrTTY }

// Len returns the number of captured variables.
func (s *Snapshot) Len() int { return len(s.env) }
