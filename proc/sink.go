package proc

import (
	stderrors "errors"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/logger"
	"github.com/kbukum/pipekit/stream"
)

// compile-time assertion
var _ stream.Sink = (*Sink)(nil)

// Sink owns one child process and the write end of its stdin pipe.
// A Sink is driven by a single goroutine; it is not safe for
// concurrent use.
type Sink struct {
	cfg        Config
	id         string
	log        *logger.Logger
	metrics    *sinkMetrics
	cmd        *exec.Cmd
	w          *pipeWriter
	unbuffered bool
	closed     bool
}

// New validates cfg, launches the command under the configured shell
// with its stdin bound to a fresh pipe, and returns a Sink owning the
// nonblocking write end. Launch happens exactly once; on any failure
// the returned error is fatal and no usable Sink exists.
func New(cfg Config) (*Sink, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Sink{
		cfg:        cfg,
		id:         cfg.Name,
		unbuffered: cfg.Unbuffered,
	}
	if s.id == "" {
		s.id = "sink-" + uuid.NewString()[:8]
	}
	s.log = logger.WithComponent("proc").WithFields(map[string]interface{}{
		logger.FieldSink: s.id,
	})
	s.metrics = newSinkMetrics(s.id, s.log)

	r, w, err := os.Pipe()
	if err != nil {
		return nil, errors.PipeCreateFailed(err)
	}

	cmd := exec.Command(cfg.Shell, "-c", cfg.Command)
	cmd.Stdin = r
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		r.Close()
		w.Close()
		s.metrics.error("launch")
		return nil, errors.LaunchFailed(cfg.Command, err)
	}
	// The child holds its own copy of the read end now.
	r.Close()

	// The writer extracts the raw descriptor exactly once: os.File.Fd
	// flips a poller-registered pipe back to blocking mode, so flags
	// set after this point stick.
	pw := newPipeWriter(w, cfg.BufferSize)
	if err := setFdFlags(pw.fd, unix.O_NONBLOCK); err != nil {
		s.abortLaunch(w, cmd)
		return nil, err
	}
	// os.Pipe creates both ends close-on-exec; keep the explicit mark
	// in case the descriptor is ever re-created without it.
	if err := setCloseOnExec(pw.fd); err != nil {
		s.abortLaunch(w, cmd)
		return nil, err
	}

	s.cmd = cmd
	s.w = pw

	s.log.Info("process started", logger.Fields(
		logger.FieldCommand, cfg.Command,
		logger.FieldPID, cmd.Process.Pid,
		"item_size", cfg.ItemSize,
	))
	return s, nil
}

// abortLaunch tears down a half-constructed sink so a construction
// failure never leaks the child as a zombie.
func (s *Sink) abortLaunch(w *os.File, cmd *exec.Cmd) {
	w.Close()
	_ = cmd.Wait()
	s.metrics.error("construct")
}

// Work offers a batch of records and returns how many the sink
// accepted. Accepted records are guaranteed delivered to the child, at
// the latest during Close. A saturated pipe yields a short (possibly
// zero) count with a nil error; any real write failure is fatal.
// Bytes are forwarded verbatim in offer order, no framing added.
func (s *Sink) Work(items []byte) (int, error) {
	if s.closed {
		return 0, errors.Closed()
	}

	itemSize := s.cfg.ItemSize
	offered := len(items) / itemSize
	if offered == 0 {
		return 0, nil
	}
	start := time.Now()

	accepted, err := s.w.accept(items[:offered*itemSize], itemSize)
	if err != nil {
		s.metrics.error("write")
		return 0, errors.WriteFailed(err)
	}

	if s.unbuffered {
		// Push accepted records toward the pipe now instead of waiting
		// for the buffer to fill. A full pipe is fine; a hard error is
		// sticky and fails the next call.
		_ = s.w.flush(false)
	}

	s.metrics.batch(offered, accepted, itemSize, time.Since(start))
	return accepted, nil
}

// Unbuffered reports whether the sink flushes after every batch.
func (s *Sink) Unbuffered() bool {
	return s.unbuffered
}

// SetUnbuffered toggles per-batch flushing. Takes effect on the next
// Work call.
func (s *Sink) SetUnbuffered(unbuffered bool) {
	s.unbuffered = unbuffered
}

// ItemSize returns the fixed record size in bytes.
func (s *Sink) ItemSize() int {
	return s.cfg.ItemSize
}

// ID returns the sink instance identifier used in logs and metrics.
func (s *Sink) ID() string {
	return s.id
}

// PID returns the child process id.
func (s *Sink) PID() int {
	return s.cmd.Process.Pid
}

// Close drains and reaps. The descriptor is switched back to blocking
// so the final flush waits for the child instead of dropping buffered
// records, the pipe is closed to deliver end-of-file, and the child is
// waited on exactly once. Exit status is logged as a diagnostic, never
// returned; the returned error covers descriptor-flag and reap
// failures only. Close is idempotent; calls after the first return nil.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var firstErr error
	if err := resetFdFlags(s.w.fd, unix.O_NONBLOCK); err != nil {
		firstErr = err
		s.metrics.error("fd_flags")
		s.log.Error("clearing O_NONBLOCK failed", logger.ErrorFields("teardown", err))
	}

	if err := s.w.drainAndClose(); err != nil {
		// A child that died before reading everything surfaces here as
		// EPIPE. Diagnostic only: the wait below still reaps it.
		s.metrics.error("drain")
		s.log.Error("draining stdin pipe failed", logger.ErrorFields("teardown", err))
	}

	err := s.cmd.Wait()
	var exitErr *exec.ExitError
	if err != nil && !stderrors.As(err, &exitErr) {
		s.metrics.error("reap")
		s.log.Error("waiting for process failed", logger.ErrorFields("teardown", err))
		if firstErr == nil {
			firstErr = errors.ReapFailed(s.cmd.Process.Pid, err)
		}
		return firstErr
	}

	state := s.cmd.ProcessState
	if state.Exited() {
		s.log.Info("process exited", logger.Fields(
			logger.FieldPID, state.Pid(),
			logger.FieldExitCode, state.ExitCode(),
		))
	} else if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		s.log.Error("abnormal process termination", logger.Fields(
			logger.FieldPID, state.Pid(),
			logger.FieldSignal, ws.Signal().String(),
		))
	} else {
		s.log.Error("abnormal process termination", logger.Fields(
			logger.FieldPID, state.Pid(),
		))
	}

	return firstErr
}
