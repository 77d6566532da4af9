package proc

import (
	"os"

	"golang.org/x/sys/unix"
)

// pipeWriter is a fixed-capacity buffered writer over a pipe's write
// descriptor. While the descriptor is nonblocking, a full kernel pipe
// surfaces as EAGAIN and is treated as backpressure: the unsent bytes
// stay buffered and the writer reports partial acceptance. Any other
// write error is sticky — once the pipe is broken every later call
// fails with the same error.
//
// bufio.Writer is unsuitable here: it latches the first short write as
// a permanent error, so EAGAIN would poison the stream instead of
// signaling a recoverable full pipe.
type pipeWriter struct {
	file *os.File // keeps the descriptor alive; closed in Close
	fd   int
	buf  []byte
	n    int   // buffered bytes not yet written to the pipe
	err  error // sticky hard write error
}

func newPipeWriter(file *os.File, size int) *pipeWriter {
	return &pipeWriter{
		file: file,
		fd:   int(file.Fd()),
		buf:  make([]byte, size),
	}
}

// buffered returns the byte count accepted but not yet in the kernel pipe.
func (w *pipeWriter) buffered() int { return w.n }

func (w *pipeWriter) free() int { return len(w.buf) - w.n }

// accept copies whole records of itemSize bytes from p into the
// buffer, flushing toward the pipe as the buffer fills. It returns the
// number of records accepted; zero with a nil error means the pipe and
// buffer are full. Records are never split.
func (w *pipeWriter) accept(p []byte, itemSize int) (int, error) {
	if w.err != nil {
		return 0, w.err
	}

	accepted := 0
	for len(p) >= itemSize {
		if w.free() < itemSize {
			if err := w.flush(false); err != nil {
				// Records already accepted were genuinely buffered;
				// the sticky error fails the next call.
				if accepted > 0 {
					return accepted, nil
				}
				return 0, err
			}
			if w.free() < itemSize {
				break // kernel pipe full: backpressure
			}
		}

		n := (w.free() / itemSize) * itemSize
		if whole := (len(p) / itemSize) * itemSize; n > whole {
			n = whole
		}
		copy(w.buf[w.n:], p[:n])
		w.n += n
		p = p[n:]
		accepted += n / itemSize
	}

	return accepted, nil
}

// flush writes buffered bytes to the pipe. In nonblocking mode a full
// pipe (EAGAIN) stops the flush without error; in blocking mode the
// kernel suspends the write until the child drains its end, so flush
// returns only when the buffer is empty or the pipe is broken.
func (w *pipeWriter) flush(blocking bool) error {
	if w.err != nil {
		return w.err
	}
	for w.n > 0 {
		n, err := unix.Write(w.fd, w.buf[:w.n])
		if n > 0 {
			copy(w.buf, w.buf[n:w.n])
			w.n -= n
		}
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			if isBackpressure(err) && !blocking {
				return nil
			}
			if isBackpressure(err) {
				continue
			}
			w.err = err
			return err
		}
	}
	return nil
}

// drainAndClose performs the final blocking flush and closes the
// descriptor, delivering end-of-file to the reader. The caller must
// have cleared O_NONBLOCK first.
func (w *pipeWriter) drainAndClose() error {
	flushErr := w.flush(true)
	closeErr := w.file.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

func isBackpressure(err error) bool {
	return err == unix.EAGAIN || err == unix.EWOULDBLOCK
}
