package session

import (
	"errors"
	"io"
	"log"
	"os"
	"sync"
	"syscall"

	ptylib "github.com/creack/pty"

	"github.com/PiranhaCodes/forkpty"
)

// Session represents one live shell attached to a PTY, together with the
// streams the daemon fans its output into.
type Session struct {
	ID  string
	TTY string // slave device path, e.g. /dev/pts/3

	proc       *forkpty.Proc
	pty        *os.File
	logFile    *os.File
	fifoPath   string
	fifoWriter *os.File
	mu         sync.Mutex
	done       chan struct{}
}

// Pid returns the shell's process id.
func (s *Session) Pid() int { return s.proc.Pid() }

// Alive reports whether the shell process still accepts signals.
func (s *Session) Alive() bool {
	return syscall.Kill(s.proc.Pid(), syscall.Signal(0)) == nil
}

// Signal delivers sig to the shell process.
func (s *Session) Signal(sig syscall.Signal) error {
	return syscall.Kill(s.proc.Pid(), sig)
}

// Write sends data to the PTY, i.e. types it into the shell.
func (s *Session) Write(data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pty == nil {
		return 0, io.ErrClosedPipe
	}
	return s.pty.Write(data)
}

// Resize resizes the PTY terminal to the specified dimensions.
func (s *Session) Resize(cols, rows int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pty == nil {
		return io.ErrClosedPipe
	}
	return ptylib.Setsize(s.pty, &ptylib.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
}

// Wait blocks until the session's read loop has finished and cleanup ran.
func (s *Session) Wait() {
	<-s.done
}

// ReadLoop continuously reads the shell's output from the PTY master and
// fans it out to the FIFO and the log file. It runs until the PTY hangs up
// and then triggers cleanup.
func (s *Session) ReadLoop() {
	defer func() {
		close(s.done)
		Cleanup(s)
	}()

	buf := make([]byte, 4096)
	for {
		n, err := s.pty.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			s.fanOut(data)
		}
		if err != nil {
			// EIO is how the master reports the slave side hanging up.
			if err == io.EOF || errors.Is(err, syscall.EIO) {
				log.Printf("[PTY] Session %s: PTY closed", s.ID)
			} else {
				log.Printf("[PTY] Session %s: PTY read error: %v", s.ID, err)
			}
			return
		}
	}
}

func (s *Session) fanOut(data []byte) {
	s.mu.Lock()
	fifo := s.fifoWriter
	logFile := s.logFile
	s.mu.Unlock()

	if fifo != nil {
		go func(d []byte) {
			if _, err := fifo.Write(d); err != nil {
				log.Printf("[PTY] Session %s: FIFO write error (non-fatal): %v", s.ID, err)
			}
		}(data)
	}

	if logFile != nil {
		if _, err := logFile.Write(data); err != nil {
			log.Printf("[PTY] Session %s: log write error: %v", s.ID, err)
		}
		logFile.Sync()
	}
}
