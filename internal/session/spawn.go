package session

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"

	"github.com/PiranhaCodes/forkpty"
)

// Options controls how a session is spawned. Zero values fall back to the
// built-in defaults.
type Options struct {
	Shell       string // shell binary; empty means autodetect
	PtmxPath    string // PTY multiplexer device; empty means forkpty.DefaultPtmxPath
	SessionsDir string // directory for per-session FIFO pipes
	LogDir      string // directory for per-session output logs
}

const (
	defaultSessionsDir = "/run/forkptyd/sessions"
	defaultLogDir      = "/var/log/forkptyd"
)

// Spawn forks a new shell onto a fresh PTY and registers the session with
// the default manager. The child side of the fork execs the shell on the
// rewired standard streams and never returns into the daemon.
func Spawn(opts Options) (*Session, error) {
	shellPath, err := DetectShell(opts.Shell)
	if err != nil {
		return nil, fmt.Errorf("shell detection failed: %w", err)
	}

	ptmxPath := opts.PtmxPath
	if ptmxPath == "" {
		ptmxPath = forkpty.DefaultPtmxPath
	}
	sessionsDir := opts.SessionsDir
	if sessionsDir == "" {
		sessionsDir = defaultSessionsDir
	}
	logDir := opts.LogDir
	if logDir == "" {
		logDir = defaultLogDir
	}

	id := uuid.New().String()
	parentPid := os.Getpid()

	proc, err := forkpty.Fork(ptmxPath)
	if err != nil {
		if os.Getpid() != parentPid {
			// We are a half-wired child copy of the daemon. Returning the
			// error would hand a second daemon to the caller, so end the
			// child here instead.
			log.Printf("[PTY] child PTY setup failed: %v", err)
			os.Exit(1)
		}
		return nil, fmt.Errorf("failed to fork PTY: %w", err)
	}

	if proc.IsChild() {
		// Session leader with stdin/stdout/stderr on the slave; exec only
		// returns on error.
		err := syscall.Exec(shellPath, []string{shellPath}, os.Environ())
		log.Printf("[PTY] exec %s: %v", shellPath, err)
		os.Exit(127)
	}

	fail := func(step string, cause error) (*Session, error) {
		proc.Close()
		syscall.Kill(proc.Pid(), syscall.SIGKILL)
		proc.Wait()
		return nil, fmt.Errorf("%s: %w", step, cause)
	}

	master, err := proc.Master()
	if err != nil {
		return fail("failed to duplicate PTY master", err)
	}
	tty, err := master.SlavePath()
	master.Close()
	if err != nil {
		return fail("failed to resolve slave path", err)
	}

	ptmx, err := proc.MasterFile()
	if err != nil {
		return fail("failed to open PTY master file", err)
	}

	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		ptmx.Close()
		return fail("failed to create sessions directory", err)
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		ptmx.Close()
		return fail("failed to create log directory", err)
	}

	fifoPath := filepath.Join(sessionsDir, id+".out")
	if err := os.Remove(fifoPath); err != nil && !os.IsNotExist(err) {
		ptmx.Close()
		return fail("failed to remove existing FIFO", err)
	}
	if err := syscall.Mkfifo(fifoPath, 0666); err != nil {
		ptmx.Close()
		return fail("failed to create FIFO", err)
	}

	fifoWriter, err := os.OpenFile(fifoPath, os.O_WRONLY|syscall.O_NONBLOCK, 0)
	if err != nil {
		os.Remove(fifoPath)
		ptmx.Close()
		return fail("failed to open FIFO for writing", err)
	}

	logPath := filepath.Join(logDir, id+".log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fifoWriter.Close()
		os.Remove(fifoPath)
		ptmx.Close()
		return fail("failed to open log file", err)
	}

	sess := &Session{
		ID:         id,
		TTY:        tty,
		proc:       proc,
		pty:        ptmx,
		logFile:    logFile,
		fifoPath:   fifoPath,
		fifoWriter: fifoWriter,
		done:       make(chan struct{}),
	}

	DefaultManager.Add(id, sess)
	go sess.ReadLoop()

	go func() {
		if _, err := proc.Wait(); err != nil {
			log.Printf("[PTY] Session %s: wait: %v", id, err)
		}
	}()

	log.Printf("[PTY] Spawned session %s: shell %s on %s (pid %d)", id, shellPath, tty, proc.Pid())
	return sess, nil
}
