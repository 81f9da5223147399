package session

import (
	"log"
	"os"
	"syscall"
	"time"
)

// termGrace is how long the shell gets to exit on SIGTERM before SIGKILL.
const termGrace = 2 * time.Second

// Cleanup tears down a session: the PTY master, the output streams, the FIFO
// file, the shell process, and the manager entry. Safe to call more than
// once; later calls find nothing left to release.
func Cleanup(sess *Session) {
	if sess == nil {
		return
	}

	log.Printf("[PTY] Cleaning up session %s", sess.ID)

	sess.mu.Lock()
	pty := sess.pty
	logFile := sess.logFile
	fifoWriter := sess.fifoWriter
	sess.pty = nil
	sess.logFile = nil
	sess.fifoWriter = nil
	sess.mu.Unlock()

	if pty != nil {
		pty.Close()
	}
	if logFile != nil {
		logFile.Close()
	}
	if fifoWriter != nil {
		fifoWriter.Close()
	}

	if sess.fifoPath != "" {
		if err := os.Remove(sess.fifoPath); err != nil && !os.IsNotExist(err) {
			log.Printf("[PTY] Warning: failed to remove FIFO %s: %v", sess.fifoPath, err)
		}
	}

	if sess.Alive() {
		if err := sess.Signal(syscall.SIGTERM); err != nil {
			log.Printf("[PTY] Warning: failed to send SIGTERM to process %d: %v", sess.Pid(), err)
		}

		done := make(chan struct{}, 1)
		go func() {
			sess.proc.Wait()
			done <- struct{}{}
		}()

		select {
		case <-done:
		case <-time.After(termGrace):
			if err := sess.Signal(syscall.SIGKILL); err != nil {
				log.Printf("[PTY] Warning: failed to kill process %d: %v", sess.Pid(), err)
			}
			sess.proc.Wait()
		}
	}
	sess.proc.Close()

	DefaultManager.Remove(sess.ID)
	log.Printf("[PTY] Session %s cleaned up", sess.ID)
}

// CleanupAll cleans up every session the manager knows about.
func CleanupAll() {
	for _, sess := range DefaultManager.List() {
		Cleanup(sess)
	}
}
