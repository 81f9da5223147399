package forkpty

import (
	"errors"
	"fmt"
)

// Kind identifies which stage of the fork protocol an operation failed in.
type Kind uint8

const (
	// BadMaster covers allocation, grant, unlock and slave-path resolution
	// failures on the master side.
	BadMaster Kind = iota + 1
	// BadSlave covers opening the slave device and rewiring it onto the
	// standard stream slots.
	BadSlave
	// ForkFailed means the fork call itself failed; no child process exists.
	ForkFailed
	// SetsidFailed means the child could not become a session leader.
	SetsidFailed
	// WaitFailed means waiting on the child hit a real OS error.
	WaitFailed
)

func (k Kind) String() string {
	switch k {
	case BadMaster:
		return "bad master"
	case BadSlave:
		return "bad slave"
	case ForkFailed:
		return "fork failed"
	case SetsidFailed:
		return "setsid failed"
	case WaitFailed:
		return "waitpid failed"
	default:
		return "unknown"
	}
}

// Error records a failed PTY operation, the protocol stage it belongs to and
// the underlying OS error.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("forkpty: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("forkpty: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Usage errors returned when a side-specific operation is invoked on the
// wrong side of the fork. These carry no OS cause.
var (
	ErrIsChild  = errors.New("forkpty: handle belongs to the child side")
	ErrIsParent = errors.New("forkpty: handle belongs to the parent side")
)

func badMaster(op string, err error) error {
	return &Error{Kind: BadMaster, Op: op, Err: err}
}

func badSlave(op string, err error) error {
	return &Error{Kind: BadSlave, Op: op, Err: err}
}
