package forkpty

import (
	"os"
	"runtime"
	"syscall"

	"golang.org/x/sys/unix"
)

// Proc is the outcome of Fork, valid on exactly one side of it: the parent
// side carries the child's pid and the PTY master, the child side carries
// the slave whose descriptor is already wired onto stdin, stdout and stderr.
type Proc struct {
	pid    int
	master *Master
	slave  *Slave
}

// ForkDefault forks with the default multiplexer device.
func ForkDefault() (*Proc, error) {
	return Fork(DefaultPtmxPath)
}

// Fork allocates a PTY pair from the multiplexer at ptmxPath and forks the
// process. The parent's handle keeps the master and the child's pid; the
// child's handle keeps the slave, and the child is a session leader with its
// standard streams rewired to the slave, ready to exec a program.
//
// Any error before the fork leaves no process behind. Errors after the fork
// are reported on the child side; the library never ends the child itself,
// the caller decides its fate.
func Fork(ptmxPath string) (*Proc, error) {
	master, err := OpenMaster(ptmxPath)
	if err != nil {
		return nil, err
	}
	if err := master.Grant(); err != nil {
		master.Close()
		return nil, err
	}
	if err := master.Unlock(); err != nil {
		master.Close()
		return nil, err
	}

	pid, err := forkProcess()
	if err != nil {
		master.Close()
		return nil, &Error{Kind: ForkFailed, Op: "fork", Err: err}
	}
	if pid == 0 {
		return forkChild(master)
	}
	return &Proc{pid: pid, master: master}, nil
}

// forkChild finishes the protocol on the child side. The master is inherited
// through the fork; the slave path is resolved from it before the process
// detaches into its own session, and the dup2 sequence stops at the first
// failed slot.
func forkChild(master *Master) (*Proc, error) {
	path, err := master.SlavePath()
	if err != nil {
		return nil, err
	}
	if _, err := unix.Setsid(); err != nil {
		return nil, &Error{Kind: SetsidFailed, Op: "setsid", Err: err}
	}
	slave, err := OpenSlave(path)
	if err != nil {
		return nil, err
	}
	for _, slot := range []int{syscall.Stdin, syscall.Stdout, syscall.Stderr} {
		if err := slave.DupOnto(slot); err != nil {
			return nil, err
		}
	}
	return &Proc{slave: slave}, nil
}

// forkProcess invokes the raw fork syscall under the runtime's fork lock.
func forkProcess() (int, error) {
	syscall.ForkLock.Lock()
	pid, _, errno := syscall.RawSyscall(syscall.SYS_FORK, 0, 0, 0)
	syscall.ForkLock.Unlock()
	if errno != 0 {
		return -1, errno
	}
	return int(pid), nil
}

// IsParent reports whether this handle is the parent side of the fork.
func (p *Proc) IsParent() bool { return p.master != nil }

// IsChild reports whether this handle is the child side of the fork.
func (p *Proc) IsChild() bool { return p.slave != nil }

// Pid returns the child's process id on the parent side and 0 on the child
// side.
func (p *Proc) Pid() int { return p.pid }

// Master returns an independent duplicate of the PTY master. It fails with
// ErrIsChild on the child side.
func (p *Proc) Master() (*Master, error) {
	if p.IsChild() {
		return nil, ErrIsChild
	}
	return p.master.Dup()
}

// MasterFile is like Master but returns the duplicate as an *os.File.
func (p *Proc) MasterFile() (*os.File, error) {
	if p.IsChild() {
		return nil, ErrIsChild
	}
	return p.master.File()
}

// Slave returns the slave handle. It fails with ErrIsParent on the parent
// side.
func (p *Proc) Slave() (*Slave, error) {
	if p.IsParent() {
		return nil, ErrIsParent
	}
	return p.slave, nil
}

// Wait blocks until the child terminates and returns its pid. Stopped and
// continued statuses are not terminal: the loop keeps waiting through them
// and through EINTR, yielding between retries. On the child side Wait fails
// immediately with ErrIsChild and never blocks.
func (p *Proc) Wait() (int, error) {
	if p.IsChild() {
		return 0, ErrIsChild
	}
	var status unix.WaitStatus
	for {
		wpid, err := unix.Wait4(p.pid, &status, 0, nil)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, &Error{Kind: WaitFailed, Op: "waitpid", Err: err}
		}
		if wpid == p.pid && (status.Exited() || status.Signaled()) {
			return p.pid, nil
		}
		runtime.Gosched()
	}
}

// Close releases the parent side's master; the underlying close runs at most
// once however often Close is called. On the child side it is a no-op: the
// slave's lifetime is the caller's concern once the standard streams are
// wired.
func (p *Proc) Close() error {
	if p.master != nil {
		return p.master.Close()
	}
	return nil
}
