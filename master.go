package forkpty

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// DefaultPtmxPath is the platform's PTY multiplexer device.
const DefaultPtmxPath = "/dev/ptmx"

// Master is the controlling end of a PTY pair.
type Master struct {
	*Descriptor
}

// OpenMaster allocates a new PTY master from the multiplexer device at path.
// The descriptor is opened close-on-exec so a child that execs a program
// does not inherit it.
func OpenMaster(path string) (*Master, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_NOCTTY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, badMaster("open "+path, err)
	}
	return &Master{Descriptor: newDescriptor(fd, path)}, nil
}

// Grant makes the paired slave device accessible. devpts grants access at
// mount time, so this reduces to the TIOCGPTN ioctl validating that the
// descriptor really is a PTY master. Must be called before Unlock.
func (m *Master) Grant() error {
	if _, err := unix.IoctlGetInt(m.Fd(), unix.TIOCGPTN); err != nil {
		return badMaster("grantpt", err)
	}
	return nil
}

// Unlock clears the slave lock so the slave device can be opened. Must be
// called after Grant and before any slave is opened.
func (m *Master) Unlock() error {
	if err := unix.IoctlSetPointerInt(m.Fd(), unix.TIOCSPTLCK, 0); err != nil {
		return badMaster("unlockpt", err)
	}
	return nil
}

// SlavePath resolves the filesystem path of the paired slave device.
func (m *Master) SlavePath() (string, error) {
	n, err := unix.IoctlGetInt(m.Fd(), unix.TIOCGPTN)
	if err != nil {
		return "", badMaster("ptsname", err)
	}
	return fmt.Sprintf("/dev/pts/%d", n), nil
}

// Dup returns an independent duplicate of the master.
func (m *Master) Dup() (*Master, error) {
	d, err := m.Descriptor.Dup()
	if err != nil {
		return nil, badMaster("dup", err)
	}
	return &Master{Descriptor: d}, nil
}

// File duplicates the master into an *os.File for collaborators that expect
// one, such as window-size helpers. The returned file has its own lifetime;
// closing it does not affect the master.
func (m *Master) File() (*os.File, error) {
	fd, err := unix.Dup(m.Fd())
	if err != nil {
		return nil, badMaster("dup", err)
	}
	return os.NewFile(uintptr(fd), m.Name()), nil
}
