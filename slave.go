package forkpty

import "golang.org/x/sys/unix"

// Slave is the terminal-facing end of a PTY pair. It is opened by path
// inside the child, after setsid, so that it becomes the controlling
// terminal of the new session.
type Slave struct {
	*Descriptor
}

// OpenSlave opens the slave device at path for read/write.
func OpenSlave(path string) (*Slave, error) {
	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		return nil, badSlave("open "+path, err)
	}
	return &Slave{Descriptor: newDescriptor(fd, path)}, nil
}

// DupOnto makes the given stdio slot refer to this slave's descriptor. The
// slot keeps its own descriptor afterwards; closing the slave does not
// affect it.
func (s *Slave) DupOnto(slot int) error {
	if err := unix.Dup2(s.Fd(), slot); err != nil {
		return badSlave("dup2", err)
	}
	return nil
}
