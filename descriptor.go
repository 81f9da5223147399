package forkpty

import (
	"io"
	"sync"

	"golang.org/x/sys/unix"
)

// Descriptor owns a single open file descriptor and closes it at most once,
// no matter how many times Close is called. It doubles as a duplex byte
// stream over the raw descriptor.
type Descriptor struct {
	fd   int
	name string

	mu     sync.Mutex
	closed bool
}

func newDescriptor(fd int, name string) *Descriptor {
	return &Descriptor{fd: fd, name: name}
}

// Fd returns the raw descriptor number.
func (d *Descriptor) Fd() int { return d.fd }

// Name returns the path the descriptor was opened from.
func (d *Descriptor) Name() string { return d.name }

// Read reads from the descriptor. A PTY master reports EIO once the slave
// side hangs up; that is surfaced as io.EOF so the stream drains cleanly.
func (d *Descriptor) Read(p []byte) (int, error) {
	n, err := unix.Read(d.fd, p)
	if n < 0 {
		n = 0
	}
	if err == unix.EIO {
		return n, io.EOF
	}
	if err != nil {
		return n, err
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write writes to the descriptor.
func (d *Descriptor) Write(p []byte) (int, error) {
	n, err := unix.Write(d.fd, p)
	if n < 0 {
		n = 0
	}
	return n, err
}

// Close closes the descriptor. Only the first call reaches the OS; later
// calls are no-ops returning nil.
func (d *Descriptor) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	return unix.Close(d.fd)
}

// Dup returns an independent OS-level duplicate with its own close
// lifecycle. Closing either descriptor leaves the other usable.
func (d *Descriptor) Dup() (*Descriptor, error) {
	fd, err := unix.Dup(d.fd)
	if err != nil {
		return nil, err
	}
	return newDescriptor(fd, d.name), nil
}
