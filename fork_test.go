package forkpty

import (
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// drain reads r until the stream is closed and returns everything read.
func drain(r io.Reader) string {
	var b strings.Builder
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.Write(buf[:n])
		}
		if err != nil {
			return b.String()
		}
	}
}

func TestChildSideAccessors(t *testing.T) {
	child := &Proc{slave: &Slave{Descriptor: newDescriptor(-1, "fake")}}

	assert.True(t, child.IsChild())
	assert.False(t, child.IsParent())
	assert.Zero(t, child.Pid())

	// Wait on the child side must fail without blocking.
	_, err := child.Wait()
	assert.ErrorIs(t, err, ErrIsChild)

	_, err = child.Master()
	assert.ErrorIs(t, err, ErrIsChild)
	_, err = child.MasterFile()
	assert.ErrorIs(t, err, ErrIsChild)

	s, err := child.Slave()
	require.NoError(t, err)
	assert.Equal(t, -1, s.Fd())

	assert.NoError(t, child.Close())
}

func TestParentSideAccessorsAndCloseOnce(t *testing.T) {
	r, w := newPipe(t)
	defer w.Close()

	parent := &Proc{pid: 4242, master: &Master{Descriptor: r}}

	assert.True(t, parent.IsParent())
	assert.False(t, parent.IsChild())
	assert.Equal(t, 4242, parent.Pid())

	_, err := parent.Slave()
	assert.ErrorIs(t, err, ErrIsParent)

	dup, err := parent.Master()
	require.NoError(t, err)
	require.NoError(t, dup.Close())

	// the duplicate's close must not take the original down with it
	_, err = w.Write([]byte("ping"))
	require.NoError(t, err)
	buf := make([]byte, 4)
	_, err = parent.master.Read(buf)
	require.NoError(t, err)

	require.NoError(t, parent.Close())
	require.NoError(t, parent.Close())
}

func TestForkAbortsBeforeForkOnNonPty(t *testing.T) {
	// /dev/null opens fine but is no PTY master: grant must fail and no
	// process may be created.
	_, err := Fork("/dev/null")

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, BadMaster, perr.Kind)
}

func TestForkChildGetsOwnPty(t *testing.T) {
	ttyBin, err := exec.LookPath("tty")
	if err != nil {
		t.Skip("tty binary not found")
	}

	proc, err := ForkDefault()
	require.NoError(t, err)

	if proc.IsChild() {
		// The protocol wired the slave onto stdout; tty prints its path.
		unix.Exec(ttyBin, []string{"tty"}, os.Environ())
		unix.Exit(1)
	}
	defer proc.Close()
	assert.Positive(t, proc.Pid())

	master, err := proc.Master()
	require.NoError(t, err)
	defer master.Close()

	childTTY := strings.TrimSpace(drain(master))
	_, err = proc.Wait()
	require.NoError(t, err)

	require.NotEmpty(t, childTTY)
	assert.True(t, strings.HasPrefix(childTTY, "/dev/pts/"), "child tty %q", childTTY)

	// the child got its own terminal, not the parent's
	if parentTTY, err := os.Readlink("/proc/self/fd/0"); err == nil {
		assert.NotEqual(t, parentTTY, childTTY)
	}
}

func TestForkShellRoundTrip(t *testing.T) {
	shell, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh binary not found")
	}

	proc, err := ForkDefault()
	require.NoError(t, err)

	if proc.IsChild() {
		unix.Exec(shell, []string{"sh"}, []string{"PS1=$ ", "PATH=/usr/bin:/bin"})
		unix.Exit(1)
	}
	defer proc.Close()

	master, err := proc.Master()
	require.NoError(t, err)
	defer master.Close()

	_, err = master.Write([]byte("echo readme\n"))
	require.NoError(t, err)
	_, err = master.Write([]byte("exit\n"))
	require.NoError(t, err)

	out := drain(master)
	assert.Contains(t, out, "readme")

	pid, err := proc.Wait()
	require.NoError(t, err)
	assert.Equal(t, proc.Pid(), pid)
}
