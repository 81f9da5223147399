package forkpty

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func newPipe(t *testing.T) (r, w *Descriptor) {
	t.Helper()
	var fds [2]int
	require.NoError(t, unix.Pipe(fds[:]))
	return newDescriptor(fds[0], "pipe-r"), newDescriptor(fds[1], "pipe-w")
}

func TestDescriptorReadWrite(t *testing.T) {
	r, w := newPipe(t)
	defer r.Close()
	defer w.Close()

	n, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	buf := make([]byte, 16)
	n, err = r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))
}

func TestDescriptorReadEOF(t *testing.T) {
	r, w := newPipe(t)
	defer r.Close()

	_, err := w.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	buf := make([]byte, 16)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = r.Read(buf)
	assert.Equal(t, io.EOF, err)
}

func TestDescriptorCloseIdempotent(t *testing.T) {
	r, w := newPipe(t)
	defer w.Close()

	require.NoError(t, r.Close())
	// second close must not reach the OS again
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
}

func TestDescriptorDupIsIndependent(t *testing.T) {
	r, w := newPipe(t)
	defer r.Close()
	defer w.Close()

	dup, err := r.Dup()
	require.NoError(t, err)
	assert.NotEqual(t, r.Fd(), dup.Fd())
	assert.Equal(t, r.Name(), dup.Name())
	require.NoError(t, dup.Close())

	// the original descriptor survives the duplicate's close
	_, err = w.Write([]byte("still open"))
	require.NoError(t, err)
	buf := make([]byte, 16)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "still open", string(buf[:n]))
}
