package session

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteToClosedSessionFails(t *testing.T) {
	sess := &Session{ID: "closed"}

	_, err := sess.Write([]byte("ls\n"))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestResizeClosedSessionFails(t *testing.T) {
	sess := &Session{ID: "closed"}

	err := sess.Resize(80, 24)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}
