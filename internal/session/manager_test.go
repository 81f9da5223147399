package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerAddGetRemove(t *testing.T) {
	m := NewManager()
	assert.Zero(t, m.Count())

	sess := &Session{ID: "abc", TTY: "/dev/pts/9"}
	m.Add(sess.ID, sess)

	got := m.Get("abc")
	require.NotNil(t, got)
	assert.Equal(t, "/dev/pts/9", got.TTY)
	assert.Equal(t, 1, m.Count())

	assert.Nil(t, m.Get("missing"))

	m.Remove("abc")
	assert.Nil(t, m.Get("abc"))
	assert.Zero(t, m.Count())
}

func TestManagerListOrderedByID(t *testing.T) {
	m := NewManager()
	m.Add("b", &Session{ID: "b"})
	m.Add("a", &Session{ID: "a"})
	m.Add("c", &Session{ID: "c"})

	list := m.List()
	require.Len(t, list, 3)
	assert.Equal(t, "a", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
	assert.Equal(t, "c", list[2].ID)
}

func TestManagerRemoveMissingIsNoop(t *testing.T) {
	m := NewManager()
	m.Remove("ghost")
	assert.Zero(t, m.Count())
}
