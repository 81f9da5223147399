package forkpty

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "bad master", BadMaster.String())
	assert.Equal(t, "bad slave", BadSlave.String())
	assert.Equal(t, "fork failed", ForkFailed.String())
	assert.Equal(t, "setsid failed", SetsidFailed.String())
	assert.Equal(t, "waitpid failed", WaitFailed.String())
	assert.Equal(t, "unknown", Kind(0).String())
}

func TestErrorWrapsCause(t *testing.T) {
	err := badMaster("grantpt", unix.ENOTTY)

	var perr *Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, BadMaster, perr.Kind)
	assert.Equal(t, "grantpt", perr.Op)
	assert.ErrorIs(t, err, unix.ENOTTY)
	assert.Contains(t, err.Error(), "grantpt")
}

func TestErrorWithoutCause(t *testing.T) {
	err := &Error{Kind: SetsidFailed, Op: "setsid"}
	assert.Equal(t, "forkpty: setsid: setsid failed", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestUsageErrorsCarryNoCause(t *testing.T) {
	assert.Nil(t, errors.Unwrap(ErrIsChild))
	assert.Nil(t, errors.Unwrap(ErrIsParent))
}
