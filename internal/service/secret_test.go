package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecret_OpenReturnsIndependentCopy(t *testing.T) {
	s := newSecret("correct horse")

	first, err := s.open()
	require.NoError(t, err)
	second, err := s.open()
	require.NoError(t, err)

	// both copies outlive the buffers they were read from
	s.destroy()
	assert.Equal(t, "correct horse", first)
	assert.Equal(t, "correct horse", second)
}

func TestSecret_Matches(t *testing.T) {
	s := newSecret("pw")

	assert.True(t, s.matches("pw"))
	assert.False(t, s.matches("pw2"))
	assert.False(t, s.matches(""))

	s.destroy()
	assert.False(t, s.matches("pw"))
}

func TestSecret_EmptyPassword(t *testing.T) {
	s := newSecret("")

	pw, err := s.open()
	require.NoError(t, err)
	assert.Empty(t, pw)
	assert.True(t, s.matches(""))
	assert.False(t, s.matches("x"))
}

func TestSecret_OpenAfterDestroy(t *testing.T) {
	s := newSecret("pw")
	s.destroy()

	_, err := s.open()
	assert.ErrorIs(t, err, ErrRegistryClosed)
}
