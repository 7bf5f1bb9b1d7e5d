package reject

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Message(t *testing.T) {
	err := New(CodeMatchFinished, "close set", "match is finished")
	assert.Equal(t, "close set rejected: MATCH_FINISHED: match is finished", err.Error())

	err = Newf(CodeUnknownMatch, "", "match %d does not exist", 42)
	assert.Equal(t, "rejected: UNKNOWN_MATCH: match 42 does not exist", err.Error())
}

func TestCodeOf_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("team save: %w", New(CodeNotConfirmed, "save", "team score is 0:0"))

	assert.True(t, Is(wrapped))
	code, ok := CodeOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeNotConfirmed, code)
	assert.True(t, Has(wrapped, CodeNotConfirmed))
	assert.False(t, Has(wrapped, CodeMatchFinished))

	rej, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "save", rej.Op)
}

func TestCodeOf_PlainError(t *testing.T) {
	err := errors.New("disk full")

	assert.False(t, Is(err))
	_, ok := CodeOf(err)
	assert.False(t, ok)
	_, ok = As(err)
	assert.False(t, ok)
	assert.False(t, Has(nil, CodeScoreAtZero))
}
