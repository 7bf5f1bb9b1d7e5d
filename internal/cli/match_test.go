package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ttscore/internal/store"
)

func TestMatchPlay_ScoreAndServe(t *testing.T) {
	out, err := execute(t, store.NewMemory(), "+0\n+0\n-0\n",
		"match", "play", "--name0", "Novák", "--club0", "Slávia", "--name1", "Tóth")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Set 1 | Novák 1 : 0 Tóth | sets 0:0 | serving: Novák", lines[0])
	assert.Equal(t, "Set 1 | Novák 2 : 0 Tóth | sets 0:0 | serving: Tóth", lines[1])
	assert.Equal(t, "Set 1 | Novák 1 : 0 Tóth | sets 0:0 | serving: Novák", lines[2])
}

func TestMatchPlay_FinishAndSave(t *testing.T) {
	st := store.NewMemory()
	input := strings.Repeat("+0\n", 11) + "close\n+1\nsave\nquit\n+0\n"

	out, err := execute(t, st, input, "match", "play", "--best-of", "1", "--name0", "Novák", "--name1", "Tóth")
	require.NoError(t, err)
	assert.Contains(t, out, "Novák 11 : 0 Tóth | sets 0:0 | serving: Tóth | set can be closed")
	assert.Contains(t, out, "Novák wins 1:0 (11:0)")
	assert.Contains(t, out, "Error [MATCH_FINISHED]: match is finished")
	assert.Contains(t, out, "saved match 1740823200000")

	out, err = execute(t, st, "", "archive", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "1740823200000")
	assert.Contains(t, out, "1. 3. 2025 10:00:00")
	assert.Contains(t, out, "11:0")
}

func TestMatchPlay_SaveUnfinished(t *testing.T) {
	out, err := execute(t, store.NewMemory(), "+1\nsave\n", "match", "play")
	require.NoError(t, err)
	assert.Contains(t, out, "Error [MATCH_NOT_FINISHED]")
}

func TestMatchPlay_BestOfConfirmation(t *testing.T) {
	out, err := execute(t, store.NewMemory(), "+0\nbest-of 3\nn\nbest-of 3\nyes\n", "match", "play")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "Continue? [y/N]"))
	assert.Contains(t, out, "Error [NOT_CONFIRMED]")
	assert.Contains(t, out, "first to 2 sets")
}

func TestMatchPlay_BestOfBeforeFirstPoint(t *testing.T) {
	out, err := execute(t, store.NewMemory(), "best-of 7\n", "match", "play")
	require.NoError(t, err)
	assert.NotContains(t, out, "Continue?")
	assert.Contains(t, out, "first to 4 sets")
}

func TestMatchPlay_UsageErrors(t *testing.T) {
	out, err := execute(t, store.NewMemory(), "bogus\nbest-of\nname 2 Novák\nclose\n", "match", "play")
	require.NoError(t, err)
	assert.Contains(t, out, `Error [E004]: unknown command "bogus"`)
	assert.Contains(t, out, "Error [E004]: best-of takes one number")
	assert.Contains(t, out, `Error [E004]: side must be 0 or 1, got "2"`)
	assert.Contains(t, out, "Error [SET_NOT_CLOSABLE]")
}

func TestMatchPlay_NamesAndClubs(t *testing.T) {
	out, err := execute(t, store.NewMemory(), "name 1 Peter  Tóth\nclub 1 Inter\nshow\n", "match", "play", "--format", "json")
	require.NoError(t, err)

	dec := json.NewDecoder(strings.NewReader(out))
	var last struct {
		Status string      `json:"status"`
		Data   MatchStatus `json:"data"`
	}
	for dec.More() {
		require.NoError(t, dec.Decode(&last))
	}
	assert.Equal(t, "ok", last.Status)
	assert.Equal(t, "show", last.Data.Command)
	assert.Equal(t, "Peter Tóth", last.Data.Match.Competitors[1].Name)
	assert.Equal(t, "Inter", last.Data.Match.Competitors[1].Club)
	assert.Equal(t, 3, last.Data.SetsToWin)
}

func TestMatchPlay_JSONRejection(t *testing.T) {
	out, err := execute(t, store.NewMemory(), "-0\n", "match", "play", "--format", "json")
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "SCORE_AT_ZERO", resp.Error.Code)
}

func TestMatchPlay_InvalidBestOf(t *testing.T) {
	_, err := execute(t, store.NewMemory(), "", "match", "play", "--best-of", "0")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.True(t, IsReported(err))
}
