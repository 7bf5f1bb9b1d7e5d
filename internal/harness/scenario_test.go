package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScenario_Valid(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: ok
description: minimal team scenario
kind: team
setup:
  variant: 3rounds
  doubles: 0
steps:
  - action: score
    args: {match: 1, set: 1, entry: "11:3"}
    expect: {outcome: applied, value: "11:3"}
assertions:
  - type: state
    path: rows.0.setsResult
    equals: "1:0"
`))
	require.NoError(t, err)
	assert.Equal(t, KindTeam, s.Kind)
	assert.Equal(t, "3rounds", s.Setup.Variant)
	require.NotNil(t, s.Setup.Doubles)
	assert.Equal(t, 0, *s.Setup.Doubles)
	require.Len(t, s.Steps, 1)
	assert.Equal(t, OutcomeApplied, s.Steps[0].Expect.Outcome)
}

func TestParseScenario_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "unknown field",
			yaml: "name: x\ndescription: y\nkind: match\nstepz: []\n",
			want: "field stepz not found",
		},
		{
			name: "missing name",
			yaml: "description: y\nkind: match\nsteps: [{action: point}]\nassertions: [{type: state, path: finished}]\n",
			want: "name is required",
		},
		{
			name: "missing description",
			yaml: "name: x\nkind: match\nsteps: [{action: point}]\nassertions: [{type: state, path: finished}]\n",
			want: "description is required",
		},
		{
			name: "bad kind",
			yaml: "name: x\ndescription: y\nkind: league\nsteps: [{action: point}]\nassertions: [{type: state, path: finished}]\n",
			want: `kind must be "match" or "team"`,
		},
		{
			name: "team setup on match",
			yaml: "name: x\ndescription: y\nkind: match\nsetup: {variant: 3rounds}\nsteps: [{action: point}]\nassertions: [{type: state, path: finished}]\n",
			want: "apply to team scenarios only",
		},
		{
			name: "match setup on team",
			yaml: "name: x\ndescription: y\nkind: team\nsetup: {best_of: 3}\nsteps: [{action: save}]\nassertions: [{type: state, path: teamScore}]\n",
			want: "apply to match scenarios only",
		},
		{
			name: "no steps",
			yaml: "name: x\ndescription: y\nkind: match\nassertions: [{type: state, path: finished}]\n",
			want: "steps list is required",
		},
		{
			name: "no assertions",
			yaml: "name: x\ndescription: y\nkind: match\nsteps: [{action: point}]\n",
			want: "assertions list is required",
		},
		{
			name: "action of the other kind",
			yaml: "name: x\ndescription: y\nkind: match\nsteps: [{action: toggle_sub}]\nassertions: [{type: state, path: finished}]\n",
			want: `unknown match action "toggle_sub"`,
		},
		{
			name: "code on applied",
			yaml: "name: x\ndescription: y\nkind: match\nsteps: [{action: point, expect: {outcome: applied, code: X}}]\nassertions: [{type: state, path: finished}]\n",
			want: "code is only valid for rejected outcomes",
		},
		{
			name: "bad outcome",
			yaml: "name: x\ndescription: y\nkind: match\nsteps: [{action: point, expect: {outcome: ignored}}]\nassertions: [{type: state, path: finished}]\n",
			want: "outcome must be",
		},
		{
			name: "state without path",
			yaml: "name: x\ndescription: y\nkind: match\nsteps: [{action: point}]\nassertions: [{type: state}]\n",
			want: "path is required for state",
		},
		{
			name: "trace_order without actions",
			yaml: "name: x\ndescription: y\nkind: match\nsteps: [{action: point}]\nassertions: [{type: trace_order}]\n",
			want: "actions list is required",
		},
		{
			name: "unknown assertion",
			yaml: "name: x\ndescription: y\nkind: match\nsteps: [{action: point}]\nassertions: [{type: snapshot}]\n",
			want: `unknown assertion type "snapshot"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenario_ResolvesLineup(t *testing.T) {
	s := loadTestScenario(t, "team_lineup")
	assert.Equal(t, filepath.Join("testdata", "lineups", "club.cue"), s.Setup.Lineup)
}

func TestLoadScenario_MissingLineup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: x
description: y
kind: team
setup: {lineup: missing.cue}
steps: [{action: save, args: {confirm: true}}]
assertions: [{type: state, path: teamScore}]
`), 0o644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lineup file not found")
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}
