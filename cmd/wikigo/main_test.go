package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlayInput(t *testing.T) {
	t.Parallel()
	got, err := playInput(false, false, "", "", "", "", "", "")
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = playInput(true, false, "", "", "", "", "2026-03-14", "")
	require.NoError(t, err)
	require.Equal(t, "daily", got.Mode)
	require.Equal(t, "2026-03-14", got.Date)

	got, err = playInput(false, false, "moon-to-sun", "", "", "", "", "")
	require.NoError(t, err)
	require.Equal(t, "zen", got.Mode)
	require.Equal(t, "moon-to-sun", got.PracticeGameID)

	got, err = playInput(false, false, "", "", "Alan Turing", "", "", "")
	require.NoError(t, err)
	require.Equal(t, "random", got.Mode)
	require.Equal(t, "Alan Turing", got.Start)

	_, err = playInput(false, false, "", "", "", "", "2026-03-14", "")
	require.Error(t, err)
}

func TestRootRegistersCommands(t *testing.T) {
	t.Parallel()
	root := newRootCmd()
	for _, path := range [][]string{
		{"play"}, {"daily", "show"}, {"daily", "set"}, {"daily", "yesterday"},
		{"leaderboard"}, {"rank"}, {"stats"}, {"challenge", "decode"}, {"challenge", "compare"},
		{"practice", "list"}, {"practice", "seed"}, {"practice", "add"}, {"practice", "solution"},
		{"summary"}, {"exists"}, {"links"}, {"open"}, {"runs"},
		{"config", "show"}, {"config", "set-theme"}, {"config", "set-user"}, {"serve"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		require.Equal(t, path[len(path)-1], cmd.Name())
	}
}
