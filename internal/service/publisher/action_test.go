package publisher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParseAction accepts every documented spelling and rejects the rest.
func TestParseAction(t *testing.T) {
	t.Parallel()

	cases := map[string]Action{
		"updateVersion":  ActionBump,
		"0":              ActionBump,
		"packAndPush":    ActionPackAndPush,
		"packAndPublish": ActionPackAndPush,
		"1":              ActionPackAndPush,
		" PACKANDPUSH ":  ActionPackAndPush,
	}
	for s, want := range cases {
		got, err := ParseAction(s)
		require.NoError(t, err, s)
		require.Equal(t, want, got)
	}

	for _, bad := range []string{"", "2", "publish", "bump"} {
		_, err := ParseAction(bad)
		require.ErrorIs(t, err, ErrUnknownAction, bad)
	}

	require.Equal(t, "updateVersion", ActionBump.String())
	require.Equal(t, "packAndPush", ActionPackAndPush.String())
}
