package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode_Flags(t *testing.T) {
	tests := []struct {
		spec string
		want Mode
	}{
		{spec: "", want: Mode{Wait: true}},
		{spec: "S", want: Mode{UseShell: true, Wait: true}},
		{spec: "Ss", want: Mode{Wait: true}},
		{spec: "sS", want: Mode{UseShell: true, Wait: true}},
		{spec: "OE", want: Mode{CaptureStdout: true, CaptureStderr: true, Wait: true}},
		{spec: "OoE", want: Mode{CaptureStderr: true, Wait: true}},
		{spec: "w", want: Mode{}},
		{spec: "wW", want: Mode{Wait: true}},
		{spec: "SOEWwW", want: Mode{UseShell: true, CaptureStdout: true, CaptureStderr: true, Wait: true}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			// When: parsing a mode made only of flag characters
			mode, err := ParseMode(tt.spec)

			// Then: each flag should hold its last-seen value and the default policy
			require.NoError(t, err)
			assert.Equal(t, tt.want, mode)
			assert.True(t, mode.Accept.Acceptable(0))
			assert.False(t, mode.Accept.Acceptable(1))
		})
	}
}

func TestParseMode_AcceptTail(t *testing.T) {
	t.Run("tail after flags", func(t *testing.T) {
		mode, err := ParseMode("OEW0")
		require.NoError(t, err)
		assert.True(t, mode.CaptureStdout)
		assert.True(t, mode.CaptureStderr)
		assert.True(t, mode.Accept.Acceptable(0))
		assert.False(t, mode.Accept.Acceptable(1))
	})

	t.Run("star tail", func(t *testing.T) {
		mode, err := ParseMode("S*")
		require.NoError(t, err)
		assert.True(t, mode.UseShell)
		assert.True(t, mode.Accept.Acceptable(42))
	})

	t.Run("list tail", func(t *testing.T) {
		mode, err := ParseMode("W0,2")
		require.NoError(t, err)
		assert.True(t, mode.Accept.Acceptable(2))
		assert.False(t, mode.Accept.Acceptable(1))
	})

	t.Run("flag characters inside the tail are not flags", func(t *testing.T) {
		// Given: a mode whose acceptance spec is followed by a flag character
		// When: parsing it
		_, err := ParseMode("1S")

		// Then: the whole tail is treated as an acceptance spec and rejected
		assert.ErrorIs(t, err, ErrInvalidAccept)
	})

	t.Run("garbage tail", func(t *testing.T) {
		_, err := ParseMode("Ox")
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "Ox", cfgErr.Spec)
	})
}

func TestMode_ApplyKeepsBasePolicy(t *testing.T) {
	// Given: a mode that already accepts everything
	base := Mode{Wait: true, Accept: AcceptAll()}

	// When: applying a mode string without an acceptance tail
	mode, err := base.Apply("O")

	// Then: the base policy survives
	require.NoError(t, err)
	assert.True(t, mode.CaptureStdout)
	assert.True(t, mode.Accept.Acceptable(7))
}

func TestMode_String(t *testing.T) {
	for _, spec := range []string{"", "S", "OEW", "sw", "SOEW*", "W3", "O1,4"} {
		t.Run(spec, func(t *testing.T) {
			mode, err := ParseMode(spec)
			require.NoError(t, err)

			again, err := ParseMode(mode.String())
			require.NoError(t, err)
			assert.Equal(t, mode, again)
		})
	}
}

func TestMode_StringRoundTripFromConstructors(t *testing.T) {
	for _, policy := range []AcceptPolicy{AcceptSet(3), AcceptExactly(3), AcceptAtMost(0), AcceptSet(), AcceptAll()} {
		// Given: a mode whose policy was built directly
		mode := DefaultMode()
		mode.UseShell = true
		mode.CaptureStderr = true
		mode.Accept = policy

		t.Run(mode.String(), func(t *testing.T) {
			// When: reading its rendering back
			again, err := ParseMode(mode.String())

			// Then: the mode is unchanged
			require.NoError(t, err)
			assert.Equal(t, mode, again)
		})
	}
}

func TestMode_CaptureRequiresWait(t *testing.T) {
	for _, spec := range []string{"Ow", "Ew", "OEw", "wO"} {
		t.Run(spec, func(t *testing.T) {
			// When: building a command that captures without waiting
			_, err := New(Argv("true"), spec)

			// Then: construction fails instead of forcing a wait
			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.ErrorIs(t, err, ErrCaptureRequiresWait)
		})
	}
}
