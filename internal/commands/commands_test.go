package commands

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	args, ok := Parse("cmd gravity -g 4.9")
	require.True(t, ok)
	assert.Equal(t, []string{"gravity", "-g", "4.9"}, args)

	args, ok = Parse("cmd   ")
	assert.True(t, ok)
	assert.Nil(t, args)

	_, ok = Parse("Cmd gravity")
	assert.False(t, ok)
	_, ok = Parse("hello")
	assert.False(t, ok)
}

func TestExecute(t *testing.T) {
	reg := NewRegistry()
	var (
		got     float64
		gotSet  bool
		gotArgs []string
	)
	reg.Register("gravity", "set gravity", func(fs *flag.FlagSet) func([]string) error {
		g := fs.Float64("g", 9.8, "acceleration")
		return func(args []string) error {
			got, gotSet, gotArgs = *g, IsSet(fs, "g"), args
			return nil
		}
	})
	called := false
	reg.Register("pause", "toggle pause", Simple(func() error {
		called = true
		return nil
	}))

	require.NoError(t, reg.Execute([]string{"gravity", "-g", "1.5", "extra"}))
	assert.Equal(t, 1.5, got)
	assert.True(t, gotSet)
	assert.Equal(t, []string{"extra"}, gotArgs)

	// A later run without the flag sees the default again.
	require.NoError(t, reg.Execute([]string{"gravity"}))
	assert.Equal(t, 9.8, got)
	assert.False(t, gotSet)

	require.NoError(t, reg.Execute([]string{"pause"}))
	assert.True(t, called)

	assert.ErrorIs(t, reg.Execute([]string{"warp"}), ErrUnknownCommand)
	assert.Error(t, reg.Execute(nil))
	assert.Error(t, reg.Execute([]string{"gravity", "-g", "lots"}))
}

func TestHelp(t *testing.T) {
	reg := NewRegistry()
	reg.Register("spawn", "add a body", func(fs *flag.FlagSet) func([]string) error {
		fs.Int("x", 0, "")
		fs.Int("y", 0, "")
		return func([]string) error { return nil }
	})
	reg.Register("pause", "toggle pause", Simple(func() error { return nil }))

	assert.Equal(t, []string{"pause", "spawn"}, reg.Names())
	assert.Equal(t, []string{
		"pause: toggle pause",
		"spawn: add a body [-x -y]",
	}, reg.Help())
}
