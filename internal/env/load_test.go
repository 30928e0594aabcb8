package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSetsVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `# comment
AIRTRACK_TEST_DRIVER=tui
export AIRTRACK_TEST_SCENE="assets/scenes/two.yaml"
AIRTRACK_TEST_KEEP=file
not a pair
=novalue
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("AIRTRACK_TEST_KEEP", "process")
	// Register cleanup for the keys Load will set.
	t.Setenv("AIRTRACK_TEST_DRIVER", "")
	os.Unsetenv("AIRTRACK_TEST_DRIVER")
	t.Setenv("AIRTRACK_TEST_SCENE", "")
	os.Unsetenv("AIRTRACK_TEST_SCENE")

	set, err := Load(path)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"AIRTRACK_TEST_DRIVER", "AIRTRACK_TEST_SCENE"}, set)
	assert.Equal(t, "tui", os.Getenv("AIRTRACK_TEST_DRIVER"))
	assert.Equal(t, "assets/scenes/two.yaml", os.Getenv("AIRTRACK_TEST_SCENE"))
	assert.Equal(t, "process", os.Getenv("AIRTRACK_TEST_KEEP"))
}

func TestLoadMissingFile(t *testing.T) {
	set, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
	assert.Empty(t, set)
}

func TestParseLine(t *testing.T) {
	k, v, ok := parseLine("  A = 'b c' ")
	require.True(t, ok)
	assert.Equal(t, "A", k)
	assert.Equal(t, "b c", v)

	_, _, ok = parseLine("# A=b")
	assert.False(t, ok)
}
