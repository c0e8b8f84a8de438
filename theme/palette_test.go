package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupEndpoints(t *testing.T) {
	p := Builtin()

	assert.Equal(t, p.Colors[0], p.Lookup(-1))
	assert.Equal(t, p.Colors[0], p.Lookup(0))
	assert.Equal(t, p.Colors[len(p.Colors)-1], p.Lookup(1))
	assert.Equal(t, p.Colors[len(p.Colors)-1], p.Lookup(2))
}

func TestLoadGPL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gpl")
	gpl := `GIMP Palette
Name: test
Columns: 2
# comment
  0   0   0 black
255 128  64 orange
`
	require.NoError(t, os.WriteFile(path, []byte(gpl), 0644))

	p, err := LoadGPL(path)
	require.NoError(t, err)
	assert.Equal(t, "test", p.Name)
	require.Len(t, p.Colors, 2)
	assert.Equal(t, RGB{0, 0, 0}, p.Colors[0])
	assert.Equal(t, RGB{255, 128, 64}, p.Colors[1])
}

func TestLoadFallsBackToBuiltin(t *testing.T) {
	assert.Equal(t, Builtin(), Load(""))
	assert.Equal(t, Builtin(), Load("/does/not/exist.gpl"))
}
