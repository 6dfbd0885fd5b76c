package app

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaywantadh/DuoView/config"
	"github.com/jaywantadh/DuoView/internal/document"
	"github.com/jaywantadh/DuoView/internal/input"
	"github.com/jaywantadh/DuoView/internal/render"
	"github.com/jaywantadh/DuoView/internal/session"
)

type stubDoc struct{ pages int }

func (d stubDoc) PageCount() int { return d.pages }
func (d stubDoc) RenderPage(index, hint int) (image.Image, error) {
	return image.NewRGBA(image.Rect(0, 0, 10, 14)), nil
}
func (d stubDoc) Close() error { return nil }

type stubOpener map[string]int

func (o stubOpener) Open(path string) (document.Document, error) {
	n, ok := o[path]
	if !ok {
		return nil, &document.OpenError{Path: path, Err: errors.New("unknown")}
	}
	return stubDoc{pages: n}, nil
}

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	return cfg
}

func touch(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n"), 0644))
	return path
}

func TestLoadStartup(t *testing.T) {
	left, right := touch(t, "a.pdf"), touch(t, "b.pdf")
	c, err := NewWithOpener(testConfig(t), stubOpener{left: 3, right: 6}, nil)
	require.NoError(t, err)

	require.NoError(t, c.LoadStartup(left, right))
	assert.Equal(t, 3, c.Pair.Left().PageCount())
	assert.Equal(t, 6, c.Pair.Right().PageCount())
}

func TestLoadStartupSkipsMissing(t *testing.T) {
	right := touch(t, "b.pdf")
	c, err := NewWithOpener(testConfig(t), stubOpener{right: 2}, nil)
	require.NoError(t, err)

	require.NoError(t, c.LoadStartup("/nonexistent.pdf", right))
	assert.False(t, c.Pair.Left().Loaded())
	assert.True(t, c.Pair.Right().Loaded())

	require.NoError(t, c.LoadStartup("", ""))
}

func TestHandleRoutesThroughPair(t *testing.T) {
	left, right := touch(t, "a.pdf"), touch(t, "b.pdf")
	c, err := NewWithOpener(testConfig(t), stubOpener{left: 20, right: 20}, nil)
	require.NoError(t, err)
	require.NoError(t, c.LoadStartup(left, right))

	require.NoError(t, c.Handle(render.Right, input.Event{Kind: input.KeyEvent, Key: input.KeyPageDown}))
	assert.Equal(t, 10, c.Pair.Right().Page())
	assert.Equal(t, 10, c.Pair.Left().Page())

	require.NoError(t, c.Handle(render.Left, input.Event{Kind: input.WheelEvent, WheelDelta: 1}))
	assert.Equal(t, 9, c.Pair.Left().Page())
	assert.Equal(t, 9, c.Pair.Right().Page())
}

func TestSnapshotRestore(t *testing.T) {
	left, right := touch(t, "a.pdf"), touch(t, "b.pdf")
	opener := stubOpener{left: 5, right: 9}
	cfg := testConfig(t)

	c, err := NewWithOpener(cfg, opener, nil)
	require.NoError(t, err)
	require.NoError(t, c.LoadStartup(left, right))
	c.Pair.SetLinked(false)
	require.NoError(t, c.Pair.Right().GotoPage(7))
	c.Pair.SetLinked(true)
	require.NoError(t, c.Pair.Left().GotoPage(2))
	require.NoError(t, c.Pair.Right().GotoPage(7))
	assert.Equal(t, 4, c.Pair.Left().Page())

	snap := c.Snapshot()
	assert.Equal(t, session.Side{Path: left, Page: 4}, snap.Left)
	assert.Equal(t, session.Side{Path: right, Page: 7}, snap.Right)

	restored, err := NewWithOpener(cfg, opener, nil)
	require.NoError(t, err)
	require.NoError(t, restored.Restore(snap))
	assert.Equal(t, 4, restored.Pair.Left().Page())
	assert.Equal(t, 7, restored.Pair.Right().Page())
	assert.True(t, restored.Pair.Linked())
}

func TestRestoreAppliesSavedSyncSetting(t *testing.T) {
	left, right := touch(t, "a.pdf"), touch(t, "b.pdf")
	opener := stubOpener{left: 5, right: 5}
	cfg := testConfig(t)
	require.True(t, cfg.Sync.Linked)

	c, err := NewWithOpener(cfg, opener, nil)
	require.NoError(t, err)
	snap := session.Snapshot{
		Left:   session.Side{Path: left, Page: 1},
		Right:  session.Side{Path: right, Page: 3},
		Linked: false,
	}
	require.NoError(t, c.Restore(snap))
	assert.False(t, c.Pair.Linked())
	assert.False(t, c.Snapshot().Linked)

	require.NoError(t, c.Pair.Left().GotoPage(2))
	assert.Equal(t, 3, c.Pair.Right().Page(), "unlinked after restore")
}
