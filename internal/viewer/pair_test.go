package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaywantadh/DuoView/internal/render"
)

type counter struct {
	updates int
	pages   []int
}

func (c *counter) listen(s State) {
	c.updates++
	c.pages = append(c.pages, s.Page)
}

func linkedPair(t *testing.T, leftPages, rightPages int) (*Pair, *fakeDoc, *fakeDoc) {
	t.Helper()
	left, ldoc := loaded(t, render.Left, leftPages)
	right, rdoc := loaded(t, render.Right, rightPages)
	p, err := NewPair(left, right, nil)
	require.NoError(t, err)
	return p, ldoc, rdoc
}

func TestPropagationIsBoundedToOneHop(t *testing.T) {
	p, ldoc, rdoc := linkedPair(t, 3, 5)
	var lc, rc counter
	p.Left().Subscribe(lc.listen)
	p.Right().Subscribe(rc.listen)
	lr, rr := ldoc.renders, rdoc.renders

	require.NoError(t, p.Left().GotoPage(10))

	assert.Equal(t, 2, p.Left().Page())
	assert.Equal(t, 2, p.Right().Page())
	assert.Equal(t, []int{2}, rc.pages, "partner navigated exactly once")
	assert.Equal(t, 1, lc.updates, "no echo back to the origin")
	assert.Equal(t, lr+1, ldoc.renders)
	assert.Equal(t, rr+1, rdoc.renders)
}

func TestMismatchedLengthsClampIndependently(t *testing.T) {
	p, _, _ := linkedPair(t, 2, 5)

	require.NoError(t, p.Right().GotoPage(4))
	assert.Equal(t, 4, p.Right().Page())
	assert.Equal(t, 1, p.Left().Page())

	// the shorter side is already on its last page, so nothing mirrors back
	require.NoError(t, p.Right().GotoPage(3))
	assert.Equal(t, 3, p.Right().Page())
	assert.Equal(t, 1, p.Left().Page())

	require.NoError(t, p.Left().GotoPage(0))
	assert.Equal(t, 0, p.Left().Page())
	assert.Equal(t, 0, p.Right().Page())
}

func TestPartnerAlreadyOnPage(t *testing.T) {
	p, _, rdoc := linkedPair(t, 5, 5)
	p.SetLinked(false)
	require.NoError(t, p.Right().GotoPage(3))
	p.SetLinked(true)

	renders := rdoc.renders
	require.NoError(t, p.Left().GotoPage(3))
	assert.Equal(t, 3, p.Left().Page())
	assert.Equal(t, 3, p.Right().Page())
	assert.Equal(t, renders, rdoc.renders)
}

func TestUnlinkedPairDoesNotMirror(t *testing.T) {
	p, _, rdoc := linkedPair(t, 5, 5)
	p.SetLinked(false)
	renders := rdoc.renders

	require.NoError(t, p.Left().GotoPage(4))
	assert.Equal(t, 4, p.Left().Page())
	assert.Equal(t, 0, p.Right().Page())
	assert.Equal(t, renders, rdoc.renders)

	p.SetLinked(true)
	require.NoError(t, p.Left().GotoPage(1))
	assert.Equal(t, 1, p.Right().Page())
}

func TestPartnerWithoutDocument(t *testing.T) {
	left, _ := loaded(t, render.Left, 5)
	right := newTestViewer(t, render.Right, fakeOpener{})
	p, err := NewPair(left, right, nil)
	require.NoError(t, err)

	require.NoError(t, p.Left().GotoPage(3))
	assert.Equal(t, 3, p.Left().Page())
	assert.False(t, p.Right().Loaded())
}

func TestPartnerRenderFailure(t *testing.T) {
	p, _, rdoc := linkedPair(t, 5, 5)
	rdoc.failAt = 2

	err := p.Left().GotoPage(2)
	require.Error(t, err)
	assert.Equal(t, 2, p.Left().Page())
	assert.Equal(t, 0, p.Right().Page())

	// the next local change on either side still mirrors
	require.NoError(t, p.Right().GotoPage(4))
	assert.Equal(t, 4, p.Left().Page())
}

func TestLoadDoesNotMirror(t *testing.T) {
	p, _, _ := linkedPair(t, 5, 5)
	require.NoError(t, p.Left().GotoPage(3))

	p.Right().opener = fakeOpener{"other.pdf": newFakeDoc(9)}
	require.NoError(t, p.Right().Load("other.pdf"))
	assert.Equal(t, 0, p.Right().Page())
	assert.Equal(t, 3, p.Left().Page())
}

func TestNewPairChecksSides(t *testing.T) {
	a := newTestViewer(t, render.Left, fakeOpener{})
	b := newTestViewer(t, render.Left, fakeOpener{})
	_, err := NewPair(a, b, nil)
	assert.Error(t, err)

	c := newTestViewer(t, render.Right, fakeOpener{})
	p, err := NewPair(a, c, nil)
	require.NoError(t, err)
	assert.Same(t, a, p.Viewer(render.Left))
	assert.Same(t, c, p.Viewer(render.Right))
	assert.True(t, p.Linked())
}

func TestOrigin(t *testing.T) {
	assert.False(t, Local().Propagated())
	o := PropagatedFrom(render.Right)
	assert.True(t, o.Propagated())
	assert.Equal(t, render.Right, o.From())
	assert.Equal(t, "from-right", o.String())
	assert.Equal(t, "local", Local().String())
}
