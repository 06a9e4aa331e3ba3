package switches_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/smol-graphs/cospec/nbl"
	"github.com/smol-graphs/cospec/nbl/switches"
)

func TestMatchRecoversSwitch(t *testing.T) {
	G, sw := invariantFixture(t)
	defer G.Reclaim()
	defer sw.Switched.Reclaim()

	got, err := switches.Match(G, sw.Switched)
	require.NoError(t, err)

	// Match anchors on edge order, so it may name either orientation.
	if got != sw.Config {
		require.Equal(t, sw.Config.Mirror(), got)
	}

	// The recovered configuration reproduces the switched graph.
	redo, err := got.Apply(G)
	require.NoError(t, err)
	require.True(t, redo.EdgeSetEqual(sw.Switched))
	redo.Reclaim()
}

func TestMatchAllEnumerated(t *testing.T) {
	C6 := makeCycle(t, 6)
	defer C6.Reclaim()

	found := switches.Enumerate(C6)
	defer switches.Reclaim(found)
	require.NotEmpty(t, found)

	for _, sw := range found {
		got, err := switches.Match(C6, sw.Switched)
		require.NoError(t, err)
		redo, err := got.Apply(C6)
		require.NoError(t, err)
		require.True(t, redo.EdgeSetEqual(sw.Switched), "config %+v", sw.Config)
		redo.Reclaim()
	}
}

func TestMatchRejectsNonSwitches(t *testing.T) {
	C6 := makeCycle(t, 6)
	defer C6.Reclaim()

	// Identical graphs differ by zero edges.
	same := C6.MakeCopy()
	_, err := switches.Match(C6, same)
	require.ErrorIs(t, err, switches.ErrNotASwitch)
	same.Reclaim()

	// Different edge counts.
	plus := C6.MakeCopy()
	require.NoError(t, plus.AddEdge(0, 3))
	_, err = switches.Match(C6, plus)
	require.ErrorIs(t, err, switches.ErrNotASwitch)
	plus.Reclaim()

	// A 2-in 2-out difference spanning a 5th vertex is not a switch.
	bad := C6.MakeCopy()
	require.NoError(t, bad.RemoveEdge(0, 1))
	require.NoError(t, bad.RemoveEdge(2, 3))
	require.NoError(t, bad.AddEdge(0, 3))
	require.NoError(t, bad.AddEdge(1, 4))
	_, err = switches.Match(C6, bad)
	require.ErrorIs(t, err, switches.ErrNotASwitch)
	bad.Reclaim()

	_, err = switches.Match(nil, C6)
	require.ErrorIs(t, err, nbl.ErrNilGraph)
}
