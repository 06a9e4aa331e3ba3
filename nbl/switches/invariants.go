package switches

import (
	"github.com/smol-graphs/cospec/nbl"
)

// Cross-intersection index order, used by Invariants.Cross and CrossWS.
const (
	CrossV1W1 = iota
	CrossV1W2
	CrossV2W1
	CrossV2W2
)

// Invariants is the fixed battery of local measurements taken on a switch
// configuration.  It is a closed record: an experiment needing a new
// measurement adds an explicit field here, not an ad hoc map key.
type Invariants struct {
	// Degrees in G of the four configuration vertices.
	DegV1, DegW1, DegV2, DegW2 int

	// Cross holds the external-neighborhood intersection cardinalities
	// |ext(vi) n ext(wj)|, indexed by the CrossXx constants.
	Cross [4]int

	// CrossWS holds the degree-weighted counterparts of Cross: each set's
	// sum of 1/(deg(x)-1), mirroring the operator's own entry weights.
	CrossWS [4]float64

	// Same-side intersection and symmetric-difference cardinalities.
	IntVV, IntWW int
	SymVV, SymWW int

	// Common-neighbor (triangle) counts through the two removed edges and
	// the two added edges, measured in G.
	TriRemoved1, TriRemoved2 int
	TriAdded1, TriAdded2     int

	// Whether {v1,v2} respectively {w1,w2} are themselves edges of G.
	HasVV, HasWW bool

	// Whether the two v (resp. w) external neighborhoods coincide exactly.
	ExtEqV, ExtEqW bool
}

// WeightedSum returns the sum of 1/(deg(x)-1) over members of set with
// deg(x) > 1, the degree-sensitive refinement of plain cardinality.
func WeightedSum(G *nbl.Graph, set nbl.VtxSet) float64 {
	ws := 0.0
	set.ForEach(func(x int) {
		if d := G.Degree(x); d > 1 {
			ws += 1.0 / float64(d-1)
		}
	})
	return ws
}

// TriangleCount returns the number of triangles through the vertex pair
// {u,v}: the number of their common neighbors.
func TriangleCount(G *nbl.Graph, u, v int) int {
	return G.Neighbors(u).Intersect(G.Neighbors(v)).Count()
}

// Measure computes the invariant battery for sw over G.  The switch must
// come from Enumerate (or otherwise satisfy Config.Validate); feeding an
// invalid configuration is a programming error and panics.
func Measure(G *nbl.Graph, sw Switch) Invariants {
	if err := sw.Validate(G); err != nil {
		panic(err)
	}

	extV1, extW1, extV2, extW2 := sw.Ext[0], sw.Ext[1], sw.Ext[2], sw.Ext[3]

	inv := Invariants{
		DegV1: G.Degree(sw.V1),
		DegW1: G.Degree(sw.W1),
		DegV2: G.Degree(sw.V2),
		DegW2: G.Degree(sw.W2),

		IntVV: extV1.Intersect(extV2).Count(),
		IntWW: extW1.Intersect(extW2).Count(),
		SymVV: extV1.SymDiff(extV2).Count(),
		SymWW: extW1.SymDiff(extW2).Count(),

		TriRemoved1: TriangleCount(G, sw.V1, sw.W1),
		TriRemoved2: TriangleCount(G, sw.V2, sw.W2),
		TriAdded1:   TriangleCount(G, sw.V1, sw.W2),
		TriAdded2:   TriangleCount(G, sw.V2, sw.W1),

		HasVV: G.HasEdge(sw.V1, sw.V2),
		HasWW: G.HasEdge(sw.W1, sw.W2),

		ExtEqV: extV1 == extV2,
		ExtEqW: extW1 == extW2,
	}

	cross := [4]nbl.VtxSet{
		CrossV1W1: extV1.Intersect(extW1),
		CrossV1W2: extV1.Intersect(extW2),
		CrossV2W1: extV2.Intersect(extW1),
		CrossV2W2: extV2.Intersect(extW2),
	}
	for i, set := range cross {
		inv.Cross[i] = set.Count()
		inv.CrossWS[i] = WeightedSum(G, set)
	}
	return inv
}
