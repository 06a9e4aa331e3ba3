package switches

import (
	"github.com/smol-graphs/cospec/nbl"
)

// Enumerate returns every switch configuration of G, in deterministic
// order: unordered edge pairs in edge-list order, with both pairings and
// both orientations of each pairing tried.  Every yielded configuration is
// valid by construction; downstream components treat that as a precondition
// rather than re-checking it.
//
// Cost is O(m^2) edge pairs with O(1) bit-set work per candidate, fine for
// the exhaustive-enumeration regime this engine targets (n <= ~10).
func Enumerate(G *nbl.Graph) []Switch {
	edges := G.Edges()
	var found []Switch

	for i := 0; i < len(edges); i++ {
		for j := i + 1; j < len(edges); j++ {
			e1, e2 := edges[i], edges[j]
			if e1.U == e2.U || e1.U == e2.V || e1.V == e2.U || e1.V == e2.V {
				continue // shared endpoint: not a 4-vertex configuration
			}
			for _, cfg := range [4]Config{
				{V1: e1.U, W1: e1.V, V2: e2.U, W2: e2.V},
				{V1: e1.V, W1: e1.U, V2: e2.V, W2: e2.U},
				{V1: e1.U, W1: e1.V, V2: e2.V, W2: e2.U},
				{V1: e1.V, W1: e1.U, V2: e2.U, W2: e2.V},
			} {
				if G.HasEdge(cfg.V1, cfg.W2) || G.HasEdge(cfg.V2, cfg.W1) {
					continue
				}
				found = append(found, newSwitch(G, cfg))
			}
		}
	}
	return found
}

func newSwitch(G *nbl.Graph, cfg Config) Switch {
	S := cfg.Vertices()
	Gp, err := cfg.Apply(G)
	if err != nil {
		panic(err) // enumeration guarantees validity
	}
	return Switch{
		Config: cfg,
		Ext: [4]nbl.VtxSet{
			G.Neighbors(cfg.V1).Minus(S),
			G.Neighbors(cfg.W1).Minus(S),
			G.Neighbors(cfg.V2).Minus(S),
			G.Neighbors(cfg.W2).Minus(S),
		},
		Switched: Gp,
	}
}

// Reclaim releases the switched graphs of a discarded enumeration.
func Reclaim(found []Switch) {
	for i := range found {
		found[i].Switched.Reclaim()
	}
}
