package switches

import (
	"github.com/smol-graphs/cospec/nbl"
)

// Match recovers the switch configuration turning G into Gp, if exactly one
// 2-edge switch explains their difference.  The removed/added edge pairs are
// read straight off the edge-set symmetric difference and oriented in O(1);
// no permutation search over the 4 vertices is needed.
func Match(G, Gp *nbl.Graph) (Config, error) {
	var cfg Config
	if G == nil || Gp == nil {
		return cfg, nbl.ErrNilGraph
	}
	if G.NumVerts() != Gp.NumVerts() || G.NumEdges() != Gp.NumEdges() {
		return cfg, ErrNotASwitch
	}

	var removed, added []nbl.Edge
	for _, e := range G.Edges() {
		if !Gp.HasEdge(e.U, e.V) {
			removed = append(removed, e)
		}
	}
	for _, e := range Gp.Edges() {
		if !G.HasEdge(e.U, e.V) {
			added = append(added, e)
		}
	}
	if len(removed) != 2 || len(added) != 2 {
		return cfg, ErrNotASwitch
	}

	span := nbl.VtxSetOf(removed[0].U, removed[0].V, removed[1].U, removed[1].V).
		Union(nbl.VtxSetOf(added[0].U, added[0].V, added[1].U, added[1].V))
	if span.Count() != 4 {
		return cfg, ErrNotASwitch
	}

	// Anchor v1 at one endpoint of the first removed edge; its added
	// partner pins w2, and the second removed edge supplies v2, w2.
	cfg.V1, cfg.W1 = removed[0].U, removed[0].V
	switch {
	case added[0].U == cfg.V1:
		cfg.W2 = added[0].V
	case added[0].V == cfg.V1:
		cfg.W2 = added[0].U
	case added[1].U == cfg.V1:
		cfg.W2 = added[1].V
	case added[1].V == cfg.V1:
		cfg.W2 = added[1].U
	default:
		return cfg, ErrNotASwitch
	}
	switch cfg.W2 {
	case removed[1].U:
		cfg.V2 = removed[1].V
	case removed[1].V:
		cfg.V2 = removed[1].U
	default:
		return cfg, ErrNotASwitch
	}

	// The remaining added edge must be the other crossing pair.
	if !Gp.HasEdge(cfg.V2, cfg.W1) {
		return cfg, ErrNotASwitch
	}
	if err := cfg.Validate(G); err != nil {
		return cfg, ErrNotASwitch
	}
	return cfg, nil
}
