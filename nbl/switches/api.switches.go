// Package switches enumerates and classifies 2-edge switches: the local
// rewiring that removes two vertex-disjoint edges {v1,w1}, {v2,w2} and adds
// the crossing pair {v1,w2}, {v2,w1}.  Which of these switches preserve the
// non-backtracking spectrum -- and which local invariants predict that --
// is the question the rest of the engine exists to answer.
package switches

import (
	"errors"

	"github.com/smol-graphs/cospec/nbl"
)

// Errors
var (
	ErrNotASwitch   = errors.New("graphs do not differ by a 2-edge switch")
	ErrBadCondition = errors.New("bad condition expression")
)

// Config is a switch configuration: 4 distinct vertices such that {V1,W1}
// and {V2,W2} are edges and the crossing pair {V1,W2}, {V2,W1} are not.
// Each undirected switch is named by two mirror configurations,
// (v1,w1,v2,w2) and (w1,v1,w2,v2); enumeration yields both, since the
// classifier's invariants are orientation-sensitive.
type Config struct {
	V1, W1, V2, W2 int
}

// Switch is an enumerated configuration with its derived local structure.
type Switch struct {
	Config

	// Ext holds the external neighborhoods of V1, W1, V2, W2: neighbors
	// outside the configuration's own 4-vertex set.
	Ext [4]nbl.VtxSet

	// Switched is the rewired graph.
	Switched *nbl.Graph
}

// Vertices returns the configuration's 4-vertex set.
func (cfg Config) Vertices() nbl.VtxSet {
	return nbl.VtxSetOf(cfg.V1, cfg.W1, cfg.V2, cfg.W2)
}

// Reverse returns the configuration that undoes this switch on the
// switched graph.
func (cfg Config) Reverse() Config {
	return Config{V1: cfg.V1, W1: cfg.W2, V2: cfg.V2, W2: cfg.W1}
}

// Mirror returns the equivalent opposite-orientation configuration of the
// same switch.
func (cfg Config) Mirror() Config {
	return Config{V1: cfg.W1, W1: cfg.V1, V2: cfg.W2, W2: cfg.V2}
}

// Validate checks that cfg is a genuine switch configuration of G.
func (cfg Config) Validate(G *nbl.Graph) error {
	if cfg.Vertices().Count() != 4 {
		return nbl.ErrBadVtxID
	}
	if !G.HasEdge(cfg.V1, cfg.W1) || !G.HasEdge(cfg.V2, cfg.W2) {
		return nbl.ErrMissingEdge
	}
	if G.HasEdge(cfg.V1, cfg.W2) || G.HasEdge(cfg.V2, cfg.W1) {
		return nbl.ErrEdgeExists
	}
	return nil
}

// Apply validates cfg against G and returns the switched graph as a new
// instance, leaving G untouched for comparison.
func (cfg Config) Apply(G *nbl.Graph) (*nbl.Graph, error) {
	if err := cfg.Validate(G); err != nil {
		return nil, err
	}
	Gp := G.MakeCopy()
	Gp.RemoveEdge(cfg.V1, cfg.W1)
	Gp.RemoveEdge(cfg.V2, cfg.W2)
	Gp.AddEdge(cfg.V1, cfg.W2)
	Gp.AddEdge(cfg.V2, cfg.W1)
	return Gp, nil
}
