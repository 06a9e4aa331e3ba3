package nbl

import (
	"fmt"
	"io"
	"math/bits"
	"sync"
)

// VtxSet is a set of vertex IDs packed as a bit field (one bit per ID).
type VtxSet uint64

func (s VtxSet) Contains(v int) bool { return s&(1<<uint(v)) != 0 }
func (s VtxSet) Count() int          { return bits.OnesCount64(uint64(s)) }
func (s VtxSet) IsEmpty() bool       { return s == 0 }

func (s *VtxSet) Add(v int)    { *s |= 1 << uint(v) }
func (s *VtxSet) Remove(v int) { *s &^= 1 << uint(v) }

func (s VtxSet) Union(t VtxSet) VtxSet     { return s | t }
func (s VtxSet) Intersect(t VtxSet) VtxSet { return s & t }
func (s VtxSet) Minus(t VtxSet) VtxSet     { return s &^ t }
func (s VtxSet) SymDiff(t VtxSet) VtxSet   { return s ^ t }

// ForEach visits each member ID in ascending order.
func (s VtxSet) ForEach(fn func(v int)) {
	for s != 0 {
		v := bits.TrailingZeros64(uint64(s))
		fn(v)
		s &= s - 1
	}
}

// VtxSetOf forms a VtxSet from explicit IDs.
func VtxSetOf(ids ...int) VtxSet {
	var s VtxSet
	for _, v := range ids {
		s.Add(v)
	}
	return s
}

// Graph is a finite simple undirected graph on vertices 0..NumVerts()-1.
// Adjacency is stored as one VtxSet row per vertex, so edge and degree
// queries are O(1) and neighborhood set algebra is single-word bit ops.
type Graph struct {
	vtxCount  int
	edgeCount int
	adj       [MaxVtx]VtxSet

	// Generated on demand, reset when the graph changes.
	minDeg int // -1 when dirty
	enc    string
}

var graphPool = sync.Pool{
	New: func() any {
		return new(Graph)
	},
}

// NewGraph returns a graph with numVerts vertices and no edges.
func NewGraph(numVerts int) (*Graph, error) {
	if numVerts < 0 || numVerts > MaxVtx {
		return nil, ErrBadVtxCount
	}
	X := graphPool.Get().(*Graph)
	X.init(numVerts)
	return X, nil
}

func (X *Graph) init(numVerts int) {
	X.vtxCount = numVerts
	X.edgeCount = 0
	for i := range X.adj[:numVerts] {
		X.adj[i] = 0
	}
	X.onGraphChanged()
}

// Reclaim recycles this Graph instance into a pool for reuse.
// Caller asserts that no more references to this instance will persist.
func (X *Graph) Reclaim() {
	if X != nil {
		graphPool.Put(X)
	}
}

// MakeCopy returns a new independent copy of this graph.
func (X *Graph) MakeCopy() *Graph {
	Xcopy := graphPool.Get().(*Graph)
	*Xcopy = *X
	return Xcopy
}

func (X *Graph) NumVerts() int { return X.vtxCount }
func (X *Graph) NumEdges() int { return X.edgeCount }

func (X *Graph) checkVtx(v int) error {
	if v < 0 || v >= X.vtxCount {
		return ErrBadVtxID
	}
	return nil
}

// HasEdge returns whether {u,v} is an edge of this graph.
func (X *Graph) HasEdge(u, v int) bool {
	if u < 0 || v < 0 || u >= X.vtxCount || v >= X.vtxCount {
		return false
	}
	return X.adj[u].Contains(v)
}

// AddEdge inserts the edge {u,v}.
// Self-loops and out of range IDs error; adding a present edge errors with ErrEdgeExists.
func (X *Graph) AddEdge(u, v int) error {
	if err := X.checkVtx(u); err != nil {
		return err
	}
	if err := X.checkVtx(v); err != nil {
		return err
	}
	if u == v {
		return ErrBadEdge
	}
	if X.adj[u].Contains(v) {
		return ErrEdgeExists
	}
	X.adj[u].Add(v)
	X.adj[v].Add(u)
	X.edgeCount++
	X.onGraphChanged()
	return nil
}

// RemoveEdge deletes the edge {u,v}, erroring with ErrMissingEdge if absent.
func (X *Graph) RemoveEdge(u, v int) error {
	if err := X.checkVtx(u); err != nil {
		return err
	}
	if err := X.checkVtx(v); err != nil {
		return err
	}
	if !X.adj[u].Contains(v) {
		return ErrMissingEdge
	}
	X.adj[u].Remove(v)
	X.adj[v].Remove(u)
	X.edgeCount--
	X.onGraphChanged()
	return nil
}

// Neighbors returns the neighbor set of v (empty set for out of range IDs).
func (X *Graph) Neighbors(v int) VtxSet {
	if v < 0 || v >= X.vtxCount {
		return 0
	}
	return X.adj[v]
}

// Degree returns the number of edges incident to v.
func (X *Graph) Degree(v int) int {
	return X.Neighbors(v).Count()
}

// MinDegree returns the smallest vertex degree (0 for the empty vertex set).
// The value is cached until the graph next changes.
func (X *Graph) MinDegree() int {
	if X.minDeg >= 0 {
		return X.minDeg
	}
	minDeg := 0
	if X.vtxCount > 0 {
		minDeg = X.adj[0].Count()
		for _, row := range X.adj[1:X.vtxCount] {
			if d := row.Count(); d < minDeg {
				minDeg = d
			}
		}
	}
	X.minDeg = minDeg
	return minDeg
}

// Edges returns the undirected edge list in (U asc, V asc) order with U < V.
func (X *Graph) Edges() []Edge {
	edges := make([]Edge, 0, X.edgeCount)
	for u := 0; u < X.vtxCount; u++ {
		X.adj[u].ForEach(func(v int) {
			if u < v {
				edges = append(edges, Edge{U: u, V: v})
			}
		})
	}
	return edges
}

// EdgeSetEqual returns whether Y has exactly the same labeled vertex and edge sets.
func (X *Graph) EdgeSetEqual(Y *Graph) bool {
	if Y == nil || X.vtxCount != Y.vtxCount || X.edgeCount != Y.edgeCount {
		return false
	}
	for i := 0; i < X.vtxCount; i++ {
		if X.adj[i] != Y.adj[i] {
			return false
		}
	}
	return true
}

// IsConnected reports whether every vertex is reachable from vertex 0.
// The empty graph and the one-vertex graph count as connected.
func (X *Graph) IsConnected() bool {
	if X.vtxCount <= 1 {
		return true
	}
	all := VtxSet(1<<uint(X.vtxCount)) - 1
	seen := VtxSet(1)
	frontier := VtxSet(1)
	for frontier != 0 {
		next := VtxSet(0)
		frontier.ForEach(func(v int) {
			next |= X.adj[v]
		})
		frontier = next.Minus(seen)
		seen |= next
	}
	return seen == all
}

// Relabel returns a copy of X with vertex i renamed to perm[i].
// perm must be a permutation of 0..NumVerts()-1.
func (X *Graph) Relabel(perm []int) (*Graph, error) {
	if len(perm) != X.vtxCount {
		return nil, ErrBadVtxCount
	}
	var hit VtxSet
	for _, p := range perm {
		if p < 0 || p >= X.vtxCount || hit.Contains(p) {
			return nil, ErrBadVtxID
		}
		hit.Add(p)
	}
	Y, err := NewGraph(X.vtxCount)
	if err != nil {
		return nil, err
	}
	for _, e := range X.Edges() {
		if err := Y.AddEdge(perm[e.U], perm[e.V]); err != nil {
			Y.Reclaim()
			return nil, err
		}
	}
	return Y, nil
}

func (X *Graph) onGraphChanged() {
	X.minDeg = -1
	X.enc = ""
}

// WriteAsString writes a human-readable one-line description of the graph.
func (X *Graph) WriteAsString(out io.Writer) {
	fmt.Fprintf(out, "%s n=%d m=%d {", X.Graph6(), X.vtxCount, X.edgeCount)
	for i, e := range X.Edges() {
		if i > 0 {
			fmt.Fprint(out, ",")
		}
		fmt.Fprintf(out, "%d-%d", e.U, e.V)
	}
	fmt.Fprint(out, "}")
}
