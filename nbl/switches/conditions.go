package switches

import (
	"golang.org/x/exp/slices"

	"github.com/smol-graphs/cospec/nbl"
)

// The minimal condition set that exactly predicts spectral preservation is
// an open research question: several candidate sets below have partial
// counterexamples on larger orders.  The registry therefore stays open --
// conditions are named, composable predicates, and experiments combine them
// with expressions (see ParseCondition) rather than any hard-coded verdict.

// Condition is a named boolean predicate over a switch's invariants.
type Condition struct {
	Name string
	Help string
	Eval func(*Invariants) bool
}

var registry = map[string]Condition{}

// RegisterCondition adds (or replaces) a named condition.
func RegisterCondition(cond Condition) {
	registry[cond.Name] = cond
}

// LookupCondition finds a registered condition by name.
func LookupCondition(name string) (Condition, bool) {
	cond, ok := registry[name]
	return cond, ok
}

// ConditionNames returns all registered names, sorted.
func ConditionNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func init() {
	for _, cond := range []Condition{
		{
			Name: "c1",
			Help: "degree equality: deg(v1)=deg(v2) and deg(w1)=deg(w2)",
			Eval: func(inv *Invariants) bool {
				return inv.DegV1 == inv.DegV2 && inv.DegW1 == inv.DegW2
			},
		},
		{
			Name: "c2",
			Help: "cross-intersection count equality: |ext(v1)^ext(wj)| = |ext(v2)^ext(wj)| for j=1,2",
			Eval: func(inv *Invariants) bool {
				return inv.Cross[CrossV1W1] == inv.Cross[CrossV2W1] &&
					inv.Cross[CrossV1W2] == inv.Cross[CrossV2W2]
			},
		},
		{
			Name: "c2p",
			Help: "weighted cross-sum equality: ws(ext(v1)^ext(wj)) = ws(ext(v2)^ext(wj)) for j=1,2",
			Eval: func(inv *Invariants) bool {
				return nbl.IsClose(inv.CrossWS[CrossV1W1], inv.CrossWS[CrossV2W1], nbl.DefaultTol) &&
					nbl.IsClose(inv.CrossWS[CrossV1W2], inv.CrossWS[CrossV2W2], nbl.DefaultTol)
			},
		},
		{
			Name: "cross",
			Help: "uniform weighted cross: all four ws(ext(vi)^ext(wj)) are equal",
			Eval: func(inv *Invariants) bool {
				ws0 := inv.CrossWS[0]
				for _, ws := range inv.CrossWS[1:] {
					if !nbl.IsClose(ws0, ws, nbl.DefaultTol) {
						return false
					}
				}
				return true
			},
		},
		{
			Name: "tri",
			Help: "triangle counts through the removed edges match: tri(v1,w1) = tri(v2,w2)",
			Eval: func(inv *Invariants) bool {
				return inv.TriRemoved1 == inv.TriRemoved2
			},
		},
		{
			Name: "tricross",
			Help: "triangle counts through the added edges match: tri(v1,w2) = tri(v2,w1)",
			Eval: func(inv *Invariants) bool {
				return inv.TriAdded1 == inv.TriAdded2
			},
		},
		{
			Name: "nonempty",
			Help: "same-side external intersections are non-empty: |ext(v1)^ext(v2)| > 0 and |ext(w1)^ext(w2)| > 0",
			Eval: func(inv *Invariants) bool {
				return inv.IntVV > 0 && inv.IntWW > 0
			},
		},
		{
			Name: "not222",
			Help: "rejects the (2,2,2) intersection pattern",
			Eval: func(inv *Invariants) bool {
				return !(inv.Cross[CrossV1W1] == 2 && inv.IntVV == 2 && inv.IntWW == 2)
			},
		},
		{
			Name: "par",
			Help: "parallel-edge symmetry: {v1,v2} is an edge iff {w1,w2} is",
			Eval: func(inv *Invariants) bool {
				return inv.HasVV == inv.HasWW
			},
		},
		{
			Name: "twins",
			Help: "an external-twin pair: ext(v1)=ext(v2) or ext(w1)=ext(w2)",
			Eval: func(inv *Invariants) bool {
				return inv.ExtEqV || inv.ExtEqW
			},
		},
	} {
		RegisterCondition(cond)
	}
}
