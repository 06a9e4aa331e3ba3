package switches

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"
)

// Condition expressions compose registered conditions by name:
//
//	c1 & c2p & cross & tri
//	c1 & !(twins | not222)
//
// '&' binds tighter than '|'; '!' negates a term.

type conditionExpr struct {
	Any []*andExpr `parser:"@@ (\"|\" @@)*"`
}

type andExpr struct {
	All []*termExpr `parser:"@@ (\"&\" @@)*"`
}

type termExpr struct {
	Not  *termExpr      `parser:"  \"!\" @@"`
	Sub  *conditionExpr `parser:"| \"(\" @@ \")\""`
	Name string         `parser:"| @Ident"`
}

var parseConditionExpr = participle.MustBuild[conditionExpr]()

// Predicate is a compiled condition expression.
type Predicate func(*Invariants) bool

// ParseCondition compiles a condition expression against the registry.
// An empty expression accepts every switch.
func ParseCondition(expr string) (Predicate, error) {
	if strings.TrimSpace(expr) == "" {
		return func(*Invariants) bool { return true }, nil
	}
	tree, err := parseConditionExpr.ParseString("", expr)
	if err != nil {
		return nil, errors.Wrap(ErrBadCondition, err.Error())
	}
	return compileExpr(tree)
}

func compileExpr(tree *conditionExpr) (Predicate, error) {
	terms := make([]Predicate, len(tree.Any))
	for i, sub := range tree.Any {
		p, err := compileAnd(sub)
		if err != nil {
			return nil, err
		}
		terms[i] = p
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return func(inv *Invariants) bool {
		for _, p := range terms {
			if p(inv) {
				return true
			}
		}
		return false
	}, nil
}

func compileAnd(tree *andExpr) (Predicate, error) {
	terms := make([]Predicate, len(tree.All))
	for i, sub := range tree.All {
		p, err := compileTerm(sub)
		if err != nil {
			return nil, err
		}
		terms[i] = p
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return func(inv *Invariants) bool {
		for _, p := range terms {
			if !p(inv) {
				return false
			}
		}
		return true
	}, nil
}

func compileTerm(tree *termExpr) (Predicate, error) {
	switch {
	case tree.Not != nil:
		p, err := compileTerm(tree.Not)
		if err != nil {
			return nil, err
		}
		return func(inv *Invariants) bool { return !p(inv) }, nil

	case tree.Sub != nil:
		return compileExpr(tree.Sub)

	default:
		cond, ok := LookupCondition(tree.Name)
		if !ok {
			return nil, errors.Wrapf(ErrBadCondition,
				"unknown condition %q (known: %s)", tree.Name, strings.Join(ConditionNames(), ", "))
		}
		return cond.Eval, nil
	}
}
