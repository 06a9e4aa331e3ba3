// Package survey drives the enumerate -> classify -> verify pipeline over a
// stream of generated graphs and aggregates the spectral outcomes.  Each
// graph is an independent unit of work, so the pipeline fans graphs out to
// parallel workers that share nothing but the tally collector.
package survey

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/plan-systems/klog"
	"golang.org/x/sync/errgroup"

	"github.com/smol-graphs/cospec/nbl"
	"github.com/smol-graphs/cospec/nbl/catalog"
	"github.com/smol-graphs/cospec/nbl/switches"
)

// Params tunes a survey run.
type Params struct {
	Orders        []int
	ConnectedOnly bool

	// MinDegree filters the operator domain; graphs below it are skipped
	// (degree <= 1 vertices degenerate the operator).  Defaults to 2.
	MinDegree int

	// CondExpr selects which enumerated switches get spectral
	// verification, e.g. "c1 & c2p & cross & tri".  Empty verifies all.
	CondExpr string

	Tol       float64 // trace comparison tolerance; 0 = nbl.DefaultTol
	NumTraces int     // traces compared; 0 = operator dimension

	Workers int // parallel graph workers; 0 = GOMAXPROCS

	// PerGraphTimeout abandons a graph (counted Inconclusive) instead of
	// failing the batch.  0 disables the safety valve.
	PerGraphTimeout time.Duration

	// Corpus, when set, is consulted for precomputed spectral hashes and
	// (unless read-only) extended with newly computed ones.
	Corpus catalog.Catalog

	// MaxExamples caps retained counterexample reports.  Defaults to 10.
	MaxExamples int
}

func (p *Params) setDefaults() {
	if p.MinDegree == 0 {
		p.MinDegree = 2
	}
	if p.Workers <= 0 {
		p.Workers = runtime.GOMAXPROCS(0)
	}
	if p.MaxExamples == 0 {
		p.MaxExamples = 10
	}
}

type graphResult struct {
	order        int
	reports      []Report
	inconclusive bool
}

// Run surveys every order in p.Orders using graphs from gen.
func Run(ctx context.Context, gen nbl.Generator, p Params) (*Tally, error) {
	p.setDefaults()

	cond, err := switches.ParseCondition(p.CondExpr)
	if err != nil {
		return nil, err
	}

	tally := newTally()
	for _, n := range p.Orders {
		if err := runOrder(ctx, gen, n, cond, &p, tally); err != nil {
			return tally, err
		}
		ot := tally.ByOrder[n]
		if ot != nil {
			klog.Infof("n=%d: %d graphs, %d switches, %d cospectral, %d counterexamples",
				n, ot.Graphs, ot.Switches, ot.Cospectral, ot.Counterexamples)
		}
	}
	if tally.Malformed > 0 {
		klog.Warningf("dropped %d malformed graph encodings", tally.Malformed)
	}
	return tally, nil
}

func runOrder(ctx context.Context, gen nbl.Generator, order int, cond switches.Predicate, p *Params, tally *Tally) error {
	grp, grpCtx := errgroup.WithContext(ctx)

	// The generator runs under the group context so a failed worker also
	// unwinds the producer instead of leaving it blocked mid-send.
	stream := gen.GenerateGraphs(grpCtx, nbl.GenOpts{
		NumVerts:      order,
		ConnectedOnly: p.ConnectedOnly,
	})

	results := make(chan graphResult, p.Workers)
	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for res := range results {
			collect(tally, res, p.MaxExamples)
		}
	}()

	var skipped atomic.Int64
	for w := 0; w < p.Workers; w++ {
		grp.Go(func() error {
			for X := range stream.Outlet {
				if X.MinDegree() < p.MinDegree {
					skipped.Add(1)
					X.Reclaim()
					continue
				}
				res := analyzeGraph(grpCtx, X, cond, p)
				res.order = order
				X.Reclaim()
				select {
				case results <- res:
				case <-grpCtx.Done():
					return grpCtx.Err()
				}
			}
			return nil
		})
	}
	err := grp.Wait()
	close(results)
	<-collected

	tally.Malformed += stream.Malformed.Load()
	tally.Skipped += skipped.Load()
	if err != nil {
		return err
	}
	return stream.Err()
}

func collect(tally *Tally, res graphResult, maxExamples int) {
	ot := tally.orderTally(res.order)
	tally.Graphs++
	ot.Graphs++
	if res.inconclusive {
		tally.Inconclusive++
		return
	}
	for _, r := range res.reports {
		tally.Switches++
		ot.Switches++
		if r.Cospectral {
			tally.Cospectral++
			ot.Cospectral++
		} else {
			tally.Counterexamples++
			ot.Counterexamples++
			if len(tally.Examples) < maxExamples {
				tally.Examples = append(tally.Examples, r)
			}
		}
	}
}

// analyzeGraph runs the switch pipeline for one graph.  The original
// operator is built once; its trace cache is shared across every
// verification against this graph.
func analyzeGraph(ctx context.Context, X *nbl.Graph, cond switches.Predicate, p *Params) graphResult {
	if p.PerGraphTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.PerGraphTimeout)
		defer cancel()
	}

	var res graphResult
	found := switches.Enumerate(X)
	defer switches.Reclaim(found)

	var opX *nbl.Operator
	for _, sw := range found {
		if ctx.Err() != nil {
			res.inconclusive = true
			res.reports = nil
			return res
		}

		inv := switches.Measure(X, sw)
		if !cond(&inv) {
			continue
		}

		r := Report{
			Graph6:     X.Graph6(),
			Switched6:  sw.Switched.Graph6(),
			Config:     sw.Config,
			Invariants: inv,
		}

		if hit, ok := corpusVerdict(p.Corpus, X, sw.Switched); ok {
			r.Cospectral = hit
		} else {
			if opX == nil {
				opX = nbl.NewOperator(X)
			}
			opS := nbl.NewOperator(sw.Switched)
			verdict := nbl.CompareSpectra(opX, opS, nbl.CompareOpts{
				Tol:       p.Tol,
				NumTraces: p.NumTraces,
			})
			r.Cospectral = verdict.Cospectral
			r.DivergedAt = verdict.DivergedAt
		}
		res.reports = append(res.reports, r)
	}
	return res
}

// corpusVerdict answers cospectrality from precomputed hashes when both
// graphs are already cataloged.  When the corpus is writable, graphs it has
// not seen are computed and added for next time.
func corpusVerdict(corpus catalog.Catalog, X, Xswitched *nbl.Graph) (cospectral, ok bool) {
	if corpus == nil {
		return false, false
	}
	e1, found1, err1 := corpus.Lookup(X.Graph6())
	e2, found2, err2 := corpus.Lookup(Xswitched.Graph6())
	if err1 != nil || err2 != nil {
		klog.Warningf("corpus lookup failed: %v %v", err1, err2)
		return false, false
	}
	if !corpus.IsReadOnly() {
		if !found1 {
			corpus.TryAddGraph(X)
		}
		if !found2 {
			corpus.TryAddGraph(Xswitched)
		}
	}
	if !found1 || !found2 {
		return false, false
	}
	return e1.NBLHash == e2.NBLHash && e1.NumEdges == e2.NumEdges, true
}
