package nbl_test

import (
	"math/cmplx"
	"testing"

	"github.com/smol-graphs/cospec/nbl"
)

func TestEigenvalueOrder(t *testing.T) {
	C4 := makeCycle(t, 4)
	defer C4.Reclaim()

	eigs, err := nbl.NewOperator(C4).Eigenvalues()
	if err != nil {
		t.Fatal(err)
	}
	if len(eigs) != 8 {
		t.Fatalf("%d eigenvalues", len(eigs))
	}
	for i := 1; i < len(eigs); i++ {
		mi, mj := cmplx.Abs(eigs[i-1]), cmplx.Abs(eigs[i])
		if mi > mj+1e-12 {
			t.Fatalf("magnitude order broken at %d: %v", i, eigs)
		}
		if nbl.IsClose(mi, mj, 1e-9) && cmplx.Phase(eigs[i-1]) > cmplx.Phase(eigs[i])+1e-12 {
			t.Fatalf("phase tiebreak broken at %d: %v", i, eigs)
		}
	}
	// A cycle's operator is a permutation, so the spectrum is roots of
	// unity: every magnitude is 1.
	for _, z := range eigs {
		if !nbl.IsClose(cmplx.Abs(z), 1, 1e-9) {
			t.Fatalf("non-unit eigenvalue %v", z)
		}
	}
}

func TestSpectralHashInvariance(t *testing.T) {
	X := makeGraph(t, 6,
		[2]int{0, 1}, [2]int{1, 2}, [2]int{0, 2},
		[2]int{2, 3}, [2]int{3, 4}, [2]int{4, 5}, [2]int{3, 5})
	defer X.Reclaim()
	Y, err := X.Relabel([]int{2, 4, 0, 5, 1, 3})
	if err != nil {
		t.Fatal(err)
	}
	defer Y.Reclaim()

	hx, err := nbl.NewOperator(X).SpectralHash()
	if err != nil {
		t.Fatal(err)
	}
	hy, err := nbl.NewOperator(Y).SpectralHash()
	if err != nil {
		t.Fatal(err)
	}
	if len(hx) != 16 {
		t.Fatalf("hash width: %q", hx)
	}
	if hx != hy {
		t.Fatalf("isomorph hashes differ: %q vs %q", hx, hy)
	}
}

func TestSpectralHashSeparates(t *testing.T) {
	C6 := makeCycle(t, 6)
	defer C6.Reclaim()
	twoK3 := makeGraph(t, 6,
		[2]int{0, 1}, [2]int{1, 2}, [2]int{0, 2},
		[2]int{3, 4}, [2]int{4, 5}, [2]int{3, 5})
	defer twoK3.Reclaim()

	h1, err := nbl.NewOperator(C6).SpectralHash()
	if err != nil {
		t.Fatal(err)
	}
	h2, err := nbl.NewOperator(twoK3).SpectralHash()
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Fatal("distinct spectra, equal hashes")
	}
}

func TestSpectralHashEmpty(t *testing.T) {
	X1, _ := nbl.NewGraph(0)
	X2, _ := nbl.NewGraph(4)
	defer X1.Reclaim()
	defer X2.Reclaim()

	h1, err := nbl.NewOperator(X1).SpectralHash()
	if err != nil {
		t.Fatal(err)
	}
	h2, err := nbl.NewOperator(X2).SpectralHash()
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 || len(h1) != 16 {
		t.Fatalf("edgeless hashes: %q vs %q", h1, h2)
	}

	eigs, err := nbl.NewOperator(X2).Eigenvalues()
	if err != nil {
		t.Fatal(err)
	}
	if len(eigs) != 0 {
		t.Fatalf("edgeless operator has %d eigenvalues", len(eigs))
	}
}
