package nbl

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

// Two same-dimension matrices share their characteristic polynomial -- and so
// their eigenvalue multiset counted with multiplicity -- iff their power
// traces tr(T^k) agree for k = 1..dim (Newton's identities).  Comparing
// traces sidesteps both the cost and the instability of extracting complex
// eigenvalues from a non-symmetric, possibly defective matrix, and in
// particular the sort ambiguity of conjugate pairs.

const (
	// DefaultTol is the absolute and relative tolerance used for trace comparison.
	DefaultTol = 1e-9

	// FastTraceBound is a fixed trace count usable as a cheap pre-check.
	// It is only a rigorous spectrum test when the operator dimension is
	// below it; CompareSpectra defaults to the full dimension instead.
	FastTraceBound = 50

	// tracesLSMQuantum is the quantization step for the binary traces
	// encoding, chosen to absorb float round-off below DefaultTol scale.
	tracesLSMQuantum = 1e-8
)

// CompareOpts tunes the spectral comparator.
type CompareOpts struct {
	Tol       float64 // <= 0 means DefaultTol
	NumTraces int     // <= 0 means the operator dimension
}

// Verdict is the outcome of a spectral-equality decision.
type Verdict struct {
	Cospectral bool
	// DivergedAt is the first k with |tr(T1^k) - tr(T2^k)| beyond
	// tolerance, 0 when the dimensions differ outright, and numTraces+1
	// diagnostic "never" when Cospectral.
	DivergedAt int
	// NumTraces is how many trace pairs were compared.
	NumTraces int
}

// CompareSpectra decides whether T1 and T2 have equal eigenvalue multisets
// by comparing their power-trace sequences.  Operators of different
// dimension are never cospectral.
func CompareSpectra(T1, T2 *Operator, opts CompareOpts) Verdict {
	if T1.Dim() != T2.Dim() {
		return Verdict{Cospectral: false, DivergedAt: 0}
	}
	tol := opts.Tol
	if tol <= 0 {
		tol = DefaultTol
	}
	numTraces := opts.NumTraces
	if numTraces <= 0 {
		numTraces = T1.Dim()
	}

	TX1 := T1.Traces(numTraces)
	TX2 := T2.Traces(numTraces)
	for k := 1; k <= numTraces; k++ {
		if !IsClose(TX1[k-1], TX2[k-1], tol) {
			return Verdict{Cospectral: false, DivergedAt: k, NumTraces: numTraces}
		}
	}
	return Verdict{Cospectral: true, DivergedAt: numTraces + 1, NumTraces: numTraces}
}

// IsClose reports float equality with absolute and relative tolerance tol.
func IsClose(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol+tol*math.Abs(b)
}

// IsEqual returns if two traces agree within tol over their shared prefix.
// The number of elements compared is the shorter length, so a Traces of
// length 0 is equal to all other Traces.
func (TX Traces) IsEqual(target Traces, tol float64) bool {
	N := min(len(TX), len(target))
	for i := 0; i < N; i++ {
		if !IsClose(TX[i], target[i], tol) {
			return false
		}
	}
	return true
}

// IsZero returns true if all values of this Traces are 0 within tol.
func (TX Traces) IsZero(tol float64) bool {
	for _, TXi := range TX {
		if math.Abs(TXi) > tol {
			return false
		}
	}
	return true
}

// SetLen resizes this Traces to tracesLen elements, reallocating only when
// the capacity is exceeded.  Newly exposed elements are zero unless they were
// previously truncated away.
func (TX *Traces) SetLen(tracesLen int) {
	if cap(*TX) < tracesLen {
		dimLen := tracesLen
		if dimLen < 16 {
			dimLen = 16 // prevent rapid resizing
		}
		*TX = make([]float64, tracesLen, dimLen)
	} else {
		*TX = (*TX)[:tracesLen]
	}
}

// AppendTracesLSM appends a canonical binary encoding of TX to out: each
// trace is quantized to a fixed step and written as a varint, so equal
// spectra produce byte-equal encodings suitable as db keys.
func (TX Traces) AppendTracesLSM(out []byte) TracesLSM {
	var scrap [binary.MaxVarintLen64]byte
	for _, Ti := range TX {
		q := int64(math.Round(Ti / tracesLSMQuantum))
		n := binary.PutVarint(scrap[:], q)
		out = append(out, scrap[:n]...)
	}
	return out
}

// InitFromTracesLSM assigns this Traces from an encoding made by AppendTracesLSM.
func (TX *Traces) InitFromTracesLSM(lsm TracesLSM, maxNumTraces int) error {
	out := (*TX)[:0]
	rdr := bytes.NewReader(lsm)

	for {
		q, err := binary.ReadVarint(rdr)
		if err != nil {
			if err == io.EOF {
				break
			}
			*TX = out
			return ErrUnmarshal
		}
		out = append(out, float64(q)*tracesLSMQuantum)
		if maxNumTraces > 0 && len(out) >= maxNumTraces {
			break
		}
	}

	*TX = out
	return nil
}
