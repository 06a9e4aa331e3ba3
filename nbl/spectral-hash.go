package nbl

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"math/cmplx"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// hashPrecision is the number of decimal places eigenvalues are rounded to
// before hashing, matching the precision of the precomputed corpus.
const hashPrecision = 8

// SpectralHash digests the operator's eigenvalue multiset into a fixed-width
// hex string usable as a corpus key.  Eigenvalues are generally complex, so
// they are totally ordered by (magnitude, phase) -- ordering by real part
// alone misorders conjugate pairs and was a documented source of false
// mismatches -- then rounded and hashed.
func (op *Operator) SpectralHash() (SpectralHash, error) {
	if op.Dim() == 0 {
		return emptySpectralHash(), nil
	}

	eigs, err := op.Eigenvalues()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, z := range eigs {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(&b, "%.*f,%.*f", hashPrecision, roundFixed(real(z)), hashPrecision, roundFixed(imag(z)))
	}
	sum := sha256.Sum256([]byte(b.String()))
	return SpectralHash(hex.EncodeToString(sum[:])[:16]), nil
}

// Eigenvalues returns the operator's eigenvalue multiset sorted by
// (magnitude, phase).
func (op *Operator) Eigenvalues() ([]complex128, error) {
	if op.Dim() == 0 {
		return nil, nil
	}

	var eig mat.Eigen
	if ok := eig.Factorize(op.dense, mat.EigenNone); !ok {
		return nil, errors.New("eigen decomposition failed to converge")
	}
	eigs := eig.Values(nil)

	sort.Slice(eigs, func(i, j int) bool {
		mi, mj := cmplx.Abs(eigs[i]), cmplx.Abs(eigs[j])
		if mi != mj {
			return mi < mj
		}
		return cmplx.Phase(eigs[i]) < cmplx.Phase(eigs[j])
	})
	return eigs, nil
}

func emptySpectralHash() SpectralHash {
	sum := sha256.Sum256([]byte("empty"))
	return SpectralHash(hex.EncodeToString(sum[:])[:16])
}

// roundFixed rounds to hashPrecision decimals and normalizes -0.
func roundFixed(x float64) float64 {
	p := math.Pow(10, hashPrecision)
	r := math.Round(x*p) / p
	if r == 0 {
		return 0
	}
	return r
}
