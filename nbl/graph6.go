package nbl

import (
	"strings"

	"github.com/pkg/errors"
)

// graph6 is a length-prefixed, bit-packed encoding of the upper-triangular
// adjacency matrix, 6 bits per printable byte (offset 63).  The engine only
// handles the short form (n <= 62 in principle, capped at MaxVtx here);
// multi-byte order prefixes are rejected as out of range.

const graph6Header = ">>graph6<<"

// NewGraphFromGraph6 decodes a graph6 string into a Graph with vertices
// labeled 0..n-1 in encoding order.  Padding bits in the last body byte must
// be zero, so each labeled graph has exactly one accepted encoding.
func NewGraphFromGraph6(g6 string) (*Graph, error) {
	s := strings.TrimPrefix(strings.TrimSpace(g6), graph6Header)
	if len(s) == 0 {
		return nil, errors.Wrap(ErrBadEncoding, "empty encoding")
	}
	if s[0] == 126 { // '~' introduces the long order form
		return nil, errors.Wrapf(ErrBadEncoding, "graph order beyond %d", MaxVtx)
	}
	if s[0] < 63 || s[0] > 126 {
		return nil, errors.Wrapf(ErrBadEncoding, "bad order byte %q", s[0])
	}
	n := int(s[0] - 63)
	if n > MaxVtx {
		return nil, errors.Wrapf(ErrBadEncoding, "graph order %d beyond %d", n, MaxVtx)
	}

	numBits := n * (n - 1) / 2
	body := s[1:]
	if len(body) != (numBits+5)/6 {
		return nil, errors.Wrapf(ErrBadEncoding, "body length %d, want %d", len(body), (numBits+5)/6)
	}

	X, err := NewGraph(n)
	if err != nil {
		return nil, err
	}

	bit := 0
	for j := 1; j < n; j++ {
		for i := 0; i < j; i++ {
			c := body[bit/6]
			if c < 63 || c > 126 {
				X.Reclaim()
				return nil, errors.Wrapf(ErrBadEncoding, "bad body byte %q", c)
			}
			if (c-63)&(1<<uint(5-bit%6)) != 0 {
				if err := X.AddEdge(i, j); err != nil {
					X.Reclaim()
					return nil, err
				}
			}
			bit++
		}
	}
	if numBits%6 != 0 {
		pad := body[len(body)-1] - 63
		if pad&((1<<uint(6-numBits%6))-1) != 0 {
			X.Reclaim()
			return nil, errors.Wrap(ErrBadEncoding, "nonzero padding bits")
		}
	}
	X.enc = s
	return X, nil
}

// Graph6 encodes the graph in canonical minimal-length graph6 form.
// decode(encode(X)) reproduces X with identical labels.
func (X *Graph) Graph6() string {
	if X.enc != "" {
		return X.enc
	}
	n := X.vtxCount
	numBits := n * (n - 1) / 2
	out := make([]byte, 1+(numBits+5)/6)
	out[0] = byte(n) + 63
	for i := range out[1:] {
		out[1+i] = 63
	}

	bit := 0
	for j := 1; j < n; j++ {
		for i := 0; i < j; i++ {
			if X.adj[i].Contains(j) {
				out[1+bit/6] += 1 << uint(5-bit%6)
			}
			bit++
		}
	}
	X.enc = string(out)
	return X.enc
}
