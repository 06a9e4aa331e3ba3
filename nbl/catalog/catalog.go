// Package catalog persists precomputed spectral invariants keyed by
// canonical graph6 encoding, so large-order surveys can skip rebuilding and
// re-diagonalizing operators for graphs already seen.  Absence of an entry
// means "not yet computed", never "non-existent".
package catalog

import (
	"encoding/binary"
	"runtime"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
	"github.com/pkg/errors"

	"github.com/smol-graphs/cospec/nbl"
)

// Errors
var (
	ErrBadCatalogParam = errors.New("bad catalog param")
	ErrReadOnly        = errors.New("catalog is read-only")
	ErrBadEntry        = errors.New("bad catalog entry encoding")
)

var gCatalogStateKey = []byte{0x00, 0x00, 0x01}

const hashSz = 16

// Entry is one precomputed record: the graph's non-backtracking spectral
// hash plus a short traces prefix kept as a cheap integrity check.
type Entry struct {
	Graph6   string
	NumVerts int
	NumEdges int
	NBLHash  nbl.SpectralHash
	Traces   nbl.Traces
}

// Opts specifies params for opening a Catalog.
type Opts struct {
	DbPathName  string // omit for an in-memory db
	ReadOnly    bool   // open in read-only mode
	TracePrefix int    // traces stored per entry; defaults to 12
}

// Catalog wraps a database of precomputed spectral records.
type Catalog interface {
	nbl.GraphAdder

	// Lookup retrieves the record for a canonical graph6 encoding.
	// The second return is false when the graph has not been computed yet.
	Lookup(g6 string) (*Entry, bool, error)

	// Store upserts a record.
	Store(entry *Entry) error

	// NumEntries returns the number of records held for a vertex count.
	NumEntries(forVtxCount byte) int64

	IsReadOnly() bool

	Close() error
}

type catalog struct {
	ctx         *Context
	readOnly    bool
	tracePrefix int
	db          *badger.DB

	mu         sync.Mutex
	stateDirty bool
	numEntries [nbl.MaxVtx + 1]int64
	cache      *redblacktree.Tree // graph6 -> *Entry, avoids repeat db reads
}

// OpenCatalog opens (or creates) a catalog and attaches it to ctx.
func OpenCatalog(ctx *Context, opts Opts) (Catalog, error) {
	if opts.TracePrefix <= 0 {
		opts.TracePrefix = 12
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false // single-writer usage, disable for performance
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	cat := &catalog{
		ctx:         ctx,
		readOnly:    opts.ReadOnly,
		tracePrefix: opts.TracePrefix,
		cache:       redblacktree.NewWith(utils.StringComparator),
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}
	ctx.attach(cat)

	if err := cat.loadState(); err != nil {
		cat.Close()
		return nil, err
	}
	return cat, nil
}

func (cat *catalog) IsReadOnly() bool { return cat.readOnly }

func (cat *catalog) NumEntries(forVtxCount byte) int64 {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	if int(forVtxCount) >= len(cat.numEntries) {
		return 0
	}
	return cat.numEntries[forVtxCount]
}

func (cat *catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err == badger.ErrKeyNotFound {
			cat.stateDirty = true
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			for i := range cat.numEntries {
				n, sz := binary.Varint(val)
				if sz <= 0 {
					break
				}
				cat.numEntries[i] = n
				val = val[sz:]
			}
			return nil
		})
	})
}

func (cat *catalog) flushState() {
	if !cat.stateDirty || cat.readOnly {
		return
	}
	out := make([]byte, 0, len(gCatalogStateKey)+(nbl.MaxVtx+1)*binary.MaxVarintLen64)
	var scrap [binary.MaxVarintLen64]byte
	for _, n := range cat.numEntries {
		sz := binary.PutVarint(scrap[:], n)
		out = append(out, scrap[:sz]...)
	}
	err := cat.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gCatalogStateKey, out)
	})
	if err != nil {
		panic(err)
	}
	cat.stateDirty = false
}

func (cat *catalog) Close() error {
	cat.mu.Lock()
	defer cat.mu.Unlock()
	cat.flushState()
	if cat.db != nil {
		cat.db.Close()
		cat.db = nil
		cat.ctx.detach(cat)
		cat.ctx = nil
	}
	return nil
}

func formEntryKey(in []byte, numVerts int, g6 string) []byte {
	key := append(in, byte(numVerts))
	return append(key, g6...)
}

func (entry *Entry) appendValue(out []byte) []byte {
	var scrap [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(scrap[:], uint64(entry.NumEdges))
	out = append(out, scrap[:n]...)
	out = append(out, entry.NBLHash...)
	return entry.Traces.AppendTracesLSM(out)
}

func (entry *Entry) initFromValue(val []byte) error {
	numEdges, sz := binary.Uvarint(val)
	if sz <= 0 || len(val) < sz+hashSz {
		return ErrBadEntry
	}
	entry.NumEdges = int(numEdges)
	entry.NBLHash = nbl.SpectralHash(val[sz : sz+hashSz])
	return entry.Traces.InitFromTracesLSM(nbl.TracesLSM(val[sz+hashSz:]), 0)
}

// Lookup retrieves a record, serving repeat queries from an in-memory tree.
func (cat *catalog) Lookup(g6 string) (*Entry, bool, error) {
	cat.mu.Lock()
	if hit, ok := cat.cache.Get(g6); ok {
		cat.mu.Unlock()
		return hit.(*Entry), true, nil
	}
	cat.mu.Unlock()

	X, err := nbl.NewGraphFromGraph6(g6)
	if err != nil {
		return nil, false, err
	}
	numVerts := X.NumVerts()
	X.Reclaim()

	var keyBuf [64]byte
	key := formEntryKey(keyBuf[:0], numVerts, g6)

	entry := &Entry{Graph6: g6, NumVerts: numVerts}
	found := false
	err = cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(entry.initFromValue)
	})
	if err != nil || !found {
		return nil, false, err
	}

	cat.mu.Lock()
	cat.cache.Put(g6, entry)
	cat.mu.Unlock()
	return entry, true, nil
}

// Store upserts a record and bumps the per-order count for new keys.
func (cat *catalog) Store(entry *Entry) error {
	if cat.readOnly {
		return ErrReadOnly
	}
	if entry == nil || entry.Graph6 == "" {
		return errors.Wrap(ErrBadCatalogParam, "entry missing graph6 key")
	}

	var keyBuf [64]byte
	key := formEntryKey(keyBuf[:0], entry.NumVerts, entry.Graph6)
	val := entry.appendValue(nil)

	isNew := false
	err := cat.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			isNew = true
		} else if err != nil {
			return err
		}
		return txn.Set(append([]byte{}, key...), val)
	})
	if err != nil {
		return errors.Wrapf(err, "storing %q", entry.Graph6)
	}

	cat.mu.Lock()
	if isNew && entry.NumVerts < len(cat.numEntries) {
		cat.numEntries[entry.NumVerts]++
		cat.stateDirty = true
	}
	cat.cache.Put(entry.Graph6, entry)
	cat.mu.Unlock()
	return nil
}

// TryAddGraph computes X's spectral record and stores it.
// Returns true if X was not yet cataloged, false for known graphs (or when
// the record could not be computed or written).
func (cat *catalog) TryAddGraph(X *nbl.Graph) bool {
	if cat.readOnly {
		return false
	}
	g6 := X.Graph6()
	if _, found, err := cat.Lookup(g6); found || err != nil {
		return false
	}
	entry, err := ComputeEntry(X, cat.tracePrefix)
	if err != nil {
		return false
	}
	return cat.Store(entry) == nil
}

// ComputeEntry builds the spectral record for a graph.
func ComputeEntry(X *nbl.Graph, tracePrefix int) (*Entry, error) {
	op := nbl.NewOperator(X)
	hash, err := op.SpectralHash()
	if err != nil {
		return nil, err
	}
	return &Entry{
		Graph6:   X.Graph6(),
		NumVerts: X.NumVerts(),
		NumEdges: X.NumEdges(),
		NBLHash:  hash,
		Traces:   append(nbl.Traces{}, op.Traces(tracePrefix)...),
	}, nil
}
