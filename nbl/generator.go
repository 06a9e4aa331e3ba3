package nbl

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"strconv"

	"github.com/pkg/errors"
)

// GengGenerator shells out to a nauty geng binary, which emits one canonical
// graph6 encoding per isomorphism class of the requested order.
type GengGenerator struct {
	Path string // geng binary, "geng" when empty
}

func (gen *GengGenerator) GenerateGraphs(ctx context.Context, opts GenOpts) *GraphStream {
	next := NewGraphStream().WithContext(ctx)

	path := gen.Path
	if path == "" {
		path = "geng"
	}
	args := make([]string, 0, 3)
	args = append(args, "-q")
	if opts.ConnectedOnly {
		args = append(args, "-c")
	}
	args = append(args, strconv.Itoa(opts.NumVerts))

	go func() {
		defer next.Close()

		cmd := exec.CommandContext(ctx, path, args...)
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			next.Fail(errors.Wrap(ErrGeneratorExec, err.Error()))
			return
		}
		if err := cmd.Start(); err != nil {
			next.Fail(errors.Wrapf(ErrGeneratorExec, "starting %s: %v", path, err))
			return
		}

		decodeLines(ctx, stdout, next)

		if err := cmd.Wait(); err != nil && ctx.Err() == nil {
			next.Fail(errors.Wrapf(ErrGeneratorExec, "%s: %v", path, err))
		}
	}()

	return next
}

// ReaderGenerator streams graph6 encodings from a line-oriented reader,
// e.g. a pre-generated corpus file.  GenOpts filters are applied to each
// decoded graph rather than steering generation.
type ReaderGenerator struct {
	R io.Reader
}

func (gen *ReaderGenerator) GenerateGraphs(ctx context.Context, opts GenOpts) *GraphStream {
	next := NewGraphStream().WithContext(ctx)
	go func() {
		defer next.Close()
		decodeLines(ctx, gen.R, next)
	}()
	return next.Filter(func(X *Graph) bool {
		if opts.NumVerts > 0 && X.NumVerts() != opts.NumVerts {
			return false
		}
		if opts.ConnectedOnly && !X.IsConnected() {
			return false
		}
		return true
	})
}

// decodeLines pushes each non-empty line of r as a decoded graph.
// Malformed lines are counted on the stream, never fatal: one bad encoding
// must not abort a batch of many graphs.
func decodeLines(ctx context.Context, r io.Reader, next *GraphStream) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) == 0 {
			continue
		}
		X, err := NewGraphFromGraph6(line)
		if err != nil {
			next.Malformed.Add(1)
			continue
		}
		select {
		case next.Outlet <- X:
		case <-ctx.Done():
			X.Reclaim()
			return
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		next.Fail(errors.Wrap(ErrGeneratorExec, err.Error()))
	}
}
