package catalog

import (
	"sync"
)

// Context tracks open catalogs so a CLI or service can close them all and
// wait for the closes to land.
type Context struct {
	mu        sync.Mutex
	openCount sync.WaitGroup
	open      map[*catalog]struct{}
	closing   chan struct{}
	closed    chan struct{}
}

func NewContext() *Context {
	ctx := &Context{
		open:    make(map[*catalog]struct{}),
		closing: make(chan struct{}),
		closed:  make(chan struct{}),
	}
	ctx.openCount.Add(1)
	go func() {
		<-ctx.closing
		ctx.openCount.Done()
		ctx.openCount.Wait()
		close(ctx.closed)
	}()
	return ctx
}

func (ctx *Context) attach(cat *catalog) {
	ctx.openCount.Add(1)
	ctx.mu.Lock()
	ctx.open[cat] = struct{}{}
	ctx.mu.Unlock()
}

func (ctx *Context) detach(cat *catalog) {
	ctx.mu.Lock()
	if _, exists := ctx.open[cat]; exists {
		delete(ctx.open, cat)
		ctx.openCount.Done()
	}
	ctx.mu.Unlock()
}

// Close asks all open catalogs to close, then closes the context.
func (ctx *Context) Close() {
	close(ctx.closing)
	ctx.mu.Lock()
	for cat := range ctx.open {
		go cat.Close()
	}
	ctx.mu.Unlock()
}

// Done signals when Close() completed and all open catalogs have closed.
func (ctx *Context) Done() <-chan struct{} {
	return ctx.closed
}
