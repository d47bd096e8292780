// Package writer runs recipe writes on background workers so that callers
// never block on disk I/O. A write, once queued, runs to completion even if
// the caller stops caring about it.
package writer

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Birkbeck/mobile-computing-project-sabbas16/internal/db"
)

// ErrClosed is returned for writes submitted after Close.
var ErrClosed = errors.New("writer closed")

// Store is the subset of the recipe store the dispatcher writes through.
type Store interface {
	InsertOrReplace(ctx context.Context, r db.Recipe) (int64, error)
	Update(ctx context.Context, r db.Recipe) error
	Delete(ctx context.Context, r db.Recipe) error
}

// Op names a write operation.
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Result reports the outcome of one write.
type Result struct {
	Op  Op
	ID  int64
	Err error
}

type task struct {
	op     Op
	recipe db.Recipe
	done   chan Result
}

// Dispatcher is a fixed pool of workers draining a queue of writes. The
// queue is unbounded so submitting never waits on the workers.
type Dispatcher struct {
	store Store
	log   *zap.Logger

	mu      sync.Mutex
	ready   *sync.Cond
	closed  bool
	pending []task
	wg      sync.WaitGroup
}

// New starts a dispatcher with the given number of workers.
func New(store Store, workers int, log *zap.Logger) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dispatcher{
		store: store,
		log:   log,
	}
	d.ready = sync.NewCond(&d.mu)
	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.worker()
	}
	return d
}

// Insert queues an insert. The returned channel receives exactly one Result
// and may be ignored.
func (d *Dispatcher) Insert(r db.Recipe) <-chan Result { return d.submit(OpInsert, r) }

// Update queues an update.
func (d *Dispatcher) Update(r db.Recipe) <-chan Result { return d.submit(OpUpdate, r) }

// Delete queues a delete.
func (d *Dispatcher) Delete(r db.Recipe) <-chan Result { return d.submit(OpDelete, r) }

func (d *Dispatcher) submit(op Op, r db.Recipe) <-chan Result {
	done := make(chan Result, 1)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		done <- Result{Op: op, ID: r.ID, Err: ErrClosed}
		return done
	}
	d.pending = append(d.pending, task{op: op, recipe: r, done: done})
	d.ready.Signal()
	return done
}

// Close stops accepting writes and waits until every queued write has run.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.ready.Broadcast()
	d.mu.Unlock()

	d.wg.Wait()
}

// next blocks until a task is queued. It reports false once the dispatcher
// is closed and the queue is empty.
func (d *Dispatcher) next() (task, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for len(d.pending) == 0 && !d.closed {
		d.ready.Wait()
	}
	if len(d.pending) == 0 {
		return task{}, false
	}
	t := d.pending[0]
	d.pending[0] = task{}
	d.pending = d.pending[1:]
	return t, true
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for {
		t, ok := d.next()
		if !ok {
			return
		}
		t.done <- d.run(t)
	}
}

func (d *Dispatcher) run(t task) Result {
	// Writes are detached from whoever asked for them.
	ctx := context.Background()

	res := Result{Op: t.op, ID: t.recipe.ID}
	switch t.op {
	case OpInsert:
		res.ID, res.Err = d.store.InsertOrReplace(ctx, t.recipe)
	case OpUpdate:
		res.Err = d.store.Update(ctx, t.recipe)
	case OpDelete:
		res.Err = d.store.Delete(ctx, t.recipe)
	}

	if res.Err != nil {
		d.log.Error("recipe write failed",
			zap.String("op", string(t.op)),
			zap.Int64("id", t.recipe.ID),
			zap.Error(res.Err),
		)
	} else {
		d.log.Debug("recipe write",
			zap.String("op", string(t.op)),
			zap.Int64("id", res.ID),
		)
	}
	return res
}
