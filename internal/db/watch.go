package db

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Subscription is a live view of the recipe listing. It delivers the full
// ordered listing once on creation and again after every committed write.
// Writes that land while a listing is undelivered collapse into a single
// delivery of the latest state.
type Subscription struct {
	store *Store
	out   chan []Recipe
	dirty chan struct{}
	done  chan struct{}
	once  sync.Once
}

// Watch starts a live view of GetAll. The subscription ends when ctx is
// done, Cancel is called, or the store is closed; the channel returned by
// Recipes is closed afterwards.
func (s *Store) Watch(ctx context.Context) *Subscription {
	sub := &Subscription{
		store: s,
		out:   make(chan []Recipe),
		dirty: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	sub.dirty <- struct{}{}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		sub.Cancel()
		close(sub.out)
		return sub
	}
	s.watchers[sub] = struct{}{}
	s.mu.Unlock()

	go sub.run(ctx)
	return sub
}

// Recipes returns the channel of listings.
func (sub *Subscription) Recipes() <-chan []Recipe {
	return sub.out
}

// Cancel stops the subscription. It is safe to call more than once.
func (sub *Subscription) Cancel() {
	sub.once.Do(func() { close(sub.done) })
}

func (sub *Subscription) run(ctx context.Context) {
	defer func() {
		sub.store.mu.Lock()
		delete(sub.store.watchers, sub)
		sub.store.mu.Unlock()
		close(sub.out)
	}()

	for {
		select {
		case <-sub.done:
			return
		case <-ctx.Done():
			return
		case <-sub.dirty:
		}

		recipes, err := sub.store.GetAll(ctx)
		if err != nil {
			sub.store.log.Warn("live view query failed", zap.Error(err))
			continue
		}

		select {
		case sub.out <- recipes:
		case <-sub.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// notify marks every live view as stale.
func (s *Store) notify() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for sub := range s.watchers {
		select {
		case sub.dirty <- struct{}{}:
		default:
		}
	}
}
