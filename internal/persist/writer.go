package persist

import (
	"context"
	"log"

	"github.com/Checkmartyr/Hyperlocal-Community-Barter/internal/models"
)

// IdentityCreated queues a new identity for durable storage. Never blocks:
// when the queue is full the event is dropped and logged, keeping the
// write path latency-free (best-effort durability).
func (s *Store) IdentityCreated(id models.Identity) {
	s.enqueue(event{identity: &id})
}

// ListingCreated queues a new listing for durable storage.
func (s *Store) ListingCreated(l models.Listing) {
	s.enqueue(event{listing: &l})
}

func (s *Store) enqueue(ev event) {
	select {
	case s.events <- ev:
	default:
		log.Printf("persist: event queue full, dropping write")
	}
}

// Run drains the event queue until the context is canceled, then flushes
// whatever is still buffered. Intended to run in its own goroutine.
func (s *Store) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.flush()
			return
		case ev := <-s.events:
			s.write(ev)
		}
	}
}

func (s *Store) flush() {
	for {
		select {
		case ev := <-s.events:
			s.write(ev)
		default:
			return
		}
	}
}

func (s *Store) write(ev event) {
	switch {
	case ev.identity != nil:
		if err := s.db.Create(ev.identity).Error; err != nil {
			log.Printf("persist: save identity %s: %v", ev.identity.ID, err)
		}
	case ev.listing != nil:
		if err := s.db.Create(ev.listing).Error; err != nil {
			log.Printf("persist: save listing %s: %v", ev.listing.ID, err)
		}
	}
}
