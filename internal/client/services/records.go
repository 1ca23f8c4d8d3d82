package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/kycreview/internal/client/client"
	"github.com/dmitrijs2005/kycreview/internal/client/models"
	"github.com/dmitrijs2005/kycreview/internal/logging"
	"golang.org/x/sync/singleflight"
)

// RecordStore caches the pending queue in server order. It only ever holds
// pending records: resolved ones are removed locally and the list is replaced
// wholesale on refresh.
type RecordStore struct {
	changeHook

	client   client.Client
	session  *SessionManager
	notifier *Notifier
	log      logging.Logger
	group    singleflight.Group

	mu       sync.RWMutex
	records  []models.Record
	inFlight int
	// generation changes on Clear. A fetch started under an older
	// generation neither writes the store nor expires the session.
	generation uint64
}

func NewRecordStore(c client.Client, session *SessionManager, n *Notifier, log logging.Logger) *RecordStore {
	return &RecordStore{client: c, session: session, notifier: n, log: log}
}

// Refresh replaces the store with the service's pending list. Concurrent
// callers within one session share one request; a refresh issued after a
// sign-out never joins a request from before it.
func (s *RecordStore) Refresh(ctx context.Context) ([]models.Record, error) {
	if !s.session.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	s.mu.RLock()
	gen := s.generation
	s.mu.RUnlock()

	key := fmt.Sprintf("pending-%d", gen)
	_, err, _ := s.group.Do(key, func() (any, error) {
		// The call outlives any one caller's cancellation.
		return nil, s.fetch(context.WithoutCancel(ctx), gen)
	})
	if err != nil {
		return nil, err
	}
	return s.Records(), nil
}

func (s *RecordStore) fetch(ctx context.Context, gen uint64) error {
	auth := s.session.AuthorizationHeader()
	if auth == "" {
		return ErrNotAuthenticated
	}

	s.mu.Lock()
	s.inFlight++
	s.mu.Unlock()
	s.fire()

	recs, err := s.client.ListPending(ctx, auth)

	s.mu.Lock()
	s.inFlight--
	stale := gen != s.generation
	s.mu.Unlock()

	if stale {
		s.fire()
		s.log.Debug(ctx, "discarding pending list fetched before sign-out", "error", err)
		return err
	}

	switch {
	case errors.Is(err, client.ErrUnauthorized):
		s.fire()
		s.session.Expire(ctx)
		return err
	case err != nil:
		s.fire()
		s.log.Warn(ctx, "failed to load pending records", "error", err)
		s.notifier.Push(models.NotificationError, msgFetchFailed)
		return fmt.Errorf("%w: %w", ErrFetchFailure, err)
	}

	pending := make([]models.Record, 0, len(recs))
	for _, r := range recs {
		if r.Status == models.StatusPending {
			pending = append(pending, r)
		}
	}

	s.mu.Lock()
	stale = gen != s.generation
	if !stale {
		s.records = pending
	}
	s.mu.Unlock()

	if stale {
		s.log.Debug(ctx, "discarding pending list fetched before sign-out")
	} else {
		s.log.Debug(ctx, "pending records loaded", "count", len(pending))
	}
	s.fire()
	return nil
}

// Remove drops the record with id. Removing an absent id is a no-op.
func (s *RecordStore) Remove(id int64) bool {
	s.mu.Lock()
	removed := false
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		s.fire()
	}
	return removed
}

// Records returns a deep copy of the queue.
func (s *RecordStore) Records() []models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Record, len(s.records))
	for i, r := range s.records {
		out[i] = r.Clone()
	}
	return out
}

func (s *RecordStore) Get(id int64) (models.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.records {
		if r.ID == id {
			return r.Clone(), true
		}
	}
	return models.Record{}, false
}

// Loading reports whether a refresh is in flight.
func (s *RecordStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight > 0
}

func (s *RecordStore) Clear() {
	s.mu.Lock()
	s.records = nil
	s.generation++
	s.mu.Unlock()
	s.fire()
}
