package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/kycreview/internal/client/client"
	"github.com/dmitrijs2005/kycreview/internal/client/models"
	"github.com/dmitrijs2005/kycreview/internal/logging"
)

// ApprovalOutcome describes a successful approval.
type ApprovalOutcome struct {
	ID      int64
	Message string
}

// RejectionOutcome describes a successful rejection. Reason is the trimmed
// text that was sent, empty when no reason field was sent.
type RejectionOutcome struct {
	ID     int64
	Reason string
}

// ActionCoordinator runs approve and reject calls. At most one action is in
// flight across the whole console; its record id is exposed while it runs.
type ActionCoordinator struct {
	changeHook

	client    client.Client
	session   *SessionManager
	store     *RecordStore
	selection *Selection
	notifier  *Notifier
	log       logging.Logger

	mu           sync.Mutex
	busy         bool
	processingID int64
}

func NewActionCoordinator(c client.Client, session *SessionManager, store *RecordStore, sel *Selection, n *Notifier, log logging.Logger) *ActionCoordinator {
	return &ActionCoordinator{client: c, session: session, store: store, selection: sel, notifier: n, log: log}
}

// ProcessingID returns the id of the record whose action is in flight.
func (a *ActionCoordinator) ProcessingID() (int64, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.processingID, a.busy
}

// Approve approves the record with id.
func (a *ActionCoordinator) Approve(ctx context.Context, id int64) (ApprovalOutcome, error) {
	if err := a.acquire(ctx, id); err != nil {
		return ApprovalOutcome{}, err
	}
	defer a.release()

	msg, err := a.client.Approve(ctx, a.session.AuthorizationHeader(), id)
	if err != nil {
		return ApprovalOutcome{}, a.fail(ctx, "approve", id, err)
	}

	a.store.Remove(id)
	a.selection.ClearIfSelected(id)
	if msg == "" {
		msg = msgApproved
	}
	a.log.Info(ctx, "kyc approved", "record_id", id)
	a.notifier.Push(models.NotificationSuccess, msg)
	return ApprovalOutcome{ID: id, Message: msg}, nil
}

// Reject rejects the record with id. The reason is trimmed; a blank reason
// sends no reason field at all.
func (a *ActionCoordinator) Reject(ctx context.Context, id int64, reason string) (RejectionOutcome, error) {
	if err := a.acquire(ctx, id); err != nil {
		return RejectionOutcome{}, err
	}
	defer a.release()

	trimmed := strings.TrimSpace(reason)
	var field *string
	if trimmed != "" {
		field = &trimmed
	}

	if err := a.client.Reject(ctx, a.session.AuthorizationHeader(), id, field); err != nil {
		return RejectionOutcome{}, a.fail(ctx, "reject", id, err)
	}

	a.store.Remove(id)
	a.selection.ClearIfSelected(id)
	a.selection.CloseReject()
	a.log.Info(ctx, "kyc rejected", "record_id", id, "with_reason", field != nil)
	a.notifier.Push(models.NotificationSuccess, msgRejected)
	return RejectionOutcome{ID: id, Reason: trimmed}, nil
}

func (a *ActionCoordinator) acquire(ctx context.Context, id int64) error {
	if !a.session.Authenticated() {
		return ErrNotAuthenticated
	}

	a.mu.Lock()
	if a.busy {
		current := a.processingID
		a.mu.Unlock()
		a.log.Debug(ctx, "action refused, another is in flight", "record_id", id, "processing_id", current)
		a.notifier.Push(models.NotificationInfo, msgActionInProgress)
		return ErrActionInProgress
	}
	a.busy = true
	a.processingID = id
	a.mu.Unlock()

	a.fire()
	return nil
}

func (a *ActionCoordinator) release() {
	a.mu.Lock()
	a.busy = false
	a.processingID = 0
	a.mu.Unlock()
	a.fire()
}

// fail turns a failed action into its notification and state transition and
// returns err unchanged.
func (a *ActionCoordinator) fail(ctx context.Context, action string, id int64, err error) error {
	a.log.Warn(ctx, "kyc action failed", "action", action, "record_id", id, "error", err)

	switch {
	case errors.Is(err, client.ErrUnauthorized):
		a.session.Expire(ctx)
	case errors.Is(err, client.ErrAlreadyProcessed):
		a.notifier.Push(models.NotificationError, msgAlreadyProcessed)
		// The local copy is stale; only a refresh may drop it.
		if _, rerr := a.store.Refresh(ctx); rerr != nil {
			a.log.Warn(ctx, "reconciling refresh failed", "record_id", id, "error", rerr)
		}
	case errors.Is(err, client.ErrNotFound):
		a.notifier.Push(models.NotificationError, msgNotFound)
	case errors.Is(err, client.ErrNetworkFailure):
		a.notifier.Push(models.NotificationError, msgNetworkError)
	default:
		a.notifier.Push(models.NotificationError, msgServerError)
	}
	return err
}
