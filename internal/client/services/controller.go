package services

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/kycreview/internal/client/client"
	"github.com/dmitrijs2005/kycreview/internal/client/models"
	"github.com/dmitrijs2005/kycreview/internal/logging"
)

// Snapshot is a read-only copy of the console state.
type Snapshot struct {
	Authenticated bool
	Username      string
	Records       []models.Record
	Selected      *models.Record
	RejectTarget  *models.Record
	RejectReason  string
	// ProcessingID is nil when no action is in flight.
	ProcessingID  *int64
	Notifications []models.Notification
	Loading       bool
}

// Option configures a ReviewController.
type Option func(*options)

type options struct {
	notificationTTL time.Duration
}

// WithNotificationTTL overrides DefaultNotificationTTL.
func WithNotificationTTL(d time.Duration) Option {
	return func(o *options) { o.notificationTTL = d }
}

// ReviewController is the entry point of the review workflow. It owns one
// instance of every component and republishes their changes as snapshots.
type ReviewController struct {
	session   *SessionManager
	store     *RecordStore
	selection *Selection
	actions   *ActionCoordinator
	notifier  *Notifier
	log       logging.Logger

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

func NewReviewController(c client.Client, tokens TokenStore, log logging.Logger, opts ...Option) *ReviewController {
	o := options{notificationTTL: DefaultNotificationTTL}
	for _, opt := range opts {
		opt(&o)
	}

	n := NewNotifier(o.notificationTTL)
	session := NewSessionManager(c, tokens, n, log.With("component", "session"))
	store := NewRecordStore(c, session, n, log.With("component", "records"))
	sel := NewSelection()
	actions := NewActionCoordinator(c, session, store, sel, n, log.With("component", "actions"))

	rc := &ReviewController{
		session:   session,
		store:     store,
		selection: sel,
		actions:   actions,
		notifier:  n,
		log:       log,
		subs:      make(map[int]func(Snapshot)),
	}

	session.OnSignOut(func() {
		store.Clear()
		sel.Clear()
	})

	n.OnChange(rc.publish)
	session.OnChange(rc.publish)
	store.OnChange(rc.publish)
	sel.OnChange(rc.publish)
	actions.OnChange(rc.publish)

	return rc
}

// Init loads the persisted token. It does not authenticate.
func (rc *ReviewController) Init(ctx context.Context) error {
	return rc.session.Init(ctx)
}

// Login authenticates and, on success, loads the pending queue. A failed
// initial load is reported through notifications only.
func (rc *ReviewController) Login(ctx context.Context, username, password string) error {
	if _, err := rc.session.Login(ctx, username, password); err != nil {
		return err
	}
	if _, err := rc.store.Refresh(ctx); err != nil {
		rc.log.Debug(ctx, "initial refresh failed", "error", err)
	}
	return nil
}

func (rc *ReviewController) Logout(ctx context.Context) {
	rc.session.Logout(ctx)
}

func (rc *ReviewController) Refresh(ctx context.Context) ([]models.Record, error) {
	return rc.store.Refresh(ctx)
}

// OpenDetails shows the loaded record with id.
func (rc *ReviewController) OpenDetails(id int64) (models.Record, error) {
	r, ok := rc.store.Get(id)
	if !ok {
		return models.Record{}, ErrRecordNotLoaded
	}
	rc.selection.Select(r)
	return r, nil
}

func (rc *ReviewController) CloseDetails() {
	rc.selection.CloseDetails()
}

// OpenReject opens the rejection prompt for the loaded record with id.
func (rc *ReviewController) OpenReject(id int64) error {
	r, ok := rc.store.Get(id)
	if !ok {
		return ErrRecordNotLoaded
	}
	rc.selection.OpenReject(r)
	return nil
}

func (rc *ReviewController) SetRejectReason(text string) {
	rc.selection.SetReason(text)
}

func (rc *ReviewController) CancelReject() {
	rc.selection.CloseReject()
}

// SubmitReject rejects the prompt's target with the entered reason. The
// prompt stays open when the call fails.
func (rc *ReviewController) SubmitReject(ctx context.Context) (RejectionOutcome, error) {
	target, ok := rc.selection.RejectTarget()
	if !ok {
		return RejectionOutcome{}, ErrRecordNotLoaded
	}
	return rc.actions.Reject(ctx, target.ID, rc.selection.Reason())
}

func (rc *ReviewController) Approve(ctx context.Context, id int64) (ApprovalOutcome, error) {
	return rc.actions.Approve(ctx, id)
}

func (rc *ReviewController) Reject(ctx context.Context, id int64, reason string) (RejectionOutcome, error) {
	return rc.actions.Reject(ctx, id, reason)
}

// Dismiss removes a notification early.
func (rc *ReviewController) Dismiss(id int64) bool {
	return rc.notifier.Dismiss(id)
}

// Session returns the current session, including the stored bearer token.
func (rc *ReviewController) Session() models.Session {
	return rc.session.Session()
}

// AuthorizationHeader is the credential sent with protected calls, or ""
// when not authenticated.
func (rc *ReviewController) AuthorizationHeader() string {
	return rc.session.AuthorizationHeader()
}

// LastUsername is the username of the most recent successful login.
func (rc *ReviewController) LastUsername() string {
	return rc.session.LastUsername()
}

func (rc *ReviewController) Snapshot() Snapshot {
	sess := rc.session.Session()
	snap := Snapshot{
		Authenticated: sess.Authenticated,
		Username:      sess.Username,
		Records:       rc.store.Records(),
		RejectReason:  rc.selection.Reason(),
		Notifications: rc.notifier.List(),
		Loading:       rc.store.Loading(),
	}
	if r, ok := rc.selection.Selected(); ok {
		snap.Selected = &r
	}
	if r, ok := rc.selection.RejectTarget(); ok {
		snap.RejectTarget = &r
	}
	if id, ok := rc.actions.ProcessingID(); ok {
		snap.ProcessingID = &id
	}
	return snap
}

// Subscribe registers fn to receive a snapshot after every state change,
// including notification expiry. fn runs on the goroutine that made the
// change and must not block. The returned func unsubscribes.
func (rc *ReviewController) Subscribe(fn func(Snapshot)) func() {
	rc.subMu.Lock()
	id := rc.nextSub
	rc.nextSub++
	rc.subs[id] = fn
	rc.subMu.Unlock()

	return func() {
		rc.subMu.Lock()
		delete(rc.subs, id)
		rc.subMu.Unlock()
	}
}

// Close stops every notification timer.
func (rc *ReviewController) Close() {
	rc.notifier.Close()
}

func (rc *ReviewController) publish() {
	rc.subMu.Lock()
	if len(rc.subs) == 0 {
		rc.subMu.Unlock()
		return
	}
	fns := make([]func(Snapshot), 0, len(rc.subs))
	for _, fn := range rc.subs {
		fns = append(fns, fn)
	}
	rc.subMu.Unlock()

	snap := rc.Snapshot()
	for _, fn := range fns {
		fn(snap)
	}
}
