package client

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/kycreview/internal/client/kyctest"
	"github.com/dmitrijs2005/kycreview/internal/client/models"
	"github.com/dmitrijs2005/kycreview/internal/logging"
	"github.com/stretchr/testify/require"
)

func basic(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

var validAuth = basic(kyctest.DefaultUsername, kyctest.DefaultPassword)

func newTestClient(t *testing.T, records ...models.Record) (*HTTPClient, *kyctest.Server) {
	t.Helper()
	srv := kyctest.NewServer(records...)
	t.Cleanup(srv.Close)

	c, err := NewKYCClient(srv.URL+"/", 5*time.Second, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, srv
}

func TestNewKYCClient_RejectsUnsupportedScheme(t *testing.T) {
	_, err := NewKYCClient("ftp://example.org", time.Second, logging.Discard())
	require.Error(t, err)

	_, err = NewKYCClient("://bad", time.Second, logging.Discard())
	require.Error(t, err)
}

func TestLogin_Success(t *testing.T) {
	c, srv := newTestClient(t)

	lr, err := c.Login(context.Background(), kyctest.DefaultUsername, kyctest.DefaultPassword)
	require.NoError(t, err)
	require.Equal(t, kyctest.DefaultToken, lr.AccessToken)
	require.Equal(t, "bearer", lr.TokenType)
	require.Equal(t, "admin", lr.Role)

	calls := srv.CallsTo("/admin/login")
	require.Len(t, calls, 1)
	require.Equal(t, "application/json", calls[0].ContentType)
	require.JSONEq(t, `{"username":"admin","password":"secret"}`, calls[0].Body)
	require.Empty(t, calls[0].Authorization, "login is unauthenticated")
	require.NotEmpty(t, calls[0].RequestID)
}

func TestLogin_WrongPasswordIsInvalidCredentials(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.Login(context.Background(), "admin", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_OtherStatusIsAuthFailure(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Force(kyctest.RouteLogin, http.StatusInternalServerError)

	_, err := c.Login(context.Background(), "admin", "secret")
	require.ErrorIs(t, err, ErrAuthFailure)
	require.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_MalformedBodyIsAuthFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer ts.Close()

	c, err := NewKYCClient(ts.URL, time.Second, logging.Discard())
	require.NoError(t, err)

	_, err = c.Login(context.Background(), "a", "b")
	require.ErrorIs(t, err, ErrAuthFailure)
}

func TestLogin_NetworkFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close()

	c, err := NewKYCClient(ts.URL, time.Second, logging.Discard())
	require.NoError(t, err)

	_, err = c.Login(context.Background(), "a", "b")
	require.ErrorIs(t, err, ErrNetworkFailure)
}

func TestListPending_ReturnsOnlyPendingAndSendsBasicAuth(t *testing.T) {
	c, srv := newTestClient(t,
		models.Record{ID: 1, Email: "a@x", Status: models.StatusPending},
		models.Record{ID: 2, Email: "b@x", Status: models.StatusApproved},
		models.Record{ID: 3, Email: "c@x", Status: models.StatusPending},
	)

	records, err := c.ListPending(context.Background(), validAuth)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, int64(1), records[0].ID)
	require.Equal(t, int64(3), records[1].ID)

	calls := srv.CallsTo("/admin/kyc/pending")
	require.Len(t, calls, 1)
	require.Equal(t, validAuth, calls[0].Authorization)
}

func TestListPending_EmptyQueueIsEmptySlice(t *testing.T) {
	c, _ := newTestClient(t)

	records, err := c.ListPending(context.Background(), validAuth)
	require.NoError(t, err)
	require.NotNil(t, records)
	require.Empty(t, records)
}

func TestListPending_MapsStatuses(t *testing.T) {
	c, srv := newTestClient(t)

	_, err := c.ListPending(context.Background(), basic("admin", "nope"))
	require.ErrorIs(t, err, ErrUnauthorized)

	srv.Force(kyctest.RoutePending, http.StatusBadGateway)
	_, err = c.ListPending(context.Background(), validAuth)
	require.ErrorIs(t, err, ErrServerError)
	require.Contains(t, err.Error(), "502")
}

func TestApprove_SuccessWithAndWithoutMessage(t *testing.T) {
	c, srv := newTestClient(t,
		models.Record{ID: 10, Email: "a@x"},
		models.Record{ID: 11, Email: "b@x"},
	)

	msg, err := c.Approve(context.Background(), validAuth, 10)
	require.NoError(t, err)
	require.Empty(t, msg)

	srv.SetApproveMessage("KYC approved for b@x")
	msg, err = c.Approve(context.Background(), validAuth, 11)
	require.NoError(t, err)
	require.Equal(t, "KYC approved for b@x", msg)

	st, _ := srv.Status(10)
	require.Equal(t, models.StatusApproved, st)

	calls := srv.CallsTo("/admin/kyc/10/approve")
	require.Len(t, calls, 1)
	require.Equal(t, http.MethodPost, calls[0].Method)
	require.Equal(t, validAuth, calls[0].Authorization)
	require.Empty(t, calls[0].Body)
}

func TestApprove_MapsStatuses(t *testing.T) {
	c, srv := newTestClient(t, models.Record{ID: 5, Email: "a@x", Status: models.StatusRejected})

	_, err := c.Approve(context.Background(), validAuth, 5)
	require.ErrorIs(t, err, ErrAlreadyProcessed)
	require.Contains(t, err.Error(), "KYC already processed")

	_, err = c.Approve(context.Background(), validAuth, 404)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = c.Approve(context.Background(), basic("x", "y"), 5)
	require.ErrorIs(t, err, ErrUnauthorized)

	srv.Force(kyctest.RouteApprove, http.StatusServiceUnavailable)
	_, err = c.Approve(context.Background(), validAuth, 5)
	require.ErrorIs(t, err, ErrServerError)
}

func TestReject_WithReasonSendsForm(t *testing.T) {
	c, srv := newTestClient(t, models.Record{ID: 8, Email: "a@x"})

	reason := "blurry photo"
	require.NoError(t, c.Reject(context.Background(), validAuth, 8, &reason))

	calls := srv.CallsTo("/admin/kyc/8/reject")
	require.Len(t, calls, 1)
	require.Equal(t, "application/x-www-form-urlencoded", calls[0].ContentType)
	require.Equal(t, "blurry photo", calls[0].Form.Get("reason"))

	st, _ := srv.Status(8)
	require.Equal(t, models.StatusRejected, st)
}

func TestReject_NilReasonSendsNoBody(t *testing.T) {
	c, srv := newTestClient(t, models.Record{ID: 9, Email: "a@x"})

	require.NoError(t, c.Reject(context.Background(), validAuth, 9, nil))

	calls := srv.CallsTo("/admin/kyc/9/reject")
	require.Len(t, calls, 1)
	require.Empty(t, calls[0].Body)
	require.Empty(t, calls[0].ContentType)
	require.Nil(t, calls[0].Form)
}

func TestReject_MapsStatuses(t *testing.T) {
	c, _ := newTestClient(t, models.Record{ID: 1, Email: "a@x", Status: models.StatusApproved})

	require.ErrorIs(t, c.Reject(context.Background(), validAuth, 1, nil), ErrAlreadyProcessed)
	require.ErrorIs(t, c.Reject(context.Background(), validAuth, 2, nil), ErrNotFound)
}

func TestDo_HonorsContextCancellation(t *testing.T) {
	c, _ := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListPending(ctx, validAuth)
	require.ErrorIs(t, err, ErrNetworkFailure)
}

func TestBaseURL_ReturnsCopy(t *testing.T) {
	c, srv := newTestClient(t)

	u := c.BaseURL()
	u.Path = "/changed"
	require.Equal(t, srv.URL, c.BaseURL().String())
}
