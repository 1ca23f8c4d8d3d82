package client

import (
	"context"

	"github.com/dmitrijs2005/kycreview/internal/client/models"
)

// Client is the transport contract of the remote KYC service.
//
// authorization is the ready-made value of the Authorization header; the
// client never derives it itself.
type Client interface {
	Close() error
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)
	ListPending(ctx context.Context, authorization string) ([]models.Record, error)
	Approve(ctx context.Context, authorization string, id int64) (string, error)
	// Reject sends reason as a form field when it is non-nil and no body at all
	// when it is nil.
	Reject(ctx context.Context, authorization string, id int64, reason *string) error
}
