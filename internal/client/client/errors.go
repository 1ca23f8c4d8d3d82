package client

import "errors"

var (
	// Login outcomes.
	ErrInvalidCredentials = errors.New("invalid admin credentials")
	ErrAuthFailure        = errors.New("login failed")

	// Protected-call outcomes.
	ErrUnauthorized     = errors.New("unauthorized")
	ErrAlreadyProcessed = errors.New("kyc already processed")
	ErrNotFound         = errors.New("kyc not found")
	ErrServerError      = errors.New("server error")

	// Transport-level failure: the request never produced an HTTP response.
	ErrNetworkFailure = errors.New("network failure")
)
