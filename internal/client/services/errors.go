package services

import "errors"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrActionInProgress = errors.New("another action is in progress")
	ErrFetchFailure     = errors.New("failed to load pending records")
	ErrRecordNotLoaded  = errors.New("record is not in the pending queue")
)

// User-facing notification texts.
const (
	msgLoginSuccess       = "Logged in successfully."
	msgInvalidCredentials = "Invalid admin credentials."
	msgLoginFailed        = "Login failed. Check credentials."
	msgSessionExpired     = "Session expired. Please log in again."
	msgLoggedOut          = "Logged out."
	msgFetchFailed        = "Failed to load pending KYC records."
	msgAlreadyProcessed   = "This KYC has already been processed."
	msgNotFound           = "KYC record not found."
	msgServerError        = "Server error, please retry."
	msgNetworkError       = "Network error, please retry."
	msgActionInProgress   = "Another KYC action is still in progress."
	msgApproved           = "KYC approved successfully."
	msgRejected           = "KYC rejected successfully."
)
