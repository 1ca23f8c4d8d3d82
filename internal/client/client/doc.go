// Package client contains the transport layer of the KYC review console.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (Client) for the remote KYC service:
//     Login, ListPending, Approve and Reject.
//  2. An HTTP/JSON implementation (HTTPClient) that tags every request with
//     an X-Request-ID and maps response status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Login: 401 is ErrInvalidCredentials, any other failure ErrAuthFailure.
// Protected calls: 401 ErrUnauthorized, 400 ErrAlreadyProcessed,
// 404 ErrNotFound, anything else ErrServerError. Requests that never got a
// response fail with ErrNetworkFailure. Match them with errors.Is.
//
// # Authorization
//
// Protected calls take a ready-made Authorization header value. The session
// layer builds it from the reviewer's credentials (Basic), not from the
// bearer token returned by Login.
package client
