// Package cli provides the interactive KYC review console.
//
// It wires configuration, the local token store, the KYC service client, the
// review controller and a REPL. Typical flow: prompt for credentials, load
// the pending queue, then inspect, approve or reject records while
// notifications are printed as they arrive.
//
// Commands:
//   - login / logout
//   - refresh (list): reload the pending queue
//   - show <id> / close: the details view
//   - approve <id>, reject <id> [reason...]
//   - download <id> front|selfie: save a document image
//   - notes / dismiss <id>: visible notifications
//
// The console is started via App.Run(ctx), which blocks until the user exits.
package cli
