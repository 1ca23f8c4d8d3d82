// Package services implements the review workflow of the KYC console.
//
// Components, leaves first:
//
//   - Notifier: transient messages, each removed by its own timer.
//   - SessionManager: credentials, login/logout, the Basic authorization
//     header and the shared expiry path for 401 responses.
//   - RecordStore: the pending queue, replaced wholesale on every refresh.
//   - Selection: the record open in the details view and the rejection
//     prompt.
//   - ActionCoordinator: approve/reject with a single system-wide in-flight
//     action.
//   - ReviewController: composes the above and publishes snapshots.
//
// Every remote failure is handled where it happens: it becomes a
// notification plus a defined state transition, and the error is returned
// only so callers can inspect it with errors.Is.
package services
