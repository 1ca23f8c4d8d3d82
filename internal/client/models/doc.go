// Package models defines the client-side data model of the KYC review console:
// pending records, reviewer credentials and session state, and transient
// notifications.
package models
