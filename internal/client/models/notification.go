package models

// NotificationKind classifies a notification for rendering.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
	NotificationInfo    NotificationKind = "info"
)

// Notification is a transient message shown to the reviewer. ID is a
// millisecond timestamp, unique within a queue.
type Notification struct {
	ID      int64
	Kind    NotificationKind
	Message string
}
