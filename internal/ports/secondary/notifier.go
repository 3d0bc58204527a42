package secondary

// Severity classifies a user-facing notification.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
)

// Notifier is the user-facing notification sink. Degraded persistence
// outcomes are surfaced here so operators know when to export data; delivery
// is fire-and-forget and must never block or fail the caller.
type Notifier interface {
	Notify(message string, severity Severity)
}
