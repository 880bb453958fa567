package domain

import "time"

// Audit event kinds recorded by the handshake flow.
const (
	AuditLoginFailed    = "login_failed"
	AuditLoginSucceeded = "login_succeeded"
	AuditBound          = "bound"
	AuditLogout         = "logout"
)

// AuditEvent records a single authentication-flow occurrence. EmployeeID is
// empty for events that happen before an identity is established.
type AuditEvent struct {
	SessionUserID string
	EmployeeID    string
	Kind          string
	At            time.Time
}
