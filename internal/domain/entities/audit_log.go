package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Audit actions emitted by this core. The action column is free-text so
// external collaborators (auth events) can append their own values.
const (
	AuditActionCredentialCreate = "credential.create"
	AuditActionCredentialRead   = "credential.read"
	AuditActionCredentialUpdate = "credential.update"
	AuditActionCredentialDelete = "credential.delete"
	AuditActionShareGrant       = "share.grant"
	AuditActionShareRevoke      = "share.revoke"
	AuditActionEkycStart        = "ekyc.start"
	AuditActionEkycResult       = "ekyc.result"
	AuditActionEkycExpire       = "ekyc.expire"
	AuditActionUserDeactivate   = "user.deactivate"
	AuditActionUserDelete       = "user.delete"
)

// AuditLog is an immutable record of a sensitive action. UserID is nullable:
// a null actor means the action had no authenticated principal, either a
// system job or an actor whose account was since deleted. ResourceID is not
// a strict foreign key; it may reference any entity family.
type AuditLog struct {
	ID           int64       `json:"id"`
	UserID       null.Int64  `json:"userId,omitempty"`
	Action       string      `json:"action"`
	ResourceType null.String `json:"resourceType,omitempty"`
	ResourceID   null.Int64  `json:"resourceId,omitempty"`
	IPAddress    null.String `json:"ipAddress,omitempty"`
	UserAgent    null.String `json:"userAgent,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
}

// AuditMeta carries request-scoped metadata recorded alongside audit entries.
// Both fields are optional; system jobs leave them empty.
type AuditMeta struct {
	IPAddress string
	UserAgent string
}

// AuditQueryFilter narrows an audit trail query. Zero values mean "no filter".
type AuditQueryFilter struct {
	UserID       int64
	ActionPrefix string
	Since        time.Time
	Until        time.Time
}
