package models

import "time"

// AuditAction enumerates the permission-affecting actions recorded in the
// audit trail.
type AuditAction string

const (
	AuditActionGranted AuditAction = "granted"
	AuditActionRevoked AuditAction = "revoked"
	AuditActionExpired AuditAction = "expired"
)

// DownloadEvent records one successful authorized fetch. Append-only.
type DownloadEvent struct {
	ID        string
	FileID    string
	UserID    string
	CreatedAt time.Time
}

// AuditEvent records a permission-affecting action. UserID is the acting
// user: the grantor for granted/revoked, the grantor-of-record for expired.
// ToUserID, when set, is the grantee the action concerns. Append-only.
type AuditEvent struct {
	ID        string
	UserID    string
	FileID    string
	Action    AuditAction
	ToUserID  *string
	CreatedAt time.Time
}

// DownloadLog is a DownloadEvent joined with the downloader's email, as
// served to file owners.
type DownloadLog struct {
	By string
	At time.Time
}

// AuditLog is an AuditEvent joined with the acting user's and grantee's
// emails, as served to file owners.
type AuditLog struct {
	Action AuditAction
	By     string
	To     *string
	At     time.Time
}
