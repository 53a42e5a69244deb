package models

import "time"

// TimelineEntry is one event in a file's owner-facing history. Type is
// "download" for fetches and the audit action ("granted", "revoked",
// "expired") for permission changes.
type TimelineEntry struct {
	Type string
	By   string
	To   *string
	At   time.Time
}

// Timeline is the file-scoped merged view of download and audit events.
//
// Entries holds the download block followed by the audit block, each
// newest-first; the two blocks are not interleaved into one global order.
// RevokedEmails and ExpiredEmails list grantees whose access has been
// revoked or detected expired, so callers can suppress stale revoke
// affordances.
type Timeline struct {
	Entries       []TimelineEntry
	RevokedEmails []string
	ExpiredEmails []string
}
