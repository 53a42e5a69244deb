package models

import "time"

// AccessGrant is a standing permission for ToUserID to fetch FileID, issued
// by FromUserID (the file owner). ExpiresAt == nil means the grant never
// expires. Expiry is evaluated lazily at access time; an expired grant stays
// in storage until the owner revokes it.
//
// At most one grant exists per (FromUserID, ToUserID, FileID) triple. The
// service checks before insert and the table carries a unique constraint as
// the authoritative guard.
type AccessGrant struct {
	ID         string
	FromUserID string
	ToUserID   string
	FileID     string
	ExpiresAt  *time.Time
	CreatedAt  time.Time
}

// Expired reports whether the grant is past its deadline at the given
// instant. A grant expiring exactly at now is still valid.
func (g *AccessGrant) Expired(now time.Time) bool {
	return g.ExpiresAt != nil && g.ExpiresAt.Before(now)
}
