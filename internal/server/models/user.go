// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an identity known to the service. Users are created (upserted by
// email) on the first authenticated request; authentication itself is
// performed by the external identity provider.
type User struct {
	ID        string
	Email     string
	Name      string
	CreatedAt time.Time
}
