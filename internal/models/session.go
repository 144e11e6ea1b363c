package models

import "time"

// Session binds an issued bearer token to an identity. Sessions live only
// in memory and do not survive a restart; expiry and revocation are both
// checked when the token is resolved.
type Session struct {
	Token      string
	IdentityID string
	IssuedAt   time.Time
	ExpiresAt  time.Time
	Revoked    bool
}
