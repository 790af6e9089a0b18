package session

import "time"

// Session represents a server-side user session.
// A session is identified by the SHA512 hash of its raw token; the raw token itself only
// ever lives inside the client's cookie.
type Session struct {
	TokenHash string
	UserID    string
	Expires   int64
}

// Expired returns whether the session has passed its expiry timestamp
func (session *Session) Expired() bool {
	return session.Expires <= time.Now().Unix()
}
