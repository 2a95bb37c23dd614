package model

import "time"

// Session backs one issued JWT; the token's jti is the session ID. Deleting
// the row revokes the token before it expires.
type Session struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	WorkOSSessionID *string   `json:"workos_session_id,omitempty"`
	ExpiresAt       time.Time `json:"expires_at"`
	CreatedAt       time.Time `json:"created_at"`
}

func (s *Session) ExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
