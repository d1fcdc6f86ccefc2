package handlers

import (
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

const (
	SessionCookieName = "pumpkin_session"
	sessionLifetime   = 30 * 24 * time.Hour
)

var ErrNoSession = errors.New("no valid session cookie")

// Session identifies a browser across websocket reconnects
type Session struct {
	ID        string
	StartedAt time.Time
	ExpiresAt time.Time
}

// SessionCodec signs and verifies session cookies
type SessionCodec struct {
	secure *securecookie.SecureCookie
}

// NewSessionCodec creates a codec. An empty hash key gets a random one, which
// means sessions do not survive a server restart.
func NewSessionCodec(hashKey []byte) *SessionCodec {
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(32)
	}
	secure := securecookie.New(hashKey, nil)
	secure.MaxAge(int(sessionLifetime.Seconds()))
	return &SessionCodec{secure: secure}
}

// NewSession creates a session with a fresh random ID
func (sc *SessionCodec) NewSession() *Session {
	now := time.Now()
	return &Session{
		ID:        hex.EncodeToString(securecookie.GenerateRandomKey(16)),
		StartedAt: now,
		ExpiresAt: now.Add(sessionLifetime),
	}
}

// Get reads the session from the request cookie
func (sc *SessionCodec) Get(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil, ErrNoSession
	}

	session := new(Session)
	if err := sc.secure.Decode(SessionCookieName, cookie.Value, session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSession, err)
	}
	if session.ExpiresAt.Before(time.Now()) || session.ID == "" {
		return nil, ErrNoSession
	}
	return session, nil
}

// GetOrCreate returns the request's session, or a new one when it has none
func (sc *SessionCodec) GetOrCreate(r *http.Request) (session *Session, created bool) {
	if session, err := sc.Get(r); err == nil {
		return session, false
	}
	return sc.NewSession(), true
}

// Cookie encodes and signs the session as a cookie
func (sc *SessionCodec) Cookie(session *Session) (*http.Cookie, error) {
	encoded, err := sc.secure.Encode(SessionCookieName, session)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    encoded,
		Path:     "/",
		Expires:  session.ExpiresAt,
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}, nil
}
