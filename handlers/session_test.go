package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requestWith(cookie *http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/ws", nil)
	if cookie != nil {
		r.AddCookie(cookie)
	}
	return r
}

func TestSessionRoundTrip(t *testing.T) {
	codec := NewSessionCodec([]byte("a very secret hash key for tests"))
	session := codec.NewSession()
	require.Len(t, session.ID, 32)

	cookie, err := codec.Cookie(session)
	require.NoError(t, err)
	assert.Equal(t, SessionCookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)

	got, err := codec.Get(requestWith(cookie))
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)

	again, created := codec.GetOrCreate(requestWith(cookie))
	assert.False(t, created)
	assert.Equal(t, session.ID, again.ID)
}

func TestSessionRejectsBadCookies(t *testing.T) {
	codec := NewSessionCodec([]byte("a very secret hash key for tests"))

	_, err := codec.Get(requestWith(nil))
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = codec.Get(requestWith(&http.Cookie{Name: SessionCookieName, Value: "forged"}))
	assert.ErrorIs(t, err, ErrNoSession)

	other := NewSessionCodec([]byte("some other key entirely, not ours"))
	cookie, err := other.Cookie(other.NewSession())
	require.NoError(t, err)
	_, err = codec.Get(requestWith(cookie))
	assert.ErrorIs(t, err, ErrNoSession, "signed with another key")

	expired := codec.NewSession()
	expired.ExpiresAt = time.Now().Add(-time.Minute)
	cookie, err = codec.Cookie(expired)
	require.NoError(t, err)
	_, err = codec.Get(requestWith(cookie))
	assert.ErrorIs(t, err, ErrNoSession)

	fresh, created := codec.GetOrCreate(requestWith(nil))
	assert.True(t, created)
	assert.NotEmpty(t, fresh.ID)
}

func TestSessionRandomKey(t *testing.T) {
	a := NewSessionCodec(nil)
	b := NewSessionCodec(nil)
	cookie, err := a.Cookie(a.NewSession())
	require.NoError(t, err)

	_, err = a.Get(requestWith(cookie))
	require.NoError(t, err)
	_, err = b.Get(requestWith(cookie))
	assert.Error(t, err)
}
