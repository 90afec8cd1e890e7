package session

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the browser cookie carrying the signed session ID.
const CookieName = "session"

// Manager issues and verifies the session cookie. The cookie value is a
// JWT whose ID claim is the server-side session key, HMAC-signed so a
// client cannot forge or swap identifiers.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
}

func NewManager(store Store, secret []byte, ttl time.Duration) *Manager {
	return &Manager{store: store, secret: secret, ttl: ttl}
}

// Issue creates a server-side session for userID and sets the cookie.
// MaxAge is left unset so the cookie dies with the browser.
func (m *Manager) Issue(c *gin.Context, userID uint) error {
	sid, err := m.store.Create(c.Request.Context(), userID, m.ttl)
	if err != nil {
		return err
	}
	claims := jwt.RegisteredClaims{
		ID:        sid,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("session: sign cookie: %w", err)
	}
	c.SetCookie(CookieName, signed, 0, "/", "", false, true)
	return nil
}

// UserID resolves the request's cookie to a logged-in user, if any.
func (m *Manager) UserID(c *gin.Context) (uint, bool) {
	raw, err := c.Cookie(CookieName)
	if err != nil {
		return 0, false
	}
	sid, ok := m.verify(raw)
	if !ok {
		return 0, false
	}
	userID, err := m.store.Get(c.Request.Context(), sid)
	if err != nil {
		return 0, false
	}
	return userID, true
}

// Clear destroys the server-side session, if present, and expires the
// cookie.
func (m *Manager) Clear(c *gin.Context) {
	if raw, err := c.Cookie(CookieName); err == nil {
		if sid, ok := m.verify(raw); ok {
			_ = m.store.Destroy(c.Request.Context(), sid)
		}
	}
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}

func (m *Manager) verify(raw string) (string, bool) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("session: unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid || claims.ID == "" {
		return "", false
	}
	return claims.ID, true
}
