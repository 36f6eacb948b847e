package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Type string

const (
	TypeAccess  Type = "access"
	TypeRefresh Type = "refresh"
)

var (
	ErrInvalid = errors.New("token is invalid")
	ErrExpired = errors.New("token is expired")
)

// Claims carried by both token classes. Subject is the string-typed
// user id, admin flag and username are set at issuance and never
// re-derived from storage until refresh.
type Claims struct {
	Username  string `json:"username"`
	IsAdmin   bool   `json:"is_admin"`
	TokenType Type   `json:"type"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256-signed access and refresh tokens.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	if accessTTL <= 0 {
		accessTTL = 15 * time.Minute
	}
	if refreshTTL <= 0 {
		refreshTTL = time.Hour
	}
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (m *Manager) AccessTTL() time.Duration  { return m.accessTTL }
func (m *Manager) RefreshTTL() time.Duration { return m.refreshTTL }

// IssueAccess mints a short-lived access token for the identity.
func (m *Manager) IssueAccess(userID, username string, isAdmin bool) (string, error) {
	return m.issue(TypeAccess, m.accessTTL, userID, username, isAdmin)
}

// IssueRefresh mints a refresh token, only accepted at the refresh
// endpoints.
func (m *Manager) IssueRefresh(userID, username string, isAdmin bool) (string, error) {
	return m.issue(TypeRefresh, m.refreshTTL, userID, username, isAdmin)
}

func (m *Manager) issue(tt Type, ttl time.Duration, userID, username string, isAdmin bool) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username:  username,
		IsAdmin:   isAdmin,
		TokenType: tt,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify parses and validates a token string. Expired tokens return
// ErrExpired together with the parsed claims so callers can route the
// silent refresh flow; any other failure returns ErrInvalid.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return claims, ErrExpired
		}
		return nil, ErrInvalid
	}
	if claims.Subject == "" || claims.TokenType == "" {
		return nil, ErrInvalid
	}
	return claims, nil
}
