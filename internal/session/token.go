package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSession = errors.New("invalid session")

// Identity is what the rest of the app consumes from a session cookie.
type Identity struct {
	UserID  string
	Email   string
	Name    string
	IsAdmin bool
}

// Manager issues and parses HS256-signed session tokens carried in a cookie.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(secret, issuer string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

func (m *Manager) TTL() time.Duration { return m.ttl }

func (m *Manager) Issue(id Identity) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"iss":   m.issuer,
		"sub":   id.UserID,
		"email": id.Email,
		"name":  id.Name,
		"admin": id.IsAdmin,
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"exp":   now.Add(m.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) Parse(raw string) (Identity, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(30*time.Second), // small clock skew
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidSession
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Identity{}, ErrInvalidSession
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	admin, _ := claims["admin"].(bool)

	return Identity{UserID: sub, Email: email, Name: name, IsAdmin: admin}, nil
}
