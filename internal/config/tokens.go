package config

import (
	"crypto/rand"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tokens signs and verifies per-session JWTs. A session token proves
// the caller created the session it names; there are no player
// accounts behind it. The signing secret comes from JWT_SECRET, or is
// generated per process, which invalidates outstanding tokens on
// restart — acceptable for ephemeral in-memory sessions.
type Tokens struct {
	secret        []byte
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
}

type SessionClaims struct {
	SessionID int64 `json:"session_id"`
	jwt.RegisteredClaims
}

func NewTokens() (*Tokens, error) {
	var secret []byte
	if s, ok := os.LookupEnv("JWT_SECRET"); ok {
		secret = []byte(s)
	} else {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("unable to generate a signing secret: %w", err)
		}
	}

	t := &Tokens{
		secret:        secret,
		signingMethod: jwt.GetSigningMethod("HS256"),
		tokenLifetime: time.Hour * 24,
	}

	return t, nil
}

func (t *Tokens) Sign(sessionId int64) (string, error) {
	claims := &SessionClaims{
		SessionID: sessionId,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(t.signingMethod, claims).SignedString(t.secret)
}

func (t *Tokens) Parse(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&SessionClaims{},
		func(tok *jwt.Token) (interface{}, error) {
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{t.signingMethod.Alg()}),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}
