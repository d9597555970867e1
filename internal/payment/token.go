package payment

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonathan/portfolio-generator/internal/types"
)

// ErrSessionMismatch is returned when a token belongs to a different session.
var ErrSessionMismatch = errors.New("token does not match session")

// Claims are carried by a signed session token.
type Claims struct {
	SessionID   string `json:"sid"`
	Plan        string `json:"plan"`
	PortfolioID string `json:"portfolio_id"`
	Amount      int    `json:"amount"`
	jwt.RegisteredClaims
}

// Signer signs and validates session tokens with HMAC-SHA256.
type Signer struct {
	secret []byte
}

// NewSigner creates a Signer. The secret must not be empty.
func NewSigner(secret string) (*Signer, error) {
	if secret == "" {
		return nil, fmt.Errorf("signing secret cannot be empty")
	}
	return &Signer{secret: []byte(secret)}, nil
}

// Sign issues a token for session that expires with it.
func (s *Signer) Sign(session *types.PaymentSession, req types.PaymentRequest, now time.Time) (string, error) {
	claims := &Claims{
		SessionID:   session.ID,
		Plan:        req.Plan,
		PortfolioID: req.PortfolioID,
		Amount:      session.Amount,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses a token and returns its claims.
func (s *Signer) Validate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("token expired: %w", err)
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("malformed token: %w", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("invalid token signature: %w", err)
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	return claims, nil
}
